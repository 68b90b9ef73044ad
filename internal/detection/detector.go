package detection

import (
	"fmt"
	"io"
	"log"
	"time"
)

// Result holds the output of a detector run. Every pyramid is an independent
// allocation; callers may keep or modify them freely.
type Result struct {
	// Keypoints lists the detected scale-space extrema, ordered by level then
	// row then column. Never nil.
	Keypoints []Keypoint `json:"keypoints"`

	// GaussianPyramid holds one blurred image per configured level.
	GaussianPyramid Pyramid `json:"-"`

	// DoGPyramid holds len(GaussianPyramid)-1 difference images.
	DoGPyramid Pyramid `json:"-"`

	// DoGLevels is Config.Levels without its first entry.
	DoGLevels []int `json:"dog_levels"`

	// Curvature holds one principal curvature ratio map per DoG level.
	Curvature Pyramid `json:"-"`
}

// CountsPerLevel returns the number of keypoints found on each DoG level,
// indexed by level. Boundary levels are always zero.
func (r *Result) CountsPerLevel() []int {
	counts := make([]int, len(r.DoGPyramid))
	for _, kp := range r.Keypoints {
		counts[kp.Level]++
	}
	return counts
}

// Detector runs the Difference-of-Gaussians keypoint pipeline with a fixed
// configuration. It keeps no state between calls and is safe for concurrent
// use.
type Detector struct {
	cfg    Config
	logger *log.Logger
}

// NewDetector validates cfg and returns a detector for it.
//
// Returns an error wrapping ErrInvalidParameter if cfg is invalid.
func NewDetector(cfg Config) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Levels = append([]int(nil), cfg.Levels...)
	return &Detector{
		cfg:    cfg,
		logger: log.New(io.Discard, "", 0),
	}, nil
}

// SetLogger routes stage timings and per-level counts to l. A nil logger
// silences output.
func (d *Detector) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	d.logger = l
}

// Config returns a copy of the detector configuration.
func (d *Detector) Config() Config {
	cfg := d.cfg
	cfg.Levels = append([]int(nil), d.cfg.Levels...)
	return cfg
}

// Detect runs the full pipeline on img:
//
//	normalize -> Gaussian pyramid -> DoG pyramid -> principal curvature -> local extrema
//
// img may hold [0,1] or [0,255] intensities; see Image.Normalize. The input is
// never modified.
func (d *Detector) Detect(img *Image) (*Result, error) {
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidParameter)
	}
	if len(img.Pix) != img.Width*img.Height {
		return nil, fmt.Errorf("%w: buffer length %d does not match %dx%d",
			ErrInvalidParameter, len(img.Pix), img.Width, img.Height)
	}

	start := time.Now()
	norm := img.Normalize()

	gp, err := GaussianPyramid(norm, d.cfg.Sigma0, d.cfg.K, d.cfg.Levels)
	if err != nil {
		return nil, err
	}
	d.logger.Printf("gaussian pyramid: %d levels of %dx%d in %v",
		len(gp), img.Width, img.Height, time.Since(start))

	dog, dogLevels := DoGPyramid(gp, d.cfg.Levels)
	pc := PrincipalCurvature(dog)
	d.logger.Printf("dog pyramid and curvature: %d levels in %v", len(dog), time.Since(start))

	kps := LocalExtrema(dog, pc, ExtremaOptions{
		ContrastThreshold:  d.cfg.ContrastThreshold,
		CurvatureThreshold: d.cfg.CurvatureThreshold,
		CurvatureFilter:    d.cfg.CurvatureFilter,
	})

	res := &Result{
		Keypoints:       kps,
		GaussianPyramid: gp,
		DoGPyramid:      dog,
		DoGLevels:       dogLevels,
		Curvature:       pc,
	}
	d.logger.Printf("detected %d keypoints (per level %v) in %v",
		len(kps), res.CountsPerLevel(), time.Since(start))
	return res, nil
}

// DoGDetect is a convenience wrapper that validates cfg and runs a single
// detection.
func DoGDetect(img *Image, cfg Config) (*Result, error) {
	d, err := NewDetector(cfg)
	if err != nil {
		return nil, err
	}
	return d.Detect(img)
}
