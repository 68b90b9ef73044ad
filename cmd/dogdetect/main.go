// Command dogdetect runs the Difference-of-Gaussians keypoint detector on an
// image file and writes the keypoints as JSON.
package main

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ironsheep/keypoint-tools-mcp/internal/detection"
	"github.com/ironsheep/keypoint-tools-mcp/internal/imaging"
)

// output is the JSON document written by dogdetect.
type output struct {
	Image          string               `json:"image"`
	Width          int                  `json:"width"`
	Height         int                  `json:"height"`
	Config         detection.Config     `json:"config"`
	DoGLevels      []int                `json:"dog_levels"`
	CountsPerLevel []int                `json:"counts_per_level"`
	Keypoints      []detection.Keypoint `json:"keypoints"`
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("dogdetect: ")

	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("dogdetect", flag.ContinueOnError)
	def := detection.DefaultConfig()

	sigma0 := fs.Float64("sigma0", def.Sigma0, "standard deviation of pyramid level 0")
	k := fs.Float64("k", def.K, "scale factor between consecutive levels")
	levels := fs.String("levels", formatLevels(def.Levels), "comma separated, strictly ascending level indices")
	contrast := fs.Float64("contrast", def.ContrastThreshold, "minimum |DoG| response")
	curvature := fs.Float64("curvature", def.CurvatureThreshold, "maximum |principal curvature ratio|")
	curvatureFilter := fs.Bool("curvature-filter", def.CurvatureFilter, "reject edge-like keypoints")
	overlay := fs.String("overlay", "", "write a PNG with the keypoints drawn to this path")
	scale := fs.Float64("scale", 2, "overlay magnification")
	out := fs.String("o", "", "JSON output path (default stdout)")
	verbose := fs.Bool("v", false, "log pipeline timings to stderr")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: dogdetect [flags] <image>\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("expected exactly one image path, got %d", fs.NArg())
	}
	path := fs.Arg(0)

	lv, err := parseLevels(*levels)
	if err != nil {
		return err
	}
	cfg := detection.Config{
		Sigma0:             *sigma0,
		K:                  *k,
		Levels:             lv,
		ContrastThreshold:  *contrast,
		CurvatureThreshold: *curvature,
		CurvatureFilter:    *curvatureFilter,
	}

	d, err := detection.NewDetector(cfg)
	if err != nil {
		return err
	}
	if *verbose {
		d.SetLogger(log.New(os.Stderr, "dogdetect: ", log.Lmicroseconds))
	}

	cache := imaging.NewImageCache()
	m, err := cache.Matrix(path)
	if err != nil {
		return err
	}
	res, err := d.Detect(m)
	if err != nil {
		return err
	}

	if *overlay != "" {
		img, err := cache.Load(path)
		if err != nil {
			return err
		}
		if err := writeOverlay(*overlay, img, res, *scale); err != nil {
			return err
		}
		log.Printf("wrote overlay: %s", *overlay)
	}

	doc := output{
		Image:          path,
		Width:          m.Width,
		Height:         m.Height,
		Config:         d.Config(),
		DoGLevels:      res.DoGLevels,
		CountsPerLevel: res.CountsPerLevel(),
		Keypoints:      res.Keypoints,
	}

	w := stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func writeOverlay(path string, img image.Image, res *detection.Result, scale float64) error {
	ov, err := imaging.KeypointOverlay(img, res.Keypoints, len(res.DoGPyramid), scale, "")
	if err != nil {
		return err
	}
	data, err := base64.StdEncoding.DecodeString(ov.ImageBase64)
	if err != nil {
		return fmt.Errorf("failed to decode overlay: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write overlay: %w", err)
	}
	return nil
}

// parseLevels parses a comma separated list of integers such as "-1,0,1,2".
func parseLevels(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	levels := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid level %q: %w", p, err)
		}
		levels = append(levels, v)
	}
	return levels, nil
}

func formatLevels(levels []int) string {
	parts := make([]string, len(levels))
	for i, l := range levels {
		parts[i] = strconv.Itoa(l)
	}
	return strings.Join(parts, ",")
}
