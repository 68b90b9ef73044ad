package detection

import (
	"fmt"
	"math"
)

// Default detector parameters.
const (
	DefaultSigma0             = 1.0
	DefaultContrastThreshold  = 0.03
	DefaultCurvatureThreshold = 12.0
)

// DefaultK is the default scale factor between consecutive pyramid levels.
var DefaultK = math.Sqrt2

// DefaultLevels returns the default pyramid level indices, -1 through 4.
func DefaultLevels() []int {
	return []int{-1, 0, 1, 2, 3, 4}
}

// Config holds the tunable parameters of the DoG detector.
//
// The zero value is not usable; start from DefaultConfig and override fields.
type Config struct {
	// Sigma0 is the standard deviation of the level with index 0. Must be > 0.
	Sigma0 float64 `json:"sigma0"`

	// K is the scale factor between consecutive levels; level i is blurred
	// with sigma0 * K^i. Must be > 0.
	K float64 `json:"k"`

	// Levels lists the pyramid level indices in strictly ascending order.
	// At least 4 entries are required so that one interior DoG level exists.
	Levels []int `json:"levels"`

	// ContrastThreshold is the minimum |DoG| response a keypoint must have.
	ContrastThreshold float64 `json:"th_contrast"`

	// CurvatureThreshold is the maximum |R| principal curvature ratio a
	// keypoint may have. Only applied when CurvatureFilter is set.
	CurvatureThreshold float64 `json:"th_r"`

	// CurvatureFilter enables rejection of edge-like responses using
	// CurvatureThreshold. Off by default: the curvature ratio is computed and
	// returned but does not filter keypoints unless this is set.
	CurvatureFilter bool `json:"curvature_filter"`
}

// DefaultConfig returns {sigma0: 1, k: √2, levels: [-1..4], th_contrast: 0.03,
// th_r: 12} with the curvature filter disabled.
func DefaultConfig() Config {
	return Config{
		Sigma0:             DefaultSigma0,
		K:                  DefaultK,
		Levels:             DefaultLevels(),
		ContrastThreshold:  DefaultContrastThreshold,
		CurvatureThreshold: DefaultCurvatureThreshold,
	}
}

// Validate checks the configuration. All failures wrap ErrInvalidParameter.
func (c Config) Validate() error {
	if err := validateScale(c.Sigma0, c.K); err != nil {
		return err
	}
	if len(c.Levels) < 4 {
		return fmt.Errorf("%w: need at least 4 levels for an interior DoG level, got %d",
			ErrInvalidParameter, len(c.Levels))
	}
	for i := 1; i < len(c.Levels); i++ {
		if c.Levels[i] <= c.Levels[i-1] {
			return fmt.Errorf("%w: levels must be strictly ascending, got %v",
				ErrInvalidParameter, c.Levels)
		}
	}
	if math.IsNaN(c.ContrastThreshold) || c.ContrastThreshold < 0 {
		return fmt.Errorf("%w: contrast threshold must be >= 0, got %g",
			ErrInvalidParameter, c.ContrastThreshold)
	}
	if math.IsNaN(c.CurvatureThreshold) || c.CurvatureThreshold < 0 {
		return fmt.Errorf("%w: curvature threshold must be >= 0, got %g",
			ErrInvalidParameter, c.CurvatureThreshold)
	}
	return nil
}

func validateScale(sigma0, k float64) error {
	if !(sigma0 > 0) || math.IsInf(sigma0, 0) {
		return fmt.Errorf("%w: sigma0 must be positive, got %g", ErrInvalidParameter, sigma0)
	}
	if !(k > 0) || math.IsInf(k, 0) {
		return fmt.Errorf("%w: k must be positive, got %g", ErrInvalidParameter, k)
	}
	return nil
}
