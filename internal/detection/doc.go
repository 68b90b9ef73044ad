// Package detection implements scale-space keypoint detection using a
// Difference-of-Gaussians (DoG) pyramid.
//
// The pipeline runs strictly forward:
//
//	Image -> GaussianPyramid -> DoGPyramid -> PrincipalCurvature -> LocalExtrema
//
// Detector composes the stages and returns the keypoints together with every
// intermediate pyramid so callers can render or reuse them without
// recomputing the blur.
//
// # Coordinate System
//
// Images are stored row-major. Keypoint.X is the column and Keypoint.Y the row,
// both 0-based in the original image frame. Detected keypoints never lie on
// the outer 1-pixel border.
//
// # Scale Levels
//
// Config.Levels lists integer level indices; level i is blurred with
// sigma0 * k^i. DoG level j is Gaussian level j+1 minus Gaussian level j.
// Only DoG levels 1..L-3 (with L = len(Levels)) have both scale neighbors and
// are scanned for extrema, so at least 4 levels are required.
//
// # Error Handling
//
// Parameters are validated once, before any computation, and failures wrap
// ErrInvalidParameter. Finding no keypoints is not an error. Shape
// disagreements between pyramid levels cannot arise from valid inputs and
// panic with ErrDimensionMismatch.
//
// # Thread Safety
//
// All functions are pure apart from allocating their outputs. Convolution
// passes split rows across goroutines internally but always return
// deterministic results.
package detection
