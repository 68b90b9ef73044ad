// Package imaging bridges image files and the keypoint detector.
//
// It decodes image files into Go images, converts them to the grayscale
// intensity matrices consumed by internal/detection and renders detector
// output back into PNG images: pyramid strips for inspection and keypoint
// overlays for review.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner. X is the
// column and increases rightward, Y is the row and increases downward. This
// matches detection.Keypoint, so keypoints can be drawn without conversion.
//
// # Intensity Scale
//
// GrayMatrix returns luma values in [0,255]. The detector normalizes them to
// [0,1] itself, so the matrix can be passed to detection.DoGDetect as is.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Matrices handed out by the
// cache are shared and must not be modified. The render functions are
// stateless.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - File I/O or decode errors during image loading
//   - Non-positive overlay scale or a malformed marker color
//   - An empty pyramid passed to RenderPyramid
//   - Encoding errors during image output
//
// # Performance Considerations
//
// For repeated detector runs on the same file, use ImageCache to avoid
// decoding and converting the image again. Rendered PNGs are returned as
// base64 strings, which adds about a third to their size.
package imaging
