package imaging

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/keypoint-tools-mcp/internal/detection"
)

// GrayMatrix converts img into a single-channel intensity matrix with values
// in [0,255].
//
// Color images are reduced to luma with ITU-R BT.601 weights
// (0.299*R + 0.587*G + 0.114*B) and rounded to 8 bits, matching what a
// BGR-to-gray conversion of an 8-bit image produces. Alpha is ignored.
//
// The detector rescales [0,255] input to [0,1] on its own; see
// detection.Image.Normalize.
func GrayMatrix(img image.Image) *detection.Image {
	gray := imaging.Grayscale(img)
	bounds := gray.Bounds()
	out := detection.NewImage(bounds.Dx(), bounds.Dy())

	for y := 0; y < out.Height; y++ {
		row := out.Row(y)
		off := y * gray.Stride
		for x := range row {
			row[x] = float64(gray.Pix[off+x*4])
		}
	}
	return out
}
