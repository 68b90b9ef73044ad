package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"gonum.org/v1/gonum/floats"

	"github.com/ironsheep/keypoint-tools-mcp/internal/detection"
)

// PyramidImageResult is a rendering of every pyramid level side by side,
// encoded as base64 PNG.
type PyramidImageResult struct {
	// Width is the total width: level width times the number of levels.
	Width int `json:"width"`

	// Height equals the height of a single level.
	Height int `json:"height"`

	// Levels is the number of pyramid levels in the rendering.
	Levels int `json:"levels"`

	// Min and Max are the raw values mapped to black and white.
	Min float64 `json:"min"`
	Max float64 `json:"max"`

	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// RenderPyramid lays the levels of p out left to right and min-max
// normalizes all of them jointly into 8-bit gray, so relative responses
// between levels stay comparable. A pyramid with no variation renders black.
func RenderPyramid(p detection.Pyramid) (*PyramidImageResult, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("cannot render an empty pyramid")
	}
	w, h := p.Size()

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, lvl := range p {
		lo = math.Min(lo, floats.Min(lvl.Pix))
		hi = math.Max(hi, floats.Max(lvl.Pix))
	}
	span := hi - lo

	out := image.NewGray(image.Rect(0, 0, w*len(p), h))
	for l, lvl := range p {
		for y := 0; y < h; y++ {
			src := lvl.Row(y)
			dst := out.Pix[y*out.Stride+l*w : y*out.Stride+(l+1)*w]
			for x, v := range src {
				if span > 0 {
					dst[x] = uint8(math.Round(255 * (v - lo) / span))
				}
			}
		}
	}

	encoded, err := encodePNG(out)
	if err != nil {
		return nil, err
	}

	return &PyramidImageResult{
		Width:       out.Bounds().Dx(),
		Height:      h,
		Levels:      len(p),
		Min:         lo,
		Max:         hi,
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

// encodePNG encodes img as PNG and returns it base64 encoded.
func encodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
