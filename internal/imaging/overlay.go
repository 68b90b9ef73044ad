package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/keypoint-tools-mcp/internal/detection"
)

// markerRadius is the radius in output pixels of each keypoint dot.
const markerRadius = 2

// KeypointOverlayResult contains the source image with keypoints drawn on top.
type KeypointOverlayResult struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Scale       float64 `json:"scale"`
	Keypoints   int     `json:"keypoints"`
	ImageBase64 string  `json:"image_base64"`
	MimeType    string  `json:"mime_type"`
}

// KeypointOverlay upscales img by scale and draws a filled dot at every
// keypoint position.
//
// Parameters:
//   - img: Source image the keypoints were detected on.
//   - kps: Keypoints in the source image frame.
//   - levels: Number of DoG levels, used to spread per-level colors around
//     the hue circle.
//   - scale: Output magnification. Values <= 0 are rejected.
//   - markerHex: Optional "#RRGGBB" or "#RRGGBBAA" color for every marker.
//     When empty, each DoG level gets its own hue.
func KeypointOverlay(img image.Image, kps []detection.Keypoint, levels int, scale float64, markerHex string) (*KeypointOverlayResult, error) {
	if !(scale > 0) {
		return nil, fmt.Errorf("scale must be positive, got %g", scale)
	}

	var fixed *color.RGBA
	if markerHex != "" {
		c, err := parseHexColor(markerHex)
		if err != nil {
			return nil, fmt.Errorf("invalid marker color %q: %w", markerHex, err)
		}
		fixed = &c
	}

	bounds := img.Bounds()
	width := int(math.Round(float64(bounds.Dx()) * scale))
	height := int(math.Round(float64(bounds.Dy()) * scale))
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("scaled size %dx%d is empty", width, height)
	}

	var base image.Image = img
	if width != bounds.Dx() || height != bounds.Dy() {
		base = imaging.Resize(img, width, height, imaging.Linear)
	}
	result := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(result, result.Bounds(), base, base.Bounds().Min, draw.Src)

	for _, kp := range kps {
		c := levelColor(kp.Level, levels)
		if fixed != nil {
			c = *fixed
		}
		cx := int(math.Round(float64(kp.X) * scale))
		cy := int(math.Round(float64(kp.Y) * scale))
		fillCircle(result, cx, cy, markerRadius, c)
	}

	encoded, err := encodePNG(result)
	if err != nil {
		return nil, err
	}

	return &KeypointOverlayResult{
		Width:       width,
		Height:      height,
		Scale:       scale,
		Keypoints:   len(kps),
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

// levelColor picks a saturated hue for DoG level l out of n levels.
func levelColor(l, n int) color.RGBA {
	if n < 1 {
		n = 1
	}
	hue := 120 + 360*float64(l)/float64(n)
	r, g, b := colorful.Hsv(math.Mod(hue, 360), 1, 1).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// fillCircle paints a filled disc of radius r centered at (cx, cy), clipped
// to the image bounds.
func fillCircle(img *image.RGBA, cx, cy, r int, c color.RGBA) {
	bounds := img.Bounds()
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r*r {
				continue
			}
			p := image.Pt(cx+dx, cy+dy)
			if p.In(bounds) {
				img.SetRGBA(p.X, p.Y, c)
			}
		}
	}
}

// parseHexColor parses a hex color string like "#00FF00" or "#00FF0080".
func parseHexColor(hex string) (color.RGBA, error) {
	if len(hex) == 0 {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint8 = 0, 0, 0, 255

	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 16)
		g = uint8(val >> 8)
		b = uint8(val)
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 24)
		g = uint8(val >> 16)
		b = uint8(val >> 8)
		a = uint8(val)
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color length")
	}

	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}
