package imaging

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"testing"

	"github.com/ironsheep/keypoint-tools-mcp/internal/detection"
)

func decodeResultPNG(t *testing.T, b64 string) ([]byte, int, int) {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	return raw, img.Bounds().Dx(), img.Bounds().Dy()
}

func TestRenderPyramid(t *testing.T) {
	lo := detection.NewImage(4, 3)
	hi := detection.NewImage(4, 3)
	for i := range hi.Pix {
		lo.Pix[i] = -0.5
		hi.Pix[i] = 1.5
	}

	result, err := RenderPyramid(detection.Pyramid{lo, hi, lo})
	if err != nil {
		t.Fatalf("RenderPyramid failed: %v", err)
	}

	if result.Width != 12 || result.Height != 3 || result.Levels != 3 {
		t.Errorf("got %dx%d with %d levels, want 12x3 with 3", result.Width, result.Height, result.Levels)
	}
	if result.Min != -0.5 || result.Max != 1.5 {
		t.Errorf("range: got [%v,%v], want [-0.5,1.5]", result.Min, result.Max)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}

	raw, w, h := decodeResultPNG(t, result.ImageBase64)
	if w != 12 || h != 3 {
		t.Errorf("decoded size: got %dx%d, want 12x3", w, h)
	}

	img, _ := png.Decode(bytes.NewReader(raw))
	if r, _, _, _ := img.At(1, 1).RGBA(); r != 0 {
		t.Errorf("minimum should render black, got %d", r>>8)
	}
	if r, _, _, _ := img.At(5, 1).RGBA(); r>>8 != 255 {
		t.Errorf("maximum should render white, got %d", r>>8)
	}
}

func TestRenderPyramid_Flat(t *testing.T) {
	flat := detection.NewImage(3, 3)

	result, err := RenderPyramid(detection.Pyramid{flat, flat})
	if err != nil {
		t.Fatalf("RenderPyramid failed: %v", err)
	}
	if result.Min != result.Max {
		t.Errorf("flat pyramid range: got [%v,%v]", result.Min, result.Max)
	}
}

func TestRenderPyramid_Empty(t *testing.T) {
	if _, err := RenderPyramid(nil); err == nil {
		t.Error("RenderPyramid should fail for an empty pyramid")
	}
}
