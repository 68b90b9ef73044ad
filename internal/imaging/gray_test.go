package imaging

import (
	"image"
	"image/color"
	"testing"
)

// createInMemoryImage creates a solid-color image without touching disk.
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestGrayMatrix_Luma(t *testing.T) {
	tests := []struct {
		name string
		c    color.Color
		want float64
	}{
		{"black", color.RGBA{0, 0, 0, 255}, 0},
		{"white", color.RGBA{255, 255, 255, 255}, 255},
		{"red", color.RGBA{255, 0, 0, 255}, 76},
		{"green", color.RGBA{0, 255, 0, 255}, 150},
		{"blue", color.RGBA{0, 0, 255, 255}, 29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := GrayMatrix(createInMemoryImage(4, 3, tt.c))
			if m.Width != 4 || m.Height != 3 {
				t.Fatalf("size: got %dx%d, want 4x3", m.Width, m.Height)
			}
			for i, v := range m.Pix {
				if v != tt.want {
					t.Fatalf("Pix[%d]: got %v, want %v", i, v, tt.want)
				}
			}
		})
	}
}

func TestGrayMatrix_Orientation(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 5, 3))
	img.SetGray(4, 1, color.Gray{Y: 200})

	m := GrayMatrix(img)

	if got := m.At(4, 1); got != 200 {
		t.Errorf("At(4,1): got %v, want 200 (x is column, y is row)", got)
	}
	if got := m.At(1, 1); got != 0 {
		t.Errorf("At(1,1): got %v, want 0", got)
	}
}

func TestGrayMatrix_OffsetBounds(t *testing.T) {
	full := image.NewGray(image.Rect(0, 0, 10, 10))
	full.SetGray(6, 7, color.Gray{Y: 90})
	sub := full.SubImage(image.Rect(5, 5, 10, 10))

	m := GrayMatrix(sub)

	if m.Width != 5 || m.Height != 5 {
		t.Fatalf("size: got %dx%d, want 5x5", m.Width, m.Height)
	}
	if got := m.At(1, 2); got != 90 {
		t.Errorf("At(1,2): got %v, want 90", got)
	}
}
