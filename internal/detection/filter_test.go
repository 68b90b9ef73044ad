package detection

import (
	"math"
	"testing"
)

func TestKernelSize(t *testing.T) {
	tests := []struct {
		sigma float64
		want  int
	}{
		{0.25, 3},
		{0.5, 5},
		{math.Sqrt2 / 2, 5},
		{1, 7},
		{math.Sqrt2, 9},
		{2, 13},
		{2 * math.Sqrt2, 17},
		{4, 25},
	}

	for _, tt := range tests {
		if got := kernelSize(tt.sigma); got != tt.want {
			t.Errorf("kernelSize(%v): got %d, want %d", tt.sigma, got, tt.want)
		}
	}
}

func TestGaussianKernel(t *testing.T) {
	k := gaussianKernel(7, 1)

	var sum float64
	for _, v := range k {
		sum += v
	}
	if !almostEqual(sum, 1, 1e-12) {
		t.Errorf("kernel sum: got %v, want 1", sum)
	}
	for i := 0; i < len(k)/2; i++ {
		if k[i] != k[len(k)-1-i] {
			t.Errorf("kernel not symmetric at %d: %v vs %v", i, k[i], k[len(k)-1-i])
		}
		if k[i] >= k[i+1] {
			t.Errorf("kernel not increasing toward center at %d", i)
		}
	}
}

func TestReflect101(t *testing.T) {
	tests := []struct {
		i, n, want int
	}{
		{0, 4, 0},
		{3, 4, 3},
		{-1, 4, 1},
		{-2, 4, 2},
		{4, 4, 2},
		{5, 4, 1},
		{-7, 4, 1},
		{12, 4, 0},
		{-3, 1, 0},
		{2, 1, 0},
		{-1, 2, 1},
		{2, 2, 0},
	}

	for _, tt := range tests {
		if got := reflect101(tt.i, tt.n); got != tt.want {
			t.Errorf("reflect101(%d, %d): got %d, want %d", tt.i, tt.n, got, tt.want)
		}
	}
}

func TestGaussianBlur_PreservesConstant(t *testing.T) {
	img := NewImage(16, 12)
	for i := range img.Pix {
		img.Pix[i] = 0.5
	}

	// The kernel is wider than the image along both axes.
	out := gaussianBlur(img, 4)
	for i, v := range out.Pix {
		if !almostEqual(v, 0.5, 1e-12) {
			t.Fatalf("Pix[%d]: got %v, want 0.5", i, v)
		}
	}
}

func TestGaussianBlur_SpreadsImpulse(t *testing.T) {
	img := NewImage(21, 21)
	img.Set(10, 10, 1)

	out := gaussianBlur(img, 1)

	var sum float64
	for _, v := range out.Pix {
		sum += v
	}
	if !almostEqual(sum, 1, 1e-12) {
		t.Errorf("mass not preserved: got %v", sum)
	}
	if out.At(10, 10) >= 1 || out.At(10, 10) <= out.At(11, 10) {
		t.Errorf("center should remain the unique peak, got %v vs %v", out.At(10, 10), out.At(11, 10))
	}
	if out.At(9, 10) != out.At(11, 10) || out.At(10, 9) != out.At(10, 11) {
		t.Error("blur of a centered impulse is not symmetric")
	}
}

func TestSobel_Ramp(t *testing.T) {
	img := NewImage(8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, float64(2*x+3*y))
		}
	}

	gx := sobelX(img)
	gy := sobelY(img)
	for y := 1; y < 7; y++ {
		for x := 1; x < 7; x++ {
			if got := gx.At(x, y); !almostEqual(got, 16, 1e-12) {
				t.Errorf("sobelX(%d,%d): got %v, want 16", x, y, got)
			}
			if got := gy.At(x, y); !almostEqual(got, 24, 1e-12) {
				t.Errorf("sobelY(%d,%d): got %v, want 24", x, y, got)
			}
		}
	}

	// Reflect-101 makes the derivative vanish on the border column.
	if got := gx.At(0, 4); got != 0 {
		t.Errorf("sobelX on border: got %v, want 0", got)
	}
}

func TestNeighborhoodExtrema(t *testing.T) {
	img, _ := ImageFromPix(4, 3, []float64{
		1, 2, 3, 4,
		5, 9, 0, 6,
		7, 8, -1, 2,
	})

	hi, lo := neighborhoodExtrema(img)

	tests := []struct {
		x, y   int
		hi, lo float64
	}{
		{0, 0, 9, 1},
		{1, 1, 9, -1},
		{3, 0, 6, 0},
		{3, 2, 6, -1},
		{2, 1, 9, -1},
	}
	for _, tt := range tests {
		if got := hi.At(tt.x, tt.y); got != tt.hi {
			t.Errorf("max at (%d,%d): got %v, want %v", tt.x, tt.y, got, tt.hi)
		}
		if got := lo.At(tt.x, tt.y); got != tt.lo {
			t.Errorf("min at (%d,%d): got %v, want %v", tt.x, tt.y, got, tt.lo)
		}
	}
}
