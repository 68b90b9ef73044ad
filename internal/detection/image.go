package detection

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// rangeHeuristic is the maximum value above which an image is assumed to be
// in 8-bit [0,255] range rather than normalized [0,1].
const rangeHeuristic = 10.0

// Image is a single-channel grid of float64 intensities stored row-major.
//
// The pixel at column x, row y lives at Pix[y*Width+x]. Images produced by this
// package are always freshly allocated; no two images share a Pix slice.
type Image struct {
	Width  int
	Height int
	Pix    []float64
}

// NewImage allocates a zero-filled image of the given size.
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height),
	}
}

// ImageFromPix wraps an existing row-major buffer. The buffer is used as-is,
// not copied.
//
// Returns an error wrapping ErrInvalidParameter if the dimensions are not
// positive or the buffer length does not equal width*height.
func ImageFromPix(width, height int, pix []float64) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: image dimensions must be positive, got %dx%d",
			ErrInvalidParameter, width, height)
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("%w: buffer length %d does not match %dx%d",
			ErrInvalidParameter, len(pix), width, height)
	}
	return &Image{Width: width, Height: height, Pix: pix}, nil
}

// At returns the value at column x, row y.
func (m *Image) At(x, y int) float64 {
	return m.Pix[y*m.Width+x]
}

// Set stores v at column x, row y.
func (m *Image) Set(x, y int, v float64) {
	m.Pix[y*m.Width+x] = v
}

// Row returns the backing slice for row y.
func (m *Image) Row(y int) []float64 {
	return m.Pix[y*m.Width : (y+1)*m.Width]
}

// Clone returns a deep copy of the image.
func (m *Image) Clone() *Image {
	c := NewImage(m.Width, m.Height)
	copy(c.Pix, m.Pix)
	return c
}

// SameShape reports whether m and o have identical dimensions.
func (m *Image) SameShape(o *Image) bool {
	return m.Width == o.Width && m.Height == o.Height
}

// Normalize returns a copy of the image scaled into [0,1].
//
// If the maximum value exceeds 10 the image is assumed to hold 8-bit
// intensities and every value is divided by 255. Otherwise the copy is
// returned unchanged.
func (m *Image) Normalize() *Image {
	c := m.Clone()
	if len(c.Pix) > 0 && floats.Max(c.Pix) > rangeHeuristic {
		floats.Scale(1.0/255.0, c.Pix)
	}
	return c
}

// Interior returns the region of m that excludes the outer 1-pixel border.
//
// For images narrower or shorter than 3 pixels the region is empty.
func (m *Image) Interior() Region {
	return Region{MinX: 1, MinY: 1, MaxX: m.Width - 1, MaxY: m.Height - 1}
}

// Region is a half-open rectangle of pixel coordinates: columns
// [MinX, MaxX) and rows [MinY, MaxY).
type Region struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Dx returns the region width, or 0 if the region is empty.
func (r Region) Dx() int {
	if r.MaxX <= r.MinX {
		return 0
	}
	return r.MaxX - r.MinX
}

// Dy returns the region height, or 0 if the region is empty.
func (r Region) Dy() int {
	if r.MaxY <= r.MinY {
		return 0
	}
	return r.MaxY - r.MinY
}

// Empty reports whether the region contains no pixels.
func (r Region) Empty() bool {
	return r.Dx() == 0 || r.Dy() == 0
}

// Contains reports whether (x, y) lies inside the region.
func (r Region) Contains(x, y int) bool {
	return x >= r.MinX && x < r.MaxX && y >= r.MinY && y < r.MaxY
}

// Crop copies the pixels of m inside r into a new image whose (0,0) is
// (r.MinX, r.MinY) in m.
func (m *Image) Crop(r Region) *Image {
	out := NewImage(r.Dx(), r.Dy())
	for y := 0; y < out.Height; y++ {
		src := m.Row(y + r.MinY)[r.MinX : r.MinX+out.Width]
		copy(out.Row(y), src)
	}
	return out
}
