package detection

import (
	"math"

	"github.com/anthonynsimon/bild/parallel"
)

var (
	sobelDerivative = []float64{-1, 0, 1}
	sobelSmoothing  = []float64{1, 2, 1}
)

// kernelSize returns the odd Gaussian kernel width covering ±3 sigma:
// floor(6*sigma)+1, bumped to the next odd number when even.
func kernelSize(sigma float64) int {
	size := int(math.Floor(6*sigma)) + 1
	if size%2 == 0 {
		size++
	}
	return size
}

// gaussianKernel builds a normalized 1-D Gaussian of the given odd size.
func gaussianKernel(size int, sigma float64) []float64 {
	kernel := make([]float64, size)
	center := float64(size-1) / 2
	scale := -0.5 / (sigma * sigma)
	var sum float64
	for i := range kernel {
		d := float64(i) - center
		kernel[i] = math.Exp(scale * d * d)
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// reflect101 maps an out-of-range index into [0, n) by mirroring about the
// edge pixels without repeating them (dcb|abcd|cba). The mapping is periodic
// so any offset is valid.
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * (n - 1)
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - i
	}
	return i
}

// clamp constrains an integer value to the range [lo, hi].
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// sepFilter correlates src with the separable kernel kx (horizontal) then
// ky (vertical), using reflect-101 borders. Both kernels must have odd length.
//
// Rows are split into bands and processed concurrently; each output pixel is
// written by exactly one band so the result does not depend on scheduling.
func sepFilter(src *Image, kx, ky []float64) *Image {
	w, h := src.Width, src.Height
	tmp := NewImage(w, h)
	rx := len(kx) / 2
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			in := src.Row(y)
			out := tmp.Row(y)
			for x := 0; x < w; x++ {
				var sum float64
				for i, kv := range kx {
					sum += kv * in[reflect101(x+i-rx, w)]
				}
				out[x] = sum
			}
		}
	})

	dst := NewImage(w, h)
	ry := len(ky) / 2
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			out := dst.Row(y)
			for i, kv := range ky {
				in := tmp.Row(reflect101(y+i-ry, h))
				for x := 0; x < w; x++ {
					out[x] += kv * in[x]
				}
			}
		}
	})
	return dst
}

// gaussianBlur blurs src with a Gaussian of the given standard deviation.
func gaussianBlur(src *Image, sigma float64) *Image {
	k := gaussianKernel(kernelSize(sigma), sigma)
	return sepFilter(src, k, k)
}

// sobelX returns the 3x3 Sobel derivative of src along columns.
func sobelX(src *Image) *Image {
	return sepFilter(src, sobelDerivative, sobelSmoothing)
}

// sobelY returns the 3x3 Sobel derivative of src along rows.
func sobelY(src *Image) *Image {
	return sepFilter(src, sobelSmoothing, sobelDerivative)
}

// neighborhoodExtrema returns the 3x3 sliding-window maximum and minimum of
// src. Out-of-range neighbors are replaced by the nearest edge pixel, which for
// a 3x3 window is the same as mirroring about the edge.
func neighborhoodExtrema(src *Image) (maxImg, minImg *Image) {
	w, h := src.Width, src.Height
	maxImg = NewImage(w, h)
	minImg = NewImage(w, h)
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				hi := math.Inf(-1)
				lo := math.Inf(1)
				for dy := -1; dy <= 1; dy++ {
					row := src.Row(clamp(y+dy, 0, h-1))
					for dx := -1; dx <= 1; dx++ {
						v := row[clamp(x+dx, 0, w-1)]
						hi = math.Max(hi, v)
						lo = math.Min(lo, v)
					}
				}
				maxImg.Set(x, y, hi)
				minImg.Set(x, y, lo)
			}
		}
	})
	return maxImg, minImg
}
