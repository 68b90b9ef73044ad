package detection

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Pyramid is an ordered stack of same-sized images, one per scale level.
type Pyramid []*Image

// Size returns the width and height shared by every level. It panics with
// ErrDimensionMismatch if the levels disagree, and returns 0,0 for an empty
// pyramid.
func (p Pyramid) Size() (width, height int) {
	if len(p) == 0 {
		return 0, 0
	}
	for i, lvl := range p[1:] {
		if !lvl.SameShape(p[0]) {
			panic(fmt.Errorf("%w: level %d is %dx%d, level 0 is %dx%d",
				ErrDimensionMismatch, i+1, lvl.Width, lvl.Height, p[0].Width, p[0].Height))
		}
	}
	return p[0].Width, p[0].Height
}

// LevelSigma returns sigma0 * k^level.
func LevelSigma(sigma0, k float64, level int) float64 {
	return sigma0 * math.Pow(k, float64(level))
}

// GaussianPyramid blurs img once per entry of levels, level i using a
// Gaussian with standard deviation sigma0 * k^i.
//
// The input is expected in [0,1]; see Image.Normalize. The returned pyramid
// has len(levels) fresh images, each the size of img.
//
// Returns an error wrapping ErrInvalidParameter if sigma0 or k is not
// positive.
func GaussianPyramid(img *Image, sigma0, k float64, levels []int) (Pyramid, error) {
	if err := validateScale(sigma0, k); err != nil {
		return nil, err
	}
	pyr := make(Pyramid, len(levels))
	for i, lvl := range levels {
		pyr[i] = gaussianBlur(img, LevelSigma(sigma0, k, lvl))
	}
	return pyr, nil
}

// DoGPyramid subtracts adjacent Gaussian levels: dog[j] = gp[j+1] - gp[j].
//
// It also returns levels[1:] (copied), the level index each DoG entry is
// associated with. For a pyramid of fewer than two levels both results are
// empty.
func DoGPyramid(gp Pyramid, levels []int) (Pyramid, []int) {
	gp.Size()
	if len(gp) < 2 {
		return Pyramid{}, []int{}
	}
	dog := make(Pyramid, len(gp)-1)
	for j := range dog {
		d := NewImage(gp[j].Width, gp[j].Height)
		floats.SubTo(d.Pix, gp[j+1].Pix, gp[j].Pix)
		dog[j] = d
	}

	var dogLevels []int
	if len(levels) > 1 {
		dogLevels = append([]int(nil), levels[1:]...)
	} else {
		dogLevels = []int{}
	}
	return dog, dogLevels
}
