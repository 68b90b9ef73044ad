package detection

import (
	"fmt"
	"math"
)

// Keypoint is a scale-space extremum. X is the column and Y the row in the
// original image frame; Level is the index of the DoG level that produced it.
type Keypoint struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Level int `json:"level"`
}

// ExtremaOptions controls the thresholds applied to extremum candidates.
type ExtremaOptions struct {
	ContrastThreshold  float64
	CurvatureThreshold float64
	CurvatureFilter    bool
}

// LocalExtrema finds pixels that are extrema of their 3x3x3 scale-space
// neighborhood and pass the contrast (and optionally curvature) thresholds.
//
// Only interior DoG levels 1..len(dog)-2 are scanned, and within each level
// only the interior region excluding the outer 1-pixel border. The returned
// slice is never nil; it is empty when dog has fewer than 3 levels or when no
// pixel qualifies.
//
// pc must hold one curvature map per DoG level when opts.CurvatureFilter is
// set; otherwise it may be nil.
//
// # Algorithm
//
// For level l, restricted to the interior region:
//
//  1. space_max/space_min: 3x3 max/min filter of level l
//  2. scale_max/scale_min: pixelwise max/min of levels l-1 and l+1, then
//     the same 3x3 max/min filter
//  3. candidate if v >= max(space_max, scale_max) or v <= min(space_min, scale_min)
//  4. keep if |v| >= ContrastThreshold
//  5. if CurvatureFilter, keep only if |R| <= CurvatureThreshold
func LocalExtrema(dog Pyramid, pc Pyramid, opts ExtremaOptions) []Keypoint {
	dog.Size()
	if opts.CurvatureFilter && len(pc) != len(dog) {
		panic(fmt.Errorf("%w: %d curvature maps for %d DoG levels",
			ErrDimensionMismatch, len(pc), len(dog)))
	}

	keypoints := []Keypoint{}
	for l := 1; l < len(dog)-1; l++ {
		keypoints = append(keypoints, levelExtrema(dog, pc, l, opts)...)
	}
	return keypoints
}

// levelExtrema returns the keypoints found on DoG level l as an independent
// batch.
func levelExtrema(dog Pyramid, pc Pyramid, l int, opts ExtremaOptions) []Keypoint {
	region := dog[l].Interior()
	if region.Empty() {
		return nil
	}

	cur := dog[l].Crop(region)
	below := dog[l-1].Crop(region)
	above := dog[l+1].Crop(region)

	adjMax := NewImage(cur.Width, cur.Height)
	adjMin := NewImage(cur.Width, cur.Height)
	for i := range cur.Pix {
		adjMax.Pix[i] = math.Max(below.Pix[i], above.Pix[i])
		adjMin.Pix[i] = math.Min(below.Pix[i], above.Pix[i])
	}

	spaceMax, spaceMin := neighborhoodExtrema(cur)
	scaleMax, _ := neighborhoodExtrema(adjMax)
	_, scaleMin := neighborhoodExtrema(adjMin)

	var batch []Keypoint
	for y := 0; y < cur.Height; y++ {
		for x := 0; x < cur.Width; x++ {
			i := y*cur.Width + x
			v := cur.Pix[i]
			isMax := v >= math.Max(spaceMax.Pix[i], scaleMax.Pix[i])
			isMin := v <= math.Min(spaceMin.Pix[i], scaleMin.Pix[i])
			if !isMax && !isMin {
				continue
			}
			if math.Abs(v) < opts.ContrastThreshold {
				continue
			}

			ox, oy := x+region.MinX, y+region.MinY
			if opts.CurvatureFilter && math.Abs(pc[l].At(ox, oy)) > opts.CurvatureThreshold {
				continue
			}
			batch = append(batch, Keypoint{X: ox, Y: oy, Level: l})
		}
	}
	return batch
}
