package detection

// detEpsilon replaces exactly-zero Hessian determinants before division so
// that flat regions yield a large finite ratio instead of ±Inf or NaN.
const detEpsilon = 1e-10

// PrincipalCurvature computes the principal curvature ratio R = T²/D for
// every pixel of every DoG level, where T and D are the trace and determinant
// of the 2x2 Hessian [[dxx, dxy], [dxy, dyy]].
//
// The second derivatives are obtained by applying 3x3 Sobel operators twice:
// dxx is the x-derivative of dx, dxy the y-derivative of dx, and dyy the
// y-derivative of dy. Low |R| indicates corner-like structure, high |R|
// edge-like structure; the value is only meaningful as a relative score.
func PrincipalCurvature(dog Pyramid) Pyramid {
	dog.Size()
	pc := make(Pyramid, len(dog))
	for l, img := range dog {
		pc[l] = curvatureRatio(img)
	}
	return pc
}

func curvatureRatio(img *Image) *Image {
	dx := sobelX(img)
	dy := sobelY(img)
	dxx := sobelX(dx)
	dxy := sobelY(dx)
	dyy := sobelY(dy)

	out := NewImage(img.Width, img.Height)
	for i := range out.Pix {
		xx, xy, yy := dxx.Pix[i], dxy.Pix[i], dyy.Pix[i]
		det := xx*yy - xy*xy
		if det == 0 {
			det = detEpsilon
		}
		tr := xx + yy
		out.Pix[i] = tr * tr / det
	}
	return out
}
