package ssim

import (
	"math"

	"github.com/cwbudde/rissim/internal/grid"
)

// SSIM formula evaluation. All divisions are plain elementwise floating
// point with no epsilon guarding; degenerate zero denominators (possible
// only with C1=C2=0 on constant regions) are the caller's responsibility.

// ssimMap evaluates the per-pixel SSIM at the given alpha using the
// variant recorded in the statistics.
func ssimMap(alpha float64, s *MomentStatistics) *grid.Grid {
	out := grid.New(s.UX.W, s.UX.H)
	if s.Variant == ThreeConstant {
		for i := range out.Data {
			l, c, st := componentsAt(alpha, s, i)
			out.Data[i] = l * c * st
		}
		return out
	}
	for i := range out.Data {
		out.Data[i] = twoConstantAt(alpha, s, i)
	}
	return out
}

// meanSSIM is the scalar objective value: the mean of the per-pixel SSIM.
// The formula variant can be forced, which the scale-factor optimizer
// uses to stay on the two-constant objective regardless of the variant
// requested for the final evaluation.
func meanSSIM(alpha float64, s *MomentStatistics, variant FormulaVariant) float64 {
	var sum float64
	if variant == ThreeConstant {
		for i := range s.UX.Data {
			l, c, st := componentsAt(alpha, s, i)
			sum += l * c * st
		}
	} else {
		for i := range s.UX.Data {
			sum += twoConstantAt(alpha, s, i)
		}
	}
	return sum / float64(len(s.UX.Data))
}

// twoConstantAt evaluates the classical two-constant SSIM formula with
// the predicted image's intensity statistics scaled by alpha:
//
//	A1 = 2*alpha*ux*uy + C1    B1 = ux^2 + alpha^2*uy^2 + C1
//	A2 = 2*alpha*vxy   + C2    B2 = vx   + alpha^2*vy   + C2
//	S  = (A1*A2) / (B1*B2)
func twoConstantAt(alpha float64, s *MomentStatistics, i int) float64 {
	ux, uy := s.UX.Data[i], s.UY.Data[i]
	vx, vy, vxy := s.VX.Data[i], s.VY.Data[i], s.VXY.Data[i]

	a1 := 2*alpha*ux*uy + s.C1
	a2 := 2*alpha*vxy + s.C2
	b1 := ux*ux + alpha*alpha*uy*uy + s.C1
	b2 := vx + alpha*alpha*vy + s.C2
	return (a1 * a2) / (b1 * b2)
}

// componentsAt evaluates the factorized luminance, contrast and structure
// terms at pixel i. For the three-constant variant the structure term is
// stabilized by C3; for the two-constant variant the shared
// 2*alpha*sqrt(vx*vy)+C2 term cancels so that the product reproduces the
// two-constant SSIM exactly.
func componentsAt(alpha float64, s *MomentStatistics, i int) (lum, contrast, structure float64) {
	ux, uy := s.UX.Data[i], s.UY.Data[i]
	vx, vy, vxy := s.VX.Data[i], s.VY.Data[i], s.VXY.Data[i]
	sd := math.Sqrt(vx * vy)

	lum = (2*alpha*ux*uy + s.C1) / (ux*ux + alpha*alpha*uy*uy + s.C1)
	if s.Variant == ThreeConstant {
		contrast = (2*alpha*sd + s.C2) / (vx + alpha*alpha*vy + s.C2)
		structure = (alpha*vxy + s.C3) / (alpha*sd + s.C3)
		return lum, contrast, structure
	}

	term := 2*alpha*sd + s.C2
	contrast = term / (vx + alpha*alpha*vy + s.C2)
	structure = (2*alpha*vxy + s.C2) / term
	return lum, contrast, structure
}
