package ssim

import (
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/rissim/internal/grid"
)

// MSEFactor computes the closed-form scale factor minimizing the total
// squared error sum((alpha*pred - target)^2) over all pixels of all
// pairs. The least-squares solution is
//
//	alpha = sum(target*pred) / sum(pred*pred)
//
// No iterative optimizer is involved; this is the fast alternative when
// an MSE-optimal rather than SSIM-optimal scale is acceptable.
func MSEFactor(targets, preds []*grid.Grid) (float64, error) {
	if len(targets) == 0 || len(targets) != len(preds) {
		return 0, &InvalidOptionError{Name: "pairs", Value: float64(len(targets))}
	}

	var num, denom float64
	for i, t := range targets {
		p := preds[i]
		if !t.SameShape(p) {
			return 0, &ShapeMismatchError{XW: t.W, XH: t.H, YW: p.W, YH: p.H}
		}
		num += floats.Dot(t.Data, p.Data)
		denom += floats.Dot(p.Data, p.Data)
	}
	return num / denom, nil
}
