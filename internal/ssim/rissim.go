// Package ssim computes a range-invariant variant of the structural
// similarity index. Before scoring, a global multiplicative
// intensity-scale factor alpha is resolved (by scalar optimization of
// the SSIM objective, by a closed-form least-squares fit, or fixed by
// the caller) and baked into the SSIM formula, so that predictions that
// differ from the reference only by an intensity scale are not
// penalized.
package ssim

import (
	"log/slog"

	"github.com/cwbudde/rissim/internal/grid"
)

// Result is the outcome of one comparison. MSSIM and Alpha are always
// set; the per-pixel maps and component means are populated only when
// Options.ReturnComponents was requested.
type Result struct {
	MSSIM float64 // mean SSIM over the cropped region
	Alpha float64 // resolved intensity-scale factor

	SSIM      *grid.Grid // per-pixel SSIM map
	Luminance *grid.Grid
	Contrast  *grid.Grid
	Structure *grid.Grid

	LuminanceMean float64
	ContrastMean  float64
	StructureMean float64

	// Stabilizing constants the comparison was evaluated with.
	C1, C2, C3 float64
}

// RangeInvariant is the main entry point: it computes the moment
// statistics of the two images, resolves alpha according to opts.Scale,
// and evaluates the final SSIM at that alpha.
func RangeInvariant(target, pred *grid.Grid, opts Options) (*Result, error) {
	stats, err := ComputeStatistics(target, pred, opts)
	if err != nil {
		return nil, err
	}

	var alpha float64
	switch opts.Scale {
	case ScaleFixed:
		alpha = opts.RIFactor
	case ScaleMSEOptimal:
		alpha, err = MSEFactor([]*grid.Grid{target}, []*grid.Grid{pred})
		if err != nil {
			return nil, err
		}
	default:
		alpha = RIFactor(stats, opts.Optimizer)
	}

	res := Evaluate(alpha, stats, opts.ReturnComponents)
	slog.Debug("similarity computed", "mssim", res.MSSIM, "alpha", alpha)
	return res, nil
}

// StructuralSimilarity computes ordinary SSIM, i.e. the comparison with
// alpha fixed at 1.
func StructuralSimilarity(target, pred *grid.Grid, opts Options) (*Result, error) {
	opts.Scale = ScaleFixed
	opts.RIFactor = 1
	return RangeInvariant(target, pred, opts)
}

// MSEBased computes range-invariant SSIM with the closed-form
// MSE-optimal alpha instead of the optimizer-resolved one.
func MSEBased(target, pred *grid.Grid, opts Options) (*Result, error) {
	opts.Scale = ScaleMSEOptimal
	return RangeInvariant(target, pred, opts)
}

// Evaluate applies the SSIM formula to precomputed statistics at a given
// alpha. Component maps are materialized only when requested.
func Evaluate(alpha float64, s *MomentStatistics, components bool) *Result {
	res := &Result{
		Alpha: alpha,
		C1:    s.C1,
		C2:    s.C2,
		C3:    s.C3,
	}
	if !components {
		res.MSSIM = meanSSIM(alpha, s, s.Variant)
		return res
	}

	res.SSIM = grid.New(s.UX.W, s.UX.H)
	res.Luminance = grid.New(s.UX.W, s.UX.H)
	res.Contrast = grid.New(s.UX.W, s.UX.H)
	res.Structure = grid.New(s.UX.W, s.UX.H)
	for i := range res.SSIM.Data {
		l, c, st := componentsAt(alpha, s, i)
		res.Luminance.Data[i] = l
		res.Contrast.Data[i] = c
		res.Structure.Data[i] = st
		res.SSIM.Data[i] = l * c * st
	}
	res.MSSIM = res.SSIM.Mean()
	res.LuminanceMean = res.Luminance.Mean()
	res.ContrastMean = res.Contrast.Mean()
	res.StructureMean = res.Structure.Mean()
	return res
}
