package ssim

import (
	"github.com/cwbudde/rissim/internal/grid"
)

// MomentStatistics holds the minimal sufficient statistics for SSIM:
// local means, variances and covariance of the two images, cropped by
// the window radius on every border, plus the stabilizing constants.
// Instances are created per comparison and never mutated afterwards.
type MomentStatistics struct {
	UX, UY  *grid.Grid // local means
	VX, VY  *grid.Grid // local variances
	VXY     *grid.Grid // local covariance
	C1, C2  float64
	C3      float64 // only meaningful with the ThreeConstant variant
	Variant FormulaVariant
}

// ComputeStatistics computes the windowed first and second moment
// statistics of two same-shape images.
//
// The chosen local filter (box or Gaussian, reflecting at borders) is
// applied to x, y, x*x, y*y and x*y; variances and covariance follow as
// cov_norm * (E[ab] - E[a]E[b]) with cov_norm = N/(N-1) for sample
// covariance or 1 for population covariance, N = winSize^2. All per-pixel
// arrays are cropped by (winSize-1)/2 on every side to drop pixels the
// filter could not compute from full windows.
//
// All fatal preconditions are checked here, before any filtering work.
func ComputeStatistics(x, y *grid.Grid, opts Options) (*MomentStatistics, error) {
	if opts.Multichannel {
		return nil, &UnsupportedFeatureError{Feature: "multichannel comparison"}
	}
	if opts.K1 < 0 {
		return nil, &InvalidOptionError{Name: "K1", Value: opts.K1}
	}
	if opts.K2 < 0 {
		return nil, &InvalidOptionError{Name: "K2", Value: opts.K2}
	}
	if opts.Sigma < 0 {
		return nil, &InvalidOptionError{Name: "sigma", Value: opts.Sigma}
	}
	if opts.Variant == ThreeConstant && opts.K3 <= 0 {
		return nil, &InvalidOptionError{Name: "K3", Value: opts.K3}
	}
	if !x.SameShape(y) {
		return nil, &ShapeMismatchError{XW: x.W, XH: x.H, YW: y.W, YH: y.H}
	}

	winSize := opts.resolveWinSize()
	minDim := min(x.W, x.H)
	switch {
	case winSize <= 0:
		return nil, &InvalidWindowError{Size: winSize, MinDim: minDim, Reason: "must be positive"}
	case winSize%2 == 0:
		return nil, &InvalidWindowError{Size: winSize, MinDim: minDim, Reason: "must be odd"}
	case winSize > minDim:
		return nil, &InvalidWindowError{Size: winSize, MinDim: minDim, Reason: "exceeds image extent"}
	}

	if opts.DataRange <= 0 {
		return nil, &MissingDataRangeError{}
	}

	filter := func(g *grid.Grid) *grid.Grid {
		if opts.GaussianWeights {
			return g.GaussianFilter(opts.Sigma, gaussianTruncate)
		}
		return g.BoxFilter(winSize)
	}

	// The filters normalize by the window weight sum, so only the
	// covariance correction depends on the pixel count.
	np := float64(winSize * winSize)
	covNorm := 1.0
	if opts.UseSampleCovariance {
		covNorm = np / (np - 1)
	}

	ux := filter(x)
	uy := filter(y)
	uxx := filter(x.MulElem(x))
	uyy := filter(y.MulElem(y))
	uxy := filter(x.MulElem(y))

	vx := grid.New(x.W, x.H)
	vy := grid.New(x.W, x.H)
	vxy := grid.New(x.W, x.H)
	for i := range vx.Data {
		vx.Data[i] = covNorm * (uxx.Data[i] - ux.Data[i]*ux.Data[i])
		vy.Data[i] = covNorm * (uyy.Data[i] - uy.Data[i]*uy.Data[i])
		vxy.Data[i] = covNorm * (uxy.Data[i] - ux.Data[i]*uy.Data[i])
	}

	r := opts.DataRange
	stats := &MomentStatistics{
		C1:      (opts.K1 * r) * (opts.K1 * r),
		C2:      (opts.K2 * r) * (opts.K2 * r),
		Variant: opts.Variant,
	}
	if opts.Variant == ThreeConstant {
		stats.C3 = (opts.K3 * r) * (opts.K3 * r)
	}

	pad := (winSize - 1) / 2
	stats.UX = ux.Crop(pad)
	stats.UY = uy.Crop(pad)
	stats.VX = vx.Crop(pad)
	stats.VY = vy.Crop(pad)
	stats.VXY = vxy.Crop(pad)

	return stats, nil
}

// Pair is one (target, prediction) comparison in a batch.
type Pair struct {
	Target, Pred *grid.Grid
}

// PooledStatistics computes MomentStatistics for every pair independently,
// then flattens and concatenates all moment arrays into one pooled set of
// observations, treating the whole batch as defining a single global
// alpha. The stabilizing constants depend on the data range, so a single
// shared Options.DataRange is required for the pooled objective to be
// well-defined; per-pair ranges are not supported.
func PooledStatistics(pairs []Pair, opts Options) (*MomentStatistics, error) {
	if len(pairs) == 0 {
		return nil, &InvalidOptionError{Name: "pairs", Value: 0}
	}
	opts.Variant = TwoConstant

	var ux, uy, vx, vy, vxy []*grid.Grid
	var pooled *MomentStatistics
	for _, p := range pairs {
		stats, err := ComputeStatistics(p.Target, p.Pred, opts)
		if err != nil {
			return nil, err
		}
		ux = append(ux, stats.UX)
		uy = append(uy, stats.UY)
		vx = append(vx, stats.VX)
		vy = append(vy, stats.VY)
		vxy = append(vxy, stats.VXY)
		pooled = stats
	}

	pooled.UX = grid.Concat(ux...)
	pooled.UY = grid.Concat(uy...)
	pooled.VX = grid.Concat(vx...)
	pooled.VY = grid.Concat(vy...)
	pooled.VXY = grid.Concat(vxy...)
	return pooled, nil
}
