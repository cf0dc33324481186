package ssim

import (
	"log/slog"

	"github.com/cwbudde/rissim/internal/opt"
)

// Bracket handed to bounded optimizer backends. The local Nelder-Mead
// default ignores it and searches unconstrained from the identity start.
var alphaBounds = struct{ lower, upper float64 }{0, 100}

// RIFactor finds the intensity-scale factor alpha that maximizes mean
// SSIM over the given statistics, by minimizing the negated two-constant
// objective starting from alpha=1. A nil optimizer selects Nelder-Mead.
// Whatever point the minimizer settles on is returned; convergence
// trouble is reported by the backend as a warning, not an error.
func RIFactor(s *MomentStatistics, optimizer opt.Optimizer) float64 {
	if optimizer == nil {
		optimizer = opt.NewNelderMead(1)
	}

	objective := func(x []float64) float64 {
		return -meanSSIM(x[0], s, TwoConstant)
	}

	best, cost := optimizer.Run(objective,
		[]float64{alphaBounds.lower}, []float64{alphaBounds.upper}, 1)
	slog.Debug("resolved SSIM-optimal scale factor", "alpha", best[0], "mean_ssim", -cost)
	return best[0]
}

// PooledRIFactor computes one global alpha for a whole batch of
// (target, prediction) pairs by pooling their moment statistics and
// running a single optimization. A shared Options.DataRange is required;
// see PooledStatistics.
func PooledRIFactor(pairs []Pair, opts Options) (float64, error) {
	stats, err := PooledStatistics(pairs, opts)
	if err != nil {
		return 0, err
	}
	return RIFactor(stats, opts.Optimizer), nil
}
