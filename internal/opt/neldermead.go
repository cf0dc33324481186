package opt

import (
	"log/slog"

	"gonum.org/v1/gonum/optimize"
)

// NelderMeadAdapter wraps gonum's derivative-free Nelder-Mead simplex
// method behind the Optimizer interface. It is an unconstrained local
// minimizer: bounds passed to Run are only used to pick a starting point
// when no explicit initial guess was configured.
type NelderMeadAdapter struct {
	initial []float64
}

// NewNelderMead creates a Nelder-Mead optimizer starting from the given
// initial guess. With no arguments the search starts from the midpoint
// of the bounds passed to Run.
func NewNelderMead(initial ...float64) Optimizer {
	return &NelderMeadAdapter{initial: initial}
}

// Run minimizes eval starting from the configured initial point. If the
// minimizer reports a convergence failure, the last iterate is still
// returned; the failure is surfaced as a warning only.
func (n *NelderMeadAdapter) Run(eval func([]float64) float64, lower, upper []float64, dim int) ([]float64, float64) {
	x0 := make([]float64, dim)
	if len(n.initial) == dim {
		copy(x0, n.initial)
	} else {
		for i := 0; i < dim; i++ {
			x0[i] = (lower[i] + upper[i]) / 2
		}
	}

	problem := optimize.Problem{Func: eval}
	result, err := optimize.Minimize(problem, x0, nil, &optimize.NelderMead{})
	if err != nil {
		slog.Warn("nelder-mead did not converge cleanly", "error", err)
		if result == nil {
			return x0, eval(x0)
		}
	}
	return result.X, result.F
}
