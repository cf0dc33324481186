package opt

import (
	"math"
	"testing"
)

func TestNelderMeadQuadratic(t *testing.T) {
	// f(x) = (x-3)^2, minimum at 3.
	quadratic := func(x []float64) float64 {
		d := x[0] - 3
		return d * d
	}

	optimizer := NewNelderMead(1)
	best, cost := optimizer.Run(quadratic, []float64{0}, []float64{10}, 1)

	if math.Abs(best[0]-3) > 1e-3 {
		t.Errorf("minimum at %f, want 3", best[0])
	}
	if cost > 1e-6 {
		t.Errorf("cost = %g, want ~0", cost)
	}
}

func TestNelderMeadMidpointStart(t *testing.T) {
	// Without an initial guess the search starts from the bounds midpoint.
	quadratic := func(x []float64) float64 {
		d := x[0] - 3
		return d * d
	}

	optimizer := NewNelderMead()
	best, _ := optimizer.Run(quadratic, []float64{0}, []float64{10}, 1)

	if math.Abs(best[0]-3) > 1e-3 {
		t.Errorf("minimum at %f, want 3", best[0])
	}
}

func TestNelderMeadMultivariate(t *testing.T) {
	best, cost := NewNelderMead(1, 1).Run(sphere, []float64{-5, -5}, []float64{5, 5}, 2)

	if cost > 1e-6 {
		t.Errorf("cost = %g, want ~0", cost)
	}
	for i, v := range best {
		if math.Abs(v) > 1e-3 {
			t.Errorf("parameter %d = %f, expected near 0", i, v)
		}
	}
}
