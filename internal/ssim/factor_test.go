package ssim

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/rissim/internal/grid"
)

func scaledGrid(g *grid.Grid, k float64) *grid.Grid {
	out := g.Clone()
	for i := range out.Data {
		out.Data[i] *= k
	}
	return out
}

func TestRIFactorRecoversInverseScale(t *testing.T) {
	// pred = 2*target exactly: the optimizer should find alpha ~ 1/2 and
	// restore near-perfect similarity, while ordinary SSIM (alpha = 1)
	// stays markedly lower.
	target := randomGrid(32, 32, 42)
	pred := scaledGrid(target, 2)

	opts := DefaultOptions()
	opts.DataRange = 1

	ordinary, err := StructuralSimilarity(target, pred, opts)
	if err != nil {
		t.Fatal(err)
	}

	ri, err := RangeInvariant(target, pred, opts)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(ri.Alpha-0.5) > 0.05 {
		t.Errorf("alpha = %f, want ~0.5", ri.Alpha)
	}
	if ri.MSSIM < 0.98 {
		t.Errorf("range-invariant SSIM = %f, want near 1", ri.MSSIM)
	}
	if ri.MSSIM < ordinary.MSSIM+0.1 {
		t.Errorf("expected RI-SSIM (%f) to clearly beat ordinary SSIM (%f)",
			ri.MSSIM, ordinary.MSSIM)
	}
}

func TestRIFactorIdentityForMatchedScales(t *testing.T) {
	target := randomGrid(32, 32, 50)

	opts := DefaultOptions()
	opts.DataRange = 1

	stats, err := ComputeStatistics(target, target, opts)
	if err != nil {
		t.Fatal(err)
	}

	alpha := RIFactor(stats, nil)
	if math.Abs(alpha-1) > 0.05 {
		t.Errorf("alpha = %f, want ~1 for identical images", alpha)
	}
}

func TestPooledRIFactor(t *testing.T) {
	a := randomGrid(32, 32, 60)
	b := randomGrid(24, 32, 61)
	pairs := []Pair{
		{Target: a, Pred: scaledGrid(a, 2)},
		{Target: b, Pred: scaledGrid(b, 2)},
	}

	opts := DefaultOptions()
	opts.DataRange = 1

	alpha, err := PooledRIFactor(pairs, opts)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(alpha-0.5) > 0.05 {
		t.Errorf("pooled alpha = %f, want ~0.5", alpha)
	}
}

func TestMSEFactorClosedForm(t *testing.T) {
	// alpha = sum(t*p)/sum(p*p)
	//       = (1*2 + 2*4 + 3*6 + 4*8) / (4 + 16 + 36 + 64)
	//       = 60 / 120 = 0.5
	target := grid.FromSlice(2, 2, []float64{1, 2, 3, 4})
	pred := grid.FromSlice(2, 2, []float64{2, 4, 6, 8})

	alpha, err := MSEFactor([]*grid.Grid{target}, []*grid.Grid{pred})
	if err != nil {
		t.Fatal(err)
	}
	if alpha != 0.5 {
		t.Errorf("alpha = %f, want 0.5", alpha)
	}
}

func TestMSEFactorPoolsPairs(t *testing.T) {
	// Pooled over two pairs:
	// num = (1*1) + (2*1 + 0*1) = 3, denom = 1 + 2 = 3 -> alpha = 1.
	t1 := grid.FromSlice(1, 1, []float64{1})
	p1 := grid.FromSlice(1, 1, []float64{1})
	t2 := grid.FromSlice(2, 1, []float64{2, 0})
	p2 := grid.FromSlice(2, 1, []float64{1, 1})

	alpha, err := MSEFactor([]*grid.Grid{t1, t2}, []*grid.Grid{p1, p2})
	if err != nil {
		t.Fatal(err)
	}
	if alpha != 1 {
		t.Errorf("alpha = %f, want 1", alpha)
	}
}

func TestMSEFactorShapeMismatch(t *testing.T) {
	a := grid.FromSlice(2, 2, []float64{1, 2, 3, 4})
	b := grid.FromSlice(1, 2, []float64{1, 2})

	_, err := MSEFactor([]*grid.Grid{a}, []*grid.Grid{b})
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("expected shape mismatch error, got %v", err)
	}
}
