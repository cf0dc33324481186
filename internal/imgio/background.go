package imgio

import "github.com/cwbudde/rissim/internal/grid"

// RemoveBackground subtracts the pmin-th percentile (default convention:
// 3) from every pixel, shifting a roughly constant background level to
// zero. The input grid is not modified.
func RemoveBackground(g *grid.Grid, pmin float64) *grid.Grid {
	floor := g.Percentile(pmin)
	out := g.Clone()
	for i := range out.Data {
		out.Data[i] -= floor
	}
	return out
}
