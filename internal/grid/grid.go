package grid

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Grid is a dense 2-D float64 raster stored row-major.
type Grid struct {
	W, H int
	Data []float64
}

// New creates a zero-filled W x H grid.
func New(w, h int) *Grid {
	return &Grid{
		W:    w,
		H:    h,
		Data: make([]float64, w*h),
	}
}

// FromSlice wraps an existing row-major slice as a grid.
// Panics if the slice length does not match w*h.
func FromSlice(w, h int, data []float64) *Grid {
	if len(data) != w*h {
		panic("grid: slice length does not match dimensions")
	}
	return &Grid{W: w, H: h, Data: data}
}

// At returns the value at column x, row y.
func (g *Grid) At(x, y int) float64 {
	return g.Data[y*g.W+x]
}

// Set writes the value at column x, row y.
func (g *Grid) Set(x, y int, v float64) {
	g.Data[y*g.W+x] = v
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	out := New(g.W, g.H)
	copy(out.Data, g.Data)
	return out
}

// SameShape reports whether both grids have identical dimensions.
func (g *Grid) SameShape(o *Grid) bool {
	return g.W == o.W && g.H == o.H
}

// MulElem returns the elementwise product of two same-shape grids.
func (g *Grid) MulElem(o *Grid) *Grid {
	out := New(g.W, g.H)
	for i, v := range g.Data {
		out.Data[i] = v * o.Data[i]
	}
	return out
}

// MinMax returns the smallest and largest values in the grid.
func (g *Grid) MinMax() (min, max float64) {
	min = math.Inf(1)
	max = math.Inf(-1)
	for _, v := range g.Data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// Crop returns a copy of the grid with pad pixels removed from every border.
// Panics if the crop would leave no pixels.
func (g *Grid) Crop(pad int) *Grid {
	w := g.W - 2*pad
	h := g.H - 2*pad
	if w <= 0 || h <= 0 {
		panic("grid: crop larger than grid")
	}
	out := New(w, h)
	for y := 0; y < h; y++ {
		src := (y+pad)*g.W + pad
		copy(out.Data[y*w:(y+1)*w], g.Data[src:src+w])
	}
	return out
}

// Flatten returns the grid contents as a fresh 1-D slice.
func (g *Grid) Flatten() []float64 {
	out := make([]float64, len(g.Data))
	copy(out, g.Data)
	return out
}

// Concat flattens every grid and concatenates them into a single
// 1 x N grid. Used to pool per-image statistics across a batch.
func Concat(gs ...*Grid) *Grid {
	total := 0
	for _, g := range gs {
		total += len(g.Data)
	}
	data := make([]float64, 0, total)
	for _, g := range gs {
		data = append(data, g.Data...)
	}
	return &Grid{W: total, H: 1, Data: data}
}

// Percentile returns the p-th percentile (0..100) of the grid values,
// linearly interpolating between the two nearest order statistics.
func (g *Grid) Percentile(p float64) float64 {
	sorted := g.Flatten()
	sort.Float64s(sorted)
	return stat.Quantile(p/100, stat.LinInterp, sorted, nil)
}

// Mean returns the arithmetic mean of the grid values.
func (g *Grid) Mean() float64 {
	return stat.Mean(g.Data, nil)
}
