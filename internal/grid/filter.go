package grid

import "math"

// Local mean filters used by the windowed statistics engine. Both filters
// are separable and are applied as a horizontal pass followed by a
// vertical pass, with "reflect" border handling (a b c d -> b a | a b c d
// | d c), matching the convention of common scientific filtering
// libraries.

// BoxFilter returns the local mean over a size x size window.
// size must be odd and positive.
func (g *Grid) BoxFilter(size int) *Grid {
	kernel := make([]float64, size)
	for i := range kernel {
		kernel[i] = 1.0 / float64(size)
	}
	return g.separableFilter(kernel)
}

// GaussianFilter returns the local Gaussian-weighted mean with the given
// standard deviation, truncated at truncate*sigma. The kernel is
// normalized to sum to one; its side length is 2*round(truncate*sigma)+1.
func (g *Grid) GaussianFilter(sigma, truncate float64) *Grid {
	return g.separableFilter(GaussianKernel(sigma, truncate))
}

// GaussianKernel builds a normalized 1-D Gaussian kernel of radius
// round(truncate*sigma).
func GaussianKernel(sigma, truncate float64) []float64 {
	radius := int(truncate*sigma + 0.5)
	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i := range kernel {
		d := float64(i - radius)
		kernel[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// separableFilter convolves the grid with kernel along x, then along y.
func (g *Grid) separableFilter(kernel []float64) *Grid {
	radius := (len(kernel) - 1) / 2

	tmp := New(g.W, g.H)
	for y := 0; y < g.H; y++ {
		row := g.Data[y*g.W : (y+1)*g.W]
		for x := 0; x < g.W; x++ {
			var sum float64
			for k, w := range kernel {
				sum += w * row[reflect(x+k-radius, g.W)]
			}
			tmp.Data[y*g.W+x] = sum
		}
	}

	out := New(g.W, g.H)
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			var sum float64
			for k, w := range kernel {
				sum += w * tmp.Data[reflect(y+k-radius, g.H)*g.W+x]
			}
			out.Data[y*g.W+x] = sum
		}
	}
	return out
}

// reflect maps an out-of-range index back into [0, n) by mirroring at
// the borders: index -1 maps to 0, index n maps to n-1. The mirrored
// pattern has period 2n, so kernels wider than the grid still resolve,
// the same way scientific filtering libraries handle them.
func reflect(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - i - 1
	}
	return i
}
