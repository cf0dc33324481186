// Package imgio bridges image files and the float64 grids the metric
// core operates on.
package imgio

import (
	"fmt"
	"image"
	"os"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"

	"github.com/cwbudde/rissim/internal/grid"
)

// Load decodes an image file (PNG, JPEG or TIFF) into a grayscale
// luminance grid. The second return value is the data range implied by
// the source bit depth (255 for 8-bit, 65535 for 16-bit sources); it is
// only a fallback, and callers should pass an explicit range whenever
// the plausible intensity span is known.
func Load(path string) (*grid.Grid, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	g, dtypeRange := FromImage(img)
	return g, dtypeRange, nil
}

// FromImage converts a decoded image to a luminance grid along with the
// data range implied by its bit depth. 16-bit sources keep their full
// 0..65535 scale; everything else is reduced to 0..255.
func FromImage(img image.Image) (*grid.Grid, float64) {
	bounds := img.Bounds()
	g := grid.New(bounds.Dx(), bounds.Dy())

	deep := false
	switch img.(type) {
	case *image.Gray16, *image.RGBA64, *image.NRGBA64:
		deep = true
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, gr, b, _ := img.At(x, y).RGBA()
			// Rec. 709 luma weights on the 16-bit channel values.
			lum := 0.2126*float64(r) + 0.7152*float64(gr) + 0.0722*float64(b)
			if !deep {
				lum /= 257
			}
			g.Set(x-bounds.Min.X, y-bounds.Min.Y, lum)
		}
	}

	if deep {
		return g, 65535
	}
	return g, 255
}
