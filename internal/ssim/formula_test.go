package ssim

import (
	"math"
	"testing"
)

func TestSelfComparisonIsUnity(t *testing.T) {
	img := randomGrid(32, 32, 7)

	opts := DefaultOptions()
	opts.DataRange = 1

	res, err := StructuralSimilarity(img, img, opts)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.MSSIM-1) > 1e-9 {
		t.Errorf("self comparison SSIM = %f, want 1", res.MSSIM)
	}
	if res.Alpha != 1 {
		t.Errorf("alpha = %f, want 1", res.Alpha)
	}
}

func TestConstantImagesUnity(t *testing.T) {
	// Two identical constant images: no variance anywhere, so luminance,
	// contrast and structure all reduce to 1.
	a := constantGrid(16, 16, 5)
	b := constantGrid(16, 16, 5)

	opts := DefaultOptions()
	opts.DataRange = 10
	opts.ReturnComponents = true

	res, err := StructuralSimilarity(a, b, opts)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.MSSIM-1) > 1e-9 {
		t.Errorf("SSIM = %.15f, want 1", res.MSSIM)
	}
	if math.Abs(res.LuminanceMean-1) > 1e-9 ||
		math.Abs(res.ContrastMean-1) > 1e-9 ||
		math.Abs(res.StructureMean-1) > 1e-9 {
		t.Errorf("components = %f, %f, %f, want 1, 1, 1",
			res.LuminanceMean, res.ContrastMean, res.StructureMean)
	}
}

func TestThreeConstantReducesToTwoConstant(t *testing.T) {
	// With C3 = C2/2 the factorized contrast*structure product collapses
	// to the two-constant (2*alpha*vxy + C2)/(vx + alpha^2*vy + C2), so
	// both formula variants must agree. C3 = (K3*R)^2 = (K2*R)^2/2 means
	// K3 = K2/sqrt(2).
	x := randomGrid(32, 32, 11)
	y := randomGrid(32, 32, 12)

	opts := DefaultOptions()
	opts.DataRange = 1
	opts.Scale = ScaleFixed
	opts.RIFactor = 0.8

	two, err := RangeInvariant(x, y, opts)
	if err != nil {
		t.Fatal(err)
	}

	opts.Variant = ThreeConstant
	opts.K3 = opts.K2 / math.Sqrt2
	three, err := RangeInvariant(x, y, opts)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(two.MSSIM-three.MSSIM) > 1e-12 {
		t.Errorf("two-constant %.15f != three-constant %.15f", two.MSSIM, three.MSSIM)
	}
}

func TestComponentProductMatchesSSIM(t *testing.T) {
	x := randomGrid(32, 32, 21)
	y := randomGrid(32, 32, 22)

	opts := DefaultOptions()
	opts.DataRange = 1
	opts.Scale = ScaleFixed
	opts.RIFactor = 1
	opts.ReturnComponents = true

	res, err := RangeInvariant(x, y, opts)
	if err != nil {
		t.Fatal(err)
	}

	for i := range res.SSIM.Data {
		prod := res.Luminance.Data[i] * res.Contrast.Data[i] * res.Structure.Data[i]
		if math.Abs(prod-res.SSIM.Data[i]) > 1e-12 {
			t.Fatalf("components[%d] product %.15f != ssim %.15f", i, prod, res.SSIM.Data[i])
		}
	}
	if math.Abs(res.SSIM.Mean()-res.MSSIM) > 1e-12 {
		t.Errorf("MSSIM %.15f != mean of map %.15f", res.MSSIM, res.SSIM.Mean())
	}
}

func TestComponentMapsNilWithoutRequest(t *testing.T) {
	x := randomGrid(16, 16, 31)

	opts := DefaultOptions()
	opts.DataRange = 1

	res, err := StructuralSimilarity(x, x, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.SSIM != nil || res.Luminance != nil {
		t.Error("component maps should be nil unless requested")
	}
}
