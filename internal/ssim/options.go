package ssim

import "github.com/cwbudde/rissim/internal/opt"

// gaussianTruncate cuts the Gaussian window at 3.5 sigma, giving an
// 11-tap filter at the default sigma of 1.5 (Wang et al. 2004).
const gaussianTruncate = 3.5

// defaultBoxWinSize is the window side length when box weighting is used
// and no explicit size is given.
const defaultBoxWinSize = 7

// ScaleMode selects how the intensity-scale factor alpha is resolved.
type ScaleMode int

const (
	// ScaleSSIMOptimal finds the alpha maximizing mean SSIM via a scalar
	// minimizer started at alpha=1.
	ScaleSSIMOptimal ScaleMode = iota

	// ScaleMSEOptimal uses the closed-form least-squares alpha that
	// minimizes mean squared error between the images.
	ScaleMSEOptimal

	// ScaleFixed uses the caller-supplied Options.RIFactor as-is.
	// A fixed factor of 1 yields ordinary SSIM.
	ScaleFixed
)

// FormulaVariant selects between the classical two-constant SSIM formula
// and the factorized three-constant form with an independent structure
// stabilizer C3.
type FormulaVariant int

const (
	TwoConstant FormulaVariant = iota
	ThreeConstant
)

// Options configures a similarity comparison. The zero value is not
// usable; start from DefaultOptions.
type Options struct {
	// WinSize is the side length of the comparison window. Must be odd.
	// Zero derives it: 2*round(3.5*sigma)+1 with Gaussian weights,
	// otherwise 7.
	WinSize int

	// DataRange is the span between the maximum and minimum plausible
	// pixel values. Required; there is no safe way to infer it from
	// floating-point data.
	DataRange float64

	// GaussianWeights weights each window by a normalized Gaussian of
	// width Sigma instead of a flat box.
	GaussianWeights bool

	// Sigma is the Gaussian standard deviation when GaussianWeights is set.
	Sigma float64

	// K1, K2 scale the luminance and contrast stabilizing constants:
	// C1=(K1*R)^2, C2=(K2*R)^2.
	K1, K2 float64

	// K3 scales the structure stabilizer C3=(K3*R)^2. Only used with the
	// ThreeConstant variant, where it must be positive.
	K3 float64

	// UseSampleCovariance normalizes covariances by N-1 instead of N.
	UseSampleCovariance bool

	// Variant selects the SSIM formula; see FormulaVariant.
	Variant FormulaVariant

	// Scale selects how alpha is resolved; see ScaleMode.
	Scale ScaleMode

	// RIFactor is the fixed alpha used when Scale is ScaleFixed.
	RIFactor float64

	// ReturnComponents requests per-pixel maps and means for SSIM and its
	// luminance, contrast and structure sub-terms.
	ReturnComponents bool

	// Multichannel requests per-channel comparison. Not implemented;
	// setting it fails explicitly instead of silently scoring wrong data.
	Multichannel bool

	// Optimizer overrides the scalar minimizer used by ScaleSSIMOptimal.
	// Nil selects Nelder-Mead started at alpha=1.
	Optimizer opt.Optimizer
}

// DefaultOptions returns the literature-convention configuration for the
// range-invariant path: Gaussian weights with sigma 1.5, K1=0.01,
// K2=0.03, sample covariance, SSIM-optimal scale resolution.
// DataRange must still be set by the caller.
func DefaultOptions() Options {
	return Options{
		GaussianWeights:     true,
		Sigma:               1.5,
		K1:                  0.01,
		K2:                  0.03,
		UseSampleCovariance: true,
		Variant:             TwoConstant,
		Scale:               ScaleSSIMOptimal,
	}
}

// resolveWinSize derives the effective window side length.
func (o Options) resolveWinSize() int {
	if o.WinSize != 0 {
		return o.WinSize
	}
	if o.GaussianWeights {
		r := int(gaussianTruncate*o.Sigma + 0.5)
		return 2*r + 1
	}
	return defaultBoxWinSize
}
