package ssim

import "fmt"

// Typed errors for the fatal preconditions of the statistics engine.
// All are detected eagerly, before any filtering work is done.
// Use errors.Is with the exported sentinel values to classify them.

var (
	// ErrShapeMismatch matches any ShapeMismatchError.
	ErrShapeMismatch = &ShapeMismatchError{}

	// ErrInvalidWindow matches any InvalidWindowError.
	ErrInvalidWindow = &InvalidWindowError{}

	// ErrMissingDataRange matches any MissingDataRangeError.
	ErrMissingDataRange = &MissingDataRangeError{}

	// ErrUnsupportedFeature matches any UnsupportedFeatureError.
	ErrUnsupportedFeature = &UnsupportedFeatureError{}

	// ErrInvalidOption matches any InvalidOptionError.
	ErrInvalidOption = &InvalidOptionError{}
)

// ShapeMismatchError reports that the two compared images differ in shape.
type ShapeMismatchError struct {
	XW, XH, YW, YH int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("image shapes do not match: %dx%d vs %dx%d", e.XW, e.XH, e.YW, e.YH)
}

func (e *ShapeMismatchError) Is(target error) bool {
	_, ok := target.(*ShapeMismatchError)
	return ok
}

// InvalidWindowError reports a window size that is even, non-positive,
// or larger than the smallest image dimension.
type InvalidWindowError struct {
	Size   int
	MinDim int
	Reason string
}

func (e *InvalidWindowError) Error() string {
	return fmt.Sprintf("invalid window size %d (min image dimension %d): %s", e.Size, e.MinDim, e.Reason)
}

func (e *InvalidWindowError) Is(target error) bool {
	_, ok := target.(*InvalidWindowError)
	return ok
}

// MissingDataRangeError reports that no data range was supplied.
// Floating-point pixel data carries no usable range information, so
// silent inference would silently corrupt results.
type MissingDataRangeError struct{}

func (e *MissingDataRangeError) Error() string {
	return "data range not specified; it cannot be inferred from floating-point data"
}

func (e *MissingDataRangeError) Is(target error) bool {
	_, ok := target.(*MissingDataRangeError)
	return ok
}

// UnsupportedFeatureError reports a request for functionality that is
// deliberately unimplemented.
type UnsupportedFeatureError struct {
	Feature string
}

func (e *UnsupportedFeatureError) Error() string {
	return "unsupported feature: " + e.Feature
}

func (e *UnsupportedFeatureError) Is(target error) bool {
	_, ok := target.(*UnsupportedFeatureError)
	return ok
}

// InvalidOptionError reports an option value outside its valid domain.
type InvalidOptionError struct {
	Name  string
	Value float64
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("invalid option %s=%g", e.Name, e.Value)
}

func (e *InvalidOptionError) Is(target error) bool {
	_, ok := target.(*InvalidOptionError)
	return ok
}
