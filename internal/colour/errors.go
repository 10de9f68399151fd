package colour

import "errors"

var (
	// ErrInvalidArgument reports a caller error: a palette size outside
	// [MinColours, MaxColours], a malformed pixel grid, an unknown colour
	// space or an unparsable hex string.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmptyInput reports an image with no usable pixels after filtering.
	ErrEmptyInput = errors.New("no usable pixels")

	// ErrConversionDomain reports a conversion that produced a non-finite
	// value. Every formula is guarded, so seeing it means a bug here.
	ErrConversionDomain = errors.New("conversion domain error")
)
