package orientation

import "errors"

// Sentinel errors for orientation policy operations, checked with errors.Is()
var (
	// ErrInvalidAngle indicates a rotation sample that is NaN or infinite
	ErrInvalidAngle = errors.New("invalid rotation angle")

	// ErrInvalidOrientation indicates a value outside the four cardinals
	ErrInvalidOrientation = errors.New("invalid orientation")

	// ErrUnsupportedOrientation indicates an orientation the device does not list
	ErrUnsupportedOrientation = errors.New("orientation not supported by device")

	// ErrNoSupportedOrientation indicates a device without any orientation
	ErrNoSupportedOrientation = errors.New("device supports no orientation")

	// ErrNoAllowedOrientation indicates an allowed set with nothing the device supports
	ErrNoAllowedOrientation = errors.New("no allowed orientation left")
)
