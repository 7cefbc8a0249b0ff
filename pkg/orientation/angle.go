package orientation

import (
	"fmt"
	"math"

	"github.com/devsim/devsim/pkg/types"
)

// NormalizeAngle wraps an angle in degrees into [0, 360)
func NormalizeAngle(angle float64) float64 {
	a := math.Mod(angle, 360)
	if a < 0 {
		a += 360
	}
	// -tiny + 360 rounds up to 360
	if a >= 360 {
		a = 0
	}
	return a
}

// FromAngle maps a rotation angle in degrees to the discrete orientation
// it falls in. Portrait owns [0,45] and [315,360), LandscapeRight (45,135],
// PortraitUpsideDown (135,225] and LandscapeLeft (225,315).
func FromAngle(angle float64) (types.Orientation, error) {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return types.OrientationUnknown, fmt.Errorf("%w: %v", ErrInvalidAngle, angle)
	}

	a := NormalizeAngle(angle)
	switch {
	case a <= 45 || a >= 315:
		return types.OrientationPortrait, nil
	case a <= 135:
		return types.OrientationLandscapeRight, nil
	case a <= 225:
		return types.OrientationPortraitUpsideDown, nil
	default:
		return types.OrientationLandscapeLeft, nil
	}
}

// ToAngle returns the rotation angle a device held in orientation o reports
func ToAngle(o types.Orientation) float64 {
	switch o {
	case types.OrientationLandscapeRight:
		return 90
	case types.OrientationPortraitUpsideDown:
		return 180
	case types.OrientationLandscapeLeft:
		return 270
	default:
		return 0
	}
}
