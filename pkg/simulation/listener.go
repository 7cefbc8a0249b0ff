package simulation

import "github.com/devsim/devsim/pkg/types"

//go:generate mockgen -destination=../mocks/listener_mock.go -package=mocks github.com/devsim/devsim/pkg/simulation Listener

// Listener receives simulation change notifications. Every method is called
// only when the value actually changed, except AutoRotationChanged which
// fires on every explicit orientation or auto-rotation request.
type Listener interface {
	OrientationChanged(o types.Orientation)
	AutoRotationChanged(autoRotate bool)
	AllowedOrientationsChanged(allowed types.OrientationSet)
	ResolutionChanged(r types.Resolution)
	InsetsChanged(insets types.Insets)
	SafeAreaChanged(area types.Rect)
	FullScreenChanged(fullScreen bool)
}

// Funcs adapts optional functions to a Listener. Nil fields are skipped.
type Funcs struct {
	OnOrientation func(types.Orientation)
	OnAutoRotate  func(bool)
	OnAllowed     func(types.OrientationSet)
	OnResolution  func(types.Resolution)
	OnInsets      func(types.Insets)
	OnSafeArea    func(types.Rect)
	OnFullScreen  func(bool)
}

var _ Listener = Funcs{}

func (f Funcs) OrientationChanged(o types.Orientation) {
	if f.OnOrientation != nil {
		f.OnOrientation(o)
	}
}

func (f Funcs) AutoRotationChanged(autoRotate bool) {
	if f.OnAutoRotate != nil {
		f.OnAutoRotate(autoRotate)
	}
}

func (f Funcs) AllowedOrientationsChanged(allowed types.OrientationSet) {
	if f.OnAllowed != nil {
		f.OnAllowed(allowed)
	}
}

func (f Funcs) ResolutionChanged(r types.Resolution) {
	if f.OnResolution != nil {
		f.OnResolution(r)
	}
}

func (f Funcs) InsetsChanged(insets types.Insets) {
	if f.OnInsets != nil {
		f.OnInsets(insets)
	}
}

func (f Funcs) SafeAreaChanged(area types.Rect) {
	if f.OnSafeArea != nil {
		f.OnSafeArea(area)
	}
}

func (f Funcs) FullScreenChanged(fullScreen bool) {
	if f.OnFullScreen != nil {
		f.OnFullScreen(fullScreen)
	}
}
