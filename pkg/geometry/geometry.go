// Package geometry computes the rendered resolution, insets and safe area
// of a simulated screen for a given orientation.
package geometry

import (
	"errors"
	"fmt"

	"github.com/devsim/devsim/pkg/types"
)

// ErrInvalidScreen indicates a screen without positive dimensions
var ErrInvalidScreen = errors.New("invalid screen dimensions")

// Compute resolves the geometry of screen in orientation o.
//
// Landscape orientations swap width and height. The safe area is the
// screen rectangle minus the orientation's insets, clipped to non-negative
// dimensions, unless the profile overrides it. When fullScreen is false the
// navigation bar strip on the physical bottom edge is removed from the
// window and the safe area is reported in window coordinates.
func Compute(screen types.Screen, o types.Orientation, fullScreen bool) types.Geometry {
	w, h := screen.Width, screen.Height
	if o.IsLandscape() {
		w, h = h, w
	}

	od, _ := screen.OrientationData(o)
	insets := od.Insets
	bounds := types.Rect{Width: w, Height: h}

	safe := insetRect(bounds, insets)
	if od.SafeArea != nil {
		safe = od.SafeArea.Intersect(bounds)
	}

	geo := types.Geometry{
		Orientation: o,
		Resolution:  types.Resolution{Width: w, Height: h},
		Insets:      insets,
		SafeArea:    safe,
		FullScreen:  fullScreen,
	}

	if !fullScreen && screen.NavigationBarHeight > 0 {
		window, windowInsets := windowed(o, bounds, insets, screen.NavigationBarHeight)
		geo.Resolution = types.Resolution{Width: window.Width, Height: window.Height}
		geo.Insets = windowInsets
		geo.SafeArea = safe.Intersect(window).Translate(-window.X, -window.Y)
	}

	return geo
}

// insetRect shrinks bounds by insets without going negative
func insetRect(bounds types.Rect, in types.Insets) types.Rect {
	x := clamp(in.Left, 0, bounds.Width)
	y := clamp(in.Bottom, 0, bounds.Height)
	return types.Rect{
		X:      x,
		Y:      y,
		Width:  clamp(bounds.Width-in.Left-in.Right, 0, bounds.Width-x),
		Height: clamp(bounds.Height-in.Top-in.Bottom, 0, bounds.Height-y),
	}
}

// windowed returns the application window when the navigation bar is shown
// and the insets relative to that window. The bar sits on the physical
// bottom edge: bottom in portrait, top upside down, right in landscape-left
// and left in landscape-right.
func windowed(o types.Orientation, bounds types.Rect, in types.Insets, nav int) (types.Rect, types.Insets) {
	w, h := bounds.Width, bounds.Height
	switch o {
	case types.OrientationPortraitUpsideDown:
		nav = min(nav, h)
		in.Top = max(in.Top-nav, 0)
		return types.Rect{Width: w, Height: h - nav}, in
	case types.OrientationLandscapeLeft:
		nav = min(nav, w)
		in.Right = max(in.Right-nav, 0)
		return types.Rect{Width: w - nav, Height: h}, in
	case types.OrientationLandscapeRight:
		nav = min(nav, w)
		in.Left = max(in.Left-nav, 0)
		return types.Rect{X: nav, Width: w - nav, Height: h}, in
	default:
		nav = min(nav, h)
		in.Bottom = max(in.Bottom-nav, 0)
		return types.Rect{Y: nav, Width: w, Height: h - nav}, in
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return max(lo, min(v, hi))
}

// Resolver keeps the last resolved geometry of one screen and notifies
// subscribers when a value actually changes.
type Resolver struct {
	screen  types.Screen
	current types.Geometry

	onResolution []func(types.Resolution)
	onInsets     []func(types.Insets)
	onSafeArea   []func(types.Rect)
}

// NewResolver creates a resolver and computes the initial geometry without
// notifying anyone.
func NewResolver(screen types.Screen, o types.Orientation, fullScreen bool) (*Resolver, error) {
	if screen.Width <= 0 || screen.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidScreen, screen.Width, screen.Height)
	}
	if !o.IsValid() {
		return nil, fmt.Errorf("invalid orientation: %d", int(o))
	}

	screen = screen.Clone()
	return &Resolver{
		screen:  screen,
		current: Compute(screen, o, fullScreen),
	}, nil
}

// OnResolutionChanged registers fn for rendered resolution changes
func (r *Resolver) OnResolutionChanged(fn func(types.Resolution)) {
	r.onResolution = append(r.onResolution, fn)
}

// OnInsetsChanged registers fn for inset changes
func (r *Resolver) OnInsetsChanged(fn func(types.Insets)) {
	r.onInsets = append(r.onInsets, fn)
}

// OnSafeAreaChanged registers fn for safe area changes
func (r *Resolver) OnSafeAreaChanged(fn func(types.Rect)) {
	r.onSafeArea = append(r.onSafeArea, fn)
}

// Geometry returns the last resolved geometry
func (r *Resolver) Geometry() types.Geometry {
	return r.current
}

// Resolve recomputes the geometry and notifies only for values that differ
// from the previous result.
func (r *Resolver) Resolve(o types.Orientation, fullScreen bool) types.Geometry {
	prev := r.current
	next := Compute(r.screen, o, fullScreen)
	r.current = next

	if next.Resolution != prev.Resolution {
		for _, fn := range r.onResolution {
			fn(next.Resolution)
		}
	}
	if next.Insets != prev.Insets {
		for _, fn := range r.onInsets {
			fn(next.Insets)
		}
	}
	if next.SafeArea != prev.SafeArea {
		for _, fn := range r.onSafeArea {
			fn(next.SafeArea)
		}
	}
	return next
}
