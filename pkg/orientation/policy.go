// Package orientation resolves the active screen orientation from a
// rotation signal, the orientations a device supports and the ones the
// application allows auto-rotation into.
package orientation

import (
	"fmt"

	"github.com/devsim/devsim/pkg/types"
)

// Options configures a new Policy
type Options struct {
	// AutoRotate makes the active orientation follow the rotation signal
	AutoRotate bool

	// Allowed is the auto-rotation set; zero means all four orientations
	Allowed types.OrientationSet

	// Initial is the explicit orientation used when AutoRotate is off.
	// With AutoRotate on it is the held orientation, kept while the physical
	// one is not permitted. Zero derives it from InitialAngle.
	Initial types.Orientation

	// InitialAngle is the physical rotation at start, in degrees
	InitialAngle float64
}

// State is a snapshot of the policy
type State struct {
	Current    types.Orientation    `json:"current"`
	Physical   types.Orientation    `json:"physical"`
	AutoRotate bool                 `json:"autoRotate"`
	Allowed    types.OrientationSet `json:"-"`
	Supported  types.OrientationSet `json:"-"`
}

// Policy tracks the active orientation of one simulated screen.
// It is driven synchronously by its caller and is not safe for concurrent use.
type Policy struct {
	supported  types.OrientationSet
	allowed    types.OrientationSet
	autoRotate bool
	current    types.Orientation
	physical   types.Orientation

	onOrientation []func(types.Orientation)
	onAutoRotate  []func(bool)
	onAllowed     []func(types.OrientationSet)
}

// NewPolicy creates a policy for a device supporting the given orientations
func NewPolicy(supported types.OrientationSet, opts Options) (*Policy, error) {
	if supported.IsEmpty() {
		return nil, ErrNoSupportedOrientation
	}

	allowed := opts.Allowed
	if allowed.IsEmpty() {
		allowed = types.AllOrientations
	}

	physical, err := FromAngle(opts.InitialAngle)
	if err != nil {
		return nil, err
	}

	p := &Policy{
		supported:  supported,
		allowed:    allowed,
		autoRotate: opts.AutoRotate,
		physical:   physical,
	}

	if p.permitted().IsEmpty() {
		return nil, fmt.Errorf("%w: allowed %s, supported %s", ErrNoAllowedOrientation, allowed, supported)
	}

	if opts.Initial != types.OrientationUnknown && !opts.Initial.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOrientation, int(opts.Initial))
	}

	switch {
	case opts.AutoRotate:
		if p.permitted().Has(opts.Initial) {
			p.current = opts.Initial
		}
		p.current = p.autoTarget()
	case opts.Initial != types.OrientationUnknown:
		if !supported.Has(opts.Initial) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedOrientation, opts.Initial)
		}
		p.current = opts.Initial
	case supported.Has(physical):
		p.current = physical
	default:
		p.current, _ = supported.First()
	}

	return p, nil
}

// OnOrientationChanged registers fn for changes of the active orientation
func (p *Policy) OnOrientationChanged(fn func(types.Orientation)) {
	p.onOrientation = append(p.onOrientation, fn)
}

// OnAutoRotationChanged registers fn for explicit orientation requests.
// It receives the auto-rotation flag after the request.
func (p *Policy) OnAutoRotationChanged(fn func(bool)) {
	p.onAutoRotate = append(p.onAutoRotate, fn)
}

// OnAllowedChanged registers fn for changes of the allowed set
func (p *Policy) OnAllowedChanged(fn func(types.OrientationSet)) {
	p.onAllowed = append(p.onAllowed, fn)
}

// Current returns the active orientation
func (p *Policy) Current() types.Orientation {
	return p.current
}

// State returns a snapshot of the policy
func (p *Policy) State() State {
	return State{
		Current:    p.current,
		Physical:   p.physical,
		AutoRotate: p.autoRotate,
		Allowed:    p.allowed,
		Supported:  p.supported,
	}
}

// Rotate feeds one rotation sample. With auto-rotation on, the active
// orientation follows the sample unless the target is not permitted, in
// which case it is held. The active orientation is returned.
func (p *Policy) Rotate(angle float64) (types.Orientation, error) {
	physical, err := FromAngle(angle)
	if err != nil {
		return p.current, err
	}
	p.physical = physical

	if p.autoRotate && p.permitted().Has(physical) {
		p.setCurrent(physical)
	}
	return p.current, nil
}

// SetOrientation switches to an explicit orientation and turns
// auto-rotation off. Orientations the device does not list are rejected.
func (p *Policy) SetOrientation(o types.Orientation) error {
	if !o.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidOrientation, int(o))
	}
	if !p.supported.Has(o) {
		return fmt.Errorf("%w: %s", ErrUnsupportedOrientation, o)
	}

	p.autoRotate = false
	p.emitAutoRotate(false)
	p.setCurrent(o)
	return nil
}

// SetAutoRotation turns auto-rotation on or off. Turning it on moves to
// the physical orientation right away when that is permitted.
func (p *Policy) SetAutoRotation(on bool) {
	p.autoRotate = on
	p.emitAutoRotate(on)
	if on {
		p.setCurrent(p.autoTarget())
	}
}

// SetAllowed toggles one orientation in the allowed set. A toggle that
// would leave nothing the device supports is rejected.
func (p *Policy) SetAllowed(o types.Orientation, allowed bool) error {
	if !o.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidOrientation, int(o))
	}

	next := p.allowed.Without(o)
	if allowed {
		next = p.allowed.With(o)
	}
	if next == p.allowed {
		return nil
	}
	if next.Intersect(p.supported).IsEmpty() {
		return fmt.Errorf("%w: cannot disallow %s", ErrNoAllowedOrientation, o)
	}

	p.allowed = next
	for _, fn := range p.onAllowed {
		fn(next)
	}

	if p.autoRotate {
		p.setCurrent(p.autoTarget())
	}
	return nil
}

// SetAllowedSet replaces the allowed set in one step
func (p *Policy) SetAllowedSet(set types.OrientationSet) error {
	set = set.Intersect(types.AllOrientations)
	if set == p.allowed {
		return nil
	}
	if set.Intersect(p.supported).IsEmpty() {
		return fmt.Errorf("%w: allowed %s, supported %s", ErrNoAllowedOrientation, set, p.supported)
	}

	p.allowed = set
	for _, fn := range p.onAllowed {
		fn(set)
	}

	if p.autoRotate {
		p.setCurrent(p.autoTarget())
	}
	return nil
}

// permitted is the set auto-rotation may enter
func (p *Policy) permitted() types.OrientationSet {
	return p.allowed.Intersect(p.supported)
}

// autoTarget picks where auto-rotation should be: the physical orientation,
// else the current one, else the first permitted one.
func (p *Policy) autoTarget() types.Orientation {
	permitted := p.permitted()
	if permitted.Has(p.physical) {
		return p.physical
	}
	if permitted.Has(p.current) {
		return p.current
	}
	first, _ := permitted.First()
	return first
}

func (p *Policy) setCurrent(o types.Orientation) {
	if o == p.current || !o.IsValid() {
		return
	}
	p.current = o
	for _, fn := range p.onOrientation {
		fn(o)
	}
}

func (p *Policy) emitAutoRotate(on bool) {
	for _, fn := range p.onAutoRotate {
		fn(on)
	}
}
