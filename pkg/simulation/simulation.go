// Package simulation drives one simulated device screen: it owns the device
// profile snapshot and the orientation state, resolves geometry whenever the
// orientation or window mode changes and fans the changes out to listeners.
package simulation

import (
	"context"
	"fmt"

	dcontext "github.com/devsim/devsim/pkg/context"
	"github.com/devsim/devsim/pkg/geometry"
	"github.com/devsim/devsim/pkg/logger"
	"github.com/devsim/devsim/pkg/orientation"
	"github.com/devsim/devsim/pkg/types"
)

// Options configures a new Simulation
type Options struct {
	// AutoRotate makes the screen follow the rotation signal
	AutoRotate bool

	// Allowed is the auto-rotation set; zero means all four orientations
	Allowed types.OrientationSet

	// Initial is the explicit start orientation when AutoRotate is off, and
	// the held orientation when it is on
	Initial types.Orientation

	// InitialAngle is the physical rotation at start, in degrees
	InitialAngle float64

	// Windowed shows the navigation bar. Only Android devices honour it.
	Windowed bool
}

// State is a snapshot of a running simulation
type State struct {
	SessionID  string              `json:"sessionId"`
	Device     string              `json:"device"`
	Physical   types.Orientation   `json:"physical"`
	AutoRotate bool                `json:"autoRotate"`
	Allowed    []types.Orientation `json:"allowed"`
	Supported  []types.Orientation `json:"supported"`
	Geometry   types.Geometry      `json:"geometry"`
}

// Simulation is one simulated screen. It is driven synchronously from a
// single goroutine and is not safe for concurrent use.
type Simulation struct {
	sessionID  string
	device     types.DeviceProfile
	fullScreen bool

	policy   *orientation.Policy
	resolver *geometry.Resolver

	listeners []Listener
	log       logger.Logger
}

// New starts a simulation of the primary screen of profile. The profile is
// copied; later changes to it do not affect the simulation.
func New(profile *types.DeviceProfile, opts Options, log logger.Logger) (*Simulation, error) {
	if profile == nil {
		return nil, ErrNoProfile
	}
	screen, ok := profile.PrimaryScreen()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoScreen, profile.FriendlyName)
	}
	screen = screen.Clone()

	device := *profile
	device.Screens = []types.Screen{screen}

	policy, err := orientation.NewPolicy(screen.SupportedOrientations(), orientation.Options{
		AutoRotate:   opts.AutoRotate,
		Allowed:      opts.Allowed,
		Initial:      opts.Initial,
		InitialAngle: opts.InitialAngle,
	})
	if err != nil {
		return nil, fmt.Errorf("device %s: %w", profile.FriendlyName, err)
	}

	fullScreen := !(opts.Windowed && profile.IsAndroid())

	resolver, err := geometry.NewResolver(screen, policy.Current(), fullScreen)
	if err != nil {
		return nil, fmt.Errorf("device %s: %w", profile.FriendlyName, err)
	}

	if log == nil {
		log = logger.Discard()
	}

	sessionID := dcontext.GenerateSessionID()
	ctx := dcontext.WithSessionID(context.Background(), sessionID)
	ctx = dcontext.WithDevice(ctx, profile.FriendlyName)

	s := &Simulation{
		sessionID:  sessionID,
		device:     device,
		fullScreen: fullScreen,
		policy:     policy,
		resolver:   resolver,
		log:        logger.WithContext(ctx, log),
	}

	policy.OnOrientationChanged(s.orientationChanged)
	policy.OnAutoRotationChanged(s.autoRotationChanged)
	policy.OnAllowedChanged(s.allowedChanged)
	resolver.OnResolutionChanged(s.resolutionChanged)
	resolver.OnInsetsChanged(s.insetsChanged)
	resolver.OnSafeAreaChanged(s.safeAreaChanged)

	geo := resolver.Geometry()
	s.log.Debug("Simulation started",
		logger.WithField("orientation", geo.Orientation),
		logger.WithField("resolution", geo.Resolution),
		logger.WithField("autoRotate", opts.AutoRotate))

	return s, nil
}

// AddListener subscribes l to every change notification
func (s *Simulation) AddListener(l Listener) {
	s.listeners = append(s.listeners, l)
}

// SessionID returns the unique id of this simulation
func (s *Simulation) SessionID() string {
	return s.sessionID
}

// Device returns the simulated device profile snapshot
func (s *Simulation) Device() types.DeviceProfile {
	return s.device
}

// Rotate feeds a rotation sample in degrees and returns the active orientation
func (s *Simulation) Rotate(angle float64) (types.Orientation, error) {
	return s.policy.Rotate(angle)
}

// SetOrientation switches to an explicit orientation, disabling auto-rotation
func (s *Simulation) SetOrientation(o types.Orientation) error {
	return s.policy.SetOrientation(o)
}

// SetAutoRotation turns auto-rotation on or off
func (s *Simulation) SetAutoRotation(on bool) {
	s.policy.SetAutoRotation(on)
}

// SetAllowed toggles one orientation in the auto-rotation set
func (s *Simulation) SetAllowed(o types.Orientation, allowed bool) error {
	return s.policy.SetAllowed(o, allowed)
}

// SetAllowedSet replaces the auto-rotation set
func (s *Simulation) SetAllowedSet(set types.OrientationSet) error {
	return s.policy.SetAllowedSet(set)
}

// SetFullScreen switches between full screen and windowed mode. Only
// Android shows a navigation bar; elsewhere the call does nothing.
func (s *Simulation) SetFullScreen(fullScreen bool) {
	if !s.device.IsAndroid() {
		s.log.Debug("Ignoring full screen change on non-Android device")
		return
	}
	if fullScreen == s.fullScreen {
		return
	}

	s.fullScreen = fullScreen
	s.resolver.Resolve(s.policy.Current(), fullScreen)
	for _, l := range s.listeners {
		l.FullScreenChanged(fullScreen)
	}
}

// FullScreen reports whether the navigation bar is hidden
func (s *Simulation) FullScreen() bool {
	return s.fullScreen
}

// Orientation returns the active orientation
func (s *Simulation) Orientation() types.Orientation {
	return s.policy.Current()
}

// Geometry returns the current rendered geometry
func (s *Simulation) Geometry() types.Geometry {
	return s.resolver.Geometry()
}

// State returns a snapshot of the simulation
func (s *Simulation) State() State {
	ps := s.policy.State()
	return State{
		SessionID:  s.sessionID,
		Device:     s.device.FriendlyName,
		Physical:   ps.Physical,
		AutoRotate: ps.AutoRotate,
		Allowed:    ps.Allowed.List(),
		Supported:  ps.Supported.List(),
		Geometry:   s.resolver.Geometry(),
	}
}

// Geometry notifications precede the orientation notification they result
// from, so listeners observe a consistent Geometry().
func (s *Simulation) orientationChanged(o types.Orientation) {
	s.resolver.Resolve(o, s.fullScreen)
	s.log.Debug("Orientation changed", logger.WithField("orientation", o))
	for _, l := range s.listeners {
		l.OrientationChanged(o)
	}
}

func (s *Simulation) autoRotationChanged(on bool) {
	for _, l := range s.listeners {
		l.AutoRotationChanged(on)
	}
}

func (s *Simulation) allowedChanged(set types.OrientationSet) {
	s.log.Debug("Allowed orientations changed", logger.WithField("allowed", set))
	for _, l := range s.listeners {
		l.AllowedOrientationsChanged(set)
	}
}

func (s *Simulation) resolutionChanged(r types.Resolution) {
	for _, l := range s.listeners {
		l.ResolutionChanged(r)
	}
}

func (s *Simulation) insetsChanged(in types.Insets) {
	for _, l := range s.listeners {
		l.InsetsChanged(in)
	}
}

func (s *Simulation) safeAreaChanged(area types.Rect) {
	for _, l := range s.listeners {
		l.SafeAreaChanged(area)
	}
}
