// Package types provides the core device and screen types shared by devsim
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Orientation is one of the four cardinal screen orientations.
// The numeric values match the ones written by device profile exporters.
type Orientation int

const (
	OrientationUnknown            Orientation = 0
	OrientationPortrait           Orientation = 1
	OrientationPortraitUpsideDown Orientation = 2
	OrientationLandscapeLeft      Orientation = 3
	OrientationLandscapeRight     Orientation = 4
)

// Orientations lists the cardinal orientations in canonical order
var Orientations = []Orientation{
	OrientationPortrait,
	OrientationPortraitUpsideDown,
	OrientationLandscapeLeft,
	OrientationLandscapeRight,
}

var orientationNames = map[Orientation]string{
	OrientationPortrait:           "portrait",
	OrientationPortraitUpsideDown: "portrait-upside-down",
	OrientationLandscapeLeft:      "landscape-left",
	OrientationLandscapeRight:     "landscape-right",
}

// String returns the kebab-case name of the orientation
func (o Orientation) String() string {
	if name, ok := orientationNames[o]; ok {
		return name
	}
	return fmt.Sprintf("orientation(%d)", int(o))
}

// IsValid reports whether o is one of the four cardinals
func (o Orientation) IsValid() bool {
	return o >= OrientationPortrait && o <= OrientationLandscapeRight
}

// IsLandscape reports whether o renders with width and height swapped
func (o Orientation) IsLandscape() bool {
	return o == OrientationLandscapeLeft || o == OrientationLandscapeRight
}

// ParseOrientation parses an orientation name. Case is ignored and
// underscores, dashes and spaces are interchangeable.
func ParseOrientation(s string) (Orientation, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", "-", " ", "-").Replace(key)
	switch key {
	case "portrait":
		return OrientationPortrait, nil
	case "portrait-upside-down", "portraitupsidedown", "upside-down":
		return OrientationPortraitUpsideDown, nil
	case "landscape-left", "landscapeleft":
		return OrientationLandscapeLeft, nil
	case "landscape-right", "landscaperight":
		return OrientationLandscapeRight, nil
	}
	return OrientationUnknown, fmt.Errorf("unknown orientation: %q", s)
}

// MarshalJSON writes the orientation by name, or 0 when it is unknown
func (o Orientation) MarshalJSON() ([]byte, error) {
	if !o.IsValid() {
		return []byte("0"), nil
	}
	return json.Marshal(o.String())
}

// UnmarshalJSON accepts either the numeric value or the name. 0 decodes to
// OrientationUnknown.
func (o *Orientation) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		if n != int(OrientationUnknown) && !Orientation(n).IsValid() {
			return fmt.Errorf("unknown orientation: %d", n)
		}
		*o = Orientation(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("orientation must be a number or a string: %w", err)
	}
	parsed, err := ParseOrientation(s)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// OrientationSet is a subset of the four cardinal orientations
type OrientationSet uint8

// AllOrientations contains every cardinal orientation
const AllOrientations OrientationSet = 1<<OrientationPortrait |
	1<<OrientationPortraitUpsideDown |
	1<<OrientationLandscapeLeft |
	1<<OrientationLandscapeRight

// NewOrientationSet builds a set from the given orientations, ignoring invalid ones
func NewOrientationSet(orientations ...Orientation) OrientationSet {
	var s OrientationSet
	for _, o := range orientations {
		s = s.With(o)
	}
	return s
}

// Has reports whether o is in the set
func (s OrientationSet) Has(o Orientation) bool {
	return o.IsValid() && s&(1<<o) != 0
}

// With returns a copy of the set including o
func (s OrientationSet) With(o Orientation) OrientationSet {
	if !o.IsValid() {
		return s
	}
	return s | 1<<o
}

// Without returns a copy of the set excluding o
func (s OrientationSet) Without(o Orientation) OrientationSet {
	if !o.IsValid() {
		return s
	}
	return s &^ (1 << o)
}

// Intersect returns the orientations present in both sets
func (s OrientationSet) Intersect(other OrientationSet) OrientationSet {
	return s & other
}

// IsEmpty reports whether the set has no orientations
func (s OrientationSet) IsEmpty() bool {
	return s&AllOrientations == 0
}

// List returns the members in canonical order
func (s OrientationSet) List() []Orientation {
	var out []Orientation
	for _, o := range Orientations {
		if s.Has(o) {
			out = append(out, o)
		}
	}
	return out
}

// First returns the first member in canonical order
func (s OrientationSet) First() (Orientation, bool) {
	for _, o := range Orientations {
		if s.Has(o) {
			return o, true
		}
	}
	return OrientationUnknown, false
}

func (s OrientationSet) String() string {
	names := make([]string, 0, 4)
	for _, o := range s.List() {
		names = append(names, o.String())
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// Insets are the margins reserved for system UI on each edge, in pixels,
// expressed in the rendered (oriented) screen space.
type Insets struct {
	Left   int `json:"left" yaml:"left"`
	Top    int `json:"top" yaml:"top"`
	Right  int `json:"right" yaml:"right"`
	Bottom int `json:"bottom" yaml:"bottom"`
}

// IsZero reports whether no edge is inset
func (i Insets) IsZero() bool {
	return i == Insets{}
}

func (i Insets) String() string {
	return fmt.Sprintf("(left=%d, top=%d, right=%d, bottom=%d)", i.Left, i.Top, i.Right, i.Bottom)
}

// Rect is an axis aligned rectangle with its origin at the bottom-left
// corner of the rendered screen.
type Rect struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Right returns the x coordinate of the right edge
func (r Rect) Right() int {
	return r.X + r.Width
}

// Top returns the y coordinate of the top edge
func (r Rect) Top() int {
	return r.Y + r.Height
}

// IsEmpty reports whether the rectangle has no area
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersect returns the overlap of two rectangles. Disjoint rectangles
// produce a zero sized rectangle clamped to r.
func (r Rect) Intersect(other Rect) Rect {
	x0 := max(r.X, other.X)
	y0 := max(r.Y, other.Y)
	x1 := min(r.Right(), other.Right())
	y1 := min(r.Top(), other.Top())
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Translate moves the rectangle by dx, dy
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

func (r Rect) String() string {
	return fmt.Sprintf("(x=%d, y=%d, w=%d, h=%d)", r.X, r.Y, r.Width, r.Height)
}

// Resolution is the rendered size of the screen in pixels
type Resolution struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// Geometry is the resolved screen state for one orientation
type Geometry struct {
	Orientation Orientation `json:"orientation"`
	Resolution  Resolution  `json:"resolution"`
	Insets      Insets      `json:"insets"`
	SafeArea    Rect        `json:"safeArea"`
	FullScreen  bool        `json:"fullScreen"`
}
