package types

import "strings"

// ProfileVersion is the only device profile format version understood
const ProfileVersion = 1

// DeviceProfile describes a simulated device. Profiles are treated as
// immutable once loaded; consumers snapshot what they need.
type DeviceProfile struct {
	FriendlyName string     `json:"friendlyName" yaml:"friendlyName"`
	Version      int        `json:"version" yaml:"version"`
	Screens      []Screen   `json:"Screens" yaml:"Screens"`
	SystemInfo   SystemInfo `json:"SystemInfo" yaml:"SystemInfo"`

	// Source is the file the profile was loaded from, if any
	Source string `json:"-" yaml:"-"`
}

// Screen holds the physical properties of one display, in portrait
type Screen struct {
	Width               int               `json:"width" yaml:"width"`
	Height              int               `json:"height" yaml:"height"`
	NavigationBarHeight int               `json:"navigationBarHeight,omitempty" yaml:"navigationBarHeight,omitempty"`
	DPI                 float64           `json:"dpi" yaml:"dpi"`
	Orientations        []OrientationData `json:"orientations,omitempty" yaml:"orientations,omitempty"`
	Presentation        *Presentation     `json:"presentation,omitempty" yaml:"presentation,omitempty"`
}

// OrientationData is the per-orientation screen description
type OrientationData struct {
	Orientation Orientation `json:"orientation" yaml:"orientation"`
	Insets      Insets      `json:"insets,omitempty" yaml:"insets,omitempty"`
	SafeArea    *Rect       `json:"safeArea,omitempty" yaml:"safeArea,omitempty"`
	Cutouts     []Rect      `json:"cutouts,omitempty" yaml:"cutouts,omitempty"`
}

// Presentation carries device frame hints for host renderers
type Presentation struct {
	OverlayPath  string  `json:"overlayPath,omitempty" yaml:"overlayPath,omitempty"`
	BorderSize   Insets  `json:"borderSize,omitempty" yaml:"borderSize,omitempty"`
	CornerRadius float64 `json:"cornerRadius,omitempty" yaml:"cornerRadius,omitempty"`
}

// SystemInfo is the subset of host system information devsim cares about
type SystemInfo struct {
	DeviceModel     string `json:"deviceModel,omitempty" yaml:"deviceModel,omitempty"`
	OperatingSystem string `json:"operatingSystem" yaml:"operatingSystem"`
	ProcessorCount  int    `json:"processorCount,omitempty" yaml:"processorCount,omitempty"`
	SystemMemory    int    `json:"systemMemorySize,omitempty" yaml:"systemMemorySize,omitempty"`
}

// IsAndroid reports whether the profile describes an Android device
func (d *DeviceProfile) IsAndroid() bool {
	return d.isOS("android")
}

// IsIOS reports whether the profile describes an iOS device
func (d *DeviceProfile) IsIOS() bool {
	return d.isOS("ios")
}

func (d *DeviceProfile) isOS(os string) bool {
	return strings.Contains(strings.ToLower(d.SystemInfo.OperatingSystem), os)
}

// PrimaryScreen returns the first screen, the one simulations run on
func (d *DeviceProfile) PrimaryScreen() (Screen, bool) {
	if len(d.Screens) == 0 {
		return Screen{}, false
	}
	return d.Screens[0], true
}

// SupportedOrientations returns the orientations the screen lists
func (s Screen) SupportedOrientations() OrientationSet {
	var set OrientationSet
	for _, od := range s.Orientations {
		set = set.With(od.Orientation)
	}
	return set
}

// OrientationData returns the data for o, if the screen lists it
func (s Screen) OrientationData(o Orientation) (OrientationData, bool) {
	for _, od := range s.Orientations {
		if od.Orientation == o {
			return od, true
		}
	}
	return OrientationData{}, false
}

// Clone returns a deep copy of the screen
func (s Screen) Clone() Screen {
	out := s
	if s.Orientations != nil {
		out.Orientations = make([]OrientationData, len(s.Orientations))
		for i, od := range s.Orientations {
			out.Orientations[i] = od
			if od.SafeArea != nil {
				sa := *od.SafeArea
				out.Orientations[i].SafeArea = &sa
			}
			if od.Cutouts != nil {
				out.Orientations[i].Cutouts = append([]Rect(nil), od.Cutouts...)
			}
		}
	}
	if s.Presentation != nil {
		p := *s.Presentation
		out.Presentation = &p
	}
	return out
}
