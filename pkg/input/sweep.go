// Package input produces synthetic rotation signals for driving a simulation
package input

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ErrInvalidSweep indicates sweep parameters that cannot produce samples
var ErrInvalidSweep = errors.New("invalid sweep")

// MaxSamples bounds the samples of a single sweep
const MaxSamples = 100_000

var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"in-out-cubic": ease.InOutCubic,
	"in-out-sine":  ease.InOutSine,
	"out-bounce":   ease.OutBounce,
	"out-elastic":  ease.OutElastic,
}

// ParseEasing looks up an easing function by name
func ParseEasing(name string) (ease.TweenFunc, error) {
	fn, ok := easings[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q, expected one of %s", name, strings.Join(EasingNames(), ", "))
	}
	return fn, nil
}

// EasingNames lists the known easing names
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sample is one rotation reading
type Sample struct {
	At    time.Duration
	Angle float64
}

// Sweep rotates the device from one angle to another over Duration,
// reporting a sample every Step
type Sweep struct {
	From     float64
	To       float64
	Duration time.Duration
	Step     time.Duration
	Easing   ease.TweenFunc
}

// Validate checks the sweep parameters
func (s Sweep) Validate() error {
	switch {
	case math.IsNaN(s.From) || math.IsInf(s.From, 0) || math.IsNaN(s.To) || math.IsInf(s.To, 0):
		return fmt.Errorf("%w: angles must be finite", ErrInvalidSweep)
	case s.Duration <= 0:
		return fmt.Errorf("%w: duration must be positive", ErrInvalidSweep)
	case s.Step <= 0:
		return fmt.Errorf("%w: step must be positive", ErrInvalidSweep)
	case s.Duration/s.Step >= MaxSamples:
		return fmt.Errorf("%w: %s in steps of %s exceeds %d samples", ErrInvalidSweep, s.Duration, s.Step, MaxSamples)
	}
	return nil
}

// Samples returns every reading of the sweep. The first is From at zero and
// the last is exactly To at Duration.
func (s Sweep) Samples() ([]Sample, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	fn := s.Easing
	if fn == nil {
		fn = ease.Linear
	}

	tween := gween.New(float32(s.From), float32(s.To), float32(s.Duration.Seconds()), fn)
	samples := []Sample{{At: 0, Angle: s.From}}

	dt := float32(s.Step.Seconds())
	at := time.Duration(0)
	for {
		value, finished := tween.Update(dt)
		at += s.Step
		if finished || at >= s.Duration {
			samples = append(samples, Sample{At: s.Duration, Angle: s.To})
			return samples, nil
		}
		samples = append(samples, Sample{At: at, Angle: float64(value)})
	}
}

// Path chains sweeps through the given angles, one leg per pair
func Path(angles []float64, leg, step time.Duration, fn ease.TweenFunc) ([]Sweep, error) {
	if len(angles) < 2 {
		return nil, fmt.Errorf("%w: a path needs at least two angles", ErrInvalidSweep)
	}
	sweeps := make([]Sweep, 0, len(angles)-1)
	for i := 1; i < len(angles); i++ {
		s := Sweep{From: angles[i-1], To: angles[i], Duration: leg, Step: step, Easing: fn}
		if err := s.Validate(); err != nil {
			return nil, err
		}
		sweeps = append(sweeps, s)
	}
	return sweeps, nil
}

// Play feeds every sample of sweeps to fn in order. With realtime set the
// samples are paced by their timestamps. Playback stops at the first error
// from fn or when ctx is done.
func Play(ctx context.Context, sweeps []Sweep, realtime bool, fn func(Sample) error) error {
	var offset time.Duration
	start := time.Now()

	for i, s := range sweeps {
		samples, err := s.Samples()
		if err != nil {
			return err
		}
		// Legs share their joint sample
		if i > 0 {
			samples = samples[1:]
		}

		for _, sample := range samples {
			sample.At += offset

			if realtime {
				wait := time.Until(start.Add(sample.At))
				if wait > 0 {
					timer := time.NewTimer(wait)
					select {
					case <-ctx.Done():
						timer.Stop()
						return ctx.Err()
					case <-timer.C:
					}
				}
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(sample); err != nil {
				return err
			}
		}
		offset += s.Duration
	}
	return nil
}
