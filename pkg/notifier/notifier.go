// Package notifier provides desktop notifications for simulation events
package notifier

import (
	"fmt"
	"sync"
	"time"

	"github.com/devsim/devsim/pkg/logger"
	"github.com/devsim/devsim/pkg/simulation"
	"github.com/devsim/devsim/pkg/types"
	"github.com/gen2brain/beeep"
	"github.com/jonboulle/clockwork"
)

// SendFunc delivers one notification
type SendFunc func(title, message string) error

// Config represents notification configuration
type Config struct {
	Enabled bool
	Sound   bool

	// MinInterval drops notifications arriving faster than this
	MinInterval time.Duration

	// Clock measures MinInterval; nil uses the real clock
	Clock clockwork.Clock
}

// Notifier sends desktop notifications
type Notifier struct {
	enabled     bool
	sound       bool
	minInterval time.Duration
	send        SendFunc
	clock       clockwork.Clock
	logger      logger.Logger

	mu       sync.Mutex
	lastSent time.Time
}

// New creates a notifier that uses the system notification service
func New(config Config, log logger.Logger) *Notifier {
	return NewWithSender(config, log, func(title, message string) error {
		return beeep.Notify(title, message, "")
	})
}

// NewWithSender creates a notifier with a custom delivery function
func NewWithSender(config Config, log logger.Logger, send SendFunc) *Notifier {
	clock := config.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Notifier{
		enabled:     config.Enabled,
		sound:       config.Sound,
		minInterval: config.MinInterval,
		send:        send,
		clock:       clock,
		logger:      log,
	}
}

// NotifyOrientation reports a new active orientation
func (n *Notifier) NotifyOrientation(device string, o types.Orientation, res types.Resolution) {
	title := "📱 " + device
	message := fmt.Sprintf("Rotated to %s (%s)", o, res)
	n.sendNotification(title, message)
}

// NotifyFullScreen reports a window mode change
func (n *Notifier) NotifyFullScreen(device string, fullScreen bool) {
	mode := "windowed"
	if fullScreen {
		mode = "full screen"
	}
	n.sendNotification("📱 "+device, "Switched to "+mode)
}

// NotifyDevicesReloaded reports a device database reload
func (n *Notifier) NotifyDevicesReloaded(count int, err error) {
	if err != nil {
		n.sendNotification("❌ Device reload failed", err.Error())
		return
	}
	n.sendNotification("🔄 Devices reloaded", fmt.Sprintf("%d device profiles available", count))
}

// Listener returns a simulation listener that notifies about orientation
// and window mode changes of sim
func (n *Notifier) Listener(sim *simulation.Simulation) simulation.Listener {
	device := sim.Device().FriendlyName
	return simulation.Funcs{
		OnOrientation: func(o types.Orientation) {
			n.NotifyOrientation(device, o, sim.Geometry().Resolution)
		},
		OnFullScreen: func(fullScreen bool) {
			n.NotifyFullScreen(device, fullScreen)
		},
	}
}

func (n *Notifier) sendNotification(title, message string) {
	if !n.enabled {
		return
	}

	n.mu.Lock()
	now := n.clock.Now()
	if n.minInterval > 0 && !n.lastSent.IsZero() && now.Sub(n.lastSent) < n.minInterval {
		n.mu.Unlock()
		n.logger.Debug("Notification throttled", logger.WithField("title", title))
		return
	}
	n.lastSent = now
	n.mu.Unlock()

	if err := n.send(title, message); err != nil {
		n.logger.Debug("Failed to send notification", logger.WithError(err))
	}

	if n.sound {
		if err := beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration); err != nil {
			n.logger.Debug("Failed to play sound", logger.WithError(err))
		}
	}
}
