package notifier_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/devsim/devsim/pkg/mocks"
	"github.com/devsim/devsim/pkg/notifier"
	"github.com/devsim/devsim/pkg/simulation"
	"github.com/devsim/devsim/pkg/types"
	"github.com/jonboulle/clockwork"
)

type sent struct {
	title, message string
}

func recorder() (*[]sent, notifier.SendFunc) {
	var out []sent
	return &out, func(title, message string) error {
		out = append(out, sent{title, message})
		return nil
	}
}

func TestNotifier_Disabled(t *testing.T) {
	got, send := recorder()
	n := notifier.NewWithSender(notifier.Config{Enabled: false}, mocks.NewMockLogger(), send)

	n.NotifyOrientation("Phone", types.OrientationPortrait, types.Resolution{Width: 1, Height: 2})
	n.NotifyDevicesReloaded(3, nil)

	if len(*got) != 0 {
		t.Errorf("disabled notifier sent %v", *got)
	}
}

func TestNotifier_Orientation(t *testing.T) {
	got, send := recorder()
	n := notifier.NewWithSender(notifier.Config{Enabled: true}, mocks.NewMockLogger(), send)

	n.NotifyOrientation("Phone", types.OrientationLandscapeLeft, types.Resolution{Width: 2280, Height: 1080})

	if len(*got) != 1 {
		t.Fatalf("expected one notification, got %v", *got)
	}
	if !strings.Contains((*got)[0].title, "Phone") || !strings.Contains((*got)[0].message, "landscape-left (2280x1080)") {
		t.Errorf("unexpected notification %+v", (*got)[0])
	}
}

func TestNotifier_DevicesReloaded(t *testing.T) {
	got, send := recorder()
	n := notifier.NewWithSender(notifier.Config{Enabled: true}, mocks.NewMockLogger(), send)

	n.NotifyDevicesReloaded(4, nil)
	n.NotifyDevicesReloaded(0, errors.New("permission denied"))

	if len(*got) != 2 {
		t.Fatalf("expected two notifications, got %v", *got)
	}
	if !strings.Contains((*got)[0].message, "4 device profiles") {
		t.Errorf("unexpected success notification %+v", (*got)[0])
	}
	if !strings.Contains((*got)[1].message, "permission denied") {
		t.Errorf("unexpected failure notification %+v", (*got)[1])
	}
}

func TestNotifier_Throttle(t *testing.T) {
	got, send := recorder()
	log := mocks.NewMockLogger()
	n := notifier.NewWithSender(notifier.Config{Enabled: true, MinInterval: time.Hour}, log, send)

	n.NotifyFullScreen("Phone", false)
	n.NotifyFullScreen("Phone", true)

	if len(*got) != 1 {
		t.Errorf("expected the second notification to be throttled, got %v", *got)
	}
	if log.Count("debug") != 1 {
		t.Errorf("expected throttling to be logged, got %+v", log.Entries())
	}
}

func TestNotifier_ThrottleWindowExpires(t *testing.T) {
	got, send := recorder()
	clock := clockwork.NewFakeClock()
	n := notifier.NewWithSender(notifier.Config{Enabled: true, MinInterval: 2 * time.Second, Clock: clock}, mocks.NewMockLogger(), send)

	n.NotifyFullScreen("Phone", false)
	clock.Advance(time.Second)
	n.NotifyFullScreen("Phone", true)
	clock.Advance(time.Second)
	n.NotifyFullScreen("Phone", false)

	if len(*got) != 2 {
		t.Errorf("expected first and third notification, got %v", *got)
	}
}

func TestNotifier_SendFailureIsLogged(t *testing.T) {
	log := mocks.NewMockLogger()
	n := notifier.NewWithSender(notifier.Config{Enabled: true}, log, func(string, string) error {
		return errors.New("no notification daemon")
	})

	n.NotifyDevicesReloaded(1, nil)

	if log.Count("debug") != 1 {
		t.Errorf("expected failure to be logged, got %+v", log.Entries())
	}
}

func TestNotifier_Listener(t *testing.T) {
	got, send := recorder()
	n := notifier.NewWithSender(notifier.Config{Enabled: true}, mocks.NewMockLogger(), send)

	profile := &types.DeviceProfile{
		FriendlyName: "Listener Phone",
		Version:      1,
		SystemInfo:   types.SystemInfo{OperatingSystem: "Android"},
		Screens:      []types.Screen{{Width: 720, Height: 1280, DPI: 320, NavigationBarHeight: 48}},
	}
	profile.Screens[0].Orientations = []types.OrientationData{
		{Orientation: types.OrientationPortrait},
		{Orientation: types.OrientationLandscapeLeft},
	}

	sim, err := simulation.New(profile, simulation.Options{AutoRotate: true}, nil)
	if err != nil {
		t.Fatal(err)
	}
	sim.AddListener(n.Listener(sim))

	if _, err := sim.Rotate(270); err != nil {
		t.Fatal(err)
	}
	sim.SetFullScreen(false)

	if len(*got) != 2 {
		t.Fatalf("expected two notifications, got %v", *got)
	}
	if !strings.Contains((*got)[0].message, "landscape-left (1280x720)") {
		t.Errorf("unexpected rotation notification %+v", (*got)[0])
	}
	if !strings.Contains((*got)[1].message, "windowed") {
		t.Errorf("unexpected window notification %+v", (*got)[1])
	}
}
