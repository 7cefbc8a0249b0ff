package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/devsim/devsim/pkg/config"
	"github.com/devsim/devsim/pkg/types"
	"github.com/spf13/viper"
)

func writeSettings(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	s, err := config.Load(viper.New(), "", t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(s.DeviceDirectories) != 1 || s.DeviceDirectories[0] != "devices" {
		t.Errorf("DeviceDirectories = %v", s.DeviceDirectories)
	}
	if !s.AutoRotate || !s.FullScreen {
		t.Error("expected auto rotation and full screen by default")
	}
	if s.LogLevel != "info" {
		t.Errorf("LogLevel = %q", s.LogLevel)
	}
	if s.StateDirectory != ".devsim/state" {
		t.Errorf("StateDirectory = %q", s.StateDirectory)
	}
	if s.Notifications.MinInterval != 2*time.Second {
		t.Errorf("MinInterval = %v", s.Notifications.MinInterval)
	}
	if s.Sweep.Step != 50*time.Millisecond || s.Sweep.Leg != time.Second {
		t.Errorf("Sweep = %+v", s.Sweep)
	}
}

func TestLoad_SearchedFile(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, "devsim.yaml", `
deviceDirectories: [profiles, more]
device: Generic Android Phone
autoRotate: false
allowedOrientations: [portrait, landscape-left]
fullScreen: false
notifications:
  enabled: true
  minInterval: 500ms
sweep:
  easing: out-bounce
logLevel: debug
`)

	s, err := config.Load(viper.New(), "", dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(s.DeviceDirectories) != 2 {
		t.Errorf("DeviceDirectories = %v", s.DeviceDirectories)
	}
	if s.Device != "Generic Android Phone" || s.AutoRotate || s.FullScreen {
		t.Errorf("unexpected settings %+v", s)
	}
	if !s.Notifications.Enabled || s.Notifications.MinInterval != 500*time.Millisecond {
		t.Errorf("Notifications = %+v", s.Notifications)
	}
	if s.Sweep.Easing != "out-bounce" || s.Sweep.Step != 50*time.Millisecond {
		t.Errorf("Sweep = %+v", s.Sweep)
	}

	allowed, err := s.Allowed()
	if err != nil {
		t.Fatal(err)
	}
	want := types.NewOrientationSet(types.OrientationPortrait, types.OrientationLandscapeLeft)
	if allowed != want {
		t.Errorf("Allowed() = %v, want %v", allowed, want)
	}

	opts, err := s.SimulationOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.AutoRotate || !opts.Windowed || opts.Allowed != want {
		t.Errorf("SimulationOptions() = %+v", opts)
	}
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	_, err := config.Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"), "")
	if err == nil {
		t.Fatal("expected error for missing explicit settings file")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, "devsim.yaml", "device: From File\nlogLevel: warn\n")

	t.Setenv("DEVSIM_DEVICE", "From Env")
	t.Setenv("DEVSIM_NOTIFICATIONS_ENABLED", "true")

	s, err := config.Load(viper.New(), "", dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Device != "From Env" {
		t.Errorf("Device = %q, want env override", s.Device)
	}
	if s.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want file value", s.LogLevel)
	}
	if !s.Notifications.Enabled {
		t.Error("nested env override not applied")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad log level", "logLevel: loud\n", "logLevel"},
		{"bad orientation", "allowedOrientations: [sideways]\n", "allowedOrientations"},
		{"bad easing", "sweep:\n  easing: wobble\n", "sweep.easing"},
		{"zero step", "sweep:\n  step: 0s\n", "sweep.step"},
		{"negative interval", "notifications:\n  minInterval: -1s\n", "notifications.minInterval"},
		{"no directories", "deviceDirectories: []\n", "deviceDirectories"},
		{"bad exclusion", "deviceExclusions: [\"[z-a]\"]\n", "deviceExclusions"},
		{"empty state directory", "stateDirectory: \"\"\n", "stateDirectory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSettings(t, t.TempDir(), "settings.yaml", tt.content)

			_, err := config.Load(viper.New(), path, "")
			if !errors.Is(err, config.ErrInvalidSettings) {
				t.Fatalf("Load() error = %v, want ErrInvalidSettings", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	s := config.Defaults()
	if err := s.Validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
	allowed, _ := s.Allowed()
	if allowed != types.AllOrientations {
		t.Errorf("empty allowed list should allow all, got %v", allowed)
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	s := config.Defaults()
	s.LogLevel = "loud"
	s.Sweep.Leg = 0

	err := s.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"logLevel", "sweep.leg"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}
