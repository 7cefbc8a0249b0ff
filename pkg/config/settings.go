// Package config loads devsim settings from file, environment and flags
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/devsim/devsim/pkg/input"
	"github.com/devsim/devsim/pkg/profile"
	"github.com/devsim/devsim/pkg/simulation"
	"github.com/devsim/devsim/pkg/types"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. DEVSIM_DEVICE
const EnvPrefix = "DEVSIM"

// ConfigName is the settings file base name searched for, devsim.yaml etc.
const ConfigName = "devsim"

// ErrInvalidSettings is wrapped by every settings validation failure
var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds every configurable value
type Settings struct {
	DeviceDirectories   []string             `mapstructure:"deviceDirectories"`
	DeviceExclusions    []string             `mapstructure:"deviceExclusions"`
	Device              string               `mapstructure:"device"`
	AutoRotate          bool                 `mapstructure:"autoRotate"`
	AllowedOrientations []string             `mapstructure:"allowedOrientations"`
	FullScreen          bool                 `mapstructure:"fullScreen"`
	Notifications       NotificationSettings `mapstructure:"notifications"`
	Sweep               SweepSettings        `mapstructure:"sweep"`
	StateDirectory      string               `mapstructure:"stateDirectory"`
	LogLevel            string               `mapstructure:"logLevel"`
	LogFile             string               `mapstructure:"logFile"`
}

// NotificationSettings configures desktop notifications
type NotificationSettings struct {
	Enabled     bool          `mapstructure:"enabled"`
	Sound       bool          `mapstructure:"sound"`
	MinInterval time.Duration `mapstructure:"minInterval"`
}

// SweepSettings configures the default rotation sweep
type SweepSettings struct {
	Leg    time.Duration `mapstructure:"leg"`
	Step   time.Duration `mapstructure:"step"`
	Easing string        `mapstructure:"easing"`
}

// SetDefaults registers the built-in defaults on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("deviceDirectories", []string{"devices"})
	v.SetDefault("deviceExclusions", []string{})
	v.SetDefault("device", "")
	v.SetDefault("autoRotate", true)
	v.SetDefault("allowedOrientations", []string{})
	v.SetDefault("fullScreen", true)
	v.SetDefault("notifications.enabled", false)
	v.SetDefault("notifications.sound", false)
	v.SetDefault("notifications.minInterval", "2s")
	v.SetDefault("sweep.leg", "1s")
	v.SetDefault("sweep.step", "50ms")
	v.SetDefault("sweep.easing", "in-out-sine")
	v.SetDefault("stateDirectory", ".devsim/state")
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFile", "")
}

// Load reads settings into v and decodes them. An explicit configFile must
// exist; otherwise devsim.{yaml,yml,json} is looked up in searchDir and is
// optional. Environment variables override the file.
func Load(v *viper.Viper, configFile, searchDir string) (*Settings, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings %s: %w", configFile, err)
		}
	} else {
		if searchDir == "" {
			searchDir = "."
		}
		v.AddConfigPath(searchDir)
		v.SetConfigName(ConfigName)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read settings: %w", err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Defaults returns the built-in settings
func Defaults() *Settings {
	v := viper.New()
	SetDefaults(v)
	var s Settings
	// Defaults always decode
	_ = v.Unmarshal(&s)
	return &s
}

var logLevels = map[string]bool{
	"panic": true, "fatal": true, "error": true, "warn": true,
	"warning": true, "info": true, "debug": true, "trace": true,
}

// Validate checks every setting and reports all problems at once
func (s *Settings) Validate() error {
	var problems []string

	if len(s.DeviceDirectories) == 0 {
		problems = append(problems, "deviceDirectories: at least one directory is required")
	}
	if _, err := profile.NewExclusions(s.DeviceExclusions); err != nil {
		problems = append(problems, "deviceExclusions: "+err.Error())
	}
	if strings.TrimSpace(s.StateDirectory) == "" {
		problems = append(problems, "stateDirectory: must not be empty")
	}
	if !logLevels[strings.ToLower(s.LogLevel)] {
		problems = append(problems, fmt.Sprintf("logLevel: unknown level %q", s.LogLevel))
	}
	if _, err := s.Allowed(); err != nil {
		problems = append(problems, "allowedOrientations: "+err.Error())
	}
	if s.Notifications.MinInterval < 0 {
		problems = append(problems, "notifications.minInterval: must not be negative")
	}
	if s.Sweep.Leg <= 0 {
		problems = append(problems, "sweep.leg: must be positive")
	}
	if s.Sweep.Step <= 0 {
		problems = append(problems, "sweep.step: must be positive")
	}
	if _, err := input.ParseEasing(s.Sweep.Easing); err != nil {
		problems = append(problems, "sweep.easing: "+err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSettings, strings.Join(problems, "; "))
	}
	return nil
}

// Allowed parses the allowed orientations; an empty list allows all four
func (s *Settings) Allowed() (types.OrientationSet, error) {
	var set types.OrientationSet
	for _, name := range s.AllowedOrientations {
		if strings.TrimSpace(name) == "" {
			continue
		}
		o, err := types.ParseOrientation(name)
		if err != nil {
			return 0, err
		}
		set = set.With(o)
	}
	if set.IsEmpty() {
		return types.AllOrientations, nil
	}
	return set, nil
}

// SimulationOptions builds the simulation start options
func (s *Settings) SimulationOptions() (simulation.Options, error) {
	allowed, err := s.Allowed()
	if err != nil {
		return simulation.Options{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return simulation.Options{
		AutoRotate: s.AutoRotate,
		Allowed:    allowed,
		Windowed:   !s.FullScreen,
	}, nil
}
