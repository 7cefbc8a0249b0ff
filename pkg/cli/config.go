package cli

import (
	"context"
	"time"

	dcontext "github.com/devsim/devsim/pkg/context"
)

// Config holds the command line flags shared by every command
type Config struct {
	ConfigFile string
	WorkDir    string
	Verbosity  string
	Devices    []string
	Version    string
}

// NewConfig creates a new CLI configuration with defaults
func NewConfig() *Config {
	return &Config{
		WorkDir:   ".",
		Verbosity: "info",
		Version:   "dev",
	}
}

// RuntimeConfig carries the per-invocation context of a command
type RuntimeConfig struct {
	Config    *Config
	Context   context.Context
	StartTime time.Time
}

// NewRuntimeConfig tags ctx with a fresh session and the operation name
func NewRuntimeConfig(cfg *Config, ctx context.Context, operation string) *RuntimeConfig {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = dcontext.WithOperation(dcontext.EnrichContext(ctx), operation)

	return &RuntimeConfig{
		Config:    cfg,
		Context:   ctx,
		StartTime: time.Now(),
	}
}
