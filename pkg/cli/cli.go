// Package cli provides the command-line interface for devsim
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/devsim/devsim/pkg/config"
	"github.com/devsim/devsim/pkg/logger"
	"github.com/devsim/devsim/pkg/notifier"
	"github.com/devsim/devsim/pkg/profile"
	"github.com/devsim/devsim/pkg/state"
	"github.com/devsim/devsim/pkg/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CLI holds the command tree together with its settings and I/O, so it can
// be driven from tests
type CLI struct {
	config   *Config
	settings *config.Settings
	viper    *viper.Viper
	rootCmd  *cobra.Command
	logger   logger.Logger
	input    io.Reader
	output   io.Writer
	errorOut io.Writer

	copyText func(string) error
	send     notifier.SendFunc
}

// NewCLI creates a new CLI instance with the given configuration
func NewCLI(cfg *Config) *CLI {
	if cfg == nil {
		cfg = NewConfig()
	}

	cli := &CLI{
		config:   cfg,
		viper:    viper.New(),
		logger:   logger.Discard(),
		input:    os.Stdin,
		output:   os.Stdout,
		errorOut: os.Stderr,
		copyText: clipboard.WriteAll,
	}

	cli.setupCommands()
	return cli
}

// NewCLIWithIO creates a CLI with custom streams (for testing)
func NewCLIWithIO(cfg *Config, input io.Reader, output, errorOut io.Writer) *CLI {
	cli := NewCLI(cfg)
	cli.input = input
	cli.output = output
	cli.errorOut = errorOut
	cli.rootCmd.SetOut(output)
	cli.rootCmd.SetErr(errorOut)
	return cli
}

// SetClipboard replaces the clipboard writer used by resolve --copy
func (c *CLI) SetClipboard(copyText func(string) error) {
	c.copyText = copyText
}

// SetNotificationSender replaces the desktop notification backend
func (c *CLI) SetNotificationSender(send notifier.SendFunc) {
	c.send = send
}

// Execute runs the CLI with the given arguments
func (c *CLI) Execute(args []string) error {
	return c.ExecuteContext(context.Background(), args)
}

// ExecuteContext runs the CLI with context support
func (c *CLI) ExecuteContext(ctx context.Context, args []string) error {
	c.rootCmd.SetArgs(args)
	return c.rootCmd.ExecuteContext(ctx)
}

func (c *CLI) setupCommands() {
	c.rootCmd = &cobra.Command{
		Use:   "devsim",
		Short: "Device screen orientation and safe area simulator",
		Long: `📱 devsim - resolve what a mobile screen looks like in every orientation

devsim loads device profiles and simulates a device screen: it turns rotation
input into an active orientation, honouring auto-rotation and the allowed
orientations, and reports the resolution, insets and safe area that follow.`,

		PersistentPreRunE: c.initializeConfig,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	c.setupFlags()

	c.rootCmd.Version = c.config.Version
	c.rootCmd.SetVersionTemplate("📱 devsim v{{.Version}}\n")

	c.rootCmd.AddCommand(c.newListCmd())
	c.rootCmd.AddCommand(c.newValidateCmd())
	c.rootCmd.AddCommand(c.newResolveCmd())
	c.rootCmd.AddCommand(c.newSimulateCmd())
	c.rootCmd.AddCommand(c.newSweepCmd())
	c.rootCmd.AddCommand(c.newWatchCmd())
	c.rootCmd.AddCommand(c.newSessionsCmd())
	c.rootCmd.AddCommand(c.newVersionCmd())
}

func (c *CLI) setupFlags() {
	flags := c.rootCmd.PersistentFlags()

	flags.StringVar(&c.config.ConfigFile, "config", "", "settings file (default: devsim.yaml in the working directory)")
	flags.StringVar(&c.config.WorkDir, "root", c.config.WorkDir, "working directory for settings and relative device directories")
	flags.StringVarP(&c.config.Verbosity, "verbosity", "v", c.config.Verbosity, "log level (debug, info, warn, error)")
	flags.StringSliceVarP(&c.config.Devices, "devices", "d", nil, "device profile directories")

	// Flags only override settings when given explicitly
	_ = c.viper.BindPFlag("logLevel", flags.Lookup("verbosity"))
	_ = c.viper.BindPFlag("deviceDirectories", flags.Lookup("devices"))
}

func (c *CLI) initializeConfig(cmd *cobra.Command, args []string) error {
	settings, err := config.Load(c.viper, c.config.ConfigFile, c.config.WorkDir)
	if err != nil {
		return err
	}
	c.settings = settings

	if c.errorOut == os.Stderr {
		c.logger = logger.CreateLogger(settings.LogFile, settings.LogLevel)
	} else {
		c.logger = logger.CreateLoggerWithOutput(settings.LogFile, settings.LogLevel, c.errorOut)
	}

	if used := c.viper.ConfigFileUsed(); used != "" {
		c.logger.Debug("Using settings file", logger.WithField("file", used))
	}
	return nil
}

// deviceDirectories resolves the configured directories against WorkDir
func (c *CLI) deviceDirectories() []string {
	dirs := make([]string, 0, len(c.settings.DeviceDirectories))
	for _, dir := range c.settings.DeviceDirectories {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(c.config.WorkDir, dir)
		}
		dirs = append(dirs, dir)
	}
	return dirs
}

func (c *CLI) stateStore() *state.Store {
	dir := c.settings.StateDirectory
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.config.WorkDir, dir)
	}
	return state.NewStore(dir, c.logger)
}

func (c *CLI) newDatabase() (*profile.Database, error) {
	db := profile.NewDatabase(c.deviceDirectories(), c.logger)
	if err := db.SetExclusions(c.settings.DeviceExclusions); err != nil {
		return nil, err
	}
	return db, nil
}

// loadDatabase scans the device directories once
func (c *CLI) loadDatabase(ctx context.Context) (*profile.Database, error) {
	db, err := c.newDatabase()
	if err != nil {
		return nil, err
	}
	if err := db.Refresh(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// lookupDevice loads the database and picks name, or the configured default
func (c *CLI) lookupDevice(ctx context.Context, args []string) (*types.DeviceProfile, error) {
	name := c.settings.Device
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		return nil, fmt.Errorf("no device given and no default device configured")
	}

	db, err := c.loadDatabase(ctx)
	if err != nil {
		return nil, err
	}
	return db.Get(name)
}

func (c *CLI) newNotifier() *notifier.Notifier {
	cfg := notifier.Config{
		Enabled:     c.settings.Notifications.Enabled,
		Sound:       c.settings.Notifications.Sound,
		MinInterval: c.settings.Notifications.MinInterval,
	}
	if c.send != nil {
		return notifier.NewWithSender(cfg, c.logger, c.send)
	}
	return notifier.New(cfg, c.logger)
}

// Helper methods for structured output

func (c *CLI) printSuccess(message string) {
	c.logger.Success(message)
}

func (c *CLI) printInfo(message string) {
	c.logger.Info(message)
}

func (c *CLI) printWarning(message string) {
	c.logger.Warn(message)
}

// ExecuteWithVersion builds the default CLI and runs it on os.Args
func ExecuteWithVersion(ctx context.Context, version string) error {
	cfg := NewConfig()
	cfg.Version = version
	return NewCLI(cfg).ExecuteContext(ctx, os.Args[1:])
}
