package cli

import (
	"fmt"
	"sync"

	"github.com/devsim/devsim/pkg/logger"
	"github.com/devsim/devsim/pkg/profile"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the device directories and reload profiles on change",
		Long: `Load every device profile and keep watching the device directories.
Profiles are reloaded whenever a profile file is created, changed or
removed, and each reload is reported. Stop with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd)
		},
	}
}

func (c *CLI) runWatch(cmd *cobra.Command) error {
	rc := NewRuntimeConfig(c.config, cmd.Context(), "watch")
	log := logger.WithContext(rc.Context, c.logger)

	db, err := c.loadDatabase(rc.Context)
	if err != nil {
		return err
	}

	var mu sync.Mutex
	printf := func(format string, args ...any) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(c.output, format, args...)
	}

	printf("📱 Watching %d device profile(s)\n", len(db.Devices()))
	for _, dir := range db.Directories() {
		printf("   %s\n", dir)
	}

	n := c.newNotifier()
	rm := profile.NewReloadManager(db, log)
	rm.AddCallback(func(event profile.ReloadEvent) {
		if event.Error != nil {
			printf("%s %v\n", color.RedString("reload failed:"), event.Error)
			n.NotifyDevicesReloaded(0, event.Error)
			return
		}

		printf("%s %s: %d device profile(s)\n", color.CyanString("↻"), event.EventType, len(event.Devices))
		for _, f := range db.Failures() {
			printf("   %s %s: %v\n", color.YellowString("skipped"), relativeSource(f.Path), f.Err)
		}
		n.NotifyDevicesReloaded(len(event.Devices), nil)
	})

	if err := rm.StartWatching(); err != nil {
		return err
	}

	<-rc.Context.Done()

	if err := rm.StopWatching(); err != nil {
		c.printWarning(fmt.Sprintf("Failed to stop watching: %v", err))
	}
	c.printSuccess("Stopped watching device profiles")
	return nil
}
