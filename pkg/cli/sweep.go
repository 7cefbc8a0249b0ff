package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/devsim/devsim/pkg/input"
	"github.com/devsim/devsim/pkg/logger"
	"github.com/devsim/devsim/pkg/simulation"
	"github.com/devsim/devsim/pkg/types"
	"github.com/spf13/cobra"
)

type sweepOptions struct {
	path     string
	easing   string
	realtime bool
	trace    bool
}

func (c *CLI) newSweepCmd() *cobra.Command {
	var opts sweepOptions

	cmd := &cobra.Command{
		Use:   "sweep [device]",
		Short: "Rotate a simulated device through a path of angles",
		Long: `Feed an eased rotation path into a simulated device with auto-rotation on
and print every change it causes. Leg duration, sample step and easing
default to the sweep settings.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSweep(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.path, "path", "p", "0,90,180,270,360", "comma separated angles in degrees")
	flags.Duration("leg", 0, "duration of each leg (default from settings)")
	flags.Duration("step", 0, "time between samples (default from settings)")
	flags.StringVarP(&opts.easing, "ease", "e", "", "easing: "+strings.Join(input.EasingNames(), ", "))
	flags.BoolVar(&opts.realtime, "realtime", false, "pace samples in real time")
	flags.BoolVar(&opts.trace, "trace", false, "print every sample")

	return cmd
}

func (c *CLI) runSweep(cmd *cobra.Command, args []string, opts sweepOptions) error {
	rc := NewRuntimeConfig(c.config, cmd.Context(), "sweep")
	log := logger.WithContext(rc.Context, c.logger)

	angles, err := parseAngles(opts.path)
	if err != nil {
		return err
	}

	leg, step := c.settings.Sweep.Leg, c.settings.Sweep.Step
	if cmd.Flags().Changed("leg") {
		leg, _ = cmd.Flags().GetDuration("leg")
	}
	if cmd.Flags().Changed("step") {
		step, _ = cmd.Flags().GetDuration("step")
	}
	easingName := c.settings.Sweep.Easing
	if opts.easing != "" {
		easingName = opts.easing
	}
	easing, err := input.ParseEasing(easingName)
	if err != nil {
		return err
	}

	sweeps, err := input.Path(angles, leg, step, easing)
	if err != nil {
		return err
	}

	device, err := c.lookupDevice(rc.Context, args)
	if err != nil {
		return err
	}

	simOpts, err := c.settings.SimulationOptions()
	if err != nil {
		return err
	}
	simOpts.AutoRotate = true
	simOpts.InitialAngle = angles[0]

	sim, err := simulation.New(device, simOpts, log)
	if err != nil {
		return err
	}

	changes := 0
	sim.AddListener(simulation.Funcs{
		OnOrientation: func(types.Orientation) { changes++ },
	})
	sim.AddListener(eventPrinter(c.output))
	sim.AddListener(c.newNotifier().Listener(sim))

	fmt.Fprintf(c.output, "📱 %s: sweeping %s with %s easing\n", device.FriendlyName, opts.path, easingName)

	samples := 0
	err = input.Play(rc.Context, sweeps, opts.realtime, func(s input.Sample) error {
		samples++
		if opts.trace {
			fmt.Fprintf(c.output, "  t=%-6s angle=%.1f\n", s.At, s.Angle)
		}
		_, err := sim.Rotate(s.Angle)
		return err
	})
	if err != nil {
		return fmt.Errorf("sweep stopped after %d samples: %w", samples, err)
	}

	g := sim.Geometry()
	c.printSuccess(fmt.Sprintf("Sweep finished: %d samples, %d orientation changes, ending in %s %s",
		samples, changes, g.Orientation, g.Resolution))
	return nil
}

func parseAngles(path string) ([]float64, error) {
	parts := strings.Split(path, ",")
	angles := make([]float64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		a, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid angle %q", input.ErrInvalidSweep, part)
		}
		angles = append(angles, a)
	}
	return angles, nil
}
