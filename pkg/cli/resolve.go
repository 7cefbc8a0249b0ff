package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/devsim/devsim/pkg/logger"
	"github.com/devsim/devsim/pkg/simulation"
	"github.com/devsim/devsim/pkg/types"
	"github.com/spf13/cobra"
)

// ResolveReport is the output of the resolve command
type ResolveReport struct {
	Device     string            `json:"device"`
	OS         string            `json:"os"`
	AutoRotate bool              `json:"autoRotate"`
	Physical   types.Orientation `json:"physical"`
	Geometries []types.Geometry  `json:"geometries"`
}

type resolveOptions struct {
	orientation string
	angle       float64
	all         bool
	windowed    bool
	asJSON      bool
	copy        bool
}

func (c *CLI) newResolveCmd() *cobra.Command {
	var opts resolveOptions

	cmd := &cobra.Command{
		Use:   "resolve [device]",
		Short: "Resolve the screen geometry of a device",
		Long: `Resolve the active orientation, resolution, insets and safe area of a
device. Without --orientation the physical --angle is run through
auto-rotation using the configured allowed orientations.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runResolve(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.orientation, "orientation", "o", "", "explicit orientation (portrait, portrait-upside-down, landscape-left, landscape-right)")
	flags.Float64VarP(&opts.angle, "angle", "a", 0, "physical rotation in degrees")
	flags.BoolVar(&opts.all, "all", false, "resolve every supported orientation")
	flags.BoolVar(&opts.windowed, "windowed", false, "show the navigation bar (Android only)")
	flags.BoolVar(&opts.asJSON, "json", false, "print the report as JSON")
	flags.BoolVar(&opts.copy, "copy", false, "copy the JSON report to the clipboard")

	return cmd
}

func (c *CLI) runResolve(cmd *cobra.Command, args []string, opts resolveOptions) error {
	rc := NewRuntimeConfig(c.config, cmd.Context(), "resolve")
	log := logger.WithContext(rc.Context, c.logger)

	device, err := c.lookupDevice(rc.Context, args)
	if err != nil {
		return err
	}

	simOpts, err := c.settings.SimulationOptions()
	if err != nil {
		return err
	}
	simOpts.InitialAngle = opts.angle
	if cmd.Flags().Changed("windowed") {
		simOpts.Windowed = opts.windowed
	}
	if opts.orientation != "" {
		o, err := types.ParseOrientation(opts.orientation)
		if err != nil {
			return err
		}
		simOpts.AutoRotate = false
		simOpts.Initial = o
	}

	sim, err := simulation.New(device, simOpts, log)
	if err != nil {
		return err
	}

	state := sim.State()
	report := ResolveReport{
		Device:     device.FriendlyName,
		OS:         device.SystemInfo.OperatingSystem,
		AutoRotate: state.AutoRotate,
		Physical:   state.Physical,
	}

	if opts.all {
		for _, o := range state.Supported {
			if err := sim.SetOrientation(o); err != nil {
				return err
			}
			report.Geometries = append(report.Geometries, sim.Geometry())
		}
	} else {
		report.Geometries = []types.Geometry{sim.Geometry()}
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if opts.asJSON {
		fmt.Fprintln(c.output, string(data))
	} else {
		printReport(c.output, report)
	}

	if opts.copy {
		if err := c.copyText(string(data)); err != nil {
			return fmt.Errorf("failed to copy report to clipboard: %w", err)
		}
		c.printInfo("Report copied to clipboard")
	}

	log.Debug("Resolved geometry", logger.WithField("count", len(report.Geometries)))
	return nil
}

func printReport(out io.Writer, report ResolveReport) {
	fmt.Fprintf(out, "📱 %s (%s)\n\n", report.Device, report.OS)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORIENTATION\tRESOLUTION\tINSETS\tSAFE AREA\tFULL SCREEN")
	fmt.Fprintln(w, "-----------\t----------\t------\t---------\t-----------")
	for _, g := range report.Geometries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n",
			g.Orientation, g.Resolution, g.Insets, g.SafeArea, g.FullScreen)
	}
	w.Flush()
}
