package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/devsim/devsim/pkg/logger"
	"github.com/devsim/devsim/pkg/simulation"
	"github.com/devsim/devsim/pkg/state"
	"github.com/devsim/devsim/pkg/types"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// errQuit ends a simulate session
var errQuit = errors.New("quit")

const simulateHelp = `commands:
  rotate <degrees>          feed a physical rotation sample
  set <orientation>         switch orientation explicitly (turns auto-rotation off)
  auto on|off               toggle auto-rotation
  allow <orientation>       add an orientation to the auto-rotation set
  deny <orientation>        remove an orientation from the auto-rotation set
  allowed <o>[,<o>...]      replace the auto-rotation set
  fullscreen on|off         toggle the navigation bar (Android only)
  state                     print the simulation state as JSON
  help                      show this help
  quit                      end the session`

type simulateOptions struct {
	strict bool
	resume bool
	noSave bool
}

func (c *CLI) newSimulateCmd() *cobra.Command {
	var opts simulateOptions

	cmd := &cobra.Command{
		Use:   "simulate [device]",
		Short: "Drive a simulated device screen interactively",
		Long: `Start a simulation of a device and read commands from standard input, one
per line. Every resulting change is printed as it happens. The final state
is saved when the session ends and --resume picks it up again.

` + simulateHelp,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSimulate(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.strict, "strict", false, "stop at the first failing command")
	flags.BoolVar(&opts.resume, "resume", false, "continue from the saved session of the device")
	flags.BoolVar(&opts.noSave, "no-save", false, "do not save the session when it ends")
	return cmd
}

func (c *CLI) runSimulate(cmd *cobra.Command, args []string, sopts simulateOptions) error {
	rc := NewRuntimeConfig(c.config, cmd.Context(), "simulate")
	log := logger.WithContext(rc.Context, c.logger)

	device, err := c.lookupDevice(rc.Context, args)
	if err != nil {
		return err
	}

	opts, err := c.settings.SimulationOptions()
	if err != nil {
		return err
	}

	store := c.stateStore()
	sim, err := c.startSimulation(device, opts, store, sopts.resume, log)
	if err != nil {
		return err
	}
	if !sopts.noSave {
		defer func() {
			if err := store.Save(state.Capture(sim)); err != nil {
				c.printWarning(fmt.Sprintf("Failed to save session: %v", err))
			}
		}()
	}

	sim.AddListener(eventPrinter(c.output))
	sim.AddListener(c.newNotifier().Listener(sim))

	g := sim.Geometry()
	fmt.Fprintf(c.output, "📱 %s: %s %s, safe area %s\n", device.FriendlyName, g.Orientation, g.Resolution, g.SafeArea)

	scanner := bufio.NewScanner(c.input)
	line := 0
	for scanner.Scan() {
		line++
		if err := rc.Context.Err(); err != nil {
			return err
		}

		err := c.execSimulateLine(sim, scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			if sopts.strict {
				return fmt.Errorf("line %d: %w", line, err)
			}
			fmt.Fprintf(c.output, "%s %v\n", color.RedString("error:"), err)
		}
	}
	return scanner.Err()
}

// startSimulation starts from the saved session when resume is set and one
// exists that still fits the device, else from opts
func (c *CLI) startSimulation(device *types.DeviceProfile, opts simulation.Options, store *state.Store, resume bool, log logger.Logger) (*simulation.Simulation, error) {
	if resume {
		saved, err := store.Load(device.FriendlyName)
		switch {
		case errors.Is(err, state.ErrNoState):
			c.printInfo("No saved session, starting fresh")
		case err != nil:
			c.printWarning(fmt.Sprintf("Cannot read saved session: %v", err))
		default:
			sim, err := simulation.New(device, saved.Options(), log)
			if err == nil {
				c.printInfo(fmt.Sprintf("Resumed session from %s", saved.UpdatedAt.Format("2006-01-02 15:04:05")))
				return sim, nil
			}
			c.printWarning(fmt.Sprintf("Saved session no longer fits the device: %v", err))
		}
	}
	return simulation.New(device, opts, log)
}

// execSimulateLine runs one command line against sim
func (c *CLI) execSimulateLine(sim *simulation.Simulation, line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	fields := strings.Fields(line)
	command, rest := strings.ToLower(fields[0]), fields[1:]

	arg := func() (string, error) {
		if len(rest) != 1 {
			return "", fmt.Errorf("%s expects one argument", command)
		}
		return rest[0], nil
	}

	switch command {
	case "rotate":
		a, err := arg()
		if err != nil {
			return err
		}
		angle, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("invalid angle %q", a)
		}
		_, err = sim.Rotate(angle)
		return err

	case "set":
		a, err := arg()
		if err != nil {
			return err
		}
		o, err := types.ParseOrientation(a)
		if err != nil {
			return err
		}
		return sim.SetOrientation(o)

	case "auto":
		on, err := onOff(arg())
		if err != nil {
			return err
		}
		sim.SetAutoRotation(on)
		return nil

	case "allow", "deny":
		a, err := arg()
		if err != nil {
			return err
		}
		o, err := types.ParseOrientation(a)
		if err != nil {
			return err
		}
		return sim.SetAllowed(o, command == "allow")

	case "allowed":
		a, err := arg()
		if err != nil {
			return err
		}
		var set types.OrientationSet
		for _, name := range strings.Split(a, ",") {
			o, err := types.ParseOrientation(name)
			if err != nil {
				return err
			}
			set = set.With(o)
		}
		return sim.SetAllowedSet(set)

	case "fullscreen":
		on, err := onOff(arg())
		if err != nil {
			return err
		}
		sim.SetFullScreen(on)
		return nil

	case "state":
		data, err := json.MarshalIndent(sim.State(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(c.output, string(data))
		return nil

	case "help":
		fmt.Fprintln(c.output, simulateHelp)
		return nil

	case "quit", "exit":
		return errQuit

	default:
		return fmt.Errorf("unknown command %q, try 'help'", command)
	}
}

func onOff(value string, err error) (bool, error) {
	if err != nil {
		return false, err
	}
	switch strings.ToLower(value) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", value)
}

// eventPrinter writes every simulation change to out, one per line
func eventPrinter(out io.Writer) simulation.Listener {
	arrow := color.CyanString("→")
	return simulation.Funcs{
		OnOrientation: func(o types.Orientation) {
			fmt.Fprintf(out, "%s orientation %s\n", arrow, o)
		},
		OnAutoRotate: func(on bool) {
			fmt.Fprintf(out, "%s auto-rotation %s\n", arrow, onOffString(on))
		},
		OnAllowed: func(set types.OrientationSet) {
			fmt.Fprintf(out, "%s allowed %s\n", arrow, set)
		},
		OnResolution: func(r types.Resolution) {
			fmt.Fprintf(out, "%s resolution %s\n", arrow, r)
		},
		OnInsets: func(in types.Insets) {
			fmt.Fprintf(out, "%s insets %s\n", arrow, in)
		},
		OnSafeArea: func(area types.Rect) {
			fmt.Fprintf(out, "%s safe area %s\n", arrow, area)
		},
		OnFullScreen: func(fullScreen bool) {
			fmt.Fprintf(out, "%s full screen %s\n", arrow, onOffString(fullScreen))
		},
	}
}

func onOffString(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
