package cli

import (
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func (c *CLI) newSessionsCmd() *cobra.Command {
	var forget []string

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List saved simulate sessions",
		Long:  `List the sessions saved by simulate, or forget some with --forget.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSessions(forget)
		},
	}

	cmd.Flags().StringSliceVar(&forget, "forget", nil, "remove the saved session of these devices")
	return cmd
}

func (c *CLI) runSessions(forget []string) error {
	store := c.stateStore()

	if len(forget) > 0 {
		for _, device := range forget {
			if err := store.Remove(device); err != nil {
				return err
			}
			c.printSuccess(fmt.Sprintf("Forgot session of %s", device))
		}
		return nil
	}

	states, err := store.Discover()
	if err != nil {
		return err
	}
	if len(states) == 0 {
		c.printInfo(fmt.Sprintf("No saved sessions in %s", store.Dir()))
		return nil
	}

	names := make([]string, 0, len(states))
	for name := range states {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(c.output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DEVICE\tORIENTATION\tANGLE\tAUTO-ROTATE\tFULL SCREEN\tSAVED")
	fmt.Fprintln(w, "------\t-----------\t-----\t-----------\t-----------\t-----")
	for _, name := range names {
		st := states[name]
		fmt.Fprintf(w, "%s\t%s\t%g\t%s\t%s\t%s\n",
			st.Device,
			st.Orientation,
			st.RotationAngle,
			onOffString(st.AutoRotate),
			onOffString(st.FullScreen),
			formatAge(time.Since(st.UpdatedAt)),
		)
	}
	return w.Flush()
}

func formatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
