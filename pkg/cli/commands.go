package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/devsim/devsim/pkg/profile"
	"github.com/devsim/devsim/pkg/types"
	"github.com/devsim/devsim/pkg/validation"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ErrValidationFailed is returned by validate when any profile is invalid
var ErrValidationFailed = errors.New("device profile validation failed")

func (c *CLI) newListCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available device profiles",
		Long:  `List every device profile found in the device directories.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runList(cmd, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the profiles as JSON")
	return cmd
}

func (c *CLI) runList(cmd *cobra.Command, asJSON bool) error {
	db, err := c.loadDatabase(cmd.Context())
	if err != nil {
		return err
	}
	devices := db.Devices()

	if asJSON {
		enc := json.NewEncoder(c.output)
		enc.SetIndent("", "  ")
		return enc.Encode(devices)
	}

	if len(devices) == 0 {
		c.printWarning(fmt.Sprintf("No device profiles found in %s", strings.Join(db.Directories(), ", ")))
		return nil
	}

	w := tabwriter.NewWriter(c.output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tOS\tSCREEN\tDPI\tORIENTATIONS\tSOURCE")
	fmt.Fprintln(w, "----\t--\t------\t---\t------------\t------")

	for _, d := range devices {
		screen, _ := d.PrimaryScreen()

		osName := d.SystemInfo.OperatingSystem
		switch {
		case d.IsAndroid():
			osName = color.GreenString(osName)
		case d.IsIOS():
			osName = color.CyanString(osName)
		}

		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%g\t%s\t%s\n",
			d.FriendlyName,
			osName,
			screen.Width, screen.Height,
			screen.DPI,
			screen.SupportedOrientations(),
			relativeSource(d.Source),
		)
	}
	w.Flush()

	if failures := db.Failures(); len(failures) > 0 {
		fmt.Fprintln(c.output)
		fmt.Fprintln(c.output, color.YellowString("%d profile(s) skipped, run 'devsim validate' for details", len(failures)))
	}
	return nil
}

func (c *CLI) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate device profiles",
		Long: `Validate the given device profile files, or every profile in the device
directories when no file is given. Warnings are reported but do not fail.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(args)
		},
	}
}

func (c *CLI) runValidate(files []string) error {
	if len(files) == 0 {
		db, err := c.newDatabase()
		if err != nil {
			return err
		}
		files = db.Files()
	}
	if len(files) == 0 {
		c.printWarning("No device profiles to validate")
		return nil
	}

	var loaded []*types.DeviceProfile
	failed := 0

	for _, file := range files {
		p, result, err := c.checkFile(file)
		if err != nil {
			failed++
			fmt.Fprintf(c.output, "%s %s\n", color.RedString("✗"), relativeSource(file))
			var perr *validation.ProfileError
			if errors.As(err, &perr) {
				for _, ve := range perr.Errors {
					fmt.Fprintf(c.output, "    %s %s\n", color.RedString("error"), issue(ve))
				}
			} else {
				fmt.Fprintf(c.output, "    %s %v\n", color.RedString("error"), err)
			}
			continue
		}

		loaded = append(loaded, p)
		fmt.Fprintf(c.output, "%s %s (%s)\n", color.GreenString("✓"), relativeSource(file), p.FriendlyName)
		if result != nil {
			for _, ve := range result.Issues(validation.ValidationLevelWarning) {
				fmt.Fprintf(c.output, "    %s %s\n", color.YellowString("warning"), issue(ve))
			}
		}
	}

	dupes := validation.NewProfileValidator().ValidateMultiple(loaded)
	for _, ve := range dupes.Issues(validation.ValidationLevelWarning) {
		fmt.Fprintf(c.output, "%s %s\n", color.YellowString("warning"), ve.Message)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d invalid", ErrValidationFailed, failed, len(files))
	}
	c.printSuccess(fmt.Sprintf("%d device profile(s) valid", len(files)))
	return nil
}

func (c *CLI) checkFile(path string) (*types.DeviceProfile, *validation.ValidationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read profile: %w", err)
	}
	return profile.Check(data, path)
}

func issue(ve validation.ValidationError) string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

func relativeSource(path string) string {
	if path == "" {
		return "-"
	}
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(wd, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the devsim version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(c.output, "📱 devsim v%s\n", c.config.Version)
		},
	}
}
