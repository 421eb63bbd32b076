package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boughdev/bough/internal/config"
	"github.com/boughdev/bough/internal/doctor"
	"github.com/boughdev/bough/internal/output"
	"github.com/boughdev/bough/internal/ui/styles"
)

func newDoctorCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Diagnose setup problems",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Diagnose setup problems.

Checks:
- git and the resolution agent are installed
- the config file exists and is complete
- the worktree root exists and is writable
- the primary checkout is a git repository
- gh is installed and authenticated (optional, for 'bough feedback')

Exits non-zero when a required check fails.`,
		Example: `  bough doctor
  bough doctor --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)
			return runDoctor(ctx, cfg, out, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runDoctor(ctx context.Context, cfg *config.Config, out *output.Printer, jsonOutput bool) error {
	report := doctor.Run(ctx, cfg)

	if jsonOutput {
		if err := out.JSON(report); err != nil {
			return err
		}
	} else {
		var failed int
		for _, c := range report.Checks {
			line := fmt.Sprintf("%s: %s", c.Name, c.Detail)
			switch c.Status {
			case doctor.StatusOK:
				out.Println(styles.OK(line))
			case doctor.StatusWarn:
				out.Println(styles.Warn(line))
			case doctor.StatusFail:
				out.Println(styles.Fail(line))
				failed++
			}
		}
		out.Println()
		if failed == 0 {
			out.Println("Setup looks good")
		}
	}

	if !report.Healthy() {
		return fmt.Errorf("setup has problems: fix the failed checks above")
	}
	return nil
}
