package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boughdev/bough/internal/config"
	"github.com/boughdev/bough/internal/feature"
	"github.com/boughdev/bough/internal/output"
	"github.com/boughdev/bough/internal/ui/static"
	"github.com/boughdev/bough/internal/ui/styles"
)

func newStatusCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "status [name]",
		Short:   "Show feature worktree status",
		Aliases: []string{"st", "ls"},
		GroupID: GroupCore,
		Args:    cobra.MaximumNArgs(1),
		Long: `Show the status of feature worktrees.

Without arguments all features are listed in a table. With a name a
detailed view of that feature is shown, including the path of a pending
conflict report if the last sync needed manual intervention.

Status compares against the last fetched state of the base branch; run
'bough sync' to fetch and rebase.`,
		Example: `  bough status                  # table of all features
  bough status login-flow       # details for one feature
  bough status --json           # machine-readable output`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			return runStatus(ctx, cfg, out, name, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	cmd.ValidArgsFunction = completeFeatureNames

	return cmd
}

func runStatus(ctx context.Context, cfg *config.Config, out *output.Printer, name string, jsonOutput bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	m := feature.NewManager(cfg)

	if name != "" {
		st, err := m.Status(ctx, name)
		if err != nil {
			return err
		}
		if jsonOutput {
			return out.JSON(st)
		}
		printStatusDetail(out, st)
		return nil
	}

	names, err := m.Names(ctx)
	if err != nil {
		return err
	}

	statuses := make([]*feature.Status, 0, len(names))
	for _, n := range names {
		st, err := m.Status(ctx, n)
		if err != nil {
			return fmt.Errorf("%s: %w", n, err)
		}
		statuses = append(statuses, st)
	}

	if jsonOutput {
		return out.JSON(statuses)
	}

	if len(statuses) == 0 {
		out.Println("No feature worktrees found")
		return nil
	}

	rows := make([][]string, len(statuses))
	for i, st := range statuses {
		rows[i] = static.FeatureRow(*st)
	}
	out.Print(static.RenderTable(static.FeatureHeaders, rows))
	return nil
}

func printStatusDetail(out *output.Printer, st *feature.Status) {
	out.Println(styles.PrimaryStyle.Render(st.Name))
	out.Printf("  branch:   %s\n", st.Branch)
	out.Printf("  worktree: %s\n", st.Path)
	out.Printf("  state:    %s\n", stateWord(st))
	out.Printf("  sync:     %s\n", syncWord(st))
	if st.ConflictReport != "" {
		out.Printf("  report:   %s\n", st.ConflictReport)
	}
}

func stateWord(st *feature.Status) string {
	switch {
	case st.RebaseInProgress:
		return styles.ErrorStyle.Render("rebase in progress")
	case st.Dirty:
		return styles.WarningStyle.Render("dirty")
	default:
		return "clean"
	}
}

func syncWord(st *feature.Status) string {
	if st.CommitsAhead == 0 && st.CommitsBehind == 0 {
		return "up to date"
	}
	var parts []string
	if st.CommitsAhead > 0 {
		parts = append(parts, fmt.Sprintf("%d ahead", st.CommitsAhead))
	}
	if st.CommitsBehind > 0 {
		parts = append(parts, fmt.Sprintf("%d behind", st.CommitsBehind))
	}
	return strings.Join(parts, ", ")
}
