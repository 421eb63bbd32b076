package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boughdev/bough/internal/config"
	"github.com/boughdev/bough/internal/feature"
	"github.com/boughdev/bough/internal/hooks"
	"github.com/boughdev/bough/internal/output"
	"github.com/boughdev/bough/internal/ui/progress"
)

func newStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "start <name>",
		Short:   "Start a feature in a fresh worktree",
		Aliases: []string{"new"},
		GroupID: GroupCore,
		Args:    cobra.ExactArgs(1),
		Long: `Start a feature in a fresh worktree.

Creates the branch feature/<name> off the fetched base branch and checks
it out as a worktree under the configured root. Git-ignored files
matching the preserve patterns are copied over from the primary
checkout, then the post_start hooks run inside the new worktree.`,
		Example: `  bough start login-flow          # worktree at <root>/login-flow on feature/login-flow
  cd $(bough path login-flow)     # jump into it`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			sp := progress.New("creating worktree for " + args[0])
			sp.Start()
			feat, copied, err := startFeature(ctx, cfg, args[0])
			sp.Stop()
			if err != nil {
				return err
			}

			printStarted(out, feat, copied)
			return nil
		},
	}

	return cmd
}

// startFeature provisions the worktree and runs the post_start hooks.
// Hook failures are warnings and do not undo the start.
func startFeature(ctx context.Context, cfg *config.Config, name string) (*feature.Feature, []string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	feat, copied, err := feature.NewManager(cfg).Start(ctx, name)
	if err != nil {
		return nil, nil, err
	}

	hooks.Run(ctx, cfg.Hooks.PostStart, hooks.Context{
		Worktree: feat.Path,
		Repo:     cfg.RepoPath(),
		Branch:   feat.Branch,
		Feature:  feat.Name,
		Base:     cfg.BaseBranch,
	})

	return feat, copied, nil
}

func printStarted(out *output.Printer, feat *feature.Feature, copied []string) {
	out.Printf("Started feature %s\n", feat.Name)
	out.Printf("  branch:   %s\n", feat.Branch)
	out.Printf("  worktree: %s\n", feat.Path)
	if len(copied) > 0 {
		out.Printf("  copied:   %s\n", strings.Join(copied, ", "))
	}
}
