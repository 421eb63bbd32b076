package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boughdev/bough/internal/config"
	"github.com/boughdev/bough/internal/feature"
	"github.com/boughdev/bough/internal/output"
	"github.com/boughdev/bough/internal/ui/prompt"
)

func newCleanupCmd() *cobra.Command {
	var (
		deleteBranch bool
		force        bool
		yes          bool
	)

	cmd := &cobra.Command{
		Use:     "cleanup <name>",
		Short:   "Remove a feature worktree",
		Aliases: []string{"rm"},
		GroupID: GroupCore,
		Args:    cobra.ExactArgs(1),
		Long: `Remove a feature worktree after the work is merged or abandoned.

Worktrees with uncommitted changes are refused unless --force is given.
The feature branch stays around unless --delete-branch is set; with
--force the branch is deleted even when it is not merged.`,
		Example: `  bough cleanup login-flow                  # remove worktree, keep branch
  bough cleanup login-flow -d               # also delete feature/login-flow
  bough cleanup login-flow -d --force -y    # no questions asked`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			if err := cfg.Validate(); err != nil {
				return err
			}

			feat, err := feature.NewManager(cfg).Find(ctx, args[0])
			if err != nil {
				return err
			}

			if !yes {
				question := fmt.Sprintf("Remove worktree %s?", feat.Path)
				if deleteBranch {
					question = fmt.Sprintf("Remove worktree %s and delete %s?", feat.Path, feat.Branch)
				}
				res, err := prompt.Confirm(question)
				if err != nil {
					return err
				}
				if res.Cancelled {
					return fmt.Errorf("confirmation required: rerun with --yes")
				}
				if !res.Confirmed {
					out.Println("Aborted")
					return nil
				}
			}

			return removeFeature(ctx, cfg, out, feat.Name, deleteBranch, force)
		},
	}

	cmd.Flags().BoolVarP(&deleteBranch, "delete-branch", "d", false, "Delete the feature branch too")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Remove even with uncommitted changes")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	cmd.ValidArgsFunction = completeFeatureNames

	return cmd
}

func removeFeature(ctx context.Context, cfg *config.Config, out *output.Printer, name string, deleteBranch, force bool) error {
	m := feature.NewManager(cfg)
	feat, err := m.Find(ctx, name)
	if err != nil {
		return err
	}

	if err := m.Remove(ctx, name, deleteBranch, force); err != nil {
		return err
	}

	out.Printf("Removed feature %s\n", feat.Name)
	out.Printf("  worktree: %s\n", feat.Path)
	if deleteBranch {
		out.Printf("  deleted branch %s\n", feat.Branch)
	}
	return nil
}
