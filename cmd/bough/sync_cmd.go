package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boughdev/bough/internal/config"
	"github.com/boughdev/bough/internal/feature"
	"github.com/boughdev/bough/internal/hooks"
	"github.com/boughdev/bough/internal/log"
	"github.com/boughdev/bough/internal/output"
	"github.com/boughdev/bough/internal/syncer"
	"github.com/boughdev/bough/internal/ui/progress"
)

func newSyncCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "sync [name]",
		Short:   "Rebase a feature onto the latest base branch",
		GroupID: GroupCore,
		Args:    cobra.MaximumNArgs(1),
		Long: `Rebase a feature branch onto the freshly fetched base branch.

Local changes are stashed around the rebase. Conflicts are handed to the
configured agent; if conflicts remain afterwards the rebase is aborted,
the worktree restored, and the conflicted regions written to CONFLICTS.md
in the worktree for manual resolution.`,
		Example: `  bough sync login-flow
  bough sync --all          # sync every feature, one after another`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			if all {
				if len(args) > 0 {
					return fmt.Errorf("--all does not take a feature name")
				}
				return syncAll(ctx, cfg, out)
			}
			if len(args) == 0 {
				return fmt.Errorf("feature name required (or --all)")
			}

			sp := progress.New("syncing " + args[0])
			sp.Start()
			res, err := syncFeature(ctx, cfg, args[0])
			sp.Stop()
			if err != nil {
				return err
			}

			printSyncResult(out, res)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Sync all feature worktrees")

	cmd.ValidArgsFunction = completeFeatureNames

	return cmd
}

// syncFeature rebases one feature and runs the post_sync hooks when the
// branch ended up synced. A manual_intervention_required outcome is a
// result, not an error.
func syncFeature(ctx context.Context, cfg *config.Config, name string) (*syncer.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	res, err := syncer.New(cfg).Sync(ctx, name)
	if err != nil {
		return nil, err
	}

	if res.Status.Success() {
		if path, err := feature.NewManager(cfg).Path(res.Feature); err == nil {
			hooks.Run(ctx, cfg.Hooks.PostSync, hooks.Context{
				Worktree: path,
				Repo:     cfg.RepoPath(),
				Branch:   res.Branch,
				Feature:  res.Feature,
				Base:     cfg.BaseBranch,
			})
		}
	}

	return res, nil
}

// syncAll syncs every feature in name order, continuing past failures so
// one broken worktree does not block the rest.
func syncAll(ctx context.Context, cfg *config.Config, out *output.Printer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	names, err := feature.NewManager(cfg).Names(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		out.Println("No feature worktrees found")
		return nil
	}

	l := log.FromContext(ctx)
	var errs []error
	for i, name := range names {
		if i > 0 {
			out.Println()
		}

		sp := progress.New("syncing " + name)
		sp.Start()
		res, err := syncFeature(ctx, cfg, name)
		sp.Stop()
		if err != nil {
			l.Printf("warning: %s: %v\n", name, err)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}

		printSyncResult(out, res)
	}

	if len(errs) > 0 {
		return fmt.Errorf("failed to sync %d of %d features:\n%w", len(errs), len(names), errors.Join(errs...))
	}
	return nil
}

func printSyncResult(out *output.Printer, res *syncer.Result) {
	out.Print(res.Render())
	if res.Status != syncer.StatusManual {
		return
	}

	out.Println()
	out.Println("Conflicted files:")
	for _, path := range res.Conflicted {
		out.Printf("  - %s\n", path)
	}
	out.Printf("Resolve them in the worktree, guided by %s, then sync again.\n", res.ReportPath)
}
