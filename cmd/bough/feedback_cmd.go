package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/boughdev/bough/internal/config"
	"github.com/boughdev/bough/internal/feature"
	"github.com/boughdev/bough/internal/github"
	"github.com/boughdev/bough/internal/output"
	"github.com/boughdev/bough/internal/ui/progress"
)

func newFeedbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "feedback <name>",
		Short:   "Show PR reviews and comments for a feature",
		Aliases: []string{"fb"},
		GroupID: GroupCore,
		Args:    cobra.ExactArgs(1),
		Long: `Show the pull request feedback for a feature branch.

Fetches reviews, review comments and issue comments for the pull
request belonging to feature/<name> via the gh CLI. Fails when gh is not
installed or not authenticated, or when the branch has no open PR.`,
		Example: `  bough feedback login-flow`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			sp := progress.New("fetching PR feedback for " + args[0])
			sp.Start()
			text, err := fetchFeedback(ctx, cfg, args[0])
			sp.Stop()
			if err != nil {
				return err
			}

			out.Print(text)
			return nil
		},
	}

	cmd.ValidArgsFunction = completeFeatureNames

	return cmd
}

func fetchFeedback(ctx context.Context, cfg *config.Config, name string) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	if err := github.CheckGH(ctx); err != nil {
		return "", err
	}

	feat, err := feature.NewManager(cfg).Find(ctx, name)
	if err != nil {
		return "", err
	}

	fb, err := github.FetchFeedback(ctx, feat.Path, feat.Branch)
	if err != nil {
		return "", err
	}
	return github.RenderFeedback(fb), nil
}
