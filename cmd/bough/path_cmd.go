package main

import (
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/boughdev/bough/internal/feature"
	"github.com/boughdev/bough/internal/log"
	"github.com/boughdev/bough/internal/output"
)

func newPathCmd() *cobra.Command {
	var copyToClipboard bool

	cmd := &cobra.Command{
		Use:     "path <name>",
		Short:   "Print a feature's worktree path for shell scripting",
		GroupID: GroupCore,
		Args:    cobra.ExactArgs(1),
		Long: `Print the worktree path of a feature.

Use with shell command substitution: cd $(bough path feature-name)`,
		Example: `  cd $(bough path login-flow)
  bough path --copy login-flow   # copy worktree path to clipboard`,
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

			// Copy to clipboard if requested
			if copyToClipboard {
				if err := clipboard.WriteAll(feat.Path); err != nil {
					log.FromContext(ctx).Printf("Warning: failed to copy to clipboard: %v\n", err)
				}
			}

			out.Println(feat.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy path to clipboard")

	cmd.ValidArgsFunction = completeFeatureNames

	return cmd
}
