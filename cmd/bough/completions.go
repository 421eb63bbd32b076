package main

import (
	"github.com/spf13/cobra"

	"github.com/boughdev/bough/internal/feature"
)

// completeFeatureNames provides completion for feature name arguments.
func completeFeatureNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names, err := feature.NewManager(cfg).Names(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
