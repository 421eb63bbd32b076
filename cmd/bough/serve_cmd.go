package main

import (
	"github.com/spf13/cobra"

	"github.com/boughdev/bough/internal/log"
	"github.com/boughdev/bough/internal/tools"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Run the MCP server on stdio",
		Aliases: []string{"mcp"},
		GroupID: GroupServer,
		Args:    cobra.NoArgs,
		Long: `Run the MCP server on stdio.

Exposes the feature workflow (start_feature, sync_feature,
feature_status, cleanup_feature, pr_feedback, verify_setup) as MCP tools
for agent clients. Stdout carries the protocol, diagnostics go to
stderr; combine with --verbose to watch the git commands run per
request.

The configuration is not validated up front so verify_setup can diagnose
a broken install; the other tools report configuration problems per
call.`,
		Example: `  bough serve

  # Claude Code registration
  claude mcp add bough -- bough serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tools.New(cfg, version, log.FromContext(cmd.Context())).Serve()
		},
	}

	return cmd
}
