// Package tools implements the MCP surface of bough.
//
// Each tool is a struct pairing an [mcp.Tool] definition with its handler.
// Handlers never return Go errors: configuration, precondition and
// transport failures become tool error results, and domain outcomes such as
// unresolved conflicts are ordinary text results. The server speaks the MCP
// stdio protocol on stdout, which is why every diagnostic in the codebase
// writes to stderr.
package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/boughdev/bough/internal/config"
	"github.com/boughdev/bough/internal/log"
)

const instructions = `bough manages git worktree based feature development. Each feature lives
in its own worktree on its own branch and is kept in sync with the base
branch by rebasing. Conflicts during sync are handed to the configured
resolution agent; only conflicts the agent cannot fix come back to you.

Typical flow:
1. start_feature to begin work. It prints the worktree path; do all work there.
2. Commit in the feature worktree as usual.
3. sync_feature regularly to stay current with the base branch.
4. On manual_intervention_required, open the worktree, read CONFLICTS.md
   and resolve the listed files yourself.
5. pr_feedback collects review feedback once a pull request exists.
6. cleanup_feature removes the worktree after the branch is merged.

Run verify_setup when any tool reports configuration problems.`

// Server is the bough MCP server.
type Server struct {
	mcp    *server.MCPServer
	logger *log.Logger
}

// New builds the MCP server with all bough tools registered.
func New(cfg *config.Config, version string, logger *log.Logger) *Server {
	s := server.NewMCPServer(
		"bough",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	start := NewStartTool(cfg)
	s.AddTool(start.Definition(), start.Handle)

	sync := NewSyncTool(cfg)
	s.AddTool(sync.Definition(), sync.Handle)

	status := NewStatusTool(cfg)
	s.AddTool(status.Definition(), status.Handle)

	cleanup := NewCleanupTool(cfg)
	s.AddTool(cleanup.Definition(), cleanup.Handle)

	feedback := NewFeedbackTool(cfg)
	s.AddTool(feedback.Definition(), feedback.Handle)

	verify := NewVerifyTool(cfg)
	s.AddTool(verify.Definition(), verify.Handle)

	return &Server{mcp: s, logger: logger}
}

// Serve runs the server on stdio until the client disconnects. The bough
// logger is attached to every request context so git and hook diagnostics
// reach stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp, server.WithStdioContextFunc(
		func(ctx context.Context) context.Context {
			return log.WithLogger(ctx, s.logger)
		},
	))
}
