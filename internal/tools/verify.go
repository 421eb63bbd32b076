package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/boughdev/bough/internal/config"
	"github.com/boughdev/bough/internal/doctor"
)

// VerifyTool runs the setup checks.
type VerifyTool struct {
	cfg *config.Config
}

func NewVerifyTool(cfg *config.Config) *VerifyTool {
	return &VerifyTool{cfg: cfg}
}

func (t *VerifyTool) Definition() mcp.Tool {
	return mcp.NewTool("verify_setup",
		mcp.WithDescription("Verify the bough setup: git, configuration, worktree root, primary repository, resolution agent and gh authentication. Run this when other tools report configuration problems."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func (t *VerifyTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report := doctor.Run(ctx, t.cfg)

	out := report.Render()
	if report.Healthy() {
		out += "\nSetup looks good.\n"
	} else {
		out += "\nSetup has problems: fix the failed checks above.\n"
	}
	return mcp.NewToolResultText(out), nil
}
