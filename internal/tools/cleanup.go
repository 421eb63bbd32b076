package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/boughdev/bough/internal/config"
	"github.com/boughdev/bough/internal/feature"
)

// CleanupTool removes a feature worktree once the work is done.
type CleanupTool struct {
	cfg *config.Config
}

func NewCleanupTool(cfg *config.Config) *CleanupTool {
	return &CleanupTool{cfg: cfg}
}

func (t *CleanupTool) Definition() mcp.Tool {
	return mcp.NewTool("cleanup_feature",
		mcp.WithDescription("Remove a feature worktree, typically after its branch has been merged. Refuses worktrees with uncommitted changes unless force is set."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the feature to remove."),
		),
		mcp.WithBoolean("delete_branch",
			mcp.Description("Also delete the feature branch."),
		),
		mcp.WithBoolean("force",
			mcp.Description("Remove even with uncommitted changes, discarding them."),
		),
		mcp.WithDestructiveHintAnnotation(true),
	)
}

func (t *CleanupTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := t.cfg.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	deleteBranch := req.GetBool("delete_branch", false)
	force := req.GetBool("force", false)

	m := feature.NewManager(t.cfg)
	feat, err := m.Find(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := m.Remove(ctx, name, deleteBranch, force); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Removed feature %s\n", feat.Name)
	fmt.Fprintf(&b, "  worktree: %s\n", feat.Path)
	if deleteBranch {
		fmt.Fprintf(&b, "  deleted branch %s\n", feat.Branch)
	}
	return mcp.NewToolResultText(b.String()), nil
}
