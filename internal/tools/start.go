package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/boughdev/bough/internal/config"
	"github.com/boughdev/bough/internal/feature"
	"github.com/boughdev/bough/internal/hooks"
)

// StartTool creates a feature worktree with its branch.
type StartTool struct {
	cfg *config.Config
}

func NewStartTool(cfg *config.Config) *StartTool {
	return &StartTool{cfg: cfg}
}

func (t *StartTool) Definition() mcp.Tool {
	return mcp.NewTool("start_feature",
		mcp.WithDescription("Start work on a feature: create a git worktree with a new branch off the base branch, link agent sessions and copy preserved local files into it. All work on the feature happens in the returned worktree directory."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Feature name, e.g. \"login-flow\". Lowercased, spaces become hyphens."),
		),
	)
}

func (t *StartTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := t.cfg.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	feat, copied, err := feature.NewManager(t.cfg).Start(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	hooks.Run(ctx, t.cfg.Hooks.PostStart, hooks.Context{
		Worktree: feat.Path,
		Repo:     t.cfg.RepoPath(),
		Branch:   feat.Branch,
		Feature:  feat.Name,
		Base:     t.cfg.BaseBranch,
	})

	var b strings.Builder
	fmt.Fprintf(&b, "Started feature %s\n", feat.Name)
	fmt.Fprintf(&b, "  branch: %s\n", feat.Branch)
	fmt.Fprintf(&b, "  worktree: %s\n", feat.Path)
	if len(copied) > 0 {
		fmt.Fprintf(&b, "  copied: %s\n", strings.Join(copied, ", "))
	}
	return mcp.NewToolResultText(b.String()), nil
}
