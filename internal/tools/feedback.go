package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/boughdev/bough/internal/config"
	"github.com/boughdev/bough/internal/feature"
	"github.com/boughdev/bough/internal/github"
)

// FeedbackTool collects pull request review feedback for a feature.
type FeedbackTool struct {
	cfg *config.Config
}

func NewFeedbackTool(cfg *config.Config) *FeedbackTool {
	return &FeedbackTool{cfg: cfg}
}

func (t *FeedbackTool) Definition() mcp.Tool {
	return mcp.NewTool("pr_feedback",
		mcp.WithDescription("Fetch the pull request review feedback for a feature branch: reviews, inline comments grouped per file, and instructions for addressing them in the feature worktree. Requires the gh CLI to be authenticated."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the feature whose pull request to inspect."),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func (t *FeedbackTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := t.cfg.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := github.CheckGH(ctx); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	feat, err := feature.NewManager(t.cfg).Find(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	fb, err := github.FetchFeedback(ctx, feat.Path, feat.Branch)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(github.RenderFeedback(fb)), nil
}
