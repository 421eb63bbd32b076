package tools

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/boughdev/bough/internal/config"
	"github.com/boughdev/bough/internal/feature"
)

// StatusTool inspects one or all feature worktrees.
type StatusTool struct {
	cfg *config.Config
}

func NewStatusTool(cfg *config.Config) *StatusTool {
	return &StatusTool{cfg: cfg}
}

func (t *StatusTool) Definition() mcp.Tool {
	return mcp.NewTool("feature_status",
		mcp.WithDescription("Report the state of feature worktrees: branch, path, uncommitted changes, commits ahead of and behind the base branch, whether a rebase is mid-flight and whether a conflict report is waiting. Without a name, reports all features."),
		mcp.WithString("name",
			mcp.Description("Feature name. Omit to report all features."),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func (t *StatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := t.cfg.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	m := feature.NewManager(t.cfg)

	var names []string
	if name := req.GetString("name", ""); name != "" {
		names = []string{name}
	} else {
		all, err := m.Names(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		names = all
	}

	statuses := make([]feature.Status, 0, len(names))
	for _, name := range names {
		st, err := m.Status(ctx, name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		statuses = append(statuses, *st)
	}

	payload, err := json.MarshalIndent(map[string]any{"features": statuses}, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}
