package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/boughdev/bough/internal/config"
	"github.com/boughdev/bough/internal/feature"
	"github.com/boughdev/bough/internal/hooks"
	"github.com/boughdev/bough/internal/syncer"
)

// SyncTool rebases a feature branch onto the current base branch.
type SyncTool struct {
	cfg *config.Config
}

func NewSyncTool(cfg *config.Config) *SyncTool {
	return &SyncTool{cfg: cfg}
}

func (t *SyncTool) Definition() mcp.Tool {
	return mcp.NewTool("sync_feature",
		mcp.WithDescription("Sync a feature branch with the base branch: fetch, rebase, and on conflicts delegate resolution to the configured agent. Returns the attempt narrative. Status manual_intervention_required means conflicts remain for a human: the rebase was aborted, the branch is unchanged and a conflict report was written to the worktree."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the feature to sync."),
		),
	)
}

func (t *SyncTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := t.cfg.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := syncer.New(t.cfg).Sync(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if res.Status.Success() {
		if path, perr := feature.NewManager(t.cfg).Path(res.Feature); perr == nil {
			hooks.Run(ctx, t.cfg.Hooks.PostSync, hooks.Context{
				Worktree: path,
				Repo:     t.cfg.RepoPath(),
				Branch:   res.Branch,
				Feature:  res.Feature,
				Base:     t.cfg.BaseBranch,
			})
		}
	}

	var b strings.Builder
	b.WriteString(res.Render())
	if res.Status == syncer.StatusManual {
		b.WriteString("\nConflicted files:\n")
		for _, p := range res.Conflicted {
			fmt.Fprintf(&b, "  - %s\n", p)
		}
		fmt.Fprintf(&b, "Resolve them in the worktree, guided by %s, then sync again.\n", res.ReportPath)
	}
	return mcp.NewToolResultText(b.String()), nil
}
