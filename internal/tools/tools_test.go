package tools

import (
	"context"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/boughdev/bough/internal/config"
	"github.com/boughdev/bough/internal/log"
)

type handler interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

func callReq(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()

	if len(res.Content) == 0 {
		t.Fatal("result has no content")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want mcp.TextContent", res.Content[0])
	}
	return tc.Text
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Root = "/nonexistent/bough-test-root"
	return &cfg
}

func TestDefinitions(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	tests := []struct {
		tool     handler
		name     string
		required []string
	}{
		{NewStartTool(cfg), "start_feature", []string{"name"}},
		{NewSyncTool(cfg), "sync_feature", []string{"name"}},
		{NewStatusTool(cfg), "feature_status", nil},
		{NewCleanupTool(cfg), "cleanup_feature", []string{"name"}},
		{NewFeedbackTool(cfg), "pr_feedback", []string{"name"}},
		{NewVerifyTool(cfg), "verify_setup", nil},
	}

	for _, tt := range tests {
		def := tt.tool.Definition()
		if def.Name != tt.name {
			t.Errorf("tool name = %q, want %q", def.Name, tt.name)
		}
		if def.Description == "" {
			t.Errorf("%s: empty description", tt.name)
		}
		for _, param := range tt.required {
			if !slices.Contains(def.InputSchema.Required, param) {
				t.Errorf("%s: required params %v missing %q", tt.name, def.InputSchema.Required, param)
			}
		}
	}
}

func TestMissingNameArgument(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	tests := []struct {
		name string
		tool handler
	}{
		{"Start", NewStartTool(cfg)},
		{"Sync", NewSyncTool(cfg)},
		{"Cleanup", NewCleanupTool(cfg)},
		{"Feedback", NewFeedbackTool(cfg)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := tt.tool.Handle(context.Background(), callReq(tt.tool.Definition().Name, nil))
			if err != nil {
				t.Fatalf("Handle returned protocol error: %v", err)
			}
			if !res.IsError {
				t.Error("expected error result for missing name")
			}
		})
	}
}

func TestUnconfiguredRoot(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	tests := []struct {
		name string
		tool handler
		args map[string]any
	}{
		{"Start", NewStartTool(&cfg), map[string]any{"name": "login-flow"}},
		{"Sync", NewSyncTool(&cfg), map[string]any{"name": "login-flow"}},
		{"Status", NewStatusTool(&cfg), nil},
		{"Cleanup", NewCleanupTool(&cfg), map[string]any{"name": "login-flow"}},
		{"Feedback", NewFeedbackTool(&cfg), map[string]any{"name": "login-flow"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := tt.tool.Handle(context.Background(), callReq(tt.tool.Definition().Name, tt.args))
			if err != nil {
				t.Fatalf("Handle returned protocol error: %v", err)
			}
			if !res.IsError {
				t.Fatal("expected error result without configured root")
			}
			if text := resultText(t, res); !strings.Contains(text, "root directory is not configured") {
				t.Errorf("error text = %q, want config guidance", text)
			}
		})
	}
}

func TestVerifyReportsProblems(t *testing.T) {
	t.Parallel()

	// Unconfigured root: verify_setup must still answer with a report
	// instead of an error result.
	cfg := config.Default()
	tool := NewVerifyTool(&cfg)

	res, err := tool.Handle(context.Background(), callReq("verify_setup", nil))
	if err != nil {
		t.Fatalf("Handle returned protocol error: %v", err)
	}
	if res.IsError {
		t.Fatal("verify_setup must report problems as text, not as an error result")
	}

	text := resultText(t, res)
	if !strings.Contains(text, "settings") {
		t.Errorf("report missing settings check:\n%s", text)
	}
	if !strings.Contains(text, "Setup has problems") {
		t.Errorf("report missing problem summary:\n%s", text)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	s := New(testConfig(), "test", log.New(io.Discard, false, false))
	if s == nil || s.mcp == nil {
		t.Fatal("New returned incomplete server")
	}
}
