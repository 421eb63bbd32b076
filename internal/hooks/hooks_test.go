package hooks

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/boughdev/bough/internal/log"
)

func TestShellQuote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Plain", input: "main", want: "'main'"},
		{name: "Spaces", input: "my feature", want: "'my feature'"},
		{name: "SingleQuote", input: "it's", want: `'it'\''s'`},
		{name: "Empty", input: "", want: "''"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := shellQuote(tt.input); got != tt.want {
				t.Errorf("shellQuote(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExpand(t *testing.T) {
	t.Parallel()

	hctx := Context{
		Worktree: "/repos/app-login-flow",
		Repo:     "/repos/app",
		Branch:   "feature/login-flow",
		Feature:  "login-flow",
		Base:     "main",
	}

	got := Expand("npm install --prefix {worktree} && echo {feature} {base}", hctx)
	want := "npm install --prefix '/repos/app-login-flow' && echo 'login-flow' 'main'"
	if got != want {
		t.Errorf("Expand = %q, want %q", got, want)
	}
}

func TestExpandQuotesMetacharacters(t *testing.T) {
	t.Parallel()

	hctx := Context{Branch: "feature/x'; touch /tmp/pwned; '"}

	got := Expand("echo {branch}", hctx)
	want := `echo 'feature/x'\''; touch /tmp/pwned; '\'''`
	if got != want {
		t.Errorf("Expand = %q, want %q", got, want)
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	hctx := Context{Worktree: dir, Feature: "login-flow"}

	Run(context.Background(), []string{"echo {feature} > marker.txt"}, hctx)

	data, err := os.ReadFile(filepath.Join(dir, "marker.txt"))
	if err != nil {
		t.Fatalf("hook did not run: %v", err)
	}
	if strings.TrimSpace(string(data)) != "login-flow" {
		t.Errorf("marker content = %q, want %q", data, "login-flow")
	}
}

func TestRunFailureIsWarning(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var buf bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(&buf, false, false))

	Run(ctx, []string{"exit 1", "echo ok > after.txt"}, Context{Worktree: dir})

	if !strings.Contains(buf.String(), "warning: hook") {
		t.Errorf("expected warning in log output, got %q", buf.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "after.txt")); err != nil {
		t.Error("command after a failing hook did not run")
	}
}

func TestRunNoCommands(t *testing.T) {
	t.Parallel()

	// Must not touch the filesystem or panic with an empty list.
	Run(context.Background(), nil, Context{Worktree: "/does/not/exist"})
}
