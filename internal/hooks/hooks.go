// Package hooks runs user-configured shell commands after feature
// lifecycle events.
//
// Hooks come from the [hooks] config section and run with sh -c in the
// feature worktree. {placeholder} tokens expand to shell-quoted values,
// so a branch name or path cannot break out of the command. Hook
// failures are warnings, they never fail the operation that triggered
// them, and hook output is captured rather than inherited so stdout
// stays clean for protocol traffic.
package hooks

import (
	"context"
	"os/exec"
	"strings"

	"github.com/boughdev/bough/internal/log"
)

// Context holds the values substituted into hook commands.
type Context struct {
	Worktree string // absolute path of the feature worktree
	Repo     string // absolute path of the primary checkout
	Branch   string // feature branch name
	Feature  string // canonical feature name
	Base     string // base branch name
}

// shellQuote escapes a string for safe use in shell commands.
// Single quotes preserve everything literally except single quotes
// themselves, so "it's" becomes 'it'\''s'.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}

// Expand replaces {worktree}, {repo}, {branch}, {feature} and {base}
// in command with shell-quoted values from hctx.
func Expand(command string, hctx Context) string {
	r := strings.NewReplacer(
		"{worktree}", shellQuote(hctx.Worktree),
		"{repo}", shellQuote(hctx.Repo),
		"{branch}", shellQuote(hctx.Branch),
		"{feature}", shellQuote(hctx.Feature),
		"{base}", shellQuote(hctx.Base),
	)
	return r.Replace(command)
}

// Run executes each command in order with the worktree as working
// directory. A failing command is reported as a warning and does not
// stop the remaining commands.
func Run(ctx context.Context, commands []string, hctx Context) {
	if len(commands) == 0 {
		return
	}

	l := log.FromContext(ctx)
	for _, command := range commands {
		expanded := Expand(command, hctx)
		l.Debug("running hook", "dir", hctx.Worktree, "command", expanded)

		sh := exec.CommandContext(ctx, "sh", "-c", expanded)
		sh.Dir = hctx.Worktree

		out, err := sh.CombinedOutput()
		if len(out) > 0 {
			l.Debug("hook output", "output", strings.TrimSpace(string(out)))
		}
		if err != nil {
			l.Printf("warning: hook %q failed: %v\n", command, err)
		}
	}
}
