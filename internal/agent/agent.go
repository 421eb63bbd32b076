// Package agent delegates conflict resolution to an external coding agent.
//
// The agent binary (claude by default) is spawned inside the conflicted
// worktree with a prompt on stdin describing the stopped rebase. Its exit
// status and output are recorded but never trusted: whether resolution
// succeeded is decided only by re-querying git for remaining conflicted
// paths after the process ends.
package agent

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/boughdev/bough/internal/config"
	"github.com/boughdev/bough/internal/conflict"
	"github.com/boughdev/bough/internal/git"
	"github.com/boughdev/bough/internal/log"
)

// ErrAgentNotFound indicates the resolution agent binary is not installed.
var ErrAgentNotFound = errors.New("resolution agent not found in PATH")

// CheckAgent verifies the agent binary is available.
func CheckAgent(command string) error {
	if _, err := exec.LookPath(command); err != nil {
		return fmt.Errorf("%w: %s", ErrAgentNotFound, command)
	}
	return nil
}

// Request describes one resolution attempt.
type Request struct {
	Branch    string
	BaseRef   string
	Dir       string
	Conflicts *conflict.Set
}

// Outcome is the result of a resolution attempt. Err records a process
// failure (spawn error, nonzero exit, timeout) but does not decide the
// outcome: Resolved is true exactly when no conflicted paths remain.
type Outcome struct {
	Resolved   bool
	Remaining  []string
	Transcript string
	Err        error
}

// runFunc spawns the agent process and returns its combined output.
type runFunc func(ctx context.Context, dir, command string, args []string, stdin string) (string, error)

// conflictedFunc queries the paths still conflicted in a worktree.
type conflictedFunc func(ctx context.Context, dir string) ([]string, error)

// Resolver runs the external agent against conflicted worktrees.
type Resolver struct {
	command string
	args    []string
	timeout time.Duration

	run        runFunc
	conflicted conflictedFunc
}

func NewResolver(cfg *config.Config) *Resolver {
	return &Resolver{
		command:    cfg.Agent.Command,
		args:       cfg.Agent.Args,
		timeout:    cfg.Agent.Timeout(),
		run:        runAgent,
		conflicted: git.ConflictedFiles,
	}
}

// Resolve spawns the agent in the conflicted worktree and judges the
// attempt by the conflicted paths left afterwards. The returned error is
// reserved for infrastructure failures (the post-run git query); agent
// process failures land in Outcome.Err instead.
func (r *Resolver) Resolve(ctx context.Context, req *Request) (*Outcome, error) {
	prompt, err := buildPrompt(req)
	if err != nil {
		return nil, err
	}

	l := log.FromContext(ctx)
	l.Debug("delegating conflict resolution",
		"agent", r.command,
		"dir", req.Dir,
		"files", len(req.Conflicts.Files),
		"timeout", r.timeout,
	)

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	out := &Outcome{}
	transcript, runErr := r.run(runCtx, req.Dir, r.command, r.args, prompt)
	out.Transcript = transcript
	switch {
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		out.Err = fmt.Errorf("resolution agent timed out after %s", r.timeout)
	case runErr != nil:
		out.Err = fmt.Errorf("resolution agent failed: %v", runErr)
	}

	// Success is judged by git state, not by the agent's exit status.
	remaining, err := r.conflicted(ctx, req.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to check conflicts after agent run: %v", err)
	}
	out.Remaining = remaining
	out.Resolved = len(remaining) == 0

	if out.Err != nil {
		l.Debug("agent run ended with error", "error", out.Err, "remaining", len(remaining))
	}
	return out, nil
}

// runAgent is the production runFunc: the agent binary started in the
// worktree with the prompt on stdin, stdout and stderr merged.
func runAgent(ctx context.Context, dir, command string, args []string, stdin string) (string, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = dir
	cmd.Stdin = strings.NewReader(stdin)

	out, err := cmd.CombinedOutput()
	transcript := strings.TrimSpace(string(out))
	if err != nil {
		if _, lookErr := exec.LookPath(command); lookErr != nil {
			return transcript, fmt.Errorf("%w: %s", ErrAgentNotFound, command)
		}
		return transcript, err
	}
	return transcript, nil
}
