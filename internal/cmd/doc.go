// Package cmd provides helpers for executing external commands with proper
// error handling.
//
// This package wraps [os/exec.Cmd] to capture stderr and include it in error
// messages, making command failures more informative for users. Commands are
// context-aware so a cancelled invocation kills the child process, and every
// execution is echoed to the context logger in verbose mode.
//
// # Usage
//
//	if err := cmd.RunContext(ctx, dir, "git", "fetch", "origin"); err != nil {
//	    // err contains stderr output if available
//	    return fmt.Errorf("fetch failed: %w", err)
//	}
//
//	// For commands that return output:
//	out, err := cmd.OutputContext(ctx, dir, "git", "status", "--porcelain")
//
// # Design Notes
//
// bough shells out to the git, gh and claude CLIs rather than using Go
// libraries. This approach is simpler, more reliable, and ensures
// compatibility with user configurations (SSH keys, credential helpers,
// agent authentication, etc.).
package cmd
