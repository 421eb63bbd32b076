package git

import (
	"context"
	"fmt"
	"strings"
)

// Worktree describes one entry from git worktree list.
type Worktree struct {
	Path   string `json:"path"`
	Head   string `json:"head"`
	Branch string `json:"branch"` // short branch name, empty when detached
	Bare   bool   `json:"bare"`
}

// AddWorktree creates a new worktree at path with a new branch created from
// baseRef.
func AddWorktree(ctx context.Context, repoDir, path, branch, baseRef string) error {
	if err := runGit(ctx, repoDir, "worktree", "add", "-b", branch, path, baseRef); err != nil {
		return fmt.Errorf("failed to add worktree: %v", err)
	}
	return nil
}

// RemoveWorktree removes the worktree at path. With force, removes even if
// the worktree is dirty or locked.
func RemoveWorktree(ctx context.Context, repoDir, path string, force bool) error {
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, path)
	if err := runGit(ctx, repoDir, args...); err != nil {
		return fmt.Errorf("failed to remove worktree: %v", err)
	}
	return nil
}

// PruneWorktrees removes stale worktree administrative entries.
func PruneWorktrees(ctx context.Context, repoDir string) error {
	if err := runGit(ctx, repoDir, "worktree", "prune"); err != nil {
		return fmt.Errorf("failed to prune worktrees: %v", err)
	}
	return nil
}

// ListWorktrees returns all worktrees registered for the repository at
// repoDir, including the main checkout.
func ListWorktrees(ctx context.Context, repoDir string) ([]Worktree, error) {
	output, err := outputGit(ctx, repoDir, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("failed to list worktrees: %v", err)
	}
	return parseWorktreeList(output), nil
}

// parseWorktreeList parses git worktree list --porcelain output.
// Entries are blocks of "worktree <path>" / "HEAD <sha>" /
// "branch refs/heads/<name>" lines separated by blank lines.
func parseWorktreeList(output []byte) []Worktree {
	var worktrees []Worktree
	var current *Worktree

	flush := func() {
		if current != nil {
			worktrees = append(worktrees, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "worktree "):
			flush()
			current = &Worktree{Path: strings.TrimPrefix(line, "worktree ")}
		case current == nil:
			// stray line before any worktree entry
		case strings.HasPrefix(line, "HEAD "):
			current.Head = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch "):
			ref := strings.TrimPrefix(line, "branch ")
			current.Branch = strings.TrimPrefix(ref, "refs/heads/")
		case line == "bare":
			current.Bare = true
		}
	}
	flush()

	return worktrees
}
