package git

import (
	"context"
	"fmt"
)

// Stash creates a stash entry with a specific message.
// Includes untracked files (-u) to capture all uncommitted changes.
func Stash(ctx context.Context, dir string) error {
	if err := runGit(ctx, dir, "stash", "push", "-u", "-m", "bough autostash"); err != nil {
		return fmt.Errorf("failed to stash changes: %v", err)
	}
	return nil
}

// StashPop applies and removes the most recent stash entry.
func StashPop(ctx context.Context, dir string) error {
	if err := runGit(ctx, dir, "stash", "pop"); err != nil {
		return fmt.Errorf("failed to pop stash: %v", err)
	}
	return nil
}
