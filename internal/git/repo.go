package git

import (
	"context"
	"fmt"
	"strings"
)

// Fetch retrieves the latest state of a branch from a remote without
// touching the working tree. Failures (network, auth) are returned as-is;
// retrying is the caller's concern.
func Fetch(ctx context.Context, dir, remote, branch string) error {
	if err := runGit(ctx, dir, "fetch", remote, branch, "--quiet"); err != nil {
		return fmt.Errorf("failed to fetch %s/%s: %v", remote, branch, err)
	}
	return nil
}

// Checkout switches the working tree to the given ref.
func Checkout(ctx context.Context, dir, ref string) error {
	if err := runGit(ctx, dir, "checkout", ref, "--quiet"); err != nil {
		return fmt.Errorf("failed to checkout %s: %v", ref, err)
	}
	return nil
}

// CurrentBranch returns the current branch name.
// Returns "(detached)" for detached HEAD state.
func CurrentBranch(ctx context.Context, dir string) (string, error) {
	output, err := outputGit(ctx, dir, "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("failed to get branch: %v", err)
	}
	branch := strings.TrimSpace(string(output))
	if branch == "" {
		return "(detached)", nil
	}
	return branch, nil
}

// refExists reports whether a fully qualified ref exists. for-each-ref
// exits zero with empty output for a missing ref, so a non-zero exit is a
// real failure rather than absence.
func refExists(ctx context.Context, dir, ref string) (bool, error) {
	output, err := outputGit(ctx, dir, "for-each-ref", "--format=%(refname)", ref)
	if err != nil {
		return false, fmt.Errorf("failed to check ref %s: %v", ref, err)
	}
	return len(strings.TrimSpace(string(output))) > 0, nil
}

// BranchExists reports whether the branch exists locally.
func BranchExists(ctx context.Context, dir, branch string) (bool, error) {
	return refExists(ctx, dir, "refs/heads/"+branch)
}

// RemoteRefExists reports whether the remote-tracking ref for a branch
// exists locally, e.g. refs/remotes/origin/main after a fetch.
func RemoteRefExists(ctx context.Context, dir, remote, branch string) (bool, error) {
	return refExists(ctx, dir, "refs/remotes/"+remote+"/"+branch)
}

// IsDirty reports whether the working tree has uncommitted changes,
// including untracked files.
func IsDirty(ctx context.Context, dir string) (bool, error) {
	output, err := outputGit(ctx, dir, "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("failed to get status: %v", err)
	}
	return len(strings.TrimSpace(string(output))) > 0, nil
}

// CommitsAhead returns the number of commits on ref that are not on base.
func CommitsAhead(ctx context.Context, dir, base, ref string) (int, error) {
	output, err := outputGit(ctx, dir, "rev-list", "--count", base+".."+ref)
	if err != nil {
		return 0, fmt.Errorf("failed to count commits: %v", err)
	}
	var count int
	if _, err := fmt.Sscanf(string(output), "%d", &count); err != nil {
		return 0, fmt.Errorf("failed to parse commit count %q: %v", strings.TrimSpace(string(output)), err)
	}
	return count, nil
}

// DeleteBranch deletes a local branch. With force, deletes even if the
// branch is not merged.
func DeleteBranch(ctx context.Context, dir, branch string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	if err := runGit(ctx, dir, "branch", flag, branch); err != nil {
		return fmt.Errorf("failed to delete branch %s: %v", branch, err)
	}
	return nil
}
