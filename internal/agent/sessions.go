package agent

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// The claude CLI keeps per-project session data under
// <config dir>/projects/<encoded path>. Linking a worktree's entry to the
// primary repository's entry lets agent runs in the worktree share history
// and memory with the main checkout.

// encodeSessionPath converts an absolute path to the directory name the
// agent uses under its projects dir: separators become hyphens.
func encodeSessionPath(absPath string) string {
	absPath = strings.TrimRight(filepath.Clean(absPath), string(filepath.Separator))
	return strings.ReplaceAll(absPath, string(filepath.Separator), "-")
}

// sessionRoot returns the agent's config directory, honoring
// CLAUDE_CONFIG_DIR.
func sessionRoot() (string, error) {
	if dir := os.Getenv("CLAUDE_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %v", err)
	}
	return filepath.Join(home, ".claude"), nil
}

// LinkSessions points the worktree's agent session directory at the
// primary repository's. An existing real directory is never replaced, so
// session data recorded before linking survives. A symlink with a stale
// target is rewritten.
func LinkSessions(repoPath, worktreePath string) error {
	repoResolved, err := filepath.EvalSymlinks(repoPath)
	if err != nil {
		return fmt.Errorf("failed to resolve repository path: %v", err)
	}
	wtResolved, err := filepath.EvalSymlinks(worktreePath)
	if err != nil {
		return fmt.Errorf("failed to resolve worktree path: %v", err)
	}
	if repoResolved == wtResolved {
		return nil
	}

	root, err := sessionRoot()
	if err != nil {
		return err
	}
	projects := filepath.Join(root, "projects")
	repoDir := filepath.Join(projects, encodeSessionPath(repoResolved))
	wtDir := filepath.Join(projects, encodeSessionPath(wtResolved))

	if err := os.MkdirAll(repoDir, 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %v", err)
	}

	if info, err := os.Lstat(wtDir); err == nil {
		if info.Mode()&os.ModeSymlink == 0 {
			// Real directory with session data, leave it alone.
			return nil
		}
		if target, err := os.Readlink(wtDir); err == nil && target == repoDir {
			return nil
		}
		if err := os.Remove(wtDir); err != nil {
			return fmt.Errorf("failed to remove stale session link: %v", err)
		}
	}

	return os.Symlink(repoDir, wtDir)
}

// UnlinkSessions removes the worktree's session link. Real directories are
// left untouched. Works on worktree paths that no longer exist.
func UnlinkSessions(worktreePath string) error {
	root, err := sessionRoot()
	if err != nil {
		return err
	}

	resolved, err := filepath.EvalSymlinks(worktreePath)
	if err != nil {
		resolved = filepath.Clean(worktreePath)
	}

	wtDir := filepath.Join(root, "projects", encodeSessionPath(resolved))
	info, err := os.Lstat(wtDir)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return nil
	}
	return os.Remove(wtDir)
}
