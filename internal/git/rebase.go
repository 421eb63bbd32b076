package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Rebase replays the current branch's commits onto ontoRef.
// A conflicted rebase and any other failure both surface as an error here;
// callers must classify by inspecting the conflicted-path set afterwards,
// never by matching error text.
func Rebase(ctx context.Context, dir, ontoRef string) error {
	if err := runGit(ctx, dir, "rebase", ontoRef); err != nil {
		return fmt.Errorf("failed to rebase onto %s: %v", ontoRef, err)
	}
	return nil
}

// RebaseContinue resumes an in-progress rebase after conflicts were staged.
// Fails if conflicted paths remain unresolved or unstaged.
func RebaseContinue(ctx context.Context, dir string) error {
	// core.editor=true keeps git from opening an editor for the
	// continued commit's message.
	if err := runGit(ctx, dir, "-c", "core.editor=true", "rebase", "--continue"); err != nil {
		return fmt.Errorf("failed to continue rebase: %v", err)
	}
	return nil
}

// RebaseAbort cancels an in-progress rebase and restores the pre-rebase
// branch tip.
func RebaseAbort(ctx context.Context, dir string) error {
	if err := runGit(ctx, dir, "rebase", "--abort"); err != nil {
		return fmt.Errorf("failed to abort rebase: %v", err)
	}
	return nil
}

// RebaseInProgress reports whether rebase control metadata exists for the
// repository at dir. Works from linked worktrees, where the metadata lives
// under the main repository's .git/worktrees/<name>/ directory.
func RebaseInProgress(ctx context.Context, dir string) (bool, error) {
	for _, state := range []string{"rebase-merge", "rebase-apply"} {
		output, err := outputGit(ctx, dir, "rev-parse", "--git-path", state)
		if err != nil {
			return false, fmt.Errorf("failed to locate %s metadata: %v", state, err)
		}
		path := strings.TrimSpace(string(output))
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		if _, err := os.Stat(path); err == nil {
			return true, nil
		}
	}
	return false, nil
}

// ConflictedFiles returns the paths currently marked conflicted, in the
// order git reports them.
func ConflictedFiles(ctx context.Context, dir string) ([]string, error) {
	output, err := outputGit(ctx, dir, "diff", "--name-only", "--diff-filter=U")
	if err != nil {
		return nil, fmt.Errorf("failed to list conflicted files: %v", err)
	}
	var files []string
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// UnmergedEntry describes one conflicted path from git status.
type UnmergedEntry struct {
	Code string // two-letter porcelain XY code, e.g. "UU" or "DU"
	Path string
}

// DeletionConflict reports whether the entry is a conflict where one side
// deleted the file (no working-tree content to resolve).
func (e UnmergedEntry) DeletionConflict() bool {
	return strings.Contains(e.Code, "D")
}

// UnmergedEntries returns the conflicted paths with their porcelain status
// codes, in the order git reports them.
func UnmergedEntries(ctx context.Context, dir string) ([]UnmergedEntry, error) {
	output, err := outputGit(ctx, dir, "status", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %v", err)
	}
	return parseUnmerged(output), nil
}

// parseUnmerged extracts unmerged entries from porcelain v1 status output.
func parseUnmerged(output []byte) []UnmergedEntry {
	var entries []UnmergedEntry
	for _, line := range strings.Split(string(output), "\n") {
		if len(line) < 4 {
			continue
		}
		switch code := line[:2]; code {
		case "DD", "AU", "UD", "UA", "DU", "AA", "UU":
			entries = append(entries, UnmergedEntry{Code: code, Path: unquotePath(line[3:])})
		}
	}
	return entries
}

// unquotePath undoes git's C-style quoting of paths with special characters.
func unquotePath(path string) string {
	if len(path) >= 2 && path[0] == '"' && path[len(path)-1] == '"' {
		if unquoted, err := strconv.Unquote(path); err == nil {
			return unquoted
		}
	}
	return path
}
