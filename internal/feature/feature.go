package feature

import (
	"fmt"
	"path/filepath"
	"strings"
)

// BranchPrefix is prepended to canonical feature names to form branch names.
const BranchPrefix = "feature/"

// NameError indicates a feature name that canonicalizes to nothing.
type NameError struct {
	Name string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("invalid feature name %q: must contain at least one letter or digit", e.Name)
}

// Canonicalize normalizes a feature name: lowercased, with every run of
// non-alphanumeric characters collapsed to a single hyphen. The canonical
// name is fixed at worktree creation time and derives the branch name and
// worktree path.
func Canonicalize(name string) (string, error) {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	canonical := b.String()
	if canonical == "" {
		return "", &NameError{Name: name}
	}
	return canonical, nil
}

// BranchName returns the branch for a canonical feature name,
// e.g. "feature/login-flow".
func BranchName(canonical string) string {
	return BranchPrefix + canonical
}

// WorktreePath returns the worktree directory for a canonical feature name
// under the configured root.
func WorktreePath(root, canonical string) string {
	return filepath.Join(root, canonical)
}
