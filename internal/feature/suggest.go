package feature

import (
	"github.com/sahilm/fuzzy"
)

// Suggest returns the closest known feature name to the given input, or ""
// when nothing resembles it. Used to build "did you mean" hints.
func Suggest(input string, known []string) string {
	if len(known) == 0 {
		return ""
	}
	matches := fuzzy.Find(input, known)
	if len(matches) == 0 {
		return ""
	}
	// A suggestion identical to the input is no help. This happens when a
	// worktree is still registered with git but its directory is gone.
	if matches[0].Str == input {
		return ""
	}
	return matches[0].Str
}
