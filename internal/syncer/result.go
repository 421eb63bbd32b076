package syncer

import (
	"fmt"
	"strings"
)

// Status tags the terminal outcome of a sync attempt.
type Status string

const (
	// StatusUpToDate: the base branch had nothing new, no rebase ran.
	StatusUpToDate Status = "up_to_date"
	// StatusSynced: the rebase completed without conflicts.
	StatusSynced Status = "synced_clean"
	// StatusResolved: conflicts came up and the agent resolved them.
	StatusResolved Status = "synced_after_resolution"
	// StatusManual: conflicts remain, the rebase was aborted and a
	// conflict report written.
	StatusManual Status = "manual_intervention_required"
)

// Success reports whether the attempt left the branch synced.
func (s Status) Success() bool {
	return s == StatusUpToDate || s == StatusSynced || s == StatusResolved
}

// Result is the outcome of one sync attempt. Conflicts and failed
// resolution are results, not errors: only configuration, precondition and
// transport problems surface as Go errors from [Syncer.Sync].
type Result struct {
	Feature      string   `json:"feature"`
	Branch       string   `json:"branch"`
	Status       Status   `json:"status"`
	CommitsAhead int      `json:"commits_ahead"`
	Lines        []string `json:"lines"`
	ReportPath   string   `json:"report_path,omitempty"`
	Conflicted   []string `json:"conflicted,omitempty"`
}

// note appends a narrative line. Lines accumulate in the order the state
// machine produced them.
func (r *Result) note(format string, args ...any) {
	r.Lines = append(r.Lines, fmt.Sprintf(format, args...))
}

// Render formats the result for terminal or tool output.
func (r *Result) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", r.Feature, r.Status)
	for _, line := range r.Lines {
		fmt.Fprintf(&b, "  %s\n", line)
	}
	return b.String()
}

func aheadLine(n int, base string) string {
	if n == 1 {
		return fmt.Sprintf("1 commit ahead of %s", base)
	}
	return fmt.Sprintf("%d commits ahead of %s", n, base)
}

func fileCount(n int) string {
	if n == 1 {
		return "1 conflicted file"
	}
	return fmt.Sprintf("%d conflicted files", n)
}
