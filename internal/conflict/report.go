package conflict

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReportName is the conflict report file written to the worktree root.
const ReportName = "CONFLICTS.md"

const filesHeading = "## Conflicted files"

// ReportPath returns where the conflict report for a worktree lives.
func ReportPath(dir string) string {
	return filepath.Join(dir, ReportName)
}

// Report returns the report path and whether a report currently exists.
func Report(dir string) (string, bool) {
	path := ReportPath(dir)
	_, err := os.Stat(path)
	return path, err == nil
}

// Render produces the conflict report text for a failed sync attempt.
// [ParseReportPaths] recovers the conflicted paths from the rendered text,
// so the file list section is machine-readable as well as human-readable.
func Render(set *Set, branch, baseRef string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Conflicts: %s onto %s\n\n", branch, baseRef)
	fmt.Fprintf(&b, "Rebasing `%s` onto `%s` stopped on conflicts that were not\n", branch, baseRef)
	b.WriteString("resolved automatically. The rebase has been aborted and the branch is\n")
	b.WriteString("unchanged.\n\n")

	b.WriteString(filesHeading + "\n\n")
	for _, f := range set.Files {
		switch f.Kind {
		case KindDeletion:
			fmt.Fprintf(&b, "- `%s` (deleted on one side)\n", f.Path)
		case KindBinary:
			fmt.Fprintf(&b, "- `%s` (binary or file-mode conflict)\n", f.Path)
		default:
			fmt.Fprintf(&b, "- `%s` (content conflict, %s)\n", f.Path, regionCount(len(f.Regions)))
		}
	}
	b.WriteString("\n")

	b.WriteString("## Next steps\n\n")
	fmt.Fprintf(&b, "1. Run `git rebase %s` in this worktree.\n", baseRef)
	b.WriteString("2. Resolve each file listed above, `git add` it, then run `git rebase --continue`.\n")
	b.WriteString("3. Sync the feature again. This report is rewritten on every failed\n")
	b.WriteString("   attempt and deleted once a sync succeeds.\n")

	detail := renderDetails(set)
	if detail != "" {
		b.WriteString("\n## Details\n")
		b.WriteString(detail)
	}

	return b.String()
}

func renderDetails(set *Set) string {
	var b strings.Builder
	for _, f := range set.Files {
		if f.Kind != KindContent {
			continue
		}
		fmt.Fprintf(&b, "\n### %s\n", f.Path)
		for i, r := range f.Regions {
			fmt.Fprintf(&b, "\nRegion %d, base branch side:\n\n```\n%s\n```\n", i+1, r.Ours)
			fmt.Fprintf(&b, "\nRegion %d, feature branch side:\n\n```\n%s\n```\n", i+1, r.Theirs)
		}
	}
	return b.String()
}

func regionCount(n int) string {
	if n == 1 {
		return "1 region"
	}
	return fmt.Sprintf("%d regions", n)
}

// Write renders the report and writes it to the worktree root, replacing
// any report from an earlier attempt. Returns the report path.
func Write(dir string, set *Set, branch, baseRef string) (string, error) {
	path := ReportPath(dir)
	if err := os.WriteFile(path, []byte(Render(set, branch, baseRef)), 0644); err != nil {
		return "", fmt.Errorf("failed to write conflict report: %v", err)
	}
	return path, nil
}

// Remove deletes the conflict report if one exists.
func Remove(dir string) error {
	err := os.Remove(ReportPath(dir))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove conflict report: %v", err)
	}
	return nil
}

// ParseReportPaths extracts the conflicted paths from rendered report text,
// in report order.
func ParseReportPaths(content string) []string {
	var paths []string
	inFiles := false
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "## ") {
			inFiles = line == filesHeading
			continue
		}
		if !inFiles || !strings.HasPrefix(line, "- `") {
			continue
		}
		rest := strings.TrimPrefix(line, "- `")
		if end := strings.Index(rest, "`"); end >= 0 {
			paths = append(paths, rest[:end])
		}
	}
	return paths
}
