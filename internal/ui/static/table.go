// Package static provides non-interactive terminal output components.
//
// This package renders formatted output that needs no user interaction,
// such as the feature status table.
package static

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/boughdev/bough/internal/feature"
	"github.com/boughdev/bough/internal/ui/styles"
)

// FeatureHeaders are the column titles matching FeatureRow.
var FeatureHeaders = []string{"FEATURE", "BRANCH", "STATE", "SYNC"}

// FeatureRow formats one feature status as table cells. The STATE cell is
// styled when the worktree needs attention and plain text when it is clean.
func FeatureRow(st feature.Status) []string {
	state := "clean"
	switch {
	case st.RebaseInProgress:
		state = styles.ErrorStyle.Render("rebasing")
	case st.Dirty:
		state = styles.WarningStyle.Render("dirty")
	}

	sync := "up to date"
	if st.CommitsAhead > 0 || st.CommitsBehind > 0 {
		parts := make([]string, 0, 2)
		if st.CommitsAhead > 0 {
			parts = append(parts, fmt.Sprintf("%d ahead", st.CommitsAhead))
		}
		if st.CommitsBehind > 0 {
			parts = append(parts, fmt.Sprintf("%d behind", st.CommitsBehind))
		}
		sync = strings.Join(parts, ", ")
	}

	return []string{st.Name, st.Branch, state, sync}
}

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}
