package static

import (
	"strings"
	"testing"

	"github.com/boughdev/bough/internal/feature"
)

func TestFeatureRow(t *testing.T) {
	t.Parallel()

	st := feature.Status{
		Feature: feature.Feature{
			Name:   "login-flow",
			Branch: "feature/login-flow",
			Path:   "/work/trees/login-flow",
		},
		CommitsAhead:  2,
		CommitsBehind: 3,
	}

	row := FeatureRow(st)

	if len(row) != len(FeatureHeaders) {
		t.Fatalf("expected %d columns, got %d", len(FeatureHeaders), len(row))
	}
	if row[0] != "login-flow" {
		t.Errorf("column 0 (FEATURE) = %q, want %q", row[0], "login-flow")
	}
	if row[1] != "feature/login-flow" {
		t.Errorf("column 1 (BRANCH) = %q, want %q", row[1], "feature/login-flow")
	}
	if row[2] != "clean" {
		t.Errorf("column 2 (STATE) = %q, want plain %q", row[2], "clean")
	}
	if row[3] != "2 ahead, 3 behind" {
		t.Errorf("column 3 (SYNC) = %q, want %q", row[3], "2 ahead, 3 behind")
	}
}

func TestFeatureRowUpToDate(t *testing.T) {
	t.Parallel()

	st := feature.Status{
		Feature: feature.Feature{Name: "dark-mode", Branch: "feature/dark-mode"},
	}

	row := FeatureRow(st)

	if row[3] != "up to date" {
		t.Errorf("column 3 (SYNC) = %q, want %q", row[3], "up to date")
	}
}

func TestFeatureRowDirty(t *testing.T) {
	t.Parallel()

	st := feature.Status{
		Feature: feature.Feature{Name: "dark-mode", Branch: "feature/dark-mode"},
		Dirty:   true,
	}

	row := FeatureRow(st)

	// STATE cell should be styled, not plain text.
	if row[2] == "dirty" {
		t.Error("expected dirty STATE cell to be styled, got plain text")
	}
	if !strings.Contains(row[2], "dirty") {
		t.Errorf("dirty STATE cell should contain state text, got %q", row[2])
	}
}

func TestFeatureRowRebasing(t *testing.T) {
	t.Parallel()

	st := feature.Status{
		Feature:          feature.Feature{Name: "dark-mode", Branch: "feature/dark-mode"},
		Dirty:            true,
		RebaseInProgress: true,
	}

	row := FeatureRow(st)

	// Rebase in progress wins over dirty.
	if !strings.Contains(row[2], "rebasing") {
		t.Errorf("STATE cell should report the rebase, got %q", row[2])
	}
}

func TestRenderTable(t *testing.T) {
	t.Parallel()

	out := RenderTable(
		[]string{"FEATURE", "BRANCH"},
		[][]string{
			{"login-flow", "feature/login-flow"},
			{"dark-mode", "feature/dark-mode"},
		},
	)

	for _, want := range []string{"FEATURE", "login-flow", "feature/dark-mode"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTableEmpty(t *testing.T) {
	t.Parallel()

	if out := RenderTable([]string{"FEATURE"}, nil); out != "" {
		t.Errorf("expected empty output for no rows, got %q", out)
	}
}
