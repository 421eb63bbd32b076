package syncer

import (
	"strings"
	"testing"
)

func TestStatusSuccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status Status
		want   bool
	}{
		{StatusUpToDate, true},
		{StatusSynced, true},
		{StatusResolved, true},
		{StatusManual, false},
	}

	for _, tt := range tests {
		if got := tt.status.Success(); got != tt.want {
			t.Errorf("%s.Success() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestAheadLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want string
	}{
		{0, "0 commits ahead of main"},
		{1, "1 commit ahead of main"},
		{3, "3 commits ahead of main"},
	}

	for _, tt := range tests {
		if got := aheadLine(tt.n, "main"); got != tt.want {
			t.Errorf("aheadLine(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFileCount(t *testing.T) {
	t.Parallel()

	if got := fileCount(1); got != "1 conflicted file" {
		t.Errorf("fileCount(1) = %q", got)
	}
	if got := fileCount(2); got != "2 conflicted files" {
		t.Errorf("fileCount(2) = %q", got)
	}
}

func TestResultRender(t *testing.T) {
	t.Parallel()

	res := &Result{Feature: "login-flow", Status: StatusSynced}
	res.note("fetched %s", "origin/main")
	res.note("%s", aheadLine(3, "main"))

	out := res.Render()
	if !strings.HasPrefix(out, "login-flow: synced_clean\n") {
		t.Errorf("Render header = %q", out)
	}
	if !strings.Contains(out, "  fetched origin/main\n") {
		t.Errorf("Render missing narrative line:\n%s", out)
	}
	if !strings.Contains(out, "  3 commits ahead of main\n") {
		t.Errorf("Render missing ahead line:\n%s", out)
	}
}

func TestResultNoteOrder(t *testing.T) {
	t.Parallel()

	res := &Result{}
	res.note("first")
	res.note("second %d", 2)

	if len(res.Lines) != 2 || res.Lines[0] != "first" || res.Lines[1] != "second 2" {
		t.Errorf("Lines = %v", res.Lines)
	}
}
