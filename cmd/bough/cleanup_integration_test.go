//go:build integration

package main

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/boughdev/bough/internal/feature"
	"github.com/boughdev/bough/internal/gittest"
	"github.com/boughdev/bough/internal/output"
)

// TestCleanup_RemovesWorktreeAndBranch removes a merged feature.
//
// Scenario: User runs `bough cleanup alpha -d -y` on a clean feature.
// Expected: Worktree and branch are gone, the summary says so.
func TestCleanup_RemovesWorktreeAndBranch(t *testing.T) {
	ctx, buf, repo, cfg := setupEnv(t)

	feat, _, err := startFeature(ctx, cfg, "alpha")
	if err != nil {
		t.Fatalf("startFeature failed: %v", err)
	}

	if err := removeFeature(ctx, cfg, output.FromContext(ctx), "alpha", true, false); err != nil {
		t.Fatalf("removeFeature failed: %v", err)
	}

	if _, err := os.Stat(feat.Path); !os.IsNotExist(err) {
		t.Errorf("worktree still exists: %v", err)
	}
	branches := gittest.Run(t, repo, "branch", "--list", "feature/alpha")
	if strings.TrimSpace(branches) != "" {
		t.Errorf("branch still exists: %q", branches)
	}

	got := buf.String()
	for _, want := range []string{"Removed feature alpha", "deleted branch feature/alpha"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

// TestCleanup_DirtyRefused keeps a dirty worktree.
//
// Scenario: User runs `bough cleanup alpha -y` with uncommitted changes.
// Expected: DirtyError, nothing removed.
func TestCleanup_DirtyRefused(t *testing.T) {
	ctx, _, _, cfg := setupEnv(t)

	feat, _, err := startFeature(ctx, cfg, "alpha")
	if err != nil {
		t.Fatalf("startFeature failed: %v", err)
	}
	gittest.WriteFile(t, feat.Path, "scratch.txt", "wip\n")

	err = removeFeature(ctx, cfg, output.FromContext(ctx), "alpha", false, false)
	var dirty *feature.DirtyError
	if !errors.As(err, &dirty) {
		t.Fatalf("error = %v, want DirtyError", err)
	}
	if _, err := os.Stat(feat.Path); err != nil {
		t.Errorf("worktree was removed despite dirty refusal: %v", err)
	}
}

// TestCleanup_ForceDirty removes a dirty worktree when forced.
//
// Scenario: User runs `bough cleanup alpha -f -y` with uncommitted changes.
// Expected: Worktree gone, branch kept.
func TestCleanup_ForceDirty(t *testing.T) {
	ctx, _, repo, cfg := setupEnv(t)

	feat, _, err := startFeature(ctx, cfg, "alpha")
	if err != nil {
		t.Fatalf("startFeature failed: %v", err)
	}
	gittest.WriteFile(t, feat.Path, "scratch.txt", "wip\n")

	if err := removeFeature(ctx, cfg, output.FromContext(ctx), "alpha", false, true); err != nil {
		t.Fatalf("removeFeature failed: %v", err)
	}
	if _, err := os.Stat(feat.Path); !os.IsNotExist(err) {
		t.Errorf("worktree still exists: %v", err)
	}

	// Branch survives without --delete-branch.
	branches := gittest.Run(t, repo, "branch", "--list", "feature/alpha")
	if !strings.Contains(branches, "feature/alpha") {
		t.Errorf("branch was deleted: %q", branches)
	}
}
