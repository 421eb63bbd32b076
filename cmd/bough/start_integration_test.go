//go:build integration

package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/boughdev/bough/internal/feature"
	"github.com/boughdev/bough/internal/gittest"
	"github.com/boughdev/bough/internal/output"
)

// TestStart_CreatesWorktree starts a feature end to end.
//
// Scenario: User runs `bough start login-flow` with a post_start hook
// configured and a git-ignored .env in the primary checkout.
// Expected: Worktree exists on feature/login-flow, .env is copied over,
// the hook ran inside the worktree and the summary lists all of it.
func TestStart_CreatesWorktree(t *testing.T) {
	ctx, buf, repo, cfg := setupEnv(t)

	gittest.CommitOnMain(t, repo, ".gitignore", ".env\n", "Ignore env files")
	gittest.WriteFile(t, repo, ".env", "SECRET=1\n")
	cfg.Hooks.PostStart = []string{"echo {feature} > hook.txt"}

	feat, copied, err := startFeature(ctx, cfg, "login-flow")
	if err != nil {
		t.Fatalf("startFeature failed: %v", err)
	}
	if feat.Branch != "feature/login-flow" {
		t.Errorf("Branch = %q, want %q", feat.Branch, "feature/login-flow")
	}
	if want := filepath.Join(cfg.Root, "login-flow"); feat.Path != want {
		t.Errorf("Path = %q, want %q", feat.Path, want)
	}

	env, err := os.ReadFile(filepath.Join(feat.Path, ".env"))
	if err != nil {
		t.Fatalf(".env was not copied: %v", err)
	}
	if string(env) != "SECRET=1\n" {
		t.Errorf(".env content = %q", env)
	}
	if len(copied) != 1 || copied[0] != ".env" {
		t.Errorf("copied = %v, want [.env]", copied)
	}

	hookOut, err := os.ReadFile(filepath.Join(feat.Path, "hook.txt"))
	if err != nil {
		t.Fatalf("post_start hook did not run: %v", err)
	}
	if got := strings.TrimSpace(string(hookOut)); got != "login-flow" {
		t.Errorf("hook output = %q, want %q", got, "login-flow")
	}

	printStarted(output.FromContext(ctx), feat, copied)
	for _, want := range []string{"Started feature login-flow", "feature/login-flow", "copied:   .env"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}
}

// TestStart_DuplicateRefused refuses a second worktree for the same name.
//
// Scenario: User runs `bough start alpha`, then `bough start "Alpha "`.
// Expected: The second run canonicalizes to the same name and fails with
// an ExistsError instead of creating a second worktree.
func TestStart_DuplicateRefused(t *testing.T) {
	ctx, _, _, cfg := setupEnv(t)

	if _, _, err := startFeature(ctx, cfg, "alpha"); err != nil {
		t.Fatalf("first startFeature failed: %v", err)
	}

	_, _, err := startFeature(ctx, cfg, "Alpha ")
	var exists *feature.ExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("second startFeature error = %v, want ExistsError", err)
	}
	if exists.Feature != "alpha" {
		t.Errorf("ExistsError.Feature = %q, want %q", exists.Feature, "alpha")
	}
}

// TestStart_UnconfiguredRoot fails before touching git.
//
// Scenario: User runs `bough start x` without a configured root.
// Expected: A configuration error pointing at the config file.
func TestStart_UnconfiguredRoot(t *testing.T) {
	ctx, _, _, cfg := setupEnv(t)
	cfg.Root = ""

	if _, _, err := startFeature(ctx, cfg, "x"); err == nil {
		t.Fatal("expected error for unconfigured root")
	} else if !strings.Contains(err.Error(), "root") {
		t.Errorf("error = %v, want mention of root", err)
	}
}
