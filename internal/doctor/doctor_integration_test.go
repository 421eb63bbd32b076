//go:build integration

package doctor

import (
	"context"
	"testing"

	"github.com/boughdev/bough/internal/gittest"
)

func TestIntegrationRunHealthy(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := gittest.RepoWithOrigin(t, dir, "repo")
	cfg := gittest.Config(t, dir, repo)
	cfg.Agent.Command = "sh" // always on PATH, unlike the real agent

	r := Run(ctx, cfg)

	for _, name := range []string{"git", "settings", "root", "repository", "agent"} {
		c := r.Find(name)
		if c == nil {
			t.Errorf("check %q missing", name)
			continue
		}
		if c.Status != StatusOK {
			t.Errorf("check %q = %s (%s), want ok", name, c.Status, c.Detail)
		}
	}

	// gh presence varies by host; the check must exist but may warn.
	if r.Find("github") == nil {
		t.Error("github check missing")
	}
	if !r.Healthy() {
		t.Errorf("healthy setup reported unhealthy:\n%s", r.Render())
	}
}

func TestIntegrationRunBadRepo(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := gittest.RepoWithOrigin(t, dir, "repo")
	cfg := gittest.Config(t, dir, repo)
	cfg.Repo = t.TempDir() // exists, not a repository

	r := Run(ctx, cfg)

	c := r.Find("repository")
	if c == nil || c.Status != StatusFail {
		t.Errorf("repository check = %+v, want fail", c)
	}
	if r.Healthy() {
		t.Error("setup with a broken repository reported healthy")
	}
}
