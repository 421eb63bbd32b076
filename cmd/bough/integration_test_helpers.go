//go:build integration

package main

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/boughdev/bough/internal/config"
	"github.com/boughdev/bough/internal/gittest"
	"github.com/boughdev/bough/internal/log"
	"github.com/boughdev/bough/internal/output"
)

// testContext returns a context wired the way Execute wires it: a quiet
// logger and a printer writing into the returned buffer instead of stdout.
func testContext(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()

	buf := &bytes.Buffer{}
	ctx := log.WithLogger(context.Background(), log.New(io.Discard, false, false))
	ctx = output.WithPrinter(ctx, buf)
	return ctx, buf
}

// setupEnv creates a repository with a local bare origin and a config
// rooted in a fresh temp dir.
func setupEnv(t *testing.T) (context.Context, *bytes.Buffer, string, *config.Config) {
	t.Helper()

	ctx, buf := testContext(t)
	dir := t.TempDir()
	repo := gittest.RepoWithOrigin(t, dir, "repo")
	cfg := gittest.Config(t, dir, repo)
	return ctx, buf, repo, cfg
}

// swapConfig replaces the package-level config for commands executed via
// cobra and restores it when the test ends. Tests using it must not run
// in parallel.
func swapConfig(t *testing.T, testCfg *config.Config) {
	t.Helper()

	old := cfg
	cfg = testCfg
	t.Cleanup(func() { cfg = old })
}
