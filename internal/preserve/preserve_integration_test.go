//go:build integration

package preserve

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/boughdev/bough/internal/config"
	"github.com/boughdev/bough/internal/gittest"
)

func TestIntegrationCopy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := gittest.Repo(t)

	gittest.CommitFile(t, repo, ".gitignore", ".env\n.env.*\nnode_modules/\n", "add gitignore")
	gittest.WriteFile(t, repo, ".env", "SECRET=1\n")
	gittest.WriteFile(t, repo, ".env.local", "LOCAL=1\n")
	gittest.WriteFile(t, repo, "node_modules/pkg/.env", "DEP=1\n")

	dst := t.TempDir()

	cfg := config.PreserveConfig{
		Patterns: []string{".env", ".env.*"},
		Exclude:  []string{"node_modules"},
	}

	copied, err := Copy(ctx, cfg, repo, dst)
	if err != nil {
		t.Fatalf("Copy failed: %v", err)
	}

	slices.Sort(copied)
	want := []string{".env", ".env.local"}
	if !slices.Equal(copied, want) {
		t.Errorf("copied = %v, want %v", copied, want)
	}

	data, err := os.ReadFile(filepath.Join(dst, ".env"))
	if err != nil || string(data) != "SECRET=1\n" {
		t.Errorf(".env content = %q, %v", data, err)
	}
	if _, err := os.Stat(filepath.Join(dst, "node_modules", "pkg", ".env")); !os.IsNotExist(err) {
		t.Error("excluded file was copied")
	}

	// A second copy must not clobber what is already there.
	gittest.WriteFile(t, dst, ".env", "CHANGED=1\n")
	copied, err = Copy(ctx, cfg, repo, dst)
	if err != nil {
		t.Fatalf("second Copy failed: %v", err)
	}
	if len(copied) != 0 {
		t.Errorf("second Copy copied %v, want nothing", copied)
	}
	data, _ = os.ReadFile(filepath.Join(dst, ".env"))
	if string(data) != "CHANGED=1\n" {
		t.Errorf(".env was overwritten: %q", data)
	}
}

func TestIntegrationCopyNoPatterns(t *testing.T) {
	t.Parallel()

	repo := gittest.Repo(t)
	copied, err := Copy(context.Background(), config.PreserveConfig{}, repo, t.TempDir())
	if err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if copied != nil {
		t.Errorf("copied = %v, want nil", copied)
	}
}
