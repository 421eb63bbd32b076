// Package gittest builds throwaway git repositories for integration tests.
package gittest

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/boughdev/bough/internal/config"
)

// Run executes a git command in dir and fails the test on error.
func Run(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to run git %v: %v\n%s", args, err, out)
	}
	return string(out)
}

// Repo creates a git repository at dir/name with an initial commit on main.
// The default branch is forced to main so host git configuration does not
// leak into tests.
func Repo(t *testing.T, dir, name string) string {
	t.Helper()

	// Symlinked temp dirs (macOS /var) break path comparisons.
	dir = resolve(t, dir)

	repoPath := filepath.Join(dir, name)
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		t.Fatalf("failed to create repo dir: %v", err)
	}
	Run(t, repoPath, "init", "-b", "main")
	Run(t, repoPath, "config", "user.email", "test@test.com")
	Run(t, repoPath, "config", "user.name", "Test User")
	Run(t, repoPath, "config", "commit.gpgsign", "false")

	CommitFile(t, repoPath, "README.md", "# "+name+"\n", "Initial commit")
	return repoPath
}

// RepoWithOrigin creates a working repository like [Repo] plus a local bare
// repository wired up as origin, with main pushed.
func RepoWithOrigin(t *testing.T, dir, name string) string {
	t.Helper()

	dir = resolve(t, dir)

	barePath := filepath.Join(dir, name+".git")
	if err := os.MkdirAll(barePath, 0755); err != nil {
		t.Fatalf("failed to create bare repo dir: %v", err)
	}
	Run(t, barePath, "init", "--bare", "-b", "main")

	repoPath := Repo(t, dir, name)
	Run(t, repoPath, "remote", "add", "origin", barePath)
	Run(t, repoPath, "push", "-u", "origin", "main")
	return repoPath
}

// WriteFile writes a file under dir without committing it.
func WriteFile(t *testing.T, dir, name, content string) {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

// CommitFile writes a file and commits it.
func CommitFile(t *testing.T, dir, name, content, msg string) {
	t.Helper()

	WriteFile(t, dir, name, content)
	Run(t, dir, "add", name)
	Run(t, dir, "commit", "-m", msg)
}

// CommitOnMain commits a file on the repository's main branch and pushes
// it to origin, so a later fetch in a worktree sees new upstream work.
func CommitOnMain(t *testing.T, repoPath, name, content, msg string) {
	t.Helper()

	Run(t, repoPath, "checkout", "main")
	CommitFile(t, repoPath, name, content, msg)
	Run(t, repoPath, "push", "origin", "main")
}

// Config returns a config rooted in dir with repoPath as the primary
// repository.
func Config(t *testing.T, dir, repoPath string) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Root = filepath.Join(resolve(t, dir), "features")
	cfg.Repo = repoPath
	if err := os.MkdirAll(cfg.Root, 0755); err != nil {
		t.Fatalf("failed to create feature root: %v", err)
	}
	return &cfg
}

func resolve(t *testing.T, path string) string {
	t.Helper()

	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}
