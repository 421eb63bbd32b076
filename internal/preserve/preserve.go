// Package preserve copies git-ignored files into new feature worktrees.
//
// Ignored files like .env carry local setup a fresh worktree needs but
// git cannot provide. On feature start, ignored files in the primary
// checkout whose basename matches a configured pattern are copied over.
// Existing files are never overwritten.
package preserve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/boughdev/bough/internal/cmd"
	"github.com/boughdev/bough/internal/config"
	"github.com/boughdev/bough/internal/log"
)

// Ignored returns the git-ignored files present in dir, relative to dir.
func Ignored(ctx context.Context, dir string) ([]string, error) {
	out, err := cmd.OutputContext(ctx, dir, "git",
		"ls-files", "--others", "--ignored", "--exclude-standard")
	if err != nil {
		return nil, fmt.Errorf("failed to list ignored files: %v", err)
	}

	raw := strings.TrimSpace(string(out))
	if raw == "" {
		return nil, nil
	}
	return strings.Split(raw, "\n"), nil
}

// matches reports whether relPath should be preserved: its basename must
// match a pattern and no path segment may appear in exclude.
func matches(relPath string, patterns, exclude []string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(relPath), "/") {
		for _, ex := range exclude {
			if seg == ex {
				return false
			}
		}
	}

	base := filepath.Base(relPath)
	for _, pat := range patterns {
		if ok, _ := filepath.Match(pat, base); ok {
			return true
		}
	}
	return false
}

// copyFile copies src to dst keeping the source's permission bits.
// Returns false without error when dst already exists.
func copyFile(src, dst string) (bool, error) {
	info, err := os.Stat(src)
	if err != nil {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return false, err
	}

	// O_EXCL: a file the worktree already has wins over the copy.
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, info.Mode())
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, err
	}
	defer out.Close()

	in, err := os.Open(src)
	if err != nil {
		os.Remove(dst)
		return false, err
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		os.Remove(dst)
		return false, err
	}
	return true, nil
}

// Copy copies ignored files matching cfg from src into dst and returns
// the relative paths copied. Individual copy failures are logged and
// skipped so one unreadable file does not block worktree setup.
func Copy(ctx context.Context, cfg config.PreserveConfig, src, dst string) ([]string, error) {
	if len(cfg.Patterns) == 0 {
		return nil, nil
	}

	ignored, err := Ignored(ctx, src)
	if err != nil {
		return nil, err
	}

	l := log.FromContext(ctx)
	var copied []string
	for _, relPath := range ignored {
		if !matches(relPath, cfg.Patterns, cfg.Exclude) {
			continue
		}

		ok, err := copyFile(filepath.Join(src, relPath), filepath.Join(dst, relPath))
		if err != nil {
			l.Debug("preserve copy failed", "file", relPath, "error", err)
			continue
		}
		if ok {
			copied = append(copied, relPath)
		}
	}
	return copied, nil
}
