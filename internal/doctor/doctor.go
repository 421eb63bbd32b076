// Package doctor verifies a bough setup: the binaries it shells out to,
// the directory layout and the configuration the other commands assume.
package doctor

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/boughdev/bough/internal/agent"
	"github.com/boughdev/bough/internal/config"
	"github.com/boughdev/bough/internal/git"
	"github.com/boughdev/bough/internal/github"
)

// Status classifies a check result.
type Status string

const (
	StatusOK   Status = "ok"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// Check is a single verification result.
type Check struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Report collects the checks of one doctor run.
type Report struct {
	Checks []Check `json:"checks"`
}

// Healthy reports whether no check failed. Warnings still count as healthy.
func (r *Report) Healthy() bool {
	for _, c := range r.Checks {
		if c.Status == StatusFail {
			return false
		}
	}
	return true
}

// Find returns the named check, or nil.
func (r *Report) Find(name string) *Check {
	for i := range r.Checks {
		if r.Checks[i].Name == name {
			return &r.Checks[i]
		}
	}
	return nil
}

// Render formats the report as plain text, one check per line.
func (r *Report) Render() string {
	var b strings.Builder
	for _, c := range r.Checks {
		fmt.Fprintf(&b, "[%s] %s", c.Status, c.Name)
		if c.Detail != "" {
			fmt.Fprintf(&b, ": %s", c.Detail)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Report) add(name string, status Status, format string, args ...any) {
	r.Checks = append(r.Checks, Check{Name: name, Status: status, Detail: fmt.Sprintf(format, args...)})
}

// Run verifies the local setup against cfg. Failures mark requirements
// syncing cannot work without; warnings mark degraded but usable setups.
func Run(ctx context.Context, cfg *config.Config) *Report {
	r := &Report{}

	if err := git.CheckGit(); err != nil {
		r.add("git", StatusFail, "%v", err)
	} else {
		r.add("git", StatusOK, "found in PATH")
	}

	if path := config.PathHint(); fileExists(path) {
		r.add("config", StatusOK, "%s", path)
	} else {
		r.add("config", StatusWarn, "no config file at %s, defaults in effect (run 'bough config init')", path)
	}

	if err := cfg.Validate(); err != nil {
		r.add("settings", StatusFail, "%v", err)
	} else {
		r.add("settings", StatusOK, "root %s, base %s", cfg.Root, cfg.BaseRef())
	}

	checkRoot(r, cfg.Root)

	// Without a root or an explicit repo there is no path to inspect and
	// the settings check already failed.
	if cfg.Root != "" || cfg.Repo != "" {
		repo := cfg.RepoPath()
		if err := git.IsInsideRepoPath(ctx, repo); err != nil {
			r.add("repository", StatusFail, "%s is not a git repository: %v", repo, err)
		} else {
			r.add("repository", StatusOK, "%s", repo)
		}
	}

	if err := agent.CheckAgent(cfg.Agent.Command); err != nil {
		r.add("agent", StatusFail, "%v", err)
	} else {
		r.add("agent", StatusOK, "%s found in PATH, timeout %s", cfg.Agent.Command, cfg.Agent.Timeout())
	}

	if err := github.CheckGH(ctx); err != nil {
		r.add("github", StatusWarn, "%v (pr_feedback unavailable)", err)
	} else {
		r.add("github", StatusOK, "gh authenticated")
	}

	return r
}

func checkRoot(r *Report, root string) {
	if root == "" {
		return
	}

	info, err := os.Stat(root)
	switch {
	case os.IsNotExist(err):
		// git worktree add creates leading directories.
		r.add("root", StatusWarn, "%s does not exist yet, created on first feature start", root)
	case err != nil:
		r.add("root", StatusFail, "cannot inspect %s: %v", root, err)
	case !info.IsDir():
		r.add("root", StatusFail, "%s is not a directory", root)
	default:
		f, err := os.CreateTemp(root, ".bough-doctor-*")
		if err != nil {
			r.add("root", StatusFail, "%s is not writable: %v", root, err)
			return
		}
		f.Close()
		os.Remove(f.Name())
		r.add("root", StatusOK, "%s", root)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
