package feature

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/boughdev/bough/internal/agent"
	"github.com/boughdev/bough/internal/config"
	"github.com/boughdev/bough/internal/conflict"
	"github.com/boughdev/bough/internal/git"
	"github.com/boughdev/bough/internal/log"
	"github.com/boughdev/bough/internal/preserve"
)

// Feature describes a managed feature worktree.
type Feature struct {
	Name   string `json:"name"`
	Branch string `json:"branch"`
	Path   string `json:"path"`
}

// Status is a point-in-time view of a feature worktree.
type Status struct {
	Feature
	Dirty            bool   `json:"dirty"`
	CommitsAhead     int    `json:"commits_ahead"`
	CommitsBehind    int    `json:"commits_behind"`
	RebaseInProgress bool   `json:"rebase_in_progress"`
	ConflictReport   string `json:"conflict_report,omitempty"`
}

// NotFoundError indicates a feature with no worktree under the root.
type NotFoundError struct {
	Feature    string
	Path       string
	Suggestion string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("feature %q has no worktree at %s", e.Feature, e.Path)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

// ExistsError indicates a create collision with an existing worktree.
type ExistsError struct {
	Feature string
	Path    string
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("feature %q already has a worktree at %s", e.Feature, e.Path)
}

// DirtyError indicates a destructive operation refused because the worktree
// has uncommitted changes.
type DirtyError struct {
	Feature string
	Path    string
}

func (e *DirtyError) Error() string {
	return fmt.Sprintf("feature %q has uncommitted changes at %s: commit, stash or pass force", e.Feature, e.Path)
}

// Manager creates, inspects and removes feature worktrees under the
// configured root. All worktrees belong to the configured primary repository.
type Manager struct {
	cfg *config.Config
}

func NewManager(cfg *config.Config) *Manager {
	return &Manager{cfg: cfg}
}

// Path returns the worktree directory a feature name maps to.
func (m *Manager) Path(name string) (string, error) {
	canonical, err := Canonicalize(name)
	if err != nil {
		return "", err
	}
	return WorktreePath(m.cfg.Root, canonical), nil
}

// Find resolves a feature name to its worktree, failing with a
// [NotFoundError] carrying a fuzzy suggestion when no worktree exists.
func (m *Manager) Find(ctx context.Context, name string) (*Feature, error) {
	canonical, err := Canonicalize(name)
	if err != nil {
		return nil, err
	}
	path := WorktreePath(m.cfg.Root, canonical)
	if _, err := os.Stat(path); err != nil {
		known, _ := m.Names(ctx)
		return nil, &NotFoundError{
			Feature:    canonical,
			Path:       path,
			Suggestion: Suggest(canonical, known),
		}
	}
	return &Feature{Name: canonical, Branch: BranchName(canonical), Path: path}, nil
}

// Create makes a new feature worktree branched off the configured base.
// The base branch is fetched first so the new branch starts at the remote
// tip rather than a stale local ref.
func (m *Manager) Create(ctx context.Context, name string) (*Feature, error) {
	canonical, err := Canonicalize(name)
	if err != nil {
		return nil, err
	}

	path := WorktreePath(m.cfg.Root, canonical)
	if _, err := os.Stat(path); err == nil {
		return nil, &ExistsError{Feature: canonical, Path: path}
	}

	repo := m.cfg.RepoPath()
	if err := git.IsInsideRepoPath(ctx, repo); err != nil {
		return nil, fmt.Errorf("primary repository %s is not a git repository: %v", repo, err)
	}

	branch := BranchName(canonical)
	exists, err := git.BranchExists(ctx, repo, branch)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("branch %s already exists: remove it or pick another feature name", branch)
	}

	baseRef, err := m.resolveBaseRef(ctx, repo)
	if err != nil {
		return nil, err
	}

	log.FromContext(ctx).Debug("creating feature worktree", "feature", canonical, "path", path, "base", baseRef)

	if err := git.AddWorktree(ctx, repo, path, branch, baseRef); err != nil {
		return nil, err
	}

	return &Feature{Name: canonical, Branch: branch, Path: path}, nil
}

// Start provisions a feature worktree for development: creates it, links
// the agent's session directory and copies preserved ignored files from
// the primary checkout. Linking and copying are best effort, a failure
// there still leaves a usable worktree behind. Returns the feature and
// the relative paths of copied files.
func (m *Manager) Start(ctx context.Context, name string) (*Feature, []string, error) {
	feat, err := m.Create(ctx, name)
	if err != nil {
		return nil, nil, err
	}

	l := log.FromContext(ctx)
	if err := agent.LinkSessions(m.cfg.RepoPath(), feat.Path); err != nil {
		l.Printf("warning: failed to link agent sessions: %v\n", err)
	}

	copied, err := preserve.Copy(ctx, m.cfg.Preserve, m.cfg.RepoPath(), feat.Path)
	if err != nil {
		l.Printf("warning: failed to copy ignored files: %v\n", err)
	}

	return feat, copied, nil
}

// resolveBaseRef fetches the base branch and returns the freshest ref for
// it: the remote-tracking ref when it exists, the local branch otherwise.
func (m *Manager) resolveBaseRef(ctx context.Context, repo string) (string, error) {
	base := m.cfg.BaseBranch
	remote := m.cfg.Remote

	if err := git.Fetch(ctx, repo, remote, base); err != nil {
		// A purely local repository has no remote to fetch from. Fall back
		// to the local branch if it exists, otherwise surface the fetch error.
		exists, checkErr := git.BranchExists(ctx, repo, base)
		if checkErr == nil && exists {
			log.FromContext(ctx).Debug("fetch failed, using local base branch", "base", base, "error", err)
			return base, nil
		}
		return "", err
	}

	exists, err := git.RemoteRefExists(ctx, repo, remote, base)
	if err != nil {
		return "", err
	}
	if exists {
		return remote + "/" + base, nil
	}
	return base, nil
}

// Remove deletes a feature worktree. Dirty worktrees are refused unless
// force is set. When deleteBranch is set the feature branch is deleted too.
func (m *Manager) Remove(ctx context.Context, name string, deleteBranch, force bool) error {
	feat, err := m.Find(ctx, name)
	if err != nil {
		return err
	}

	if !force {
		dirty, err := git.IsDirty(ctx, feat.Path)
		if err != nil {
			return err
		}
		if dirty {
			return &DirtyError{Feature: feat.Name, Path: feat.Path}
		}
	}

	repo := m.cfg.RepoPath()
	l := log.FromContext(ctx)
	l.Debug("removing feature worktree", "feature", feat.Name, "path", feat.Path)

	if err := agent.UnlinkSessions(feat.Path); err != nil {
		l.Printf("warning: failed to unlink agent sessions: %v\n", err)
	}

	if err := git.RemoveWorktree(ctx, repo, feat.Path, force); err != nil {
		return err
	}
	if err := git.PruneWorktrees(ctx, repo); err != nil {
		return err
	}

	if deleteBranch {
		if err := git.DeleteBranch(ctx, repo, feat.Branch, force); err != nil {
			return err
		}
	}

	return nil
}

// List returns all feature worktrees of the primary repository, sorted by
// name. Worktrees whose branch does not carry the feature prefix (the main
// checkout, detached heads) are skipped.
func (m *Manager) List(ctx context.Context) ([]Feature, error) {
	worktrees, err := git.ListWorktrees(ctx, m.cfg.RepoPath())
	if err != nil {
		return nil, err
	}

	features := make([]Feature, 0, len(worktrees))
	for _, wt := range worktrees {
		if wt.Bare || !strings.HasPrefix(wt.Branch, BranchPrefix) {
			continue
		}
		features = append(features, Feature{
			Name:   strings.TrimPrefix(wt.Branch, BranchPrefix),
			Branch: wt.Branch,
			Path:   wt.Path,
		})
	}

	sort.Slice(features, func(i, j int) bool { return features[i].Name < features[j].Name })
	return features, nil
}

// Names returns the names of all feature worktrees.
func (m *Manager) Names(ctx context.Context) ([]string, error) {
	features, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(features))
	for i, f := range features {
		names[i] = f.Name
	}
	return names, nil
}

// Status inspects a feature worktree: dirtiness, commits ahead of and
// behind the base ref, and whether a rebase is mid-flight.
func (m *Manager) Status(ctx context.Context, name string) (*Status, error) {
	feat, err := m.Find(ctx, name)
	if err != nil {
		return nil, err
	}

	st := &Status{Feature: *feat}

	if st.Dirty, err = git.IsDirty(ctx, feat.Path); err != nil {
		return nil, err
	}
	if st.RebaseInProgress, err = git.RebaseInProgress(ctx, feat.Path); err != nil {
		return nil, err
	}
	if path, ok := conflict.Report(feat.Path); ok {
		st.ConflictReport = path
	}

	baseRef, err := m.statusBaseRef(ctx, feat.Path)
	if err != nil {
		return nil, err
	}
	if st.CommitsAhead, err = git.CommitsAhead(ctx, feat.Path, baseRef, "HEAD"); err != nil {
		return nil, err
	}
	if st.CommitsBehind, err = git.CommitsAhead(ctx, feat.Path, "HEAD", baseRef); err != nil {
		return nil, err
	}

	return st, nil
}

// statusBaseRef picks the ref to compare against without fetching: the
// remote-tracking base when it exists, the local base branch otherwise.
func (m *Manager) statusBaseRef(ctx context.Context, dir string) (string, error) {
	exists, err := git.RemoteRefExists(ctx, dir, m.cfg.Remote, m.cfg.BaseBranch)
	if err != nil {
		return "", err
	}
	if exists {
		return m.cfg.BaseRef(), nil
	}
	return m.cfg.BaseBranch, nil
}
