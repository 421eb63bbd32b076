// Package syncer reconciles feature branches with their base branch.
//
// A sync attempt is one sequential pipeline: fetch the base, rebase the
// feature branch onto it, and if the rebase stops on conflicts, hand them
// to the resolution agent. Whether a rebase failure is a conflict is
// decided only by inspecting git's conflicted-path set afterwards, never
// by matching error text. Every attempt terminates with the worktree's
// rebase metadata absent: a rebase is finished, continued to completion,
// or aborted, but never left mid-flight.
//
// Syncs of different features operate on independent worktrees and may run
// concurrently. A second sync of the same feature fails fast with
// [InProgressError] when it observes rebase metadata.
package syncer

import (
	"context"
	"fmt"

	"github.com/boughdev/bough/internal/agent"
	"github.com/boughdev/bough/internal/config"
	"github.com/boughdev/bough/internal/conflict"
	"github.com/boughdev/bough/internal/feature"
	"github.com/boughdev/bough/internal/git"
	"github.com/boughdev/bough/internal/log"
)

// InProgressError indicates a sync attempt on a feature whose worktree
// already has a rebase mid-flight, usually a concurrent or crashed sync.
type InProgressError struct {
	Feature string
	Dir     string
}

func (e *InProgressError) Error() string {
	return fmt.Sprintf("a sync for feature %q is already in progress: rebase metadata present in %s", e.Feature, e.Dir)
}

// Resolver attempts automatic conflict resolution. Satisfied by
// [agent.Resolver].
type Resolver interface {
	Resolve(ctx context.Context, req *agent.Request) (*agent.Outcome, error)
}

var _ Resolver = (*agent.Resolver)(nil)

// Syncer runs sync attempts against feature worktrees.
type Syncer struct {
	cfg      *config.Config
	features *feature.Manager
	resolver Resolver
}

func New(cfg *config.Config) *Syncer {
	return &Syncer{
		cfg:      cfg,
		features: feature.NewManager(cfg),
		resolver: agent.NewResolver(cfg),
	}
}

// Sync reconciles one feature branch with the base branch. Conflict
// outcomes, including failed automatic resolution, are reported in the
// Result; returned errors are limited to configuration, precondition and
// transport failures.
func (s *Syncer) Sync(ctx context.Context, name string) (*Result, error) {
	feat, err := s.features.Find(ctx, name)
	if err != nil {
		return nil, err
	}
	dir := feat.Path

	if err := git.IsInsideRepoPath(ctx, dir); err != nil {
		return nil, fmt.Errorf("feature worktree %s is not a git repository: %v", dir, err)
	}
	inProgress, err := git.RebaseInProgress(ctx, dir)
	if err != nil {
		return nil, err
	}
	if inProgress {
		return nil, &InProgressError{Feature: feat.Name, Dir: dir}
	}

	res := &Result{Feature: feat.Name, Branch: feat.Branch}

	// Fetch failures surface unchanged: retrying is the caller's call.
	if err := git.Fetch(ctx, dir, s.cfg.Remote, s.cfg.BaseBranch); err != nil {
		return nil, err
	}
	baseRef := s.cfg.BaseRef()
	res.note("fetched %s", baseRef)

	behind, err := git.CommitsAhead(ctx, dir, "HEAD", baseRef)
	if err != nil {
		return nil, err
	}
	if behind == 0 {
		return s.finish(ctx, res, dir, baseRef, false, StatusUpToDate,
			fmt.Sprintf("already up to date with %s", baseRef))
	}

	stashed := false
	if dirty, err := git.IsDirty(ctx, dir); err != nil {
		return nil, err
	} else if dirty {
		if err := git.Stash(ctx, dir); err != nil {
			return nil, err
		}
		stashed = true
		res.note("stashed uncommitted changes")
	}

	// Worktrees stay on their branch, but a manual detach or wrong
	// checkout must not rebase the wrong ref.
	current, err := git.CurrentBranch(ctx, dir)
	if err != nil {
		return nil, err
	}
	if current != feat.Branch {
		if err := git.Checkout(ctx, dir, feat.Branch); err != nil {
			return nil, err
		}
	}

	rebaseErr := git.Rebase(ctx, dir, baseRef)
	if rebaseErr == nil {
		res.note("rebased %s onto %s", feat.Branch, baseRef)
		return s.finish(ctx, res, dir, baseRef, stashed, StatusSynced)
	}

	// Classify the failure by state, not by message: a non-empty
	// conflicted set is a conflict, anything else propagates untouched.
	conflicted, err := git.ConflictedFiles(ctx, dir)
	if err != nil {
		return nil, err
	}
	if len(conflicted) == 0 {
		s.abandonAttempt(ctx, res, dir, stashed)
		return nil, rebaseErr
	}

	set, err := conflict.Extract(ctx, dir)
	if err != nil {
		s.abandonAttempt(ctx, res, dir, stashed)
		return nil, err
	}
	res.note("rebase stopped on %s", fileCount(len(set.Files)))

	res.note("delegated resolution to %s", s.cfg.Agent.Command)
	outcome, err := s.resolver.Resolve(ctx, &agent.Request{
		Branch:    feat.Branch,
		BaseRef:   baseRef,
		Dir:       dir,
		Conflicts: set,
	})
	if err != nil {
		s.abandonAttempt(ctx, res, dir, stashed)
		return nil, err
	}

	if outcome.Resolved {
		if err := git.RebaseContinue(ctx, dir); err == nil {
			res.note("agent resolved all conflicts")
			res.note("rebase continued to completion")
			return s.finish(ctx, res, dir, baseRef, stashed, StatusResolved)
		}
		// The agent cleared the conflicted set but the rebase still would
		// not continue, likely unstaged changes. Never a silent success.
		res.note("agent cleared conflicts but the rebase could not continue")
	} else if outcome.Err != nil {
		res.note("%v", outcome.Err)
	} else {
		res.note("agent left %s unresolved", fileCount(len(outcome.Remaining)))
	}

	if err := s.manualRequired(ctx, res, dir, set, feat.Branch, baseRef, stashed); err != nil {
		return nil, err
	}
	return res, nil
}

// finish completes a successful attempt: restore stashed changes, drop any
// stale conflict report, and record how far ahead of the base the feature
// now is.
func (s *Syncer) finish(ctx context.Context, res *Result, dir, baseRef string, stashed bool, status Status, extra ...string) (*Result, error) {
	if stashed {
		s.restoreStash(ctx, res, dir)
	}
	for _, line := range extra {
		res.Lines = append(res.Lines, line)
	}
	if err := conflict.Remove(dir); err != nil {
		res.note("warning: %v", err)
	}

	ahead, err := git.CommitsAhead(ctx, dir, baseRef, "HEAD")
	if err != nil {
		return nil, err
	}
	res.CommitsAhead = ahead
	res.note("%s", aheadLine(ahead, s.cfg.BaseBranch))
	res.Status = status
	return res, nil
}

// manualRequired finishes a conflicted attempt the agent could not fix:
// abort the rebase so the branch returns to its pre-attempt tip, then
// persist the conflict report for a human.
func (s *Syncer) manualRequired(ctx context.Context, res *Result, dir string, set *conflict.Set, branch, baseRef string, stashed bool) error {
	if err := git.RebaseAbort(ctx, dir); err != nil {
		return fmt.Errorf("failed to abort rebase after unresolved conflicts: %v", err)
	}
	res.note("rebase aborted, branch left unchanged")
	if stashed {
		s.restoreStash(ctx, res, dir)
	}

	path, err := conflict.Write(dir, set, branch, baseRef)
	if err != nil {
		return err
	}
	res.Status = StatusManual
	res.ReportPath = path
	res.Conflicted = set.Paths()
	res.note("conflict report written to %s", path)
	return nil
}

// abandonAttempt cleans up before propagating a fatal error: abort a
// mid-flight rebase if one exists and restore stashed changes best-effort.
func (s *Syncer) abandonAttempt(ctx context.Context, res *Result, dir string, stashed bool) {
	l := log.FromContext(ctx)
	if inProgress, err := git.RebaseInProgress(ctx, dir); err == nil && inProgress {
		if err := git.RebaseAbort(ctx, dir); err != nil {
			l.Debug("rebase abort during cleanup failed", "dir", dir, "error", err)
		}
	}
	if stashed {
		s.restoreStash(ctx, res, dir)
	}
}

// restoreStash pops the attempt's stash. A failed pop is a warning in the
// result, not an error: the rebase already concluded and the changes stay
// recoverable in the stash.
func (s *Syncer) restoreStash(ctx context.Context, res *Result, dir string) {
	if err := git.StashPop(ctx, dir); err != nil {
		res.note("warning: failed to restore stashed changes, run 'git stash pop' in %s", dir)
		log.FromContext(ctx).Debug("stash pop failed", "dir", dir, "error", err)
		return
	}
	res.note("restored stashed changes")
}
