// Package git wraps the git CLI for repository, rebase, and worktree
// operations.
//
// All functions shell out to the git binary rather than using a Go git
// library. This ensures full compatibility with user configurations (SSH
// keys, credential helpers, hooks) and matches what users see when they run
// git themselves. Operations take a context for cancellation and an explicit
// directory; nothing mutates the process working directory, so concurrent
// operations on different worktrees never interfere.
//
// # Repository operations
//
//   - [Fetch], [Checkout], [CurrentBranch], [BranchExists], [RemoteRefExists]
//   - [IsDirty], [CommitsAhead], [DeleteBranch]
//   - [Stash], [StashPop]
//
// # Rebase lifecycle
//
//   - [Rebase], [RebaseContinue], [RebaseAbort]
//   - [RebaseInProgress]: detects rebase control metadata, worktree-aware
//   - [ConflictedFiles], [UnmergedEntries]: the conflicted-path set, in
//     git's reported order
//
// # Worktrees
//
//   - [AddWorktree], [RemoveWorktree], [ListWorktrees], [PruneWorktrees]
//
// # Error handling
//
// Failures carry git's stderr output in the error message. A failed rebase
// is indistinguishable from other failures at this layer; callers classify
// by querying [ConflictedFiles] afterwards, never by matching error text.
package git
