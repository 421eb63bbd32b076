// Package config loads and validates the bough configuration.
//
// Configuration comes from ~/.config/bough/config.toml with BOUGH_*
// environment variables layered on top (environment wins). The only
// required value is the root directory that holds feature worktrees;
// everything else has working defaults:
//
//   - root: base directory for feature worktrees (required)
//   - repo: primary repository checkout, defaults to <root>/repo
//   - base_branch / remote: upstream reference, defaults origin/main
//   - [agent]: external resolution agent command, args, and timeout
//   - [ui]: terminal theme for status output
//
// [Load] never fails on a missing file so commands like "bough config init"
// and "bough doctor" can run before any setup. [Config.Validate] enforces
// the required values and returns a [*Error] suitable for fatal reporting.
package config
