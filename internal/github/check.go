// Package github fetches pull request review feedback through the gh CLI.
// Shelling out to gh instead of using an API client keeps the user's
// existing authentication and enterprise host configuration working.
package github

import (
	"context"
	"errors"
	"os/exec"

	"github.com/boughdev/bough/internal/cmd"
)

// ErrGHNotFound indicates the gh CLI is not installed or not in PATH.
var ErrGHNotFound = errors.New("gh not found: install the GitHub CLI (https://cli.github.com)")

// ErrGHNotAuthenticated indicates gh is installed but not logged in.
var ErrGHNotAuthenticated = errors.New("gh not authenticated: run 'gh auth login'")

// CheckGH verifies that gh is available and authenticated.
func CheckGH(ctx context.Context) error {
	if _, err := exec.LookPath("gh"); err != nil {
		return ErrGHNotFound
	}
	// gh auth status exits non-zero when no account is logged in.
	if err := cmd.RunContext(ctx, "", "gh", "auth", "status"); err != nil {
		return ErrGHNotAuthenticated
	}
	return nil
}
