package github

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/boughdev/bough/internal/cmd"
)

// PR identifies a pull request for a feature branch.
type PR struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	State  string `json:"state"` // OPEN, MERGED, CLOSED
	URL    string `json:"url"`
}

// NoPRError indicates a branch without an associated pull request.
type NoPRError struct {
	Branch string
}

func (e *NoPRError) Error() string {
	return fmt.Sprintf("no pull request found for branch %s", e.Branch)
}

// PRForBranch looks up the pull request whose head is branch. The lookup
// runs inside dir so gh resolves the repository from the checkout's
// origin. Returns nil when the branch has no PR.
func PRForBranch(ctx context.Context, dir, branch string) (*PR, error) {
	out, err := cmd.OutputContext(ctx, dir, "gh", "pr", "list",
		"--head", branch,
		"--state", "all",
		"--json", "number,title,state,url",
		"--limit", "1")
	if err != nil {
		return nil, fmt.Errorf("failed to list pull requests: %v", err)
	}

	var prs []PR
	if err := json.Unmarshal(out, &prs); err != nil {
		return nil, fmt.Errorf("failed to parse gh output: %v", err)
	}
	if len(prs) == 0 {
		return nil, nil
	}
	return &prs[0], nil
}
