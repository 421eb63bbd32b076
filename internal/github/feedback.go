package github

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/boughdev/bough/internal/cmd"
)

// Review is a submitted pull request review.
type Review struct {
	Author string `json:"author"`
	State  string `json:"state"` // APPROVED, CHANGES_REQUESTED, COMMENTED, DISMISSED
	Body   string `json:"body"`
}

// Comment is an inline review comment anchored to a file.
type Comment struct {
	Author string `json:"author"`
	Path   string `json:"path"`
	Line   int    `json:"line"`
	Body   string `json:"body"`
}

// Feedback bundles everything reviewers left on a pull request.
type Feedback struct {
	PR       PR        `json:"pr"`
	Reviews  []Review  `json:"reviews"`
	Comments []Comment `json:"comments"`
}

// FetchFeedback collects review bodies and inline comments for the pull
// request whose head is branch. Runs gh inside dir so the {owner}/{repo}
// placeholders resolve from the checkout's origin.
func FetchFeedback(ctx context.Context, dir, branch string) (*Feedback, error) {
	pr, err := PRForBranch(ctx, dir, branch)
	if err != nil {
		return nil, err
	}
	if pr == nil {
		return nil, &NoPRError{Branch: branch}
	}

	endpoint := fmt.Sprintf("repos/{owner}/{repo}/pulls/%d", pr.Number)

	out, err := cmd.OutputContext(ctx, dir, "gh", "api", endpoint+"/reviews?per_page=100")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %v", err)
	}
	reviews, err := parseReviews(out)
	if err != nil {
		return nil, err
	}

	out, err = cmd.OutputContext(ctx, dir, "gh", "api", endpoint+"/comments?per_page=100")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch review comments: %v", err)
	}
	comments, err := parseComments(out)
	if err != nil {
		return nil, err
	}

	return &Feedback{PR: *pr, Reviews: reviews, Comments: comments}, nil
}

func parseReviews(data []byte) ([]Review, error) {
	var raw []struct {
		User struct {
			Login string `json:"login"`
		} `json:"user"`
		Body  string `json:"body"`
		State string `json:"state"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse reviews: %v", err)
	}

	var reviews []Review
	for _, r := range raw {
		// Inline comments produce empty COMMENTED shell reviews.
		if r.Body == "" && r.State == "COMMENTED" {
			continue
		}
		reviews = append(reviews, Review{Author: r.User.Login, State: r.State, Body: r.Body})
	}
	return reviews, nil
}

func parseComments(data []byte) ([]Comment, error) {
	var raw []struct {
		User struct {
			Login string `json:"login"`
		} `json:"user"`
		Path         string `json:"path"`
		Line         int    `json:"line"`
		OriginalLine int    `json:"original_line"`
		Body         string `json:"body"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse review comments: %v", err)
	}

	comments := make([]Comment, 0, len(raw))
	for _, c := range raw {
		line := c.Line
		if line == 0 {
			// Comments on outdated diffs lose their live line anchor.
			line = c.OriginalLine
		}
		comments = append(comments, Comment{Author: c.User.Login, Path: c.Path, Line: line, Body: c.Body})
	}
	return comments, nil
}

// RenderFeedback formats feedback as a work order for the coding agent:
// every review and inline comment with its location, followed by
// instructions for addressing them.
func RenderFeedback(fb *Feedback) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# PR #%d: %s\n\n", fb.PR.Number, fb.PR.Title)
	fmt.Fprintf(&b, "State %s. %s\n", fb.PR.State, fb.PR.URL)

	if len(fb.Reviews) == 0 && len(fb.Comments) == 0 {
		b.WriteString("\nNo review feedback yet.\n")
		return b.String()
	}

	if len(fb.Reviews) > 0 {
		b.WriteString("\n## Reviews\n\n")
		for _, r := range fb.Reviews {
			fmt.Fprintf(&b, "- %s (%s)", r.Author, strings.ToLower(r.State))
			if r.Body != "" {
				fmt.Fprintf(&b, ": %s", r.Body)
			}
			b.WriteString("\n")
		}
	}

	if len(fb.Comments) > 0 {
		b.WriteString("\n## Inline comments\n")
		comments := make([]Comment, len(fb.Comments))
		copy(comments, fb.Comments)
		sort.SliceStable(comments, func(i, j int) bool { return comments[i].Path < comments[j].Path })

		var lastPath string
		for _, c := range comments {
			if c.Path != lastPath {
				fmt.Fprintf(&b, "\n### %s\n\n", c.Path)
				lastPath = c.Path
			}
			fmt.Fprintf(&b, "- line %d, %s: %s\n", c.Line, c.Author, c.Body)
		}
	}

	b.WriteString("\n## How to address this feedback\n\n")
	b.WriteString("1. Work through every inline comment at the file and line it names.\n")
	b.WriteString("2. Treat changes_requested reviews as blocking and address their points first.\n")
	b.WriteString("3. If a comment asks a question rather than requesting a change, answer it on the PR instead of changing code.\n")
	b.WriteString("4. Commit the fixes on this branch. Do not open a new pull request.\n")
	return b.String()
}
