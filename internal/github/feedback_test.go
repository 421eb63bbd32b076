package github

import (
	"strings"
	"testing"
)

func TestParseReviews(t *testing.T) {
	t.Parallel()

	data := []byte(`[
		{"user": {"login": "alice"}, "body": "Needs work", "state": "CHANGES_REQUESTED"},
		{"user": {"login": "bob"}, "body": "", "state": "COMMENTED"},
		{"user": {"login": "carol"}, "body": "", "state": "APPROVED"}
	]`)

	reviews, err := parseReviews(data)
	if err != nil {
		t.Fatalf("parseReviews failed: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("got %d reviews, want 2 (empty COMMENTED shells dropped)", len(reviews))
	}
	if reviews[0].Author != "alice" || reviews[0].State != "CHANGES_REQUESTED" {
		t.Errorf("reviews[0] = %+v", reviews[0])
	}
	if reviews[1].Author != "carol" || reviews[1].State != "APPROVED" {
		t.Errorf("reviews[1] = %+v", reviews[1])
	}
}

func TestParseComments(t *testing.T) {
	t.Parallel()

	data := []byte(`[
		{"user": {"login": "alice"}, "path": "auth/login.go", "line": 42, "original_line": 40, "body": "Check the error"},
		{"user": {"login": "bob"}, "path": "auth/token.go", "line": null, "original_line": 7, "body": "Outdated hunk"}
	]`)

	comments, err := parseComments(data)
	if err != nil {
		t.Fatalf("parseComments failed: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("got %d comments, want 2", len(comments))
	}
	if comments[0].Line != 42 {
		t.Errorf("comments[0].Line = %d, want 42", comments[0].Line)
	}
	// A null live line falls back to the original line.
	if comments[1].Line != 7 {
		t.Errorf("comments[1].Line = %d, want 7", comments[1].Line)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	t.Parallel()

	if _, err := parseReviews([]byte("not json")); err == nil {
		t.Error("parseReviews accepted malformed input")
	}
	if _, err := parseComments([]byte("{}")); err == nil {
		t.Error("parseComments accepted a non-array")
	}
}

func TestRenderFeedback(t *testing.T) {
	t.Parallel()

	fb := &Feedback{
		PR: PR{Number: 12, Title: "Add login flow", State: "OPEN", URL: "https://github.com/acme/app/pull/12"},
		Reviews: []Review{
			{Author: "alice", State: "CHANGES_REQUESTED", Body: "Token handling is racy"},
		},
		Comments: []Comment{
			{Author: "bob", Path: "auth/token.go", Line: 7, Body: "Leaks on error"},
			{Author: "alice", Path: "auth/login.go", Line: 42, Body: "Check the error"},
			{Author: "alice", Path: "auth/token.go", Line: 19, Body: "Same here"},
		},
	}

	doc := RenderFeedback(fb)

	for _, want := range []string{
		"# PR #12: Add login flow",
		"- alice (changes_requested): Token handling is racy",
		"### auth/login.go",
		"### auth/token.go",
		"- line 7, bob: Leaks on error",
		"## How to address this feedback",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("rendered feedback missing %q:\n%s", want, doc)
		}
	}

	// Comments grouped by file: both token.go comments under one heading.
	if strings.Count(doc, "### auth/token.go") != 1 {
		t.Errorf("auth/token.go heading repeated:\n%s", doc)
	}
	loginIdx := strings.Index(doc, "### auth/login.go")
	tokenIdx := strings.Index(doc, "### auth/token.go")
	if loginIdx > tokenIdx {
		t.Error("file sections not sorted by path")
	}
}

func TestRenderFeedbackEmpty(t *testing.T) {
	t.Parallel()

	doc := RenderFeedback(&Feedback{PR: PR{Number: 3, Title: "WIP", State: "OPEN"}})
	if !strings.Contains(doc, "No review feedback yet.") {
		t.Errorf("empty feedback rendering = %q", doc)
	}
	if strings.Contains(doc, "## How to address") {
		t.Error("instructions rendered without any feedback")
	}
}

func TestNoPRError(t *testing.T) {
	t.Parallel()

	err := &NoPRError{Branch: "feature/login-flow"}
	want := "no pull request found for branch feature/login-flow"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
