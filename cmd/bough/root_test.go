package main

import (
	"runtime"
	"strings"
	"testing"
)

func TestVersionString(t *testing.T) {
	t.Parallel()

	got := versionString()
	if !strings.HasPrefix(got, "bough dev") {
		t.Errorf("versionString() = %q, want bough dev prefix", got)
	}
	if !strings.Contains(got, runtime.Version()) {
		t.Errorf("versionString() = %q, want go version included", got)
	}
}

func TestCommandRegistration(t *testing.T) {
	t.Parallel()

	want := []string{
		"start", "sync", "status", "cleanup", "feedback", "path",
		"serve", "config", "doctor", "completion",
	}

	have := make(map[string]string)
	for _, c := range rootCmd.Commands() {
		have[c.Name()] = c.GroupID
	}

	for _, name := range want {
		group, ok := have[name]
		if !ok {
			t.Errorf("command %q not registered", name)
			continue
		}
		if group == "" {
			t.Errorf("command %q has no group", name)
		}
	}
}

func TestCommandGroups(t *testing.T) {
	t.Parallel()

	groups := rootCmd.Groups()
	if len(groups) != 3 {
		t.Fatalf("got %d command groups, want 3", len(groups))
	}
	ids := map[string]bool{}
	for _, g := range groups {
		ids[g.ID] = true
	}
	for _, id := range []string{GroupCore, GroupServer, GroupConfig} {
		if !ids[id] {
			t.Errorf("group %q not registered", id)
		}
	}
}
