package main

import (
	"strings"
	"testing"

	"github.com/boughdev/bough/internal/feature"
)

func TestStateWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status feature.Status
		want   string
		styled bool
	}{
		{name: "Clean", status: feature.Status{}, want: "clean"},
		{name: "Dirty", status: feature.Status{Dirty: true}, want: "dirty", styled: true},
		{name: "Rebasing", status: feature.Status{RebaseInProgress: true}, want: "rebase in progress", styled: true},
		// Rebase in progress wins over dirty.
		{name: "RebasingDirty", status: feature.Status{Dirty: true, RebaseInProgress: true}, want: "rebase in progress", styled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := stateWord(&tt.status)
			if !strings.Contains(got, tt.want) {
				t.Errorf("stateWord() = %q, want %q", got, tt.want)
			}
			if tt.styled && got == tt.want {
				t.Errorf("stateWord() = %q, want styled output", got)
			}
		})
	}
}

func TestSyncWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status feature.Status
		want   string
	}{
		{name: "UpToDate", status: feature.Status{}, want: "up to date"},
		{name: "Ahead", status: feature.Status{CommitsAhead: 3}, want: "3 ahead"},
		{name: "Behind", status: feature.Status{CommitsBehind: 1}, want: "1 behind"},
		{name: "Both", status: feature.Status{CommitsAhead: 2, CommitsBehind: 5}, want: "2 ahead, 5 behind"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := syncWord(&tt.status); got != tt.want {
				t.Errorf("syncWord() = %q, want %q", got, tt.want)
			}
		})
	}
}
