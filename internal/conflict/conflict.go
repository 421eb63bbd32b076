// Package conflict inspects rebase conflicts and renders the conflict
// report left behind for manual intervention.
//
// Conflicts are always derived from git's own unmerged state, never from
// parsing error messages. The extractor walks the conflicted paths in the
// order git reports them and classifies each one:
//
//   - content: the file contains conflict marker regions
//   - deletion: one side deleted the file
//   - binary: unmerged but without markers (binary or file-mode conflict)
package conflict

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/boughdev/bough/internal/git"
)

// Kind classifies a conflicted file.
type Kind string

const (
	KindContent  Kind = "content"
	KindDeletion Kind = "deletion"
	KindBinary   Kind = "binary"
)

// Region is one conflict-marker block: the text between <<<<<<< and
// ======= (ours) and between ======= and >>>>>>> (theirs). During a rebase
// git swaps the sides, so Ours holds the base branch's version and Theirs
// the feature commit being replayed.
type Region struct {
	Ours   string `json:"ours"`
	Theirs string `json:"theirs"`
}

// File is one conflicted path with its classification.
type File struct {
	Path    string   `json:"path"`
	Kind    Kind     `json:"kind"`
	Regions []Region `json:"regions,omitempty"`
}

// Set holds all conflicted files of a stopped rebase, in the order git
// reported them.
type Set struct {
	Files []File `json:"files"`
}

// Empty reports whether the set has no conflicted files.
func (s *Set) Empty() bool {
	return s == nil || len(s.Files) == 0
}

// Paths returns the conflicted paths in report order.
func (s *Set) Paths() []string {
	if s == nil {
		return nil
	}
	paths := make([]string, len(s.Files))
	for i, f := range s.Files {
		paths[i] = f.Path
	}
	return paths
}

// Extract builds the conflict set for a worktree with a stopped rebase.
// Deletion conflicts are detected from the index and never read from disk,
// since the file may not exist on either side.
func Extract(ctx context.Context, dir string) (*Set, error) {
	paths, err := git.ConflictedFiles(ctx, dir)
	if err != nil {
		return nil, err
	}

	entries, err := git.UnmergedEntries(ctx, dir)
	if err != nil {
		return nil, err
	}
	deleted := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.DeletionConflict() {
			deleted[e.Path] = true
		}
	}

	set := &Set{Files: make([]File, 0, len(paths))}
	for _, path := range paths {
		if deleted[path] {
			set.Files = append(set.Files, File{Path: path, Kind: KindDeletion})
			continue
		}

		f, err := os.Open(filepath.Join(dir, path))
		if err != nil {
			return nil, fmt.Errorf("failed to read conflicted file %s: %v", path, err)
		}
		regions, err := scanRegions(f)
		f.Close()
		if err != nil {
			// A line longer than the scanner buffer means binary data,
			// not a broken worktree.
			if !errors.Is(err, bufio.ErrTooLong) {
				return nil, fmt.Errorf("failed to scan conflicted file %s: %v", path, err)
			}
			regions = nil
		}

		kind := KindContent
		if len(regions) == 0 {
			kind = KindBinary
		}
		set.Files = append(set.Files, File{Path: path, Kind: kind, Regions: regions})
	}

	return set, nil
}

type scanState int

const (
	stateNone scanState = iota
	stateOurs
	stateBase
	stateTheirs
)

// scanRegions collects conflict-marker regions from file content. The base
// section of diff3-style markers (between ||||||| and =======) belongs to
// neither side and is skipped.
func scanRegions(r io.Reader) ([]Region, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var regions []Region
	var ours, theirs []string
	state := stateNone

	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "<<<<<<<") && state == stateNone:
			ours, theirs = nil, nil
			state = stateOurs
		case strings.HasPrefix(line, "|||||||") && state == stateOurs:
			state = stateBase
		case line == "=======" && (state == stateOurs || state == stateBase):
			state = stateTheirs
		case strings.HasPrefix(line, ">>>>>>>") && state == stateTheirs:
			regions = append(regions, Region{
				Ours:   strings.Join(ours, "\n"),
				Theirs: strings.Join(theirs, "\n"),
			})
			state = stateNone
		default:
			switch state {
			case stateOurs:
				ours = append(ours, line)
			case stateTheirs:
				theirs = append(theirs, line)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return regions, nil
}
