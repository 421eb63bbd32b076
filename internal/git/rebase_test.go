package git

import (
	"reflect"
	"testing"
)

func TestParseUnmerged(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		output string
		want   []UnmergedEntry
	}{
		{
			name:   "no conflicts",
			output: " M src/app.go\n?? notes.txt\n",
			want:   nil,
		},
		{
			name:   "both modified",
			output: "UU src/a.go\nUU src/b.go\n",
			want: []UnmergedEntry{
				{Code: "UU", Path: "src/a.go"},
				{Code: "UU", Path: "src/b.go"},
			},
		},
		{
			name:   "deletion conflict mixed with content conflict",
			output: "DU src/gone.go\nUU src/kept.go\n M src/other.go\n",
			want: []UnmergedEntry{
				{Code: "DU", Path: "src/gone.go"},
				{Code: "UU", Path: "src/kept.go"},
			},
		},
		{
			name:   "order preserved as reported",
			output: "UU zz.go\nUU aa.go\n",
			want: []UnmergedEntry{
				{Code: "UU", Path: "zz.go"},
				{Code: "UU", Path: "aa.go"},
			},
		},
		{
			name:   "quoted path with spaces",
			output: "UU \"dir/my file.go\"\n",
			want: []UnmergedEntry{
				{Code: "UU", Path: "dir/my file.go"},
			},
		},
		{
			name:   "empty output",
			output: "",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := parseUnmerged([]byte(tt.output))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseUnmerged() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnmergedEntry_DeletionConflict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want bool
	}{
		{"UU", false},
		{"AA", false},
		{"DU", true},
		{"UD", true},
		{"DD", true},
	}

	for _, tt := range tests {
		e := UnmergedEntry{Code: tt.code}
		if got := e.DeletionConflict(); got != tt.want {
			t.Errorf("DeletionConflict(%s) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
