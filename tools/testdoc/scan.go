package main

import (
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Case is one documented test function.
type Case struct {
	Name     string
	Summary  string // first doc line with the function name stripped
	Scenario string
	Expected string
}

// Section groups the cases of one command or package.
type Section struct {
	Title string
	Cases []Case
}

// scan walks root for test files and groups their test functions into
// sections. Without all, only *_integration_test.go files are read.
func scan(root string, all bool) ([]Section, error) {
	byTitle := make(map[string]*Section)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Skip everything the go tool ignores.
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor" || name == "testdata") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, "_test.go") {
			return nil
		}
		if !all && !strings.HasSuffix(path, "_integration_test.go") {
			return nil
		}

		cases, err := parseCases(path)
		if err != nil {
			return err
		}
		if len(cases) == 0 {
			return nil
		}

		title := sectionTitle(root, path)
		sec, ok := byTitle[title]
		if !ok {
			sec = &Section{Title: title}
			byTitle[title] = sec
		}
		sec.Cases = append(sec.Cases, cases...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sections := make([]Section, 0, len(byTitle))
	for _, sec := range byTitle {
		sort.Slice(sec.Cases, func(i, j int) bool { return sec.Cases[i].Name < sec.Cases[j].Name })
		sections = append(sections, *sec)
	}
	sort.Slice(sections, func(i, j int) bool { return sections[i].Title < sections[j].Title })
	return sections, nil
}

// sectionTitle derives a section name from a test file's location. Files
// under cmd/ carry the command in their name (sync_integration_test.go
// under cmd/bough is the `bough sync` suite); everything else groups by
// package directory.
func sectionTitle(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	if rest, ok := strings.CutPrefix(rel, "cmd/"); ok {
		binary, file, ok := strings.Cut(rest, "/")
		if ok && !strings.Contains(file, "/") {
			cmd := strings.TrimSuffix(file, "_integration_test.go")
			cmd = strings.TrimSuffix(cmd, "_test.go")
			cmd = strings.TrimSuffix(cmd, "_cmd")
			return binary + " " + strings.ReplaceAll(cmd, "_", " ")
		}
	}
	return filepath.ToSlash(filepath.Dir(rel))
}

// parseCases extracts the Test functions of one file with their doc
// comments split into summary, scenario and expectation.
func parseCases(path string) ([]Case, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	var cases []Case
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || !strings.HasPrefix(fn.Name.Name, "Test") || !isTestFunc(fn) {
			continue
		}
		c := Case{Name: fn.Name.Name}
		if fn.Doc != nil {
			c.Summary, c.Scenario, c.Expected = splitDoc(fn.Doc.Text(), fn.Name.Name)
		}
		cases = append(cases, c)
	}
	return cases, nil
}

// isTestFunc reports whether fn has the func(*testing.T) or
// func(*testing.B) signature, filtering out helpers with a Test prefix.
func isTestFunc(fn *ast.FuncDecl) bool {
	if fn.Type.Params == nil || len(fn.Type.Params.List) != 1 {
		return false
	}
	star, ok := fn.Type.Params.List[0].Type.(*ast.StarExpr)
	if !ok {
		return false
	}
	sel, ok := star.X.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	return ok && pkg.Name == "testing" && (sel.Sel.Name == "T" || sel.Sel.Name == "B")
}

// splitDoc breaks a doc comment into the summary line and the Scenario
// and Expected paragraphs. Continuation lines are joined until the next
// marker or blank line.
func splitDoc(doc, name string) (summary, scenario, expected string) {
	var target *string
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			target = nil
		case strings.HasPrefix(line, "Scenario:"):
			scenario = strings.TrimSpace(strings.TrimPrefix(line, "Scenario:"))
			target = &scenario
		case strings.HasPrefix(line, "Expected:"):
			expected = strings.TrimSpace(strings.TrimPrefix(line, "Expected:"))
			target = &expected
		case target != nil:
			*target += " " + line
		case summary == "":
			summary = strings.TrimPrefix(line, name+" ")
		}
	}
	return summary, scenario, expected
}
