// Command testdoc generates a markdown inventory of the test suite from
// test doc comments. Integration tests written with Scenario/Expected
// comments become a per-command behavior table reviewers can read
// without opening the test files.
//
// Usage:
//
//	go run ./tools/testdoc              # integration tests -> docs/TESTS.md
//	go run ./tools/testdoc -all         # include unit tests
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	var (
		rootDir string
		outFile string
		all     bool
	)

	flag.StringVar(&rootDir, "root", ".", "directory to scan for test files")
	flag.StringVar(&outFile, "out", "docs/TESTS.md", "output markdown file")
	flag.BoolVar(&all, "all", false, "include unit tests, not just *_integration_test.go")
	flag.Parse()

	root, err := filepath.Abs(rootDir)
	if err != nil {
		fatal("resolve root: %v", err)
	}

	sections, err := scan(root, all)
	if err != nil {
		fatal("scan tests: %v", err)
	}
	if len(sections) == 0 {
		fatal("no test files under %s", root)
	}

	if err := os.MkdirAll(filepath.Dir(outFile), 0755); err != nil {
		fatal("create output dir: %v", err)
	}
	f, err := os.Create(outFile)
	if err != nil {
		fatal("create %s: %v", outFile, err)
	}
	defer f.Close()

	count, err := render(f, sections)
	if err != nil {
		fatal("render: %v", err)
	}
	fmt.Printf("wrote %s: %d tests in %d sections\n", outFile, count, len(sections))
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "testdoc: "+format+"\n", args...)
	os.Exit(1)
}
