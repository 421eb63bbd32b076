package main

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// render writes the sections as markdown and returns the test count.
func render(w io.Writer, sections []Section) (int, error) {
	fmt.Fprintf(w, "# Test Inventory\n\n")
	fmt.Fprintf(w, "Generated by `go run ./tools/testdoc`. Do not edit by hand.\n\n")

	total := 0
	fmt.Fprintf(w, "| Suite | Tests |\n|---|---|\n")
	for _, sec := range sections {
		fmt.Fprintf(w, "| [%s](#%s) | %d |\n", sec.Title, anchor(sec.Title), len(sec.Cases))
		total += len(sec.Cases)
	}
	fmt.Fprintf(w, "| **total** | **%d** |\n\n", total)

	for _, sec := range sections {
		fmt.Fprintf(w, "## %s\n\n", sec.Title)
		fmt.Fprintf(w, "| Test | Scenario | Expected |\n|---|---|---|\n")
		for _, c := range sec.Cases {
			scenario := c.Scenario
			if scenario == "" {
				scenario = c.Summary
			}
			fmt.Fprintf(w, "| `%s` | %s | %s |\n", c.Name, cell(scenario), cell(c.Expected))
		}
		fmt.Fprintf(w, "\n")
	}

	return total, nil
}

// cell makes a string safe for a markdown table cell.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", "\\|")
}

var anchorStrip = regexp.MustCompile(`[^a-z0-9-]`)

// anchor converts a section title to the github heading anchor form.
func anchor(title string) string {
	a := strings.ToLower(strings.ReplaceAll(title, " ", "-"))
	return anchorStrip.ReplaceAllString(a, "")
}
