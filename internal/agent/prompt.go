package agent

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed prompt.tmpl
var promptText string

var promptTemplate = template.Must(template.New("prompt").Parse(promptText))

// buildPrompt renders the resolution instructions sent to the agent on
// stdin.
func buildPrompt(req *Request) (string, error) {
	data := struct {
		Branch  string
		BaseRef string
		Files   []promptFile
	}{
		Branch:  req.Branch,
		BaseRef: req.BaseRef,
	}
	for _, f := range req.Conflicts.Files {
		data.Files = append(data.Files, promptFile{Path: f.Path, Kind: string(f.Kind)})
	}

	var b strings.Builder
	if err := promptTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render agent prompt: %v", err)
	}
	return b.String(), nil
}

type promptFile struct {
	Path string
	Kind string
}
