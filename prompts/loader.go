package prompts

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/tmc/langchaingo/prompts"
	"github.com/viant/afs"
)

var variableExpr = regexp.MustCompile(`{{\s*\.([A-Za-z_][A-Za-z0-9_]*)\s*}}`)

// Load reads a custom prompt template from the supplied afs URL (file path,
// file://, or any registered scheme). When variable is empty the template's
// single input variable is inferred from the {{.NAME}} placeholders; a
// template with zero or multiple distinct placeholders is rejected.
func Load(ctx context.Context, URL string, variable string) (prompts.PromptTemplate, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return prompts.PromptTemplate{}, fmt.Errorf("load prompt template %v: %w", URL, err)
	}
	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return prompts.PromptTemplate{}, fmt.Errorf("prompt template %v is empty", URL)
	}
	if variable == "" {
		variable, err = inferVariable(text)
		if err != nil {
			return prompts.PromptTemplate{}, fmt.Errorf("prompt template %v: %w", URL, err)
		}
	}
	return prompts.NewPromptTemplate(text, []string{variable}), nil
}

func inferVariable(text string) (string, error) {
	seen := map[string]bool{}
	var names []string
	for _, match := range variableExpr.FindAllStringSubmatch(text, -1) {
		name := match[1]
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	switch len(names) {
	case 1:
		return names[0], nil
	case 0:
		return "", fmt.Errorf("template declares no input variable")
	default:
		return "", fmt.Errorf("template declares %d input variables (%s), want exactly one", len(names), strings.Join(names, ", "))
	}
}
