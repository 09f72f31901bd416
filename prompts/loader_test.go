package prompts

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		return path
	}

	t.Run("inferred variable", func(t *testing.T) {
		path := write("single.txt", "Answer the following\nQuestion: {{.QUESTION}}\nAnswer:")
		template, err := Load(ctx, path, "")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		variables := template.GetInputVariables()
		if len(variables) != 1 || variables[0] != "QUESTION" {
			t.Fatalf("got variables %v, want [QUESTION]", variables)
		}
		value, err := template.FormatPrompt(map[string]any{"QUESTION": "why"})
		if err != nil {
			t.Fatalf("FormatPrompt: %v", err)
		}
		if !strings.Contains(value.String(), "Question: why") {
			t.Errorf("unexpected rendering %q", value.String())
		}
	})

	t.Run("explicit variable", func(t *testing.T) {
		path := write("explicit.txt", "Write about {{.TOPIC}}")
		template, err := Load(ctx, path, "TOPIC")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if variables := template.GetInputVariables(); variables[0] != "TOPIC" {
			t.Errorf("got variables %v, want [TOPIC]", variables)
		}
	})

	t.Run("no placeholder", func(t *testing.T) {
		path := write("none.txt", "static text without placeholders")
		if _, err := Load(ctx, path, ""); err == nil {
			t.Fatal("expected error for template without placeholders")
		}
	})

	t.Run("multiple placeholders", func(t *testing.T) {
		path := write("multi.txt", "{{.A}} and {{.B}}")
		if _, err := Load(ctx, path, ""); err == nil {
			t.Fatal("expected error for template with two variables")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(ctx, filepath.Join(dir, "absent.txt"), ""); err == nil {
			t.Fatal("expected error for missing file")
		}
	})
}
