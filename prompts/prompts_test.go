package prompts

import (
	"sort"
	"strings"
	"testing"
)

func TestLookup(t *testing.T) {
	for _, key := range Keys() {
		t.Run(key, func(t *testing.T) {
			template, err := Lookup(key)
			if err != nil {
				t.Fatalf("Lookup(%q): %v", key, err)
			}
			variables := template.GetInputVariables()
			if len(variables) != 1 {
				t.Errorf("template %q declares %d input variables, want 1", key, len(variables))
			}
		})
	}
}

func TestLookup_Errors(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{name: "empty key", key: ""},
		{name: "unknown key", key: "nonexistent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lookup(tt.key)
			if err == nil {
				t.Fatal("expected error")
			}
			for _, key := range Keys() {
				if !strings.Contains(err.Error(), key) {
					t.Errorf("error %q does not mention valid key %q", err.Error(), key)
				}
			}
		})
	}
}

func TestKeys_Sorted(t *testing.T) {
	keys := Keys()
	if len(keys) == 0 {
		t.Fatal("no registered prompt keys")
	}
	if !sort.StringsAreSorted(keys) {
		t.Errorf("keys not sorted: %v", keys)
	}
}

func TestRegistryTemplates_Render(t *testing.T) {
	for key, template := range registry {
		variables := template.GetInputVariables()
		if len(variables) != 1 {
			t.Fatalf("template %q has variables %v", key, variables)
		}
		value, err := template.FormatPrompt(map[string]any{variables[0]: "sample input"})
		if err != nil {
			t.Fatalf("template %q render: %v", key, err)
		}
		if !strings.Contains(value.String(), "sample input") {
			t.Errorf("template %q rendering does not embed the input: %q", key, value.String())
		}
	}
}
