package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/prompts"
)

type stubModel struct {
	completions []string
	err         error
	lastPrompt  string
}

func (m *stubModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, message := range messages {
		for _, part := range message.Parts {
			if text, ok := part.(llms.TextContent); ok {
				m.lastPrompt = text.Text
			}
		}
	}
	choices := make([]*llms.ContentChoice, 0, len(m.completions))
	for _, completion := range m.completions {
		choices = append(choices, &llms.ContentChoice{Content: completion})
	}
	return &llms.ContentResponse{Choices: choices}, nil
}

func (m *stubModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	response, err := m.GenerateContent(ctx, []llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, prompt)}, options...)
	if err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", errors.New("no choices")
	}
	return response.Choices[0].Content, nil
}

func TestNew_Validation(t *testing.T) {
	single := prompts.NewPromptTemplate("about {{.TOPIC}}", []string{"TOPIC"})
	double := prompts.NewPromptTemplate("{{.A}} vs {{.B}}", []string{"A", "B"})
	zero := prompts.NewPromptTemplate("static", []string{})

	tests := []struct {
		name    string
		llm     llms.Model
		prompt  prompts.FormatPrompter
		wantErr bool
	}{
		{name: "valid", llm: &stubModel{}, prompt: single},
		{name: "nil llm", llm: nil, prompt: single, wantErr: true},
		{name: "nil prompt", llm: &stubModel{}, prompt: nil, wantErr: true},
		{name: "two variables", llm: &stubModel{}, prompt: double, wantErr: true},
		{name: "no variables", llm: &stubModel{}, prompt: zero, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.llm, tt.prompt)
			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("New: %v", err)
			}
		})
	}
}

func TestService_Generate(t *testing.T) {
	ctx := context.Background()
	llm := &stubModel{completions: []string{"first", "second", "third"}}
	template := prompts.NewPromptTemplate("Please write a claim about {{.Claim}}", []string{"Claim"})
	svc, err := New(llm, template)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if svc.InputVariable() != "Claim" {
		t.Errorf("InputVariable: got %q, want Claim", svc.InputVariable())
	}
	documents, err := svc.Generate(ctx, "gravity bends light")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	expect := []string{"first", "second", "third"}
	if len(documents) != len(expect) {
		t.Fatalf("got %d documents, want %d", len(documents), len(expect))
	}
	for i := range expect {
		if documents[i] != expect[i] {
			t.Errorf("document %d: got %q, want %q", i, documents[i], expect[i])
		}
	}
	if !strings.Contains(llm.lastPrompt, "gravity bends light") {
		t.Errorf("prompt %q does not bind the query", llm.lastPrompt)
	}
}

func TestService_Generate_ModelError(t *testing.T) {
	ctx := context.Background()
	llm := &stubModel{err: errors.New("rate limited")}
	template := prompts.NewPromptTemplate("{{.QUESTION}}", []string{"QUESTION"})
	svc, err := New(llm, template)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := svc.Generate(ctx, "q"); err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("got %v, want propagated model error", err)
	}
}

func TestService_Generate_Empty(t *testing.T) {
	ctx := context.Background()
	template := prompts.NewPromptTemplate("{{.QUESTION}}", []string{"QUESTION"})
	svc, err := New(&stubModel{}, template)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	documents, err := svc.Generate(ctx, "q")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(documents) != 0 {
		t.Fatalf("got %d documents, want 0", len(documents))
	}
}
