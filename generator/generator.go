// Package generator produces hypothetical answer documents for a query by
// rendering a prompt template and invoking a generative language model.
package generator

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/prompts"
)

// Service renders the selected prompt with the input query and collects the
// candidate documents returned by the model. It holds no per-call state.
type Service struct {
	llm      llms.Model
	prompt   prompts.FormatPrompter
	variable string
	callOpts []llms.CallOption
}

// New creates a generator for the given model and prompt template. The
// template must declare exactly one input variable, which receives the query
// text on each Generate call. Call options (e.g. llms.WithCandidateCount)
// are forwarded to every model invocation.
func New(llm llms.Model, prompt prompts.FormatPrompter, callOpts ...llms.CallOption) (*Service, error) {
	if llm == nil {
		return nil, fmt.Errorf("generator: llm is required")
	}
	if prompt == nil {
		return nil, fmt.Errorf("generator: prompt template is required")
	}
	variables := prompt.GetInputVariables()
	if len(variables) != 1 {
		return nil, fmt.Errorf("generator: prompt template declares %d input variables (%v), want exactly one", len(variables), variables)
	}
	return &Service{llm: llm, prompt: prompt, variable: variables[0], callOpts: callOpts}, nil
}

// InputVariable returns the name of the template variable bound to the query.
func (s *Service) InputVariable() string {
	return s.variable
}

// Generate renders the prompt with the query and returns the generated
// candidate documents in model order. The number of candidates is whatever
// the model returns for a single submission; model failures propagate
// without retry.
func (s *Service) Generate(ctx context.Context, query string) ([]string, error) {
	value, err := s.prompt.FormatPrompt(map[string]any{s.variable: query})
	if err != nil {
		return nil, fmt.Errorf("format prompt: %w", err)
	}
	message := llms.TextParts(llms.ChatMessageTypeHuman, value.String())
	response, err := s.llm.GenerateContent(ctx, []llms.MessageContent{message}, s.callOpts...)
	if err != nil {
		return nil, fmt.Errorf("generate candidates: %w", err)
	}
	documents := make([]string, 0, len(response.Choices))
	for _, choice := range response.Choices {
		documents = append(documents, choice.Content)
	}
	return documents, nil
}
