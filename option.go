package hyde

import (
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/prompts"
)

// Option applies configuration to options.
type Option func(*options)

type options struct {
	promptKey string
	prompt    prompts.FormatPrompter
	callOpts  []llms.CallOption
}

func newOptions(opts ...Option) *options {
	result := &options{}
	for _, opt := range opts {
		opt(result)
	}
	return result
}

// WithPromptKey selects a built-in prompt template by registry key.
func WithPromptKey(key string) Option {
	return func(o *options) { o.promptKey = key }
}

// WithPrompt sets a custom prompt template. A custom prompt takes precedence
// over any registry key.
func WithPrompt(prompt prompts.FormatPrompter) Option {
	return func(o *options) { o.prompt = prompt }
}

// WithCallOptions sets generation call options forwarded to the model on
// every query, e.g. llms.WithCandidateCount or llms.WithTemperature.
func WithCallOptions(callOpts ...llms.CallOption) Option {
	return func(o *options) { o.callOpts = append(o.callOpts, callOpts...) }
}
