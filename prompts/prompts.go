// Package prompts holds the built-in hypothetical document prompt templates
// and their key-based registry.
package prompts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tmc/langchaingo/prompts"
)

// Registry keys for the built-in hypothetical document prompts.
const (
	WebSearch     = "web_search"
	SciFact       = "sci_fact"
	Arguana       = "arguana"
	TrecCovid     = "trec_covid"
	Fiqa          = "fiqa"
	DBPediaEntity = "dbpedia_entity"
	TrecNews      = "trec_news"
	MrTydi        = "mr_tydi"
)

// registry maps prompt keys to their templates. It is populated once at
// package init and never written afterwards.
var registry = map[string]prompts.PromptTemplate{
	WebSearch: prompts.NewPromptTemplate(
		"Please write a passage to answer the question\nQuestion: {{.QUESTION}}\nPassage:",
		[]string{"QUESTION"}),
	SciFact: prompts.NewPromptTemplate(
		"Please write a scientific paper passage to support/refute the claim\nClaim: {{.Claim}}\nPassage:",
		[]string{"Claim"}),
	Arguana: prompts.NewPromptTemplate(
		"Please write a counter argument for the passage\nPassage: {{.PASSAGE}}\nCounter Argument:",
		[]string{"PASSAGE"}),
	TrecCovid: prompts.NewPromptTemplate(
		"Please write a scientific paper passage to answer the question\nQuestion: {{.QUESTION}}\nPassage:",
		[]string{"QUESTION"}),
	Fiqa: prompts.NewPromptTemplate(
		"Please write a financial article passage to answer the question\nQuestion: {{.QUESTION}}\nPassage:",
		[]string{"QUESTION"}),
	DBPediaEntity: prompts.NewPromptTemplate(
		"Please write a passage to answer the question.\nQuestion: {{.QUESTION}}\nPassage:",
		[]string{"QUESTION"}),
	TrecNews: prompts.NewPromptTemplate(
		"Please write a news passage about the topic.\nTopic: {{.TOPIC}}\nPassage:",
		[]string{"TOPIC"}),
	MrTydi: prompts.NewPromptTemplate(
		"Please write a passage in Swahili/Korean/Japanese/Bengali to answer the question in detail.\nQuestion: {{.QUESTION}}\nPassage:",
		[]string{"QUESTION"}),
}

// Keys returns the registered prompt keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(registry))
	for key := range registry {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns the template registered under key. An empty or unknown key
// yields a configuration error enumerating the valid keys.
func Lookup(key string) (prompts.PromptTemplate, error) {
	if key == "" {
		return prompts.PromptTemplate{}, fmt.Errorf("prompt key is required when no custom prompt is provided, valid keys: %s", strings.Join(Keys(), ", "))
	}
	template, ok := registry[key]
	if !ok {
		return prompts.PromptTemplate{}, fmt.Errorf("unknown prompt key %q, valid keys: %s", key, strings.Join(Keys(), ", "))
	}
	return template, nil
}
