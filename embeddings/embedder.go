// Package embeddings defines the embedding-provider contract consumed and
// implemented across this module, plus a deterministic embedder for tests
// and offline runs. Provider-backed implementations live in subpackages.
package embeddings

import "context"

// Embedder maps text to fixed-length vectors. EmbedDocuments returns one
// vector per input text, in input order; all vectors produced by a given
// implementation share the same length.
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}
