package cache

import (
	"context"
	"path/filepath"
	"testing"
)

// countingEmbedder records how many texts were actually embedded.
type countingEmbedder struct {
	dimension int
	embedded  int
	calls     int
}

func (e *countingEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	e.calls++
	e.embedded += len(texts)
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vector := make([]float32, e.dimension)
		for j := range vector {
			vector[j] = float32(len(text) + j)
		}
		vectors[i] = vector
	}
	return vectors, nil
}

func (e *countingEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func TestService_EmbedDocuments(t *testing.T) {
	ctx := context.Background()
	base := &countingEmbedder{dimension: 3}
	svc := New(base)

	first, err := svc.EmbedDocuments(ctx, []string{"alpha", "beta"})
	if err != nil {
		t.Fatalf("EmbedDocuments: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("got %d vectors, want 2", len(first))
	}
	if base.embedded != 2 {
		t.Fatalf("base embedded %d texts, want 2", base.embedded)
	}
	if svc.Size() != 2 {
		t.Fatalf("cache size %d, want 2", svc.Size())
	}

	// Repeat plus one new text: only the new text reaches the base.
	second, err := svc.EmbedDocuments(ctx, []string{"alpha", "gamma", "beta"})
	if err != nil {
		t.Fatalf("EmbedDocuments: %v", err)
	}
	if base.embedded != 3 {
		t.Fatalf("base embedded %d texts, want 3", base.embedded)
	}
	if len(second) != 3 {
		t.Fatalf("got %d vectors, want 3", len(second))
	}
	for i, vector := range second {
		if len(vector) != 3 {
			t.Errorf("vector %d has dimension %d, want 3", i, len(vector))
		}
	}

	// Fully cached batch does not call the base at all.
	callsBefore := base.calls
	if _, err := svc.EmbedDocuments(ctx, []string{"beta", "gamma"}); err != nil {
		t.Fatalf("EmbedDocuments: %v", err)
	}
	if base.calls != callsBefore {
		t.Fatalf("base called %d times for a fully cached batch", base.calls-callsBefore)
	}
}

func TestService_EmbedQuery(t *testing.T) {
	ctx := context.Background()
	base := &countingEmbedder{dimension: 2}
	svc := New(base)
	first, err := svc.EmbedQuery(ctx, "query")
	if err != nil {
		t.Fatalf("EmbedQuery: %v", err)
	}
	second, err := svc.EmbedQuery(ctx, "query")
	if err != nil {
		t.Fatalf("EmbedQuery: %v", err)
	}
	if base.embedded != 1 {
		t.Fatalf("base embedded %d texts, want 1", base.embedded)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("component %d changed between calls: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	ctx := context.Background()
	URL := filepath.Join(t.TempDir(), "vectors.bin")

	base := &countingEmbedder{dimension: 4}
	svc := New(base, WithSnapshotURL(URL))
	texts := []string{"one", "two", "three"}
	original, err := svc.EmbedDocuments(ctx, texts)
	if err != nil {
		t.Fatalf("EmbedDocuments: %v", err)
	}
	if err := svc.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}

	restoredBase := &countingEmbedder{dimension: 4}
	restored := New(restoredBase, WithSnapshotURL(URL))
	if err := restored.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if restored.Size() != len(texts) {
		t.Fatalf("restored cache size %d, want %d", restored.Size(), len(texts))
	}
	vectors, err := restored.EmbedDocuments(ctx, texts)
	if err != nil {
		t.Fatalf("EmbedDocuments after Load: %v", err)
	}
	if restoredBase.embedded != 0 {
		t.Fatalf("restored base embedded %d texts, want 0", restoredBase.embedded)
	}
	for i := range texts {
		for j := range original[i] {
			if vectors[i][j] != original[i][j] {
				t.Errorf("text %d component %d: got %v, want %v", i, j, vectors[i][j], original[i][j])
			}
		}
	}
}

func TestSnapshot_MissingIsNotError(t *testing.T) {
	ctx := context.Background()
	URL := filepath.Join(t.TempDir(), "absent.bin")
	svc := New(&countingEmbedder{dimension: 2}, WithSnapshotURL(URL))
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("Load of missing snapshot: %v", err)
	}
	if svc.Size() != 0 {
		t.Fatalf("cache size %d, want 0", svc.Size())
	}
}

func TestSnapshot_RequiresURL(t *testing.T) {
	ctx := context.Background()
	svc := New(&countingEmbedder{dimension: 2})
	if err := svc.Save(ctx); err == nil {
		t.Fatal("Save without snapshot URL should fail")
	}
	if err := svc.Load(ctx); err == nil {
		t.Fatal("Load without snapshot URL should fail")
	}
}

func TestKey_Stable(t *testing.T) {
	first, err := Key("same text")
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	second, err := Key("same text")
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	if first != second {
		t.Fatalf("keys differ for identical text: %d vs %d", first, second)
	}
	other, err := Key("other text")
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	if other == first {
		t.Fatalf("distinct texts share key %d", first)
	}
}
