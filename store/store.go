// Package store provides a minimal sqlite-vec backed document store used by
// the CLI to demonstrate end-to-end retrieval with HyDE query embeddings.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/viant/hyde/cache"
	"github.com/viant/sqlite-vec/engine"
	"github.com/viant/sqlite-vec/vec"
	"github.com/viant/sqlite-vec/vector"
)

const defaultDataset = "default"

// Document is a stored text with its embedding and an optional metadata map.
type Document struct {
	ID       string
	Content  string
	Metadata map[string]interface{}
	Score    float64
}

// Option configures the store.
type Option func(*Store)

// WithDB sets an existing *sql.DB to use.
func WithDB(db *sql.DB) Option {
	return func(s *Store) { s.db = db }
}

// WithDSN sets the SQLite DSN to open (e.g. /path/to/db.sqlite or :memory:).
func WithDSN(dsn string) Option {
	return func(s *Store) { s.dsn = dsn }
}

// WithTable sets the vec virtual table name (default: hyde_docs).
func WithTable(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.table = name
		}
	}
}

// Store persists documents with their embeddings in SQLite and answers
// k-nearest-neighbour queries through the sqlite-vec virtual table.
type Store struct {
	db            *sql.DB
	dsn           string
	table         string
	shadow        string
	openedLocally bool
}

// New opens and initializes a store.
func New(opts ...Option) (*Store, error) {
	s := &Store{table: "hyde_docs"}
	for _, opt := range opts {
		opt(s)
	}
	s.shadow = "_vec_" + s.table
	if s.db == nil {
		if s.dsn == "" {
			return nil, fmt.Errorf("store: dsn required")
		}
		db, err := engine.Open(s.dsn)
		if err != nil {
			return nil, err
		}
		s.db = db
		s.db.SetMaxOpenConns(4)
		s.db.SetMaxIdleConns(4)
		s.openedLocally = true
	}
	if err := vec.Register(s.db); err != nil {
		return nil, err
	}
	if err := s.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying DB if the store opened it.
func (s *Store) Close() error {
	if s.openedLocally && s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB exposes the underlying sql.DB.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) ensureSchema(ctx context.Context) error {
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			dataset_id       TEXT NOT NULL,
			id               TEXT NOT NULL,
			asset_id         TEXT NOT NULL,
			content          TEXT,
			meta             TEXT,
			embedding        BLOB,
			embedding_model  TEXT,
			scn              INTEGER NOT NULL,
			archived         INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (dataset_id, id)
		);`, s.shadow),
		fmt.Sprintf(`CREATE VIRTUAL TABLE IF NOT EXISTS %s USING vec(doc_id);`, s.table),
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Add upserts documents with their embeddings, one vector per document in
// the same order, and returns the document ids. Documents without an ID get
// one derived from a hash of their content.
func (s *Store) Add(ctx context.Context, docs []Document, vectors [][]float32) ([]string, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	if len(vectors) != len(docs) {
		return nil, fmt.Errorf("store: %d vectors for %d documents", len(vectors), len(docs))
	}
	stmt, err := s.db.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %s(dataset_id, id, asset_id, content, meta, embedding, embedding_model, scn, archived)
VALUES(?,?,?,?,?,?,?,0,0)
ON CONFLICT(dataset_id, id) DO UPDATE SET
	content=excluded.content,
	meta=excluded.meta,
	embedding=excluded.embedding,
	archived=0`, s.shadow))
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	ids := make([]string, len(docs))
	for i, doc := range docs {
		id := doc.ID
		if id == "" {
			key, err := cache.Key(doc.Content)
			if err != nil {
				return nil, err
			}
			id = fmt.Sprintf("%016x", key)
		}
		ids[i] = id
		metaJSON := "{}"
		if len(doc.Metadata) > 0 {
			data, err := json.Marshal(doc.Metadata)
			if err != nil {
				return nil, err
			}
			metaJSON = string(data)
		}
		blob, err := vector.EncodeEmbedding(vectors[i])
		if err != nil {
			return nil, err
		}
		if _, err := stmt.ExecContext(ctx, defaultDataset, id, id, doc.Content, metaJSON, blob, ""); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

// Search returns up to k documents nearest to the query embedding, best
// match first.
func (s *Store) Search(ctx context.Context, embedding []float32, k int) ([]Document, error) {
	if k <= 0 {
		k = 10
	}
	blob, err := vector.EncodeEmbedding(embedding)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT d.id, d.content, d.meta, v.match_score
FROM %s v
JOIN %s d ON d.dataset_id = v.dataset_id AND d.id = v.doc_id
WHERE v.dataset_id = ?
  AND v.doc_id MATCH ?
  AND d.archived = 0
ORDER BY v.match_score DESC
LIMIT ?`, s.table, s.shadow)

	rows, err := s.db.QueryContext(ctx, query, defaultDataset, blob, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		var metaJSON string
		if err := rows.Scan(&doc.ID, &doc.Content, &metaJSON, &doc.Score); err != nil {
			return nil, err
		}
		if metaJSON != "" {
			if err := json.Unmarshal([]byte(metaJSON), &doc.Metadata); err != nil {
				return nil, err
			}
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}
