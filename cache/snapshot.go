package cache

import (
	"bytes"
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/bintly"
)

// Save writes the cached vectors as a binary snapshot to the configured
// snapshot URL.
func (s *Service) Save(ctx context.Context) error {
	if s.snapshotURL == "" {
		return fmt.Errorf("cache snapshot URL is not set")
	}
	writers := bintly.NewWriters()
	writer := writers.Get()
	defer writers.Put(writer)

	writer.Int(s.vectors.Size())
	s.vectors.Range(func(key uint64, vector []float32) bool {
		writer.Uint64(key)
		writer.Int(len(vector))
		for _, value := range vector {
			writer.Float32(value)
		}
		return true
	})
	fs := afs.New()
	if err := fs.Upload(ctx, s.snapshotURL, file.DefaultFileOsMode, bytes.NewReader(writer.Bytes())); err != nil {
		return fmt.Errorf("upload cache snapshot %v: %w", s.snapshotURL, err)
	}
	return nil
}

// Load replaces the cached vectors with the snapshot at the configured
// snapshot URL. A missing snapshot is not an error.
func (s *Service) Load(ctx context.Context) error {
	if s.snapshotURL == "" {
		return fmt.Errorf("cache snapshot URL is not set")
	}
	fs := afs.New()
	if ok, _ := fs.Exists(ctx, s.snapshotURL); !ok {
		return nil
	}
	data, err := fs.DownloadWithURL(ctx, s.snapshotURL)
	if err != nil {
		return fmt.Errorf("download cache snapshot %v: %w", s.snapshotURL, err)
	}
	readers := bintly.NewReaders()
	reader := readers.Get()
	defer readers.Put(reader)
	if err := reader.FromBytes(data); err != nil {
		return fmt.Errorf("decode cache snapshot %v: %w", s.snapshotURL, err)
	}

	var count int
	reader.Int(&count)
	s.vectors.Clear()
	for i := 0; i < count; i++ {
		var key uint64
		reader.Uint64(&key)
		var dimension int
		reader.Int(&dimension)
		vector := make([]float32, dimension)
		for j := 0; j < dimension; j++ {
			reader.Float32(&vector[j])
		}
		s.vectors.Set(key, vector)
	}
	return nil
}
