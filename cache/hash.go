package cache

import (
	"github.com/minio/highwayhash"
)

var hashKey = []byte("hyde-embeddings-cache-hash-key!!")

// Key derives the cache key for a text.
func Key(text string) (uint64, error) {
	hasher, err := highwayhash.New64(hashKey)
	if err != nil {
		return 0, err
	}
	if _, err := hasher.Write([]byte(text)); err != nil {
		return 0, err
	}
	return hasher.Sum64(), nil
}
