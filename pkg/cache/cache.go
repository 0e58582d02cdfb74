// Package cache stores computed layouts so repeated runs over the same
// family and options skip the engine.
//
// Entries are opaque bytes under string keys. [Key] derives a key from any
// JSON-serializable parts, so the same family and options always map to the
// same entry. Three backends exist: [FileCache] for the CLI, [RedisCache]
// for servers sharing a cache, and [NullCache] when caching is off.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Cache is a byte store with optional expiry. A miss is reported with
// found false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, found bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Key hashes parts into a key of the form prefix:sha256.
func Key(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
