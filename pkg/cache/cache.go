// Package cache provides content-addressed caching for rendered exports.
//
// Rendering a large graph through the external layout engine is the one
// expensive step in the pipeline, and its output depends only on the
// projected view, the layout plan, and the output format. The cache stores
// finished artifacts keyed by a hash of those inputs, so re-exporting an
// unchanged dataset is a file read.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache stores rendered artifacts by key.
type Cache interface {
	// Get retrieves a cached artifact. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores an artifact. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes an artifact. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources.
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ExportKey builds the cache key for one rendered export. The inputs are
// hashed together, so any change to the view, plan, or format misses.
func ExportKey(viewHash, planHash, format string) string {
	return hashKey("export", viewHash, planHash, format)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}
