// Package store persists dataset sources across sessions.
//
// A Source is one raw inventory document plus identity metadata. The Store
// interface has implementations for different backends:
//   - memory: In-memory storage for development/testing
//   - file: File-based storage for CLI usage
//   - redis: Redis-backed storage for multi-instance deployments
//   - mongo: MongoDB-backed storage for durable shared deployments
//
// Stores hold the raw document bytes, never the built graph: the graph is
// always rebuilt from sources on load, so a version upgrade that changes the
// build never reads stale derived state.
package store

import (
	"context"
	"sort"
	"time"
)

// Source is one persisted inventory document.
type Source struct {
	ID      string    `json:"id" bson:"_id"`
	Name    string    `json:"name" bson:"name"`
	AddedAt time.Time `json:"added_at" bson:"added_at"`
	Data    []byte    `json:"data" bson:"data"`
}

// Store is the interface for source persistence backends.
// All implementations are safe for concurrent use.
type Store interface {
	// List returns all sources ordered by AddedAt, oldest first.
	List(ctx context.Context) ([]Source, error)

	// Put stores a source, replacing any existing one with the same ID.
	Put(ctx context.Context, src Source) error

	// Delete removes a source. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Clear removes all sources.
	Clear(ctx context.Context) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// sortSources orders by AddedAt, breaking ties on ID so the order is stable.
func sortSources(sources []Source) {
	sort.Slice(sources, func(i, j int) bool {
		if !sources[i].AddedAt.Equal(sources[j].AddedAt) {
			return sources[i].AddedAt.Before(sources[j].AddedAt)
		}
		return sources[i].ID < sources[j].ID
	})
}
