package database

import (
	"context"

	"github.com/tieubaoca/smartmail-be/types"
)

// VectorIndex defines the interface to the remote vector index. The dedup
// ledger, not the index, is the source of truth for membership; Upsert is
// at-least-once and relies on deterministic chunk IDs to overwrite instead of
// duplicate.
type VectorIndex interface {
	// EnsureIndex creates the index if it does not exist. Idempotent.
	EnsureIndex(ctx context.Context) error
	// Upsert writes chunk records into the given namespace.
	Upsert(ctx context.Context, namespace string, records []types.Chunk) error
	// Search returns ranked hits for a free-text query. No hits is an empty
	// slice, not an error.
	Search(ctx context.Context, namespace string, query string, topK int) ([]types.SearchHit, error)
}
