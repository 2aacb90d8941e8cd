package search

import "context"

// VectorStore executes distance-ranked candidate queries against stored
// embeddings. Implementations must honor every predicate on the Query,
// exclude PII-flagged entities unconditionally, skip entities without an
// embedding, and return results ordered by ascending distance with entity
// id as the tie-break. Backend failures wrap ErrStoreUnavailable.
type VectorStore interface {
	Search(ctx context.Context, query Query) ([]Result, error)
}
