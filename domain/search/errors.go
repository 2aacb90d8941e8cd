// Package search defines the vector similarity search domain: text
// composition for embedding, query filters, and the store contract that
// persistence backends implement.
package search

import "errors"

// Dimension is the embedding vector length produced by the configured
// embedding model.
const Dimension = 1536

var (
	// ErrEmptyContent indicates an entity composed to an empty or
	// whitespace-only text blob. Not retryable.
	ErrEmptyContent = errors.New("no content to embed")

	// ErrEmbeddingMissing indicates a source entity has no stored embedding
	// and cannot be used as a similarity query anchor.
	ErrEmbeddingMissing = errors.New("entity has no embedding")

	// ErrStoreUnavailable indicates the vector store backend failed or is
	// unreachable. Wraps the underlying cause.
	ErrStoreUnavailable = errors.New("vector store unavailable")
)
