package search

import "context"

// Embedder turns text into fixed-length vectors. Implementations make a
// blocking network call and must respect context cancellation.
type Embedder interface {
	// Embed returns the embedding for a single text. Empty or
	// whitespace-only text fails with ErrEmptyContent.
	Embed(ctx context.Context, text string) ([]float64, error)

	// EmbedBatch returns one embedding per input text, preserving input
	// order. Any empty entry fails the whole batch with ErrEmptyContent so
	// the index correspondence between inputs and outputs never silently
	// breaks.
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
}
