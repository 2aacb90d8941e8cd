package persistence

import "math"

// CosineSimilarity computes the cosine of the angle between two vectors,
// in [-1, 1]. Returns 0 when either vector has zero magnitude or the
// dimensions differ.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// CosineDistance computes the cosine distance in [0, 2], matching the
// semantics of the pgvector <=> operator.
func CosineDistance(a, b []float64) float64 {
	return 1.0 - CosineSimilarity(a, b)
}
