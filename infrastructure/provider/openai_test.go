package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clustertune/reportd/domain/search"
)

// newFakeOpenAI starts an embeddings endpoint that calls handler per request
// and returns an embedder pointed at it with fast retry settings.
func newFakeOpenAI(t *testing.T, handler http.HandlerFunc) *OpenAIEmbedder {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewOpenAIEmbedderFromConfig(OpenAIConfig{
		APIKey:       "sk-test",
		BaseURL:      srv.URL,
		MaxRetries:   2,
		InitialDelay: time.Millisecond,
	})
}

// writeEmbeddings responds with one vector of search.Dimension length per
// input, each filled with fill.
func writeEmbeddings(w http.ResponseWriter, count int, fill float64) {
	type entry struct {
		Object    string    `json:"object"`
		Embedding []float64 `json:"embedding"`
		Index     int       `json:"index"`
	}
	vec := make([]float64, search.Dimension)
	for i := range vec {
		vec[i] = fill
	}
	entries := make([]entry, count)
	for i := range entries {
		entries[i] = entry{Object: "embedding", Embedding: vec, Index: i}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"object": "list",
		"data":   entries,
		"model":  DefaultEmbeddingModel,
	})
}

func TestOpenAIEmbedder_EmptyTextFailsWithoutRequest(t *testing.T) {
	var calls atomic.Int32
	p := newFakeOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeEmbeddings(w, 1, 0.1)
	})

	_, err := p.Embed(context.Background(), "   ")
	require.ErrorIs(t, err, search.ErrEmptyContent)
	assert.Zero(t, calls.Load())
}

func TestOpenAIEmbedder_BatchRejectsEmptyEntry(t *testing.T) {
	p := newFakeOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		writeEmbeddings(w, 2, 0.1)
	})

	_, err := p.EmbedBatch(context.Background(), []string{"ok", " "})
	require.ErrorIs(t, err, search.ErrEmptyContent)
	assert.Contains(t, err.Error(), "text at index 1")
}

func TestOpenAIEmbedder_BatchEmptyInput(t *testing.T) {
	p := newFakeOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an empty batch")
	})

	vectors, err := p.EmbedBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, vectors)
}

func TestOpenAIEmbedder_Embed(t *testing.T) {
	p := newFakeOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		writeEmbeddings(w, 1, 0.25)
	})

	vec, err := p.Embed(context.Background(), "slow queries on orders")
	require.NoError(t, err)
	require.Len(t, vec, search.Dimension)
	assert.InDelta(t, 0.25, vec[0], 1e-9)
}

func TestOpenAIEmbedder_DimensionMismatch(t *testing.T) {
	p := newFakeOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"object":"list","data":[{"object":"embedding","embedding":[0.1,0.2],"index":0}]}`)
	})

	_, err := p.Embed(context.Background(), "text")
	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Contains(t, provErr.Message(), "dimensions")
}

func TestOpenAIEmbedder_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	p := newFakeOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, `{"error":{"message":"overloaded","type":"server_error"}}`)
			return
		}
		writeEmbeddings(w, 1, 0.1)
	})

	_, err := p.Embed(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestOpenAIEmbedder_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	p := newFakeOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"invalid model","type":"invalid_request_error"}}`)
	})

	_, err := p.Embed(context.Background(), "text")
	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusBadRequest, provErr.StatusCode())
	assert.Equal(t, int32(1), calls.Load())
}

func TestOpenAIEmbedder_RetriesExhausted(t *testing.T) {
	var calls atomic.Int32
	p := newFakeOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"rate limited","type":"rate_limit_error"}}`)
	})

	_, err := p.Embed(context.Background(), "text")
	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	// 1 initial attempt + 2 retries.
	assert.Equal(t, int32(3), calls.Load())
}

func TestProviderError(t *testing.T) {
	cause := errors.New("boom")
	err := NewProviderError("embedding", 502, "bad gateway", cause)

	assert.Equal(t, "embedding", err.Operation())
	assert.Equal(t, 502, err.StatusCode())
	assert.Contains(t, err.Error(), "status 502")
	assert.ErrorIs(t, err, cause)

	noStatus := NewProviderError("embedding", 0, "dial tcp refused", nil)
	assert.NotContains(t, noStatus.Error(), "status")
}
