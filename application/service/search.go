package service

import (
	"context"

	"github.com/clustertune/reportd/domain/search"
	domainservice "github.com/clustertune/reportd/domain/service"
)

// SimilarRequest carries the parameters of a similarity lookup anchored on
// a stored entity.
type SimilarRequest struct {
	Kind          search.EntityKind
	EntityID      string
	Limit         int
	CallerID      string
	EnforceAccess bool
	Filters       search.Filters
}

// SearchService is the application-facing entry point for similarity
// search, applying the configured default result limit.
type SearchService struct {
	engine       *domainservice.SimilarityEngine
	defaultLimit int
}

// NewSearchService creates a search service.
func NewSearchService(engine *domainservice.SimilarityEngine, defaultLimit int) *SearchService {
	if defaultLimit <= 0 {
		defaultLimit = search.DefaultLimit
	}
	return &SearchService{engine: engine, defaultLimit: defaultLimit}
}

// SimilarTo finds entities similar to a stored entity. Typed failures
// (missing embedding, store unavailable) surface to the caller so an empty
// result always means "no matches".
func (s *SearchService) SimilarTo(ctx context.Context, req SimilarRequest) ([]search.Result, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}
	return s.engine.SimilarTo(ctx, req.Kind, req.EntityID, limit, req.CallerID, req.EnforceAccess, req.Filters)
}

// FindSimilar runs a similarity query for an explicit query vector.
func (s *SearchService) FindSimilar(ctx context.Context, req domainservice.SimilarityRequest) ([]search.Result, error) {
	if req.Limit <= 0 {
		req.Limit = s.defaultLimit
	}
	return s.engine.FindSimilar(ctx, req)
}
