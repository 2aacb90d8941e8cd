package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/clustertune/reportd/domain/report"
	"github.com/clustertune/reportd/domain/repository"
	"github.com/clustertune/reportd/domain/search"
)

// SimilarityRequest carries everything needed to run one similarity query.
type SimilarityRequest struct {
	Kind          search.EntityKind
	QueryVector   []float64
	Limit         int
	ExcludeID     string
	CallerID      string
	EnforceAccess bool
	Filters       search.Filters
}

// SimilarityEngine resolves access, applies the per-kind default filters,
// and executes distance-ranked queries against the vector store.
type SimilarityEngine struct {
	reports  report.ReportStore
	findings report.FindingStore
	access   *AccessResolver
	store    search.VectorStore
	logger   *slog.Logger
}

// NewSimilarityEngine creates a similarity engine.
func NewSimilarityEngine(
	reports report.ReportStore,
	findings report.FindingStore,
	access *AccessResolver,
	store search.VectorStore,
	logger *slog.Logger,
) *SimilarityEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &SimilarityEngine{
		reports:  reports,
		findings: findings,
		access:   access,
		store:    store,
		logger:   logger,
	}
}

// FindSimilar runs a similarity query for an explicit query vector.
//
// When access is enforced for a non-admin caller, candidates are restricted
// to the caller's granted customers; a caller with no grants gets zero
// results without touching the store. Admins and unenforced calls are
// unrestricted. PII-flagged entities are excluded by the store regardless.
func (e *SimilarityEngine) FindSimilar(ctx context.Context, req SimilarityRequest) ([]search.Result, error) {
	var customerIDs []string
	if req.EnforceAccess {
		admin, err := e.access.IsAdmin(ctx, req.CallerID)
		if err != nil {
			return nil, err
		}
		if !admin {
			ids, err := e.access.AuthorizedCustomers(ctx, req.CallerID)
			if err != nil {
				return nil, err
			}
			if len(ids) == 0 {
				e.logger.DebugContext(ctx, "caller has no customer grants",
					"caller", req.CallerID, "kind", req.Kind)
				return []search.Result{}, nil
			}
			customerIDs = ids
		}
	}

	query, err := search.NewQuery(req.Kind, req.QueryVector,
		search.WithLimit(req.Limit),
		search.WithExcludeID(req.ExcludeID),
		search.WithCustomerIDs(customerIDs),
		search.WithFilters(e.effectiveFilters(req.Kind, req.Filters)),
	)
	if err != nil {
		return nil, err
	}

	results, err := e.store.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// SimilarTo runs a similarity query anchored on a stored entity's own
// embedding. The anchor is excluded from the results. An anchor without an
// embedding fails with search.ErrEmbeddingMissing.
func (e *SimilarityEngine) SimilarTo(ctx context.Context, kind search.EntityKind, entityID string, limit int, callerID string, enforceAccess bool, filters search.Filters) ([]search.Result, error) {
	vector, err := e.anchorVector(ctx, kind, entityID)
	if err != nil {
		return nil, err
	}

	return e.FindSimilar(ctx, SimilarityRequest{
		Kind:          kind,
		QueryVector:   vector,
		Limit:         limit,
		ExcludeID:     entityID,
		CallerID:      callerID,
		EnforceAccess: enforceAccess,
		Filters:       filters,
	})
}

func (e *SimilarityEngine) anchorVector(ctx context.Context, kind search.EntityKind, entityID string) ([]float64, error) {
	switch kind {
	case search.KindReport:
		r, err := e.reports.FindOne(ctx, repository.WithID(entityID))
		if err != nil {
			return nil, fmt.Errorf("load report %s: %w", entityID, err)
		}
		if !r.HasEmbedding() {
			return nil, fmt.Errorf("report %s: %w", entityID, search.ErrEmbeddingMissing)
		}
		return r.Embedding(), nil
	case search.KindFinding:
		f, err := e.findings.FindOne(ctx, repository.WithID(entityID))
		if err != nil {
			return nil, fmt.Errorf("load finding %s: %w", entityID, err)
		}
		if !f.HasEmbedding() {
			return nil, fmt.Errorf("finding %s: %w", entityID, search.ErrEmbeddingMissing)
		}
		return f.Embedding(), nil
	default:
		return nil, fmt.Errorf("%w: unknown entity kind %q", search.ErrInvalidQuery, kind)
	}
}

// effectiveFilters layers the per-kind defaults under the caller's filters.
// Reports default to published and in_review unless a status override is
// given. Findings always exclude false positives, override or not.
func (e *SimilarityEngine) effectiveFilters(kind search.EntityKind, f search.Filters) search.Filters {
	switch kind {
	case search.KindReport:
		if f.Statuses() == nil {
			f = search.WithStatuses(
				string(report.StatusPublished),
				string(report.StatusInReview),
			)(f)
		}
	case search.KindFinding:
		f = search.WithExcludeStatuses(string(report.FindingStatusFalsePositive))(f)
	}
	return f
}
