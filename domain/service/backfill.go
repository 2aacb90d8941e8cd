package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/clustertune/reportd/domain/report"
	"github.com/clustertune/reportd/domain/repository"
	"github.com/clustertune/reportd/domain/search"
)

// BackfillStats aggregates the outcome of one backfill run.
type BackfillStats struct {
	Attempted int
	Succeeded int
	Failed    int
}

// BackfillOption configures a BackfillService.
type BackfillOption func(*BackfillService)

// WithConcurrency sets how many embedding calls may run at once. The
// default is 1 (sequential) to respect provider rate limits.
func WithConcurrency(n int) BackfillOption {
	return func(s *BackfillService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// BackfillService generates embeddings for entities that lack one. Each
// entity's embedding commits independently, so a crashed run keeps its
// progress and a re-run attempts only what is still missing.
type BackfillService struct {
	embedding   *EmbeddingService
	reports     report.ReportStore
	findings    report.FindingStore
	concurrency int
	logger      *slog.Logger
}

// NewBackfillService creates a backfill service.
func NewBackfillService(
	embedding *EmbeddingService,
	reports report.ReportStore,
	findings report.FindingStore,
	logger *slog.Logger,
	options ...BackfillOption,
) *BackfillService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &BackfillService{
		embedding:   embedding,
		reports:     reports,
		findings:    findings,
		concurrency: 1,
		logger:      logger,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Backfill embeds every entity of the kind that has no embedding yet,
// continuing past individual failures. Only context cancellation aborts
// the run; the returned stats cover the work done up to that point.
func (s *BackfillService) Backfill(ctx context.Context, kind search.EntityKind) (BackfillStats, error) {
	switch kind {
	case search.KindReport:
		return s.backfillReports(ctx)
	case search.KindFinding:
		return s.backfillFindings(ctx)
	default:
		return BackfillStats{}, fmt.Errorf("%w: unknown entity kind %q", search.ErrInvalidQuery, kind)
	}
}

func (s *BackfillService) backfillReports(ctx context.Context) (BackfillStats, error) {
	reports, err := s.reports.Find(ctx, repository.WithMissingEmbedding())
	if err != nil {
		return BackfillStats{}, fmt.Errorf("list reports missing embeddings: %w", err)
	}

	var succeeded, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, r := range reports {
		r := r
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := s.embedding.GenerateForReport(gctx, r); err != nil {
				s.logger.WarnContext(gctx, "backfill failed for report",
					"id", r.ID(), "error", err)
				failed.Add(1)
				return nil
			}
			succeeded.Add(1)
			return nil
		})
	}
	err = g.Wait()

	stats := BackfillStats{
		Attempted: len(reports),
		Succeeded: int(succeeded.Load()),
		Failed:    int(failed.Load()),
	}
	s.logger.InfoContext(ctx, "report backfill finished",
		"attempted", stats.Attempted, "succeeded", stats.Succeeded, "failed", stats.Failed)
	return stats, err
}

func (s *BackfillService) backfillFindings(ctx context.Context) (BackfillStats, error) {
	findings, err := s.findings.Find(ctx, repository.WithMissingEmbedding())
	if err != nil {
		return BackfillStats{}, fmt.Errorf("list findings missing embeddings: %w", err)
	}

	var succeeded, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, f := range findings {
		f := f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := s.embedding.GenerateForFinding(gctx, f); err != nil {
				s.logger.WarnContext(gctx, "backfill failed for finding",
					"id", f.ID(), "error", err)
				failed.Add(1)
				return nil
			}
			succeeded.Add(1)
			return nil
		})
	}
	err = g.Wait()

	stats := BackfillStats{
		Attempted: len(findings),
		Succeeded: int(succeeded.Load()),
		Failed:    int(failed.Load()),
	}
	s.logger.InfoContext(ctx, "finding backfill finished",
		"attempted", stats.Attempted, "succeeded", stats.Succeeded, "failed", stats.Failed)
	return stats, err
}
