package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/clustertune/reportd/domain/report"
	"github.com/clustertune/reportd/domain/search"
)

// EmbeddingService composes entity text, calls the embedding provider, and
// persists the resulting vector. The provider call happens before the
// database write so no transaction spans the network round-trip.
type EmbeddingService struct {
	embedder search.Embedder
	reports  report.ReportStore
	findings report.FindingStore
	logger   *slog.Logger
}

// NewEmbeddingService creates an embedding service.
func NewEmbeddingService(
	embedder search.Embedder,
	reports report.ReportStore,
	findings report.FindingStore,
	logger *slog.Logger,
) *EmbeddingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmbeddingService{
		embedder: embedder,
		reports:  reports,
		findings: findings,
		logger:   logger,
	}
}

// GenerateForReport generates and persists an embedding for a report.
func (s *EmbeddingService) GenerateForReport(ctx context.Context, r report.Report) error {
	text, err := search.ComposeReportText(r)
	if err != nil {
		return err
	}

	vector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("embed report %s: %w", r.ID(), err)
	}

	if err := s.reports.UpdateEmbedding(ctx, r.ID(), vector); err != nil {
		return fmt.Errorf("persist embedding for report %s: %w", r.ID(), err)
	}
	return nil
}

// GenerateForFinding generates and persists an embedding for a finding.
func (s *EmbeddingService) GenerateForFinding(ctx context.Context, f report.Finding) error {
	text, err := search.ComposeFindingText(f)
	if err != nil {
		return err
	}

	vector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("embed finding %s: %w", f.ID(), err)
	}

	if err := s.findings.UpdateEmbedding(ctx, f.ID(), vector); err != nil {
		return fmt.Errorf("persist embedding for finding %s: %w", f.ID(), err)
	}
	return nil
}

// TryGenerateForReport is the best-effort variant used after entity
// creation: failures are logged and reported as false, never propagated.
func (s *EmbeddingService) TryGenerateForReport(ctx context.Context, r report.Report) bool {
	if err := s.GenerateForReport(ctx, r); err != nil {
		s.logger.WarnContext(ctx, "embedding generation failed",
			"kind", search.KindReport, "id", r.ID(), "error", err)
		return false
	}
	return true
}

// TryGenerateForFinding is the best-effort variant for findings.
func (s *EmbeddingService) TryGenerateForFinding(ctx context.Context, f report.Finding) bool {
	if err := s.GenerateForFinding(ctx, f); err != nil {
		s.logger.WarnContext(ctx, "embedding generation failed",
			"kind", search.KindFinding, "id", f.ID(), "error", err)
		return false
	}
	return true
}
