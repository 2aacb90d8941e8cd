package persistence

import (
	"context"
	"fmt"

	"github.com/clustertune/reportd/domain/report"
	"github.com/clustertune/reportd/domain/repository"
	"github.com/clustertune/reportd/internal/database"
)

// ReportStore persists reports via GORM.
type ReportStore struct {
	repo database.Repository[report.Report, Report]
}

// NewReportStore creates a report store.
func NewReportStore(db database.Database) *ReportStore {
	return &ReportStore{repo: database.NewRepository[report.Report, Report](db, ReportMapper{}, "report")}
}

// Create inserts a report.
func (s *ReportStore) Create(ctx context.Context, r report.Report) error {
	return s.repo.Create(ctx, r)
}

// Save upserts a report by primary key.
func (s *ReportStore) Save(ctx context.Context, r report.Report) error {
	return s.repo.Save(ctx, r)
}

// FindOne retrieves a single report matching the options.
func (s *ReportStore) FindOne(ctx context.Context, options ...repository.Option) (report.Report, error) {
	return s.repo.FindOne(ctx, options...)
}

// Find retrieves reports matching the options.
func (s *ReportStore) Find(ctx context.Context, options ...repository.Option) ([]report.Report, error) {
	return s.repo.Find(ctx, options...)
}

// Count returns the number of reports matching the options.
func (s *ReportStore) Count(ctx context.Context, options ...repository.Option) (int64, error) {
	return s.repo.Count(ctx, options...)
}

// DeleteBy removes reports matching the options. Dependent rows (findings,
// comments) cascade via their own stores at the application layer.
func (s *ReportStore) DeleteBy(ctx context.Context, options ...repository.Option) error {
	return s.repo.DeleteBy(ctx, options...)
}

// UpdateEmbedding writes only the embedding column for one report.
func (s *ReportStore) UpdateEmbedding(ctx context.Context, id string, embedding []float64) error {
	result := s.repo.DB(ctx).Model(&Report{}).
		Where("id = ?", id).
		Update("embedding", database.NewVector(embedding))
	if result.Error != nil {
		return fmt.Errorf("update report embedding: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: report %s", database.ErrNotFound, id)
	}
	return nil
}

var _ report.ReportStore = (*ReportStore)(nil)
