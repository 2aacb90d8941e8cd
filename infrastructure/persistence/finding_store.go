package persistence

import (
	"context"
	"fmt"

	"github.com/clustertune/reportd/domain/report"
	"github.com/clustertune/reportd/domain/repository"
	"github.com/clustertune/reportd/internal/database"
)

// FindingStore persists findings via GORM.
type FindingStore struct {
	repo database.Repository[report.Finding, Finding]
}

// NewFindingStore creates a finding store.
func NewFindingStore(db database.Database) *FindingStore {
	return &FindingStore{repo: database.NewRepository[report.Finding, Finding](db, FindingMapper{}, "finding")}
}

// Create inserts a finding.
func (s *FindingStore) Create(ctx context.Context, f report.Finding) error {
	return s.repo.Create(ctx, f)
}

// Save upserts a finding by primary key.
func (s *FindingStore) Save(ctx context.Context, f report.Finding) error {
	return s.repo.Save(ctx, f)
}

// FindOne retrieves a single finding matching the options.
func (s *FindingStore) FindOne(ctx context.Context, options ...repository.Option) (report.Finding, error) {
	return s.repo.FindOne(ctx, options...)
}

// Find retrieves findings matching the options.
func (s *FindingStore) Find(ctx context.Context, options ...repository.Option) ([]report.Finding, error) {
	return s.repo.Find(ctx, options...)
}

// Count returns the number of findings matching the options.
func (s *FindingStore) Count(ctx context.Context, options ...repository.Option) (int64, error) {
	return s.repo.Count(ctx, options...)
}

// DeleteBy removes findings matching the options.
func (s *FindingStore) DeleteBy(ctx context.Context, options ...repository.Option) error {
	return s.repo.DeleteBy(ctx, options...)
}

// UpdateEmbedding writes only the embedding column for one finding.
func (s *FindingStore) UpdateEmbedding(ctx context.Context, id string, embedding []float64) error {
	result := s.repo.DB(ctx).Model(&Finding{}).
		Where("id = ?", id).
		Update("embedding", database.NewVector(embedding))
	if result.Error != nil {
		return fmt.Errorf("update finding embedding: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: finding %s", database.ErrNotFound, id)
	}
	return nil
}

var _ report.FindingStore = (*FindingStore)(nil)
