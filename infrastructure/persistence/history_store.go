package persistence

import (
	"context"

	"github.com/clustertune/reportd/domain/report"
	"github.com/clustertune/reportd/domain/repository"
	"github.com/clustertune/reportd/internal/database"
)

// StatusHistoryStore records status transitions via GORM. Append-only.
type StatusHistoryStore struct {
	repo database.Repository[report.StatusChange, StatusChange]
}

// NewStatusHistoryStore creates a status history store.
func NewStatusHistoryStore(db database.Database) *StatusHistoryStore {
	return &StatusHistoryStore{repo: database.NewRepository[report.StatusChange, StatusChange](db, StatusChangeMapper{}, "status change")}
}

// Append records a status transition.
func (s *StatusHistoryStore) Append(ctx context.Context, change report.StatusChange) error {
	return s.repo.Create(ctx, change)
}

// Find retrieves status changes matching the options.
func (s *StatusHistoryStore) Find(ctx context.Context, options ...repository.Option) ([]report.StatusChange, error) {
	return s.repo.Find(ctx, options...)
}

var _ report.StatusHistoryStore = (*StatusHistoryStore)(nil)
