package persistence

import (
	"context"

	"github.com/clustertune/reportd/domain/report"
	"github.com/clustertune/reportd/domain/repository"
	"github.com/clustertune/reportd/internal/database"
)

// ActionStore persists recommended actions via GORM.
type ActionStore struct {
	repo database.Repository[report.Action, Action]
}

// NewActionStore creates an action store.
func NewActionStore(db database.Database) *ActionStore {
	return &ActionStore{repo: database.NewRepository[report.Action, Action](db, ActionMapper{}, "action")}
}

// Create inserts an action.
func (s *ActionStore) Create(ctx context.Context, a report.Action) error {
	return s.repo.Create(ctx, a)
}

// Save upserts an action by primary key.
func (s *ActionStore) Save(ctx context.Context, a report.Action) error {
	return s.repo.Save(ctx, a)
}

// FindOne retrieves a single action matching the options.
func (s *ActionStore) FindOne(ctx context.Context, options ...repository.Option) (report.Action, error) {
	return s.repo.FindOne(ctx, options...)
}

// Find retrieves actions matching the options.
func (s *ActionStore) Find(ctx context.Context, options ...repository.Option) ([]report.Action, error) {
	return s.repo.Find(ctx, options...)
}

// DeleteBy removes actions matching the options.
func (s *ActionStore) DeleteBy(ctx context.Context, options ...repository.Option) error {
	return s.repo.DeleteBy(ctx, options...)
}

var _ report.ActionStore = (*ActionStore)(nil)
