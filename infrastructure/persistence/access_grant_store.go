package persistence

import (
	"context"

	"github.com/clustertune/reportd/domain/report"
	"github.com/clustertune/reportd/domain/repository"
	"github.com/clustertune/reportd/internal/database"
)

// AccessGrantStore persists access grants via GORM.
type AccessGrantStore struct {
	repo database.Repository[report.AccessGrant, AccessGrant]
}

// NewAccessGrantStore creates an access grant store.
func NewAccessGrantStore(db database.Database) *AccessGrantStore {
	return &AccessGrantStore{repo: database.NewRepository[report.AccessGrant, AccessGrant](db, AccessGrantMapper{}, "access grant")}
}

// Create inserts a grant.
func (s *AccessGrantStore) Create(ctx context.Context, g report.AccessGrant) error {
	return s.repo.Create(ctx, g)
}

// Find retrieves grants matching the options.
func (s *AccessGrantStore) Find(ctx context.Context, options ...repository.Option) ([]report.AccessGrant, error) {
	return s.repo.Find(ctx, options...)
}

// DeleteBy removes grants matching the options.
func (s *AccessGrantStore) DeleteBy(ctx context.Context, options ...repository.Option) error {
	return s.repo.DeleteBy(ctx, options...)
}

var _ report.AccessGrantStore = (*AccessGrantStore)(nil)
