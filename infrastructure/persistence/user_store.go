package persistence

import (
	"context"

	"github.com/clustertune/reportd/domain/report"
	"github.com/clustertune/reportd/domain/repository"
	"github.com/clustertune/reportd/internal/database"
)

// UserStore persists users via GORM.
type UserStore struct {
	repo database.Repository[report.User, User]
}

// NewUserStore creates a user store.
func NewUserStore(db database.Database) *UserStore {
	return &UserStore{repo: database.NewRepository[report.User, User](db, UserMapper{}, "user")}
}

// Create inserts a user.
func (s *UserStore) Create(ctx context.Context, u report.User) error {
	return s.repo.Create(ctx, u)
}

// FindOne retrieves a single user matching the options.
func (s *UserStore) FindOne(ctx context.Context, options ...repository.Option) (report.User, error) {
	return s.repo.FindOne(ctx, options...)
}

// Find retrieves users matching the options.
func (s *UserStore) Find(ctx context.Context, options ...repository.Option) ([]report.User, error) {
	return s.repo.Find(ctx, options...)
}

var _ report.UserStore = (*UserStore)(nil)
