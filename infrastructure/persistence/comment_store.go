package persistence

import (
	"context"

	"github.com/clustertune/reportd/domain/report"
	"github.com/clustertune/reportd/domain/repository"
	"github.com/clustertune/reportd/internal/database"
)

// CommentStore persists report comments via GORM.
type CommentStore struct {
	repo database.Repository[report.Comment, Comment]
}

// NewCommentStore creates a comment store.
func NewCommentStore(db database.Database) *CommentStore {
	return &CommentStore{repo: database.NewRepository[report.Comment, Comment](db, CommentMapper{}, "comment")}
}

// Create inserts a comment.
func (s *CommentStore) Create(ctx context.Context, c report.Comment) error {
	return s.repo.Create(ctx, c)
}

// Save upserts a comment by primary key.
func (s *CommentStore) Save(ctx context.Context, c report.Comment) error {
	return s.repo.Save(ctx, c)
}

// FindOne retrieves a single comment matching the options.
func (s *CommentStore) FindOne(ctx context.Context, options ...repository.Option) (report.Comment, error) {
	return s.repo.FindOne(ctx, options...)
}

// Find retrieves comments matching the options.
func (s *CommentStore) Find(ctx context.Context, options ...repository.Option) ([]report.Comment, error) {
	return s.repo.Find(ctx, options...)
}

// DeleteBy removes comments matching the options.
func (s *CommentStore) DeleteBy(ctx context.Context, options ...repository.Option) error {
	return s.repo.DeleteBy(ctx, options...)
}

var _ report.CommentStore = (*CommentStore)(nil)
