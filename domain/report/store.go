package report

import (
	"context"

	"github.com/clustertune/reportd/domain/repository"
)

// ReportStore persists reports.
type ReportStore interface {
	Create(ctx context.Context, r Report) error
	Save(ctx context.Context, r Report) error
	FindOne(ctx context.Context, options ...repository.Option) (Report, error)
	Find(ctx context.Context, options ...repository.Option) ([]Report, error)
	Count(ctx context.Context, options ...repository.Option) (int64, error)
	DeleteBy(ctx context.Context, options ...repository.Option) error
	// UpdateEmbedding writes only the embedding column, leaving the rest of
	// the row untouched. Used by embedding generation and backfill.
	UpdateEmbedding(ctx context.Context, id string, embedding []float64) error
}

// FindingStore persists findings.
type FindingStore interface {
	Create(ctx context.Context, f Finding) error
	Save(ctx context.Context, f Finding) error
	FindOne(ctx context.Context, options ...repository.Option) (Finding, error)
	Find(ctx context.Context, options ...repository.Option) ([]Finding, error)
	Count(ctx context.Context, options ...repository.Option) (int64, error)
	DeleteBy(ctx context.Context, options ...repository.Option) error
	UpdateEmbedding(ctx context.Context, id string, embedding []float64) error
}

// ActionStore persists recommended actions.
type ActionStore interface {
	Create(ctx context.Context, a Action) error
	Save(ctx context.Context, a Action) error
	FindOne(ctx context.Context, options ...repository.Option) (Action, error)
	Find(ctx context.Context, options ...repository.Option) ([]Action, error)
	DeleteBy(ctx context.Context, options ...repository.Option) error
}

// CommentStore persists report comments.
type CommentStore interface {
	Create(ctx context.Context, c Comment) error
	Save(ctx context.Context, c Comment) error
	FindOne(ctx context.Context, options ...repository.Option) (Comment, error)
	Find(ctx context.Context, options ...repository.Option) ([]Comment, error)
	DeleteBy(ctx context.Context, options ...repository.Option) error
}

// UserStore persists users.
type UserStore interface {
	Create(ctx context.Context, u User) error
	FindOne(ctx context.Context, options ...repository.Option) (User, error)
	Find(ctx context.Context, options ...repository.Option) ([]User, error)
}

// AccessGrantStore persists access grants.
type AccessGrantStore interface {
	Create(ctx context.Context, g AccessGrant) error
	Find(ctx context.Context, options ...repository.Option) ([]AccessGrant, error)
	DeleteBy(ctx context.Context, options ...repository.Option) error
}

// StatusHistoryStore records status transitions. Append-only.
type StatusHistoryStore interface {
	Append(ctx context.Context, change StatusChange) error
	Find(ctx context.Context, options ...repository.Option) ([]StatusChange, error)
}
