package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/clustertune/reportd/domain/report"
	"github.com/clustertune/reportd/domain/repository"
	"github.com/clustertune/reportd/internal/database"
)

// Migrate creates or updates the schema. On PostgreSQL the pgvector
// extension must exist before the embedding columns can be created.
// No approximate-nearest-neighbor index is created: similarity queries
// must rank by exact distance, and an ivfflat or hnsw index would let
// the planner serve them approximately.
func Migrate(ctx context.Context, db database.Database) error {
	session := db.Session(ctx)

	if db.IsPostgres() {
		if err := session.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			return fmt.Errorf("create vector extension: %w", err)
		}
	}

	if err := session.AutoMigrate(
		&Report{},
		&Finding{},
		&Action{},
		&Comment{},
		&User{},
		&AccessGrant{},
		&StatusChange{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return nil
}

// EnsureSystemUser returns the built-in system user, creating it on first
// run. Automated writes (backfill, agent-generated reports) are attributed
// to it.
func EnsureSystemUser(ctx context.Context, users report.UserStore) (report.User, error) {
	u, err := users.FindOne(ctx, repository.WithEmail(report.SystemUserEmail))
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return report.User{}, fmt.Errorf("lookup system user: %w", err)
	}

	u = report.NewUser("System", report.SystemUserEmail, report.RoleAdmin)
	if err := users.Create(ctx, u); err != nil {
		return report.User{}, fmt.Errorf("create system user: %w", err)
	}
	return u, nil
}
