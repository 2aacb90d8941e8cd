// Package testdb opens throwaway in-memory SQLite databases for tests.
package testdb

import (
	"context"
	"testing"

	"github.com/clustertune/reportd/infrastructure/persistence"
	"github.com/clustertune/reportd/internal/database"
)

func open(t *testing.T) database.Database {
	t.Helper()
	db, err := database.NewDatabase(context.Background(), "sqlite:///:memory:")
	if err != nil {
		t.Fatalf("testdb: open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// New returns an in-memory database with the full schema migrated. The
// connection is closed when the test finishes.
func New(t *testing.T) database.Database {
	t.Helper()
	db := open(t)
	if err := persistence.Migrate(context.Background(), db); err != nil {
		t.Fatalf("testdb: migrate: %v", err)
	}
	return db
}

// NewPlain returns an in-memory database with no schema, for tests that
// create their own tables.
func NewPlain(t *testing.T) database.Database {
	t.Helper()
	return open(t)
}

// WithSchema returns an in-memory database after executing the given DDL
// statements in order.
func WithSchema(t *testing.T, statements ...string) database.Database {
	t.Helper()
	db := open(t)
	for _, stmt := range statements {
		if err := db.Session(context.Background()).Exec(stmt).Error; err != nil {
			t.Fatalf("testdb: exec %q: %v", stmt, err)
		}
	}
	return db
}
