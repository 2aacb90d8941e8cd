package persistence

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/clustertune/reportd/domain/search"
	"github.com/clustertune/reportd/internal/database"
)

// NewVectorStore selects the vector store implementation for the database
// backend: native pgvector distance ordering on PostgreSQL, exact linear
// scan on SQLite.
func NewVectorStore(db database.Database) search.VectorStore {
	if db.IsPostgres() {
		return NewPgVectorStore(db)
	}
	return NewSQLiteVectorStore(db)
}

func tableFor(kind search.EntityKind) (string, error) {
	switch kind {
	case search.KindReport:
		return Report{}.TableName(), nil
	case search.KindFinding:
		return Finding{}.TableName(), nil
	default:
		return "", fmt.Errorf("%w: unknown entity kind %q", search.ErrInvalidQuery, kind)
	}
}

// applySearchFilters translates the query predicates to SQL. The PII
// exclusion and the missing-embedding exclusion are unconditional; access
// restriction applies only when the query carries a tenant set.
func applySearchFilters(db *gorm.DB, q search.Query) *gorm.DB {
	db = db.Where("pii_flag = ?", false)
	db = db.Where("embedding IS NOT NULL")

	if q.Restricted() {
		db = db.Where("customer_id IN ?", q.CustomerIDs())
	}
	if q.ExcludeID() != "" {
		db = db.Where("id <> ?", q.ExcludeID())
	}

	f := q.Filters()
	if statuses := f.Statuses(); len(statuses) > 0 {
		db = db.Where("status IN ?", statuses)
	}
	if excluded := f.ExcludeStatuses(); len(excluded) > 0 {
		db = db.Where("status NOT IN ?", excluded)
	}
	if f.Region() != "" {
		db = db.Where("region = ?", f.Region())
	}
	if q.Kind() == search.KindFinding {
		if f.Category() != "" {
			db = db.Where("category = ?", f.Category())
		}
		if f.Severity() != "" {
			db = db.Where("severity = ?", f.Severity())
		}
	}

	return db
}
