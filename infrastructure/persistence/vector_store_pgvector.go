package persistence

import (
	"context"
	"fmt"

	"github.com/clustertune/reportd/domain/search"
	"github.com/clustertune/reportd/internal/database"
)

// PgVectorStore runs similarity queries with the pgvector <=> cosine
// distance operator, so ranking and truncation happen inside PostgreSQL.
type PgVectorStore struct {
	db database.Database
}

// NewPgVectorStore creates a pgvector-backed store.
func NewPgVectorStore(db database.Database) *PgVectorStore {
	return &PgVectorStore{db: db}
}

type pgSearchRow struct {
	ID         string
	Title      string
	Status     string
	CustomerID string
	Distance   float64
}

// Search executes a distance-ranked query. Ties on distance break by
// entity id to keep result order deterministic.
func (s *PgVectorStore) Search(ctx context.Context, query search.Query) ([]search.Result, error) {
	table, err := tableFor(query.Kind())
	if err != nil {
		return nil, err
	}

	session := s.db.Session(ctx).
		Table(table).
		Select("id, title, status, customer_id, embedding <=> ? AS distance",
			database.NewVector(query.Vector()).String())
	session = applySearchFilters(session, query)
	session = session.Order("distance ASC, id ASC").Limit(query.Limit())

	var rows []pgSearchRow
	if err := session.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: pgvector search on %s: %s", search.ErrStoreUnavailable, table, err)
	}

	results := make([]search.Result, len(rows))
	for i, row := range rows {
		results[i] = search.NewResult(query.Kind(), row.ID, row.Title, row.Status, row.CustomerID, row.Distance)
	}
	return results, nil
}

var _ search.VectorStore = (*PgVectorStore)(nil)
