package persistence

import (
	"context"
	"fmt"
	"sort"

	"github.com/clustertune/reportd/domain/search"
	"github.com/clustertune/reportd/internal/database"
)

// SQLiteVectorStore runs similarity queries by filtering candidates in SQL
// and computing exact cosine distances with a linear scan in Go. Suitable
// for development and test setups where candidate counts stay small.
type SQLiteVectorStore struct {
	db database.Database
}

// NewSQLiteVectorStore creates a linear-scan store.
func NewSQLiteVectorStore(db database.Database) *SQLiteVectorStore {
	return &SQLiteVectorStore{db: db}
}

type sqliteSearchRow struct {
	ID         string
	Title      string
	Status     string
	CustomerID string
	Embedding  database.Vector
}

// Search executes a distance-ranked query. Ties on distance break by
// entity id to keep result order deterministic.
func (s *SQLiteVectorStore) Search(ctx context.Context, query search.Query) ([]search.Result, error) {
	table, err := tableFor(query.Kind())
	if err != nil {
		return nil, err
	}

	session := s.db.Session(ctx).
		Table(table).
		Select("id, title, status, customer_id, embedding")
	session = applySearchFilters(session, query)

	var rows []sqliteSearchRow
	if err := session.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: sqlite search on %s: %s", search.ErrStoreUnavailable, table, err)
	}

	vector := query.Vector()
	results := make([]search.Result, 0, len(rows))
	for _, row := range rows {
		candidate := row.Embedding.Floats()
		if len(candidate) != len(vector) {
			continue
		}
		distance := CosineDistance(vector, candidate)
		results = append(results, search.NewResult(query.Kind(), row.ID, row.Title, row.Status, row.CustomerID, distance))
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance() != results[j].Distance() {
			return results[i].Distance() < results[j].Distance()
		}
		return results[i].ID() < results[j].ID()
	})

	if len(results) > query.Limit() {
		results = results[:query.Limit()]
	}
	return results, nil
}

var _ search.VectorStore = (*SQLiteVectorStore)(nil)
