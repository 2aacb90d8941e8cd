package search

import "errors"

// EntityKind selects which entity table a similarity query runs against.
type EntityKind string

// Searchable entity kinds.
const (
	KindReport  EntityKind = "report"
	KindFinding EntityKind = "finding"
)

// Valid reports whether the kind is searchable.
func (k EntityKind) Valid() bool {
	return k == KindReport || k == KindFinding
}

// DefaultLimit is the result cap used when a query does not set one.
const DefaultLimit = 10

// ErrInvalidQuery indicates a malformed similarity query.
var ErrInvalidQuery = errors.New("invalid similarity query")

// Query is a fully-resolved vector similarity query handed to a vector
// store. Access control has already been resolved: CustomerIDs carries the
// authorized tenant set, or nil when the caller is unrestricted. Stores
// apply the PII exclusion unconditionally.
type Query struct {
	kind        EntityKind
	vector      []float64
	limit       int
	excludeID   string
	customerIDs []string
	filters     Filters
}

// QueryOption applies a modification to a Query.
type QueryOption func(Query) Query

// NewQuery creates a similarity query for a kind and query vector.
func NewQuery(kind EntityKind, vector []float64, options ...QueryOption) (Query, error) {
	if !kind.Valid() {
		return Query{}, errors.Join(ErrInvalidQuery, errors.New("unknown entity kind"))
	}
	if len(vector) == 0 {
		return Query{}, errors.Join(ErrInvalidQuery, errors.New("query vector is empty"))
	}

	cp := make([]float64, len(vector))
	copy(cp, vector)

	q := Query{kind: kind, vector: cp, limit: DefaultLimit}
	for _, opt := range options {
		q = opt(q)
	}
	return q, nil
}

// WithLimit caps the number of results. Non-positive values keep the
// default.
func WithLimit(limit int) QueryOption {
	return func(q Query) Query {
		if limit > 0 {
			q.limit = limit
		}
		return q
	}
}

// WithExcludeID excludes a single entity, typically the query anchor.
func WithExcludeID(id string) QueryOption {
	return func(q Query) Query {
		q.excludeID = id
		return q
	}
}

// WithCustomerIDs restricts candidates to the given tenant set. Passing nil
// leaves the query unrestricted.
func WithCustomerIDs(ids []string) QueryOption {
	return func(q Query) Query {
		if ids == nil {
			q.customerIDs = nil
			return q
		}
		cp := make([]string, len(ids))
		copy(cp, ids)
		q.customerIDs = cp
		return q
	}
}

// WithFilters sets the optional status/region/category/severity filters.
func WithFilters(f Filters) QueryOption {
	return func(q Query) Query {
		q.filters = f
		return q
	}
}

// Kind returns the entity kind searched.
func (q Query) Kind() EntityKind { return q.kind }

// Vector returns a copy of the query vector.
func (q Query) Vector() []float64 {
	cp := make([]float64, len(q.vector))
	copy(cp, q.vector)
	return cp
}

// Limit returns the result cap.
func (q Query) Limit() int { return q.limit }

// ExcludeID returns the excluded entity id, empty if none.
func (q Query) ExcludeID() string { return q.excludeID }

// CustomerIDs returns the tenant restriction, nil when unrestricted.
func (q Query) CustomerIDs() []string {
	if q.customerIDs == nil {
		return nil
	}
	cp := make([]string, len(q.customerIDs))
	copy(cp, q.customerIDs)
	return cp
}

// Restricted reports whether a tenant restriction applies.
func (q Query) Restricted() bool { return q.customerIDs != nil }

// Filters returns the optional filters.
func (q Query) Filters() Filters { return q.filters }
