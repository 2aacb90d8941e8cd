// Package repository provides the option-based query builder shared by all
// stores. Domain packages define typed options on top of WithCondition;
// infrastructure translates a built Query into SQL.
package repository

import "fmt"

// Option applies a modification to a Query.
type Option func(Query) Query

// Query is an immutable description of a store lookup. Stores receive
// options, Build them into a Query, and translate the result into their
// backend's query language.
type Query struct {
	conditions []Condition
	orders     []Order
	limit      int
	offset     int
	params     map[string]any
}

// Build folds the options into a Query.
func Build(options ...Option) Query {
	var q Query
	for _, opt := range options {
		q = opt(q)
	}
	return q
}

// Conditions returns a copy of the WHERE conditions in the order they
// were added.
func (q Query) Conditions() []Condition {
	return append([]Condition{}, q.conditions...)
}

// Orders returns a copy of the sort specifications in precedence order.
func (q Query) Orders() []Order {
	return append([]Order{}, q.orders...)
}

// LimitValue returns the row limit, 0 meaning unlimited.
func (q Query) LimitValue() int { return q.limit }

// OffsetValue returns the row offset.
func (q Query) OffsetValue() int { return q.offset }

// Param returns the named free-form parameter, if set.
func (q Query) Param(key string) (any, bool) {
	v, ok := q.params[key]
	return v, ok
}

// condKind discriminates the three condition shapes.
type condKind int

const (
	condEq condKind = iota
	condIn
	condRaw
)

// Condition is one WHERE predicate. Equality and IN conditions carry a
// field and value; raw conditions carry a SQL fragment with placeholder
// args for anything the structured forms cannot express.
type Condition struct {
	kind  condKind
	field string
	value any
	raw   string
	args  []any
}

// Field returns the column name for structured conditions.
func (c Condition) Field() string { return c.field }

// Value returns the comparison value, a slice for IN conditions.
func (c Condition) Value() any { return c.value }

// In reports whether this is an IN condition.
func (c Condition) In() bool { return c.kind == condIn }

// Raw returns the SQL fragment, or "" for structured conditions.
func (c Condition) Raw() string { return c.raw }

// Args returns a copy of the placeholder arguments of a raw condition.
func (c Condition) Args() []any {
	return append([]any{}, c.args...)
}

func (c Condition) String() string {
	switch c.kind {
	case condRaw:
		return c.raw
	case condIn:
		return fmt.Sprintf("%s IN %v", c.field, c.value)
	default:
		return fmt.Sprintf("%s = %v", c.field, c.value)
	}
}

// Order is one sort key.
type Order struct {
	field     string
	ascending bool
}

// Field returns the column to sort on.
func (o Order) Field() string { return o.field }

// Ascending reports the sort direction.
func (o Order) Ascending() bool { return o.ascending }

func addCondition(q Query, c Condition) Query {
	q.conditions = append(q.conditions, c)
	return q
}

// WithCondition adds a field = value predicate. The typed options in the
// domain packages are built on this.
func WithCondition(field string, value any) Option {
	return func(q Query) Query {
		return addCondition(q, Condition{kind: condEq, field: field, value: value})
	}
}

// WithConditionIn adds a field IN (values) predicate. values must be a
// slice.
func WithConditionIn(field string, values any) Option {
	return func(q Query) Query {
		return addCondition(q, Condition{kind: condIn, field: field, value: values})
	}
}

// WithWhere adds a raw SQL fragment with placeholder arguments.
func WithWhere(clause string, args ...any) Option {
	return func(q Query) Query {
		return addCondition(q, Condition{kind: condRaw, raw: clause, args: args})
	}
}

// WithOrderAsc appends an ascending sort key.
func WithOrderAsc(field string) Option {
	return func(q Query) Query {
		q.orders = append(q.orders, Order{field: field, ascending: true})
		return q
	}
}

// WithOrderDesc appends a descending sort key.
func WithOrderDesc(field string) Option {
	return func(q Query) Query {
		q.orders = append(q.orders, Order{field: field})
		return q
	}
}

// WithLimit caps the number of rows returned.
func WithLimit(n int) Option {
	return func(q Query) Query {
		q.limit = n
		return q
	}
}

// WithOffset skips the first n rows.
func WithOffset(n int) Option {
	return func(q Query) Query {
		q.offset = n
		return q
	}
}

// WithPagination expands to a limit and an offset option.
func WithPagination(limit, offset int) []Option {
	return []Option{WithLimit(limit), WithOffset(offset)}
}

// WithParam attaches a free-form parameter that a specific store knows
// how to interpret, e.g. the query vector for a similarity search.
func WithParam(key string, value any) Option {
	return func(q Query) Query {
		params := make(map[string]any, len(q.params)+1)
		for k, v := range q.params {
			params[k] = v
		}
		params[key] = value
		q.params = params
		return q
	}
}
