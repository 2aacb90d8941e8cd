package search

// Filters narrows the candidate set of a similarity query. The zero value
// applies only the built-in defaults (PII exclusion and per-kind status
// defaults are handled by the query engine, not here).
type Filters struct {
	statuses        []string
	excludeStatuses []string
	region          string
	category        string
	severity        string
}

// FilterOption applies a modification to Filters.
type FilterOption func(Filters) Filters

// NewFilters creates a filter set from options.
func NewFilters(options ...FilterOption) Filters {
	f := Filters{}
	for _, opt := range options {
		f = opt(f)
	}
	return f
}

// WithStatuses restricts candidates to the given statuses, overriding the
// kind's default status filter.
func WithStatuses(statuses ...string) FilterOption {
	return func(f Filters) Filters {
		cp := make([]string, len(statuses))
		copy(cp, statuses)
		f.statuses = cp
		return f
	}
}

// WithExcludeStatuses excludes candidates with any of the given statuses.
// Applied in addition to any status restriction.
func WithExcludeStatuses(statuses ...string) FilterOption {
	return func(f Filters) Filters {
		f.excludeStatuses = append(f.excludeStatuses, statuses...)
		return f
	}
}

// WithRegion restricts candidates to an exact region match.
func WithRegion(region string) FilterOption {
	return func(f Filters) Filters {
		f.region = region
		return f
	}
}

// WithCategory restricts candidates to a finding category. Ignored for
// report queries.
func WithCategory(category string) FilterOption {
	return func(f Filters) Filters {
		f.category = category
		return f
	}
}

// WithSeverity restricts candidates to a finding severity. Ignored for
// report queries.
func WithSeverity(severity string) FilterOption {
	return func(f Filters) Filters {
		f.severity = severity
		return f
	}
}

// Statuses returns the status restriction, nil if none was given.
func (f Filters) Statuses() []string {
	if f.statuses == nil {
		return nil
	}
	cp := make([]string, len(f.statuses))
	copy(cp, f.statuses)
	return cp
}

// ExcludeStatuses returns statuses to exclude.
func (f Filters) ExcludeStatuses() []string {
	cp := make([]string, len(f.excludeStatuses))
	copy(cp, f.excludeStatuses)
	return cp
}

// Region returns the region restriction, empty if none.
func (f Filters) Region() string { return f.region }

// Category returns the category restriction, empty if none.
func (f Filters) Category() string { return f.category }

// Severity returns the severity restriction, empty if none.
func (f Filters) Severity() string { return f.severity }
