package repository

// WithID filters by the "id" column.
func WithID(id string) Option {
	return WithCondition("id", id)
}

// WithIDIn filters by the "id" column using IN.
func WithIDIn(ids []string) Option {
	return WithConditionIn("id", ids)
}

// WithUserID filters by the "user_id" column.
func WithUserID(id string) Option {
	return WithCondition("user_id", id)
}

// WithCustomerID filters by the "customer_id" column.
func WithCustomerID(id string) Option {
	return WithCondition("customer_id", id)
}

// WithCustomerIDIn filters by the "customer_id" column using IN.
func WithCustomerIDIn(ids []string) Option {
	return WithConditionIn("customer_id", ids)
}

// WithClusterID filters by the "cluster_id" column.
func WithClusterID(id string) Option {
	return WithCondition("cluster_id", id)
}

// WithReportID filters by the "report_id" column.
func WithReportID(id string) Option {
	return WithCondition("report_id", id)
}

// WithFindingID filters by the "finding_id" column.
func WithFindingID(id string) Option {
	return WithCondition("finding_id", id)
}

// WithFindingIDIn filters by the "finding_id" column using IN.
func WithFindingIDIn(ids []string) Option {
	return WithConditionIn("finding_id", ids)
}

// WithStatus filters by the "status" column.
func WithStatus(status string) Option {
	return WithCondition("status", status)
}

// WithEmail filters by the "email" column.
func WithEmail(email string) Option {
	return WithCondition("email", email)
}

// WithMissingEmbedding filters entities whose embedding has not been
// generated yet.
func WithMissingEmbedding() Option {
	return WithWhere("embedding IS NULL")
}
