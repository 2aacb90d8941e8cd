// Package report provides domain types for tuning reports, findings, and the
// users and access grants that scope who may read them.
package report

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle status of a report.
type Status string

// Report status values.
const (
	StatusDraft     Status = "draft"
	StatusInReview  Status = "in_review"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Valid reports whether the status is one of the known report statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusInReview, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// Report represents a cluster tuning analysis report. The embedding, when
// present, was generated from the report's text fields at a specific point in
// time; it is not regenerated automatically on edit.
type Report struct {
	id              string
	clusterID       string
	title           string
	description     string
	status          Status
	customerID      string
	region          string
	piiFlag         bool
	clusterVersion  string
	embedding       []float64
	version         int
	createdBy       string
	statusChangedBy string
	statusChangedAt time.Time
	generatedAt     time.Time
	createdAt       time.Time
	updatedAt       time.Time
}

// NewReport creates a new draft report (not yet persisted).
func NewReport(clusterID, title, description, customerID, createdBy string) Report {
	now := time.Now().UTC()
	return Report{
		id:              uuid.NewString(),
		clusterID:       clusterID,
		title:           title,
		description:     description,
		status:          StatusDraft,
		customerID:      customerID,
		version:         1,
		createdBy:       createdBy,
		statusChangedBy: createdBy,
		statusChangedAt: now,
		createdAt:       now,
		updatedAt:       now,
	}
}

// ReconstructReport recreates a report from persistence (for store use).
func ReconstructReport(
	id, clusterID, title, description string,
	status Status,
	customerID, region string,
	piiFlag bool,
	clusterVersion string,
	embedding []float64,
	version int,
	createdBy, statusChangedBy string,
	statusChangedAt, generatedAt, createdAt, updatedAt time.Time,
) Report {
	return Report{
		id:              id,
		clusterID:       clusterID,
		title:           title,
		description:     description,
		status:          status,
		customerID:      customerID,
		region:          region,
		piiFlag:         piiFlag,
		clusterVersion:  clusterVersion,
		embedding:       embedding,
		version:         version,
		createdBy:       createdBy,
		statusChangedBy: statusChangedBy,
		statusChangedAt: statusChangedAt,
		generatedAt:     generatedAt,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// ID returns the report identifier.
func (r Report) ID() string { return r.id }

// ClusterID returns the monitored cluster identifier.
func (r Report) ClusterID() string { return r.clusterID }

// Title returns the report title.
func (r Report) Title() string { return r.title }

// Description returns the report description.
func (r Report) Description() string { return r.description }

// Status returns the lifecycle status.
func (r Report) Status() Status { return r.status }

// CustomerID returns the owning customer (tenant) identifier.
func (r Report) CustomerID() string { return r.customerID }

// Region returns the deployment region, or empty if unset.
func (r Report) Region() string { return r.region }

// PIIFlag reports whether the report is marked as containing sensitive data.
func (r Report) PIIFlag() bool { return r.piiFlag }

// ClusterVersion returns the database version the analysis ran against.
func (r Report) ClusterVersion() string { return r.clusterVersion }

// Embedding returns a copy of the embedding vector, or nil if not generated.
func (r Report) Embedding() []float64 {
	if r.embedding == nil {
		return nil
	}
	cp := make([]float64, len(r.embedding))
	copy(cp, r.embedding)
	return cp
}

// HasEmbedding reports whether an embedding has been generated.
func (r Report) HasEmbedding() bool { return r.embedding != nil }

// Version returns the report version counter.
func (r Report) Version() int { return r.version }

// CreatedBy returns the creating user's identifier.
func (r Report) CreatedBy() string { return r.createdBy }

// StatusChangedBy returns who last changed the status.
func (r Report) StatusChangedBy() string { return r.statusChangedBy }

// StatusChangedAt returns when the status last changed.
func (r Report) StatusChangedAt() time.Time { return r.statusChangedAt }

// GeneratedAt returns when the report content was generated.
func (r Report) GeneratedAt() time.Time { return r.generatedAt }

// CreatedAt returns the creation timestamp.
func (r Report) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns the last-update timestamp.
func (r Report) UpdatedAt() time.Time { return r.updatedAt }

// WithTitle returns a copy with the title replaced.
func (r Report) WithTitle(title string) Report {
	r.title = title
	r.updatedAt = time.Now().UTC()
	return r
}

// WithDescription returns a copy with the description replaced.
func (r Report) WithDescription(description string) Report {
	r.description = description
	r.updatedAt = time.Now().UTC()
	return r
}

// WithStatus returns a copy with the status changed and change provenance
// recorded.
func (r Report) WithStatus(status Status, changedBy string) Report {
	now := time.Now().UTC()
	r.status = status
	r.statusChangedBy = changedBy
	r.statusChangedAt = now
	r.updatedAt = now
	return r
}

// WithTenancy returns a copy with customer, region, and PII flag set.
func (r Report) WithTenancy(customerID, region string, piiFlag bool) Report {
	r.customerID = customerID
	r.region = region
	r.piiFlag = piiFlag
	r.updatedAt = time.Now().UTC()
	return r
}

// WithClusterVersion returns a copy with the cluster version set.
func (r Report) WithClusterVersion(version string) Report {
	r.clusterVersion = version
	return r
}

// WithEmbedding returns a copy with the embedding vector replaced.
func (r Report) WithEmbedding(embedding []float64) Report {
	cp := make([]float64, len(embedding))
	copy(cp, embedding)
	r.embedding = cp
	return r
}
