package report

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies what aspect of the cluster a finding concerns.
type Category string

// Finding categories.
const (
	CategoryPerformance   Category = "performance"
	CategoryConfiguration Category = "configuration"
	CategorySecurity      Category = "security"
	CategoryReliability   Category = "reliability"
	CategoryMonitoring    Category = "monitoring"
)

// Valid reports whether the category is known.
func (c Category) Valid() bool {
	switch c {
	case CategoryPerformance, CategoryConfiguration, CategorySecurity,
		CategoryReliability, CategoryMonitoring:
		return true
	}
	return false
}

// Severity indicates how urgent a finding is.
type Severity string

// Finding severities.
const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Valid reports whether the severity is known.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// FindingStatus represents the triage state of a finding.
type FindingStatus string

// Finding statuses. False positives are excluded from similarity search
// unconditionally.
const (
	FindingStatusOpen          FindingStatus = "open"
	FindingStatusAcknowledged  FindingStatus = "acknowledged"
	FindingStatusResolved      FindingStatus = "resolved"
	FindingStatusFalsePositive FindingStatus = "false_positive"
)

// Valid reports whether the status is a known finding status.
func (s FindingStatus) Valid() bool {
	switch s {
	case FindingStatusOpen, FindingStatusAcknowledged,
		FindingStatusResolved, FindingStatusFalsePositive:
		return true
	}
	return false
}

// Finding represents a single issue identified within a report. Findings
// inherit their tenancy (customer, region, PII flag) from the parent report
// at creation time.
type Finding struct {
	id          string
	reportID    string
	category    Category
	severity    Severity
	title       string
	description string
	status      FindingStatus
	tags        []string
	customerID  string
	region      string
	piiFlag     bool
	embedding   []float64
	createdBy   string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewFinding creates a new open finding attached to a report.
func NewFinding(parent Report, category Category, severity Severity, title, description, createdBy string) Finding {
	now := time.Now().UTC()
	return Finding{
		id:          uuid.NewString(),
		reportID:    parent.ID(),
		category:    category,
		severity:    severity,
		title:       title,
		description: description,
		status:      FindingStatusOpen,
		customerID:  parent.CustomerID(),
		region:      parent.Region(),
		piiFlag:     parent.PIIFlag(),
		createdBy:   createdBy,
		createdAt:   now,
		updatedAt:   now,
	}
}

// ReconstructFinding recreates a finding from persistence (for store use).
func ReconstructFinding(
	id, reportID string,
	category Category,
	severity Severity,
	title, description string,
	status FindingStatus,
	tags []string,
	customerID, region string,
	piiFlag bool,
	embedding []float64,
	createdBy string,
	createdAt, updatedAt time.Time,
) Finding {
	return Finding{
		id:          id,
		reportID:    reportID,
		category:    category,
		severity:    severity,
		title:       title,
		description: description,
		status:      status,
		tags:        tags,
		customerID:  customerID,
		region:      region,
		piiFlag:     piiFlag,
		embedding:   embedding,
		createdBy:   createdBy,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the finding identifier.
func (f Finding) ID() string { return f.id }

// ReportID returns the parent report identifier.
func (f Finding) ReportID() string { return f.reportID }

// Category returns the finding category.
func (f Finding) Category() Category { return f.category }

// Severity returns the finding severity.
func (f Finding) Severity() Severity { return f.severity }

// Title returns the finding title.
func (f Finding) Title() string { return f.title }

// Description returns the finding description.
func (f Finding) Description() string { return f.description }

// Status returns the triage status.
func (f Finding) Status() FindingStatus { return f.status }

// Tags returns a copy of the finding tags.
func (f Finding) Tags() []string {
	cp := make([]string, len(f.tags))
	copy(cp, f.tags)
	return cp
}

// CustomerID returns the owning customer identifier.
func (f Finding) CustomerID() string { return f.customerID }

// Region returns the deployment region, or empty if unset.
func (f Finding) Region() string { return f.region }

// PIIFlag reports whether the finding is marked as containing sensitive data.
func (f Finding) PIIFlag() bool { return f.piiFlag }

// Embedding returns a copy of the embedding vector, or nil if not generated.
func (f Finding) Embedding() []float64 {
	if f.embedding == nil {
		return nil
	}
	cp := make([]float64, len(f.embedding))
	copy(cp, f.embedding)
	return cp
}

// HasEmbedding reports whether an embedding has been generated.
func (f Finding) HasEmbedding() bool { return f.embedding != nil }

// CreatedBy returns the creating user's identifier.
func (f Finding) CreatedBy() string { return f.createdBy }

// CreatedAt returns the creation timestamp.
func (f Finding) CreatedAt() time.Time { return f.createdAt }

// UpdatedAt returns the last-update timestamp.
func (f Finding) UpdatedAt() time.Time { return f.updatedAt }

// WithStatus returns a copy with the triage status changed.
func (f Finding) WithStatus(status FindingStatus) Finding {
	f.status = status
	f.updatedAt = time.Now().UTC()
	return f
}

// WithTags returns a copy with the tags replaced.
func (f Finding) WithTags(tags []string) Finding {
	cp := make([]string, len(tags))
	copy(cp, tags)
	f.tags = cp
	f.updatedAt = time.Now().UTC()
	return f
}

// WithTitle returns a copy with the title replaced.
func (f Finding) WithTitle(title string) Finding {
	f.title = title
	f.updatedAt = time.Now().UTC()
	return f
}

// WithDescription returns a copy with the description replaced.
func (f Finding) WithDescription(description string) Finding {
	f.description = description
	f.updatedAt = time.Now().UTC()
	return f
}

// WithEmbedding returns a copy with the embedding vector replaced.
func (f Finding) WithEmbedding(embedding []float64) Finding {
	cp := make([]float64, len(embedding))
	copy(cp, embedding)
	f.embedding = cp
	return f
}
