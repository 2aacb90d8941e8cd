package persistence

import (
	"time"

	"github.com/clustertune/reportd/domain/report"
	"github.com/clustertune/reportd/internal/database"
)

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func timeVal(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// ReportMapper converts between domain reports and database models.
type ReportMapper struct{}

// ToDomain converts a database model to a domain report.
func (ReportMapper) ToDomain(m Report) report.Report {
	return report.ReconstructReport(
		m.ID, m.ClusterID, m.Title, m.Description,
		report.Status(m.Status),
		m.CustomerID, m.Region, m.PIIFlag, m.ClusterVersion,
		m.Embedding.Floats(),
		m.Version,
		m.CreatedBy, m.StatusChangedBy,
		m.StatusChangedAt, timeVal(m.GeneratedAt), m.CreatedAt, m.UpdatedAt,
	)
}

// ToModel converts a domain report to a database model.
func (ReportMapper) ToModel(r report.Report) Report {
	m := Report{
		ID:              r.ID(),
		ClusterID:       r.ClusterID(),
		Title:           r.Title(),
		Description:     r.Description(),
		Status:          string(r.Status()),
		CustomerID:      r.CustomerID(),
		Region:          r.Region(),
		PIIFlag:         r.PIIFlag(),
		ClusterVersion:  r.ClusterVersion(),
		Version:         r.Version(),
		CreatedBy:       r.CreatedBy(),
		StatusChangedBy: r.StatusChangedBy(),
		StatusChangedAt: r.StatusChangedAt(),
		GeneratedAt:     timePtr(r.GeneratedAt()),
		CreatedAt:       r.CreatedAt(),
		UpdatedAt:       r.UpdatedAt(),
	}
	if r.HasEmbedding() {
		m.Embedding = database.NewVector(r.Embedding())
	}
	return m
}

// FindingMapper converts between domain findings and database models.
type FindingMapper struct{}

// ToDomain converts a database model to a domain finding.
func (FindingMapper) ToDomain(m Finding) report.Finding {
	return report.ReconstructFinding(
		m.ID, m.ReportID,
		report.Category(m.Category),
		report.Severity(m.Severity),
		m.Title, m.Description,
		report.FindingStatus(m.Status),
		m.Tags,
		m.CustomerID, m.Region, m.PIIFlag,
		m.Embedding.Floats(),
		m.CreatedBy, m.CreatedAt, m.UpdatedAt,
	)
}

// ToModel converts a domain finding to a database model.
func (FindingMapper) ToModel(f report.Finding) Finding {
	m := Finding{
		ID:          f.ID(),
		ReportID:    f.ReportID(),
		Category:    string(f.Category()),
		Severity:    string(f.Severity()),
		Title:       f.Title(),
		Description: f.Description(),
		Status:      string(f.Status()),
		Tags:        f.Tags(),
		CustomerID:  f.CustomerID(),
		Region:      f.Region(),
		PIIFlag:     f.PIIFlag(),
		CreatedBy:   f.CreatedBy(),
		CreatedAt:   f.CreatedAt(),
		UpdatedAt:   f.UpdatedAt(),
	}
	if f.HasEmbedding() {
		m.Embedding = database.NewVector(f.Embedding())
	}
	return m
}

// ActionMapper converts between domain actions and database models.
type ActionMapper struct{}

// ToDomain converts a database model to a domain action.
func (ActionMapper) ToDomain(m Action) report.Action {
	return report.ReconstructAction(
		m.ID, m.FindingID, m.Title, m.Description,
		report.ActionType(m.ActionType),
		m.Priority, m.EstimatedEffort,
		report.ActionStatus(m.Status),
		timeVal(m.DueDate), timeVal(m.CompletedAt),
		m.ImplementationNotes, m.CreatedBy, m.StatusChangedBy,
		m.StatusChangedAt, m.CreatedAt, m.UpdatedAt,
	)
}

// ToModel converts a domain action to a database model.
func (ActionMapper) ToModel(a report.Action) Action {
	return Action{
		ID:                  a.ID(),
		FindingID:           a.FindingID(),
		Title:               a.Title(),
		Description:         a.Description(),
		ActionType:          string(a.Type()),
		Priority:            a.Priority(),
		EstimatedEffort:     a.EstimatedEffort(),
		Status:              string(a.Status()),
		DueDate:             timePtr(a.DueDate()),
		CompletedAt:         timePtr(a.CompletedAt()),
		ImplementationNotes: a.ImplementationNotes(),
		CreatedBy:           a.CreatedBy(),
		StatusChangedBy:     a.StatusChangedBy(),
		StatusChangedAt:     a.StatusChangedAt(),
		CreatedAt:           a.CreatedAt(),
		UpdatedAt:           a.UpdatedAt(),
	}
}

// CommentMapper converts between domain comments and database models.
type CommentMapper struct{}

// ToDomain converts a database model to a domain comment.
func (CommentMapper) ToDomain(m Comment) report.Comment {
	return report.ReconstructComment(
		m.ID, m.ReportID, m.ParentCommentID, m.AuthorID, m.Content,
		m.CreatedAt, m.UpdatedAt,
	)
}

// ToModel converts a domain comment to a database model.
func (CommentMapper) ToModel(c report.Comment) Comment {
	return Comment{
		ID:              c.ID(),
		ReportID:        c.ReportID(),
		ParentCommentID: c.ParentID(),
		AuthorID:        c.AuthorID(),
		Content:         c.Content(),
		CreatedAt:       c.CreatedAt(),
		UpdatedAt:       c.UpdatedAt(),
	}
}

// UserMapper converts between domain users and database models.
type UserMapper struct{}

// ToDomain converts a database model to a domain user.
func (UserMapper) ToDomain(m User) report.User {
	return report.ReconstructUser(m.ID, m.Name, m.Email, report.Role(m.Role), m.CreatedAt)
}

// ToModel converts a domain user to a database model.
func (UserMapper) ToModel(u report.User) User {
	return User{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email(),
		Role:      string(u.Role()),
		CreatedAt: u.CreatedAt(),
	}
}

// AccessGrantMapper converts between domain grants and database models.
type AccessGrantMapper struct{}

// ToDomain converts a database model to a domain access grant.
func (AccessGrantMapper) ToDomain(m AccessGrant) report.AccessGrant {
	return report.ReconstructAccessGrant(
		m.ID, m.UserID, m.CustomerID,
		report.AccessLevel(m.Level),
		m.GrantedBy, m.CreatedAt,
	)
}

// ToModel converts a domain access grant to a database model.
func (AccessGrantMapper) ToModel(g report.AccessGrant) AccessGrant {
	return AccessGrant{
		ID:         g.ID(),
		UserID:     g.UserID(),
		CustomerID: g.CustomerID(),
		Level:      string(g.Level()),
		GrantedBy:  g.GrantedBy(),
		CreatedAt:  g.CreatedAt(),
	}
}

// StatusChangeMapper converts between domain status changes and models.
type StatusChangeMapper struct{}

// ToDomain converts a database model to a domain status change.
func (StatusChangeMapper) ToDomain(m StatusChange) report.StatusChange {
	return report.ReconstructStatusChange(
		m.ID,
		report.EntityKind(m.EntityKind),
		m.EntityID, m.OldStatus, m.NewStatus, m.ChangedBy, m.Reason,
		m.CreatedAt,
	)
}

// ToModel converts a domain status change to a database model.
func (StatusChangeMapper) ToModel(s report.StatusChange) StatusChange {
	return StatusChange{
		ID:         s.ID(),
		EntityKind: string(s.EntityKind()),
		EntityID:   s.EntityID(),
		OldStatus:  s.OldStatus(),
		NewStatus:  s.NewStatus(),
		ChangedBy:  s.ChangedBy(),
		Reason:     s.Reason(),
		CreatedAt:  s.CreatedAt(),
	}
}
