package report

import (
	"time"

	"github.com/google/uuid"
)

// Comment represents a discussion entry on a report. Comments may be nested
// one level via the parent comment identifier.
type Comment struct {
	id        string
	reportID  string
	parentID  string
	authorID  string
	content   string
	createdAt time.Time
	updatedAt time.Time
}

// NewComment creates a new comment on a report. parentID may be empty for a
// top-level comment.
func NewComment(reportID, parentID, authorID, content string) Comment {
	now := time.Now().UTC()
	return Comment{
		id:        uuid.NewString(),
		reportID:  reportID,
		parentID:  parentID,
		authorID:  authorID,
		content:   content,
		createdAt: now,
		updatedAt: now,
	}
}

// ReconstructComment recreates a comment from persistence (for store use).
func ReconstructComment(id, reportID, parentID, authorID, content string, createdAt, updatedAt time.Time) Comment {
	return Comment{
		id:        id,
		reportID:  reportID,
		parentID:  parentID,
		authorID:  authorID,
		content:   content,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the comment identifier.
func (c Comment) ID() string { return c.id }

// ReportID returns the report this comment belongs to.
func (c Comment) ReportID() string { return c.reportID }

// ParentID returns the parent comment identifier, empty for top-level.
func (c Comment) ParentID() string { return c.parentID }

// AuthorID returns the authoring user's identifier.
func (c Comment) AuthorID() string { return c.authorID }

// Content returns the comment text.
func (c Comment) Content() string { return c.content }

// CreatedAt returns the creation timestamp.
func (c Comment) CreatedAt() time.Time { return c.createdAt }

// UpdatedAt returns the last-edit timestamp.
func (c Comment) UpdatedAt() time.Time { return c.updatedAt }

// WithContent returns a copy with the content edited.
func (c Comment) WithContent(content string) Comment {
	c.content = content
	c.updatedAt = time.Now().UTC()
	return c
}
