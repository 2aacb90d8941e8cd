// Package persistence implements the GORM-backed stores for reports,
// findings, users, grants, and audit history.
package persistence

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/clustertune/reportd/internal/database"
)

// StringSlice stores a []string as a JSON text column.
type StringSlice []string

// Scan implements sql.Scanner.
func (s *StringSlice) Scan(value any) error {
	if value == nil {
		*s = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
	if len(raw) == 0 {
		*s = nil
		return nil
	}
	return json.Unmarshal(raw, s)
}

// GormDataType names the column type for schema parsing. The nil slice's
// Value() is NULL, so GORM cannot infer the type from the Valuer alone.
func (StringSlice) GormDataType() string { return "text" }

// Value implements driver.Valuer.
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Report is the database model for reports.
type Report struct {
	ID              string `gorm:"primaryKey"`
	ClusterID       string `gorm:"index;not null"`
	Title           string `gorm:"not null"`
	Description     string
	Status          string `gorm:"index;not null"`
	CustomerID      string `gorm:"index;not null"`
	Region          string `gorm:"index"`
	PIIFlag         bool   `gorm:"column:pii_flag;not null;default:false"`
	ClusterVersion  string
	Embedding       database.Vector
	Version         int `gorm:"not null;default:1"`
	CreatedBy       string
	StatusChangedBy string
	StatusChangedAt time.Time
	GeneratedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName returns the table name for Report.
func (Report) TableName() string { return "reports" }

// Finding is the database model for findings.
type Finding struct {
	ID          string `gorm:"primaryKey"`
	ReportID    string `gorm:"index;not null"`
	Category    string `gorm:"index;not null"`
	Severity    string `gorm:"index;not null"`
	Title       string `gorm:"not null"`
	Description string
	Status      string `gorm:"index;not null"`
	Tags        StringSlice
	CustomerID  string `gorm:"index;not null"`
	Region      string `gorm:"index"`
	PIIFlag     bool   `gorm:"column:pii_flag;not null;default:false"`
	Embedding   database.Vector
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for Finding.
func (Finding) TableName() string { return "findings" }

// Action is the database model for recommended actions.
type Action struct {
	ID                  string `gorm:"primaryKey"`
	FindingID           string `gorm:"index;not null"`
	Title               string `gorm:"not null"`
	Description         string
	ActionType          string `gorm:"not null"`
	Priority            int
	EstimatedEffort     string
	Status              string `gorm:"index;not null"`
	DueDate             *time.Time
	CompletedAt         *time.Time
	ImplementationNotes string
	CreatedBy           string
	StatusChangedBy     string
	StatusChangedAt     time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName returns the table name for Action.
func (Action) TableName() string { return "actions" }

// Comment is the database model for report comments.
type Comment struct {
	ID              string `gorm:"primaryKey"`
	ReportID        string `gorm:"index;not null"`
	ParentCommentID string `gorm:"index"`
	AuthorID        string `gorm:"index;not null"`
	Content         string `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName returns the table name for Comment.
func (Comment) TableName() string { return "comments" }

// User is the database model for users.
type User struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"uniqueIndex;not null"`
	Role      string `gorm:"not null"`
	CreatedAt time.Time
}

// TableName returns the table name for User.
func (User) TableName() string { return "users" }

// AccessGrant is the database model for access grants.
type AccessGrant struct {
	ID         string `gorm:"primaryKey"`
	UserID     string `gorm:"index:idx_grants_user_customer,unique;not null"`
	CustomerID string `gorm:"index:idx_grants_user_customer,unique;not null"`
	Level      string `gorm:"not null"`
	GrantedBy  string
	CreatedAt  time.Time
}

// TableName returns the table name for AccessGrant.
func (AccessGrant) TableName() string { return "access_grants" }

// StatusChange is the database model for the status history audit trail.
type StatusChange struct {
	ID         string `gorm:"primaryKey"`
	EntityKind string `gorm:"index:idx_status_history_entity;not null"`
	EntityID   string `gorm:"index:idx_status_history_entity;not null"`
	OldStatus  string
	NewStatus  string `gorm:"not null"`
	ChangedBy  string
	Reason     string
	CreatedAt  time.Time
}

// TableName returns the table name for StatusChange.
func (StatusChange) TableName() string { return "status_history" }
