package report

import (
	"time"

	"github.com/google/uuid"
)

// EntityKind names which table a status change belongs to.
type EntityKind string

// Entity kinds for status history.
const (
	EntityKindReport  EntityKind = "report"
	EntityKindFinding EntityKind = "finding"
	EntityKindAction  EntityKind = "action"
)

// StatusChange is an append-only audit record of a status transition.
type StatusChange struct {
	id         string
	entityKind EntityKind
	entityID   string
	oldStatus  string
	newStatus  string
	changedBy  string
	reason     string
	createdAt  time.Time
}

// NewStatusChange records a status transition for an entity.
func NewStatusChange(kind EntityKind, entityID, oldStatus, newStatus, changedBy, reason string) StatusChange {
	return StatusChange{
		id:         uuid.NewString(),
		entityKind: kind,
		entityID:   entityID,
		oldStatus:  oldStatus,
		newStatus:  newStatus,
		changedBy:  changedBy,
		reason:     reason,
		createdAt:  time.Now().UTC(),
	}
}

// ReconstructStatusChange recreates a record from persistence (for store use).
func ReconstructStatusChange(id string, kind EntityKind, entityID, oldStatus, newStatus, changedBy, reason string, createdAt time.Time) StatusChange {
	return StatusChange{
		id:         id,
		entityKind: kind,
		entityID:   entityID,
		oldStatus:  oldStatus,
		newStatus:  newStatus,
		changedBy:  changedBy,
		reason:     reason,
		createdAt:  createdAt,
	}
}

// ID returns the record identifier.
func (s StatusChange) ID() string { return s.id }

// EntityKind returns which entity table the record belongs to.
func (s StatusChange) EntityKind() EntityKind { return s.entityKind }

// EntityID returns the changed entity's identifier.
func (s StatusChange) EntityID() string { return s.entityID }

// OldStatus returns the status before the transition.
func (s StatusChange) OldStatus() string { return s.oldStatus }

// NewStatus returns the status after the transition.
func (s StatusChange) NewStatus() string { return s.newStatus }

// ChangedBy returns who made the transition.
func (s StatusChange) ChangedBy() string { return s.changedBy }

// Reason returns the optional free-form reason.
func (s StatusChange) Reason() string { return s.reason }

// CreatedAt returns when the transition happened.
func (s StatusChange) CreatedAt() time.Time { return s.createdAt }
