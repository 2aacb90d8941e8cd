package report

import (
	"time"

	"github.com/google/uuid"
)

// ActionType classifies what kind of change a recommended action entails.
type ActionType string

// Action types.
const (
	ActionTypeConfigChange  ActionType = "config_change"
	ActionTypeQueryRewrite  ActionType = "query_rewrite"
	ActionTypeSchemaChange  ActionType = "schema_change"
	ActionTypeScaling       ActionType = "scaling"
	ActionTypeInvestigation ActionType = "investigation"
)

// Valid reports whether the action type is known.
func (t ActionType) Valid() bool {
	switch t {
	case ActionTypeConfigChange, ActionTypeQueryRewrite, ActionTypeSchemaChange,
		ActionTypeScaling, ActionTypeInvestigation:
		return true
	}
	return false
}

// ActionStatus represents the execution state of a recommended action.
type ActionStatus string

// Action statuses.
const (
	ActionStatusPending    ActionStatus = "pending"
	ActionStatusInProgress ActionStatus = "in_progress"
	ActionStatusCompleted  ActionStatus = "completed"
	ActionStatusDismissed  ActionStatus = "dismissed"
)

// Valid reports whether the status is a known action status.
func (s ActionStatus) Valid() bool {
	switch s {
	case ActionStatusPending, ActionStatusInProgress,
		ActionStatusCompleted, ActionStatusDismissed:
		return true
	}
	return false
}

// Action represents a recommended remediation attached to a finding.
type Action struct {
	id                  string
	findingID           string
	title               string
	description         string
	actionType          ActionType
	priority            int
	estimatedEffort     string
	status              ActionStatus
	dueDate             time.Time
	completedAt         time.Time
	implementationNotes string
	createdBy           string
	statusChangedBy     string
	statusChangedAt     time.Time
	createdAt           time.Time
	updatedAt           time.Time
}

// NewAction creates a new pending action for a finding.
func NewAction(findingID, title, description string, actionType ActionType, priority int, createdBy string) Action {
	now := time.Now().UTC()
	return Action{
		id:              uuid.NewString(),
		findingID:       findingID,
		title:           title,
		description:     description,
		actionType:      actionType,
		priority:        priority,
		status:          ActionStatusPending,
		createdBy:       createdBy,
		statusChangedBy: createdBy,
		statusChangedAt: now,
		createdAt:       now,
		updatedAt:       now,
	}
}

// ReconstructAction recreates an action from persistence (for store use).
func ReconstructAction(
	id, findingID, title, description string,
	actionType ActionType,
	priority int,
	estimatedEffort string,
	status ActionStatus,
	dueDate, completedAt time.Time,
	implementationNotes, createdBy, statusChangedBy string,
	statusChangedAt, createdAt, updatedAt time.Time,
) Action {
	return Action{
		id:                  id,
		findingID:           findingID,
		title:               title,
		description:         description,
		actionType:          actionType,
		priority:            priority,
		estimatedEffort:     estimatedEffort,
		status:              status,
		dueDate:             dueDate,
		completedAt:         completedAt,
		implementationNotes: implementationNotes,
		createdBy:           createdBy,
		statusChangedBy:     statusChangedBy,
		statusChangedAt:     statusChangedAt,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}
}

// ID returns the action identifier.
func (a Action) ID() string { return a.id }

// FindingID returns the parent finding identifier.
func (a Action) FindingID() string { return a.findingID }

// Title returns the action title.
func (a Action) Title() string { return a.title }

// Description returns the action description.
func (a Action) Description() string { return a.description }

// Type returns the action type.
func (a Action) Type() ActionType { return a.actionType }

// Priority returns the action priority (lower is more urgent).
func (a Action) Priority() int { return a.priority }

// EstimatedEffort returns the free-form effort estimate.
func (a Action) EstimatedEffort() string { return a.estimatedEffort }

// Status returns the execution status.
func (a Action) Status() ActionStatus { return a.status }

// DueDate returns the due date, zero if unset.
func (a Action) DueDate() time.Time { return a.dueDate }

// CompletedAt returns when the action completed, zero if not completed.
func (a Action) CompletedAt() time.Time { return a.completedAt }

// ImplementationNotes returns the notes recorded at completion.
func (a Action) ImplementationNotes() string { return a.implementationNotes }

// CreatedBy returns the creating user's identifier.
func (a Action) CreatedBy() string { return a.createdBy }

// StatusChangedBy returns who last changed the status.
func (a Action) StatusChangedBy() string { return a.statusChangedBy }

// StatusChangedAt returns when the status last changed.
func (a Action) StatusChangedAt() time.Time { return a.statusChangedAt }

// CreatedAt returns the creation timestamp.
func (a Action) CreatedAt() time.Time { return a.createdAt }

// UpdatedAt returns the last-update timestamp.
func (a Action) UpdatedAt() time.Time { return a.updatedAt }

// WithStatus returns a copy with the status changed and provenance recorded.
// Moving to completed stamps the completion time.
func (a Action) WithStatus(status ActionStatus, changedBy string) Action {
	now := time.Now().UTC()
	a.status = status
	a.statusChangedBy = changedBy
	a.statusChangedAt = now
	a.updatedAt = now
	if status == ActionStatusCompleted {
		a.completedAt = now
	}
	return a
}

// WithImplementationNotes returns a copy with implementation notes set.
func (a Action) WithImplementationNotes(notes string) Action {
	a.implementationNotes = notes
	a.updatedAt = time.Now().UTC()
	return a
}

// WithDueDate returns a copy with the due date set.
func (a Action) WithDueDate(due time.Time) Action {
	a.dueDate = due
	a.updatedAt = time.Now().UTC()
	return a
}

// WithEstimatedEffort returns a copy with the effort estimate set.
func (a Action) WithEstimatedEffort(effort string) Action {
	a.estimatedEffort = effort
	a.updatedAt = time.Now().UTC()
	return a
}
