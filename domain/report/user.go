package report

import (
	"time"

	"github.com/google/uuid"
)

// Role determines a user's baseline capabilities. Admins bypass per-customer
// access grants entirely.
type Role string

// User roles.
const (
	RoleAdmin    Role = "admin"
	RoleAnalyst  Role = "analyst"
	RoleViewer   Role = "viewer"
	RoleCustomer Role = "customer"
)

// Valid reports whether the role is known.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAnalyst, RoleViewer, RoleCustomer:
		return true
	}
	return false
}

// SystemUserEmail identifies the built-in user that owns automated writes
// such as backfill embedding updates.
const SystemUserEmail = "system@clustertune.local"

// User represents an account that reads or writes reports.
type User struct {
	id        string
	name      string
	email     string
	role      Role
	createdAt time.Time
}

// NewUser creates a new user.
func NewUser(name, email string, role Role) User {
	return User{
		id:        uuid.NewString(),
		name:      name,
		email:     email,
		role:      role,
		createdAt: time.Now().UTC(),
	}
}

// ReconstructUser recreates a user from persistence (for store use).
func ReconstructUser(id, name, email string, role Role, createdAt time.Time) User {
	return User{id: id, name: name, email: email, role: role, createdAt: createdAt}
}

// ID returns the user identifier.
func (u User) ID() string { return u.id }

// Name returns the display name.
func (u User) Name() string { return u.name }

// Email returns the email address.
func (u User) Email() string { return u.email }

// Role returns the user's role.
func (u User) Role() Role { return u.role }

// CreatedAt returns the creation timestamp.
func (u User) CreatedAt() time.Time { return u.createdAt }

// IsAdmin reports whether the user has the admin role.
func (u User) IsAdmin() bool { return u.role == RoleAdmin }

// AccessLevel scopes what a grant permits within a customer's data.
type AccessLevel string

// Access levels.
const (
	AccessLevelRead  AccessLevel = "read"
	AccessLevelWrite AccessLevel = "write"
)

// Valid reports whether the access level is known.
func (l AccessLevel) Valid() bool {
	return l == AccessLevelRead || l == AccessLevelWrite
}

// AccessGrant entitles a non-admin user to one customer's data. A user with
// no grants is authorized for nothing.
type AccessGrant struct {
	id         string
	userID     string
	customerID string
	level      AccessLevel
	grantedBy  string
	createdAt  time.Time
}

// NewAccessGrant creates a new access grant.
func NewAccessGrant(userID, customerID string, level AccessLevel, grantedBy string) AccessGrant {
	return AccessGrant{
		id:         uuid.NewString(),
		userID:     userID,
		customerID: customerID,
		level:      level,
		grantedBy:  grantedBy,
		createdAt:  time.Now().UTC(),
	}
}

// ReconstructAccessGrant recreates a grant from persistence (for store use).
func ReconstructAccessGrant(id, userID, customerID string, level AccessLevel, grantedBy string, createdAt time.Time) AccessGrant {
	return AccessGrant{
		id:         id,
		userID:     userID,
		customerID: customerID,
		level:      level,
		grantedBy:  grantedBy,
		createdAt:  createdAt,
	}
}

// ID returns the grant identifier.
func (g AccessGrant) ID() string { return g.id }

// UserID returns the granted user's identifier.
func (g AccessGrant) UserID() string { return g.userID }

// CustomerID returns the customer whose data the grant covers.
func (g AccessGrant) CustomerID() string { return g.customerID }

// Level returns the access level.
func (g AccessGrant) Level() AccessLevel { return g.level }

// GrantedBy returns who issued the grant.
func (g AccessGrant) GrantedBy() string { return g.grantedBy }

// CreatedAt returns the grant timestamp.
func (g AccessGrant) CreatedAt() time.Time { return g.createdAt }
