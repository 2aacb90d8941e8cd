package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/clustertune/reportd/domain/report"
	"github.com/clustertune/reportd/domain/repository"
	"github.com/clustertune/reportd/internal/database"
)

// AccessService manages users and access grants.
type AccessService struct {
	users  report.UserStore
	grants report.AccessGrantStore
}

// NewAccessService creates an access service.
func NewAccessService(users report.UserStore, grants report.AccessGrantStore) *AccessService {
	return &AccessService{users: users, grants: grants}
}

// CreateUser registers a new user.
func (s *AccessService) CreateUser(ctx context.Context, name, email string, role report.Role) (report.User, error) {
	if !role.Valid() {
		return report.User{}, fmt.Errorf("invalid role %q", role)
	}

	if _, err := s.users.FindOne(ctx, repository.WithEmail(email)); err == nil {
		return report.User{}, fmt.Errorf("user with email %s already exists", email)
	} else if !errors.Is(err, database.ErrNotFound) {
		return report.User{}, err
	}

	u := report.NewUser(name, email, role)
	if err := s.users.Create(ctx, u); err != nil {
		return report.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// GetUser retrieves a user by id.
func (s *AccessService) GetUser(ctx context.Context, id string) (report.User, error) {
	return s.users.FindOne(ctx, repository.WithID(id))
}

// GetUserByEmail retrieves a user by email address.
func (s *AccessService) GetUserByEmail(ctx context.Context, email string) (report.User, error) {
	return s.users.FindOne(ctx, repository.WithEmail(email))
}

// Grant entitles a user to a customer's data.
func (s *AccessService) Grant(ctx context.Context, userID, customerID string, level report.AccessLevel, grantedBy string) (report.AccessGrant, error) {
	if !level.Valid() {
		return report.AccessGrant{}, fmt.Errorf("invalid access level %q", level)
	}
	if _, err := s.users.FindOne(ctx, repository.WithID(userID)); err != nil {
		return report.AccessGrant{}, err
	}

	g := report.NewAccessGrant(userID, customerID, level, grantedBy)
	if err := s.grants.Create(ctx, g); err != nil {
		return report.AccessGrant{}, fmt.Errorf("create access grant: %w", err)
	}
	return g, nil
}

// Revoke removes a user's grant for a customer.
func (s *AccessService) Revoke(ctx context.Context, userID, customerID string) error {
	if err := s.grants.DeleteBy(ctx,
		repository.WithUserID(userID),
		repository.WithCustomerID(customerID),
	); err != nil {
		return fmt.Errorf("revoke access grant: %w", err)
	}
	return nil
}

// Grants lists a user's access grants.
func (s *AccessService) Grants(ctx context.Context, userID string) ([]report.AccessGrant, error) {
	return s.grants.Find(ctx, repository.WithUserID(userID))
}
