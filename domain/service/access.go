// Package service implements the domain services: access resolution,
// embedding generation, similarity search, and embedding backfill.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/clustertune/reportd/domain/report"
	"github.com/clustertune/reportd/domain/repository"
	"github.com/clustertune/reportd/internal/database"
)

// AccessResolver maps a user identity to the set of customer scopes that
// identity may read. Admins bypass grants entirely; unknown users resolve
// to nothing (fail closed).
type AccessResolver struct {
	users  report.UserStore
	grants report.AccessGrantStore
}

// NewAccessResolver creates an access resolver backed by the given stores.
func NewAccessResolver(users report.UserStore, grants report.AccessGrantStore) *AccessResolver {
	return &AccessResolver{users: users, grants: grants}
}

// IsAdmin reports whether the user has the admin role. Unknown users are
// not admins.
func (r *AccessResolver) IsAdmin(ctx context.Context, userID string) (bool, error) {
	u, err := r.users.FindOne(ctx, repository.WithID(userID))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("lookup user %s: %w", userID, err)
	}
	return u.IsAdmin(), nil
}

// AuthorizedCustomers returns the customer ids the user holds grants for.
// An empty slice means the user may see nothing; callers must not treat it
// as unrestricted.
func (r *AccessResolver) AuthorizedCustomers(ctx context.Context, userID string) ([]string, error) {
	grants, err := r.grants.Find(ctx, repository.WithUserID(userID))
	if err != nil {
		return nil, fmt.Errorf("lookup grants for user %s: %w", userID, err)
	}

	seen := make(map[string]struct{}, len(grants))
	ids := make([]string, 0, len(grants))
	for _, g := range grants {
		if _, ok := seen[g.CustomerID()]; ok {
			continue
		}
		seen[g.CustomerID()] = struct{}{}
		ids = append(ids, g.CustomerID())
	}
	return ids, nil
}
