package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clustertune/reportd/domain/report"
	"github.com/clustertune/reportd/internal/database"
)

func TestAccessService_CreateUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u, err := env.accessSvc.CreateUser(ctx, "Alice", "alice@example.com", report.RoleAnalyst)
	require.NoError(t, err)
	assert.Equal(t, report.RoleAnalyst, u.Role())
	assert.False(t, u.IsAdmin())

	got, err := env.accessSvc.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID(), got.ID())
}

func TestAccessService_CreateUserRejectsDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.accessSvc.CreateUser(ctx, "Alice", "alice@example.com", report.RoleViewer)
	require.NoError(t, err)

	_, err = env.accessSvc.CreateUser(ctx, "Other Alice", "alice@example.com", report.RoleViewer)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestAccessService_CreateUserRejectsInvalidRole(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.accessSvc.CreateUser(context.Background(), "Bob", "bob@example.com", report.Role("bogus"))
	require.Error(t, err)
}

func TestAccessService_GrantAndRevoke(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u, err := env.accessSvc.CreateUser(ctx, "Alice", "alice@example.com", report.RoleAnalyst)
	require.NoError(t, err)

	_, err = env.accessSvc.Grant(ctx, u.ID(), "cust-1", report.AccessLevelRead, "admin-1")
	require.NoError(t, err)
	_, err = env.accessSvc.Grant(ctx, u.ID(), "cust-2", report.AccessLevelWrite, "admin-1")
	require.NoError(t, err)

	grants, err := env.accessSvc.Grants(ctx, u.ID())
	require.NoError(t, err)
	require.Len(t, grants, 2)

	require.NoError(t, env.accessSvc.Revoke(ctx, u.ID(), "cust-1"))

	grants, err = env.accessSvc.Grants(ctx, u.ID())
	require.NoError(t, err)
	require.Len(t, grants, 1)
	assert.Equal(t, "cust-2", grants[0].CustomerID())
}

func TestAccessService_GrantValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u, err := env.accessSvc.CreateUser(ctx, "Alice", "alice@example.com", report.RoleAnalyst)
	require.NoError(t, err)

	_, err = env.accessSvc.Grant(ctx, u.ID(), "cust-1", report.AccessLevel("bogus"), "admin-1")
	require.Error(t, err)

	_, err = env.accessSvc.Grant(ctx, "missing", "cust-1", report.AccessLevelRead, "admin-1")
	require.ErrorIs(t, err, database.ErrNotFound)
}
