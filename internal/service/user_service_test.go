package service

import (
	"testing"

	"casetrack/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	f := newFixture(t)

	resp, err := f.users.Create(CreateUserInput{
		Username: "clerk", Password: "supersecret",
	}, "admin-id", "owner")
	require.NoError(t, err)
	assert.Equal(t, model.RoleStaff, resp.Role, "role defaults to staff")
	assert.True(t, resp.IsActive)
	assert.EqualValues(t, 1, f.historyCount(t, model.ActionUserCreate))

	_, err = f.users.Create(CreateUserInput{
		Username: "clerk", Password: "supersecret",
	}, "admin-id", "owner")
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.users.Create(CreateUserInput{
		Username: "x", Password: "short",
	}, "admin-id", "owner")
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.users.Create(CreateUserInput{
		Username: "y", Password: "supersecret", Role: "manager",
	}, "admin-id", "owner")
	require.ErrorIs(t, err, ErrValidation)
}

func TestDisableUser(t *testing.T) {
	f := newFixture(t)

	resp, err := f.users.Create(CreateUserInput{
		Username: "clerk", Password: "supersecret",
	}, "admin-id", "owner")
	require.NoError(t, err)

	require.NoError(t, f.users.Disable(resp.ID, "admin-id", "owner"))
	assert.EqualValues(t, 1, f.historyCount(t, model.ActionUserDisable))

	users, err := f.users.List()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.False(t, users[0].IsActive)

	err = f.users.Disable(uuid.New(), "admin-id", "owner")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDisableSelfRejected(t *testing.T) {
	f := newFixture(t)

	resp, err := f.users.Create(CreateUserInput{
		Username: "owner", Password: "supersecret", Role: model.RoleAdmin,
	}, "setup", "setup")
	require.NoError(t, err)

	err = f.users.Disable(resp.ID, resp.ID.String(), "owner")
	require.ErrorIs(t, err, ErrValidation)
}
