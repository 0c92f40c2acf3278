package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfile(t *testing.T) {
	cfg := setupTestDB(t)
	authService := NewAuthService(cfg)
	userService := NewUserService(cfg)
	user := registerTestUser(t, authService)

	updated, fieldErrs, err := userService.UpdateProfile(user.ID, "Fresh@Example.com", "Fresh Name")
	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	assert.Equal(t, "fresh@example.com", updated.Email)
	assert.Equal(t, "Fresh Name", updated.FullName)
}

func TestUpdateProfileKeepingOwnEmail(t *testing.T) {
	cfg := setupTestDB(t)
	authService := NewAuthService(cfg)
	userService := NewUserService(cfg)
	user := registerTestUser(t, authService)

	// Re-submitting your own email is not a uniqueness violation
	_, fieldErrs, err := userService.UpdateProfile(user.ID, user.Email, "Renamed")
	require.NoError(t, err)
	assert.Empty(t, fieldErrs)
}

func TestUpdateProfileRejectsTakenEmail(t *testing.T) {
	cfg := setupTestDB(t)
	authService := NewAuthService(cfg)
	userService := NewUserService(cfg)
	user := registerTestUser(t, authService)

	other := validInput()
	other.Login = "otheruser1"
	other.Phone = "8(912)000-00-00"
	other.Email = "taken@example.com"
	_, fieldErrs, err := authService.Register(other, testMeta())
	require.NoError(t, err)
	require.Empty(t, fieldErrs)

	_, fieldErrs, err = userService.UpdateProfile(user.ID, "taken@example.com", "Name")
	require.NoError(t, err)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "email", fieldErrs[0].Field)
}

func TestUpdateProfileAccumulatesErrors(t *testing.T) {
	cfg := setupTestDB(t)
	authService := NewAuthService(cfg)
	userService := NewUserService(cfg)
	user := registerTestUser(t, authService)

	_, fieldErrs, err := userService.UpdateProfile(user.ID, "bad-email", "")
	require.NoError(t, err)
	assert.Len(t, fieldErrs, 2)
}

func TestGetUser(t *testing.T) {
	cfg := setupTestDB(t)
	authService := NewAuthService(cfg)
	userService := NewUserService(cfg)
	user := registerTestUser(t, authService)

	found, err := userService.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Login, found.Login)

	_, err = userService.GetUser(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfileCountsCharactersNotBytes(t *testing.T) {
	cfg := setupTestDB(t)
	authService := NewAuthService(cfg)
	userService := NewUserService(cfg)
	user := registerTestUser(t, authService)

	name := strings.Repeat("я", 150) // 300 bytes, 150 characters
	updated, fieldErrs, err := userService.UpdateProfile(user.ID, user.Email, name)
	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	assert.Equal(t, name, updated.FullName)
}

func TestUpdateProfileMissingUser(t *testing.T) {
	cfg := setupTestDB(t)
	userService := NewUserService(cfg)

	_, _, err := userService.UpdateProfile(9999, "a@b.cd", "Name")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
