package services

import (
	"testing"

	"fleetpanel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerTestUser(t *testing.T, authService *AuthService) *models.User {
	t.Helper()
	user, fieldErrs, err := authService.Register(validInput(), testMeta())
	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	return user
}

func TestAuthenticateSuccess(t *testing.T) {
	cfg := setupTestDB(t)
	authService := NewAuthService(cfg)
	registerTestUser(t, authService)

	user, err := authService.Authenticate("newuser1", "secret-password", testMeta())
	require.NoError(t, err)
	assert.Equal(t, "newuser1", user.Login)

	var log models.AuthLog
	require.NoError(t, models.DB.Where("reason = ?", ReasonLogin).First(&log).Error)
	assert.True(t, log.Success)
}

func TestAuthenticateFailureDoesNotRevealWhichFieldWasWrong(t *testing.T) {
	cfg := setupTestDB(t)
	authService := NewAuthService(cfg)
	registerTestUser(t, authService)

	_, unknownErr := authService.Authenticate("nosuchuser", "secret-password", testMeta())
	_, wrongPassErr := authService.Authenticate("newuser1", "wrong-password", testMeta())

	// Same error either way: the caller cannot tell whether the login exists
	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPassErr, ErrInvalidCredentials)

	var count int64
	models.DB.Model(&models.AuthLog{}).Where("reason = ? AND success = ?", ReasonInvalidCredentials, false).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestAuthenticateInactiveUser(t *testing.T) {
	cfg := setupTestDB(t)
	authService := NewAuthService(cfg)
	user := registerTestUser(t, authService)

	require.NoError(t, models.DB.Model(user).Update("active", false).Error)

	_, err := authService.Authenticate("newuser1", "secret-password", testMeta())
	assert.ErrorIs(t, err, ErrUserInactive)

	var log models.AuthLog
	require.NoError(t, models.DB.Where("reason = ?", ReasonUserInactive).First(&log).Error)
	assert.False(t, log.Success)
}

func TestSessionLifecycle(t *testing.T) {
	cfg := setupTestDB(t)
	authService := NewAuthService(cfg)
	user := registerTestUser(t, authService)

	token, err := authService.CreateSession(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	session, err := authService.GetSession(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.UserID)
	assert.Equal(t, models.RoleUser, session.Role)
	assert.Equal(t, user.Login, session.User.Login)

	require.NoError(t, authService.Logout(session, testMeta()))

	_, err = authService.GetSession(token)
	assert.Error(t, err)

	var log models.AuthLog
	require.NoError(t, models.DB.Where("reason = ?", ReasonLogout).First(&log).Error)
	assert.True(t, log.Success)
}

func TestCreateDefaultAdmin(t *testing.T) {
	cfg := setupTestDB(t)
	cfg.DefaultAdmin.Login = "admin1"
	cfg.DefaultAdmin.Password = "admin-password"
	cfg.DefaultAdmin.FullName = "Admin"
	cfg.DefaultAdmin.Phone = "8(900)000-00-00"
	cfg.DefaultAdmin.Email = "Admin@Example.com"

	authService := NewAuthService(cfg)
	require.NoError(t, authService.CreateDefaultAdmin())

	var admin models.User
	require.NoError(t, models.DB.Where("login = ?", "admin1").First(&admin).Error)
	assert.True(t, admin.IsAdmin())
	assert.Equal(t, "admin@example.com", admin.Email)

	// Second boot is a no-op
	require.NoError(t, authService.CreateDefaultAdmin())
	var count int64
	models.DB.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
