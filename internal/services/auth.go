package services

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"time"

	"fleetpanel/internal/config"
	"fleetpanel/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive")
	ErrUserNotFound       = errors.New("user not found")
)

// Audit reasons written to the auth log.
const (
	ReasonLogin              = "login"
	ReasonLogout             = "logout"
	ReasonRegistration       = "registration"
	ReasonInvalidCredentials = "invalid_credentials"
	ReasonUserInactive       = "user_inactive"
)

// RequestMeta carries the client details every auth-log row records.
type RequestMeta struct {
	IP        string
	UserAgent string
}

type AuthService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// HashPassword hashes a password using bcrypt. The password is pre-hashed
// first: bcrypt only reads 72 bytes, and accepted passwords may run to 128
// characters.
func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword(prehash(password), s.cfg.Security.BcryptCost)
	return string(bytes), err
}

// VerifyPassword verifies a password against a hash
func (s *AuthService) VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), prehash(password))
	return err == nil
}

// prehash folds a password of any length into bcrypt's 72-byte input limit.
// The digest is base64-encoded so the bcrypt input never contains NUL bytes.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// Authenticate verifies credentials and returns the user. The caller must show
// the same failure message for every returned error so a response never reveals
// whether the login exists; the auth log keeps the distinguishing reason.
func (s *AuthService) Authenticate(login, password string, meta RequestMeta) (*models.User, error) {
	var user models.User
	if err := models.DB.Where("login = ?", login).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logAuth(nil, login, meta, false, ReasonInvalidCredentials)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.VerifyPassword(user.PasswordHash, password) {
		s.logAuth(&user.ID, login, meta, false, ReasonInvalidCredentials)
		return nil, ErrInvalidCredentials
	}

	if !user.Active {
		s.logAuth(&user.ID, login, meta, false, ReasonUserInactive)
		return nil, ErrUserInactive
	}

	s.logAuth(&user.ID, login, meta, true, ReasonLogin)
	return &user, nil
}

// CreateSession mints a signed token for the user and stores the session row.
func (s *AuthService) CreateSession(user *models.User) (string, error) {
	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		return "", err
	}

	session := &models.Session{
		UserID:    user.ID,
		Token:     token,
		Role:      user.Role(),
		ExpiresAt: expiresAt,
	}
	if err := models.DB.Create(session).Error; err != nil {
		return "", err
	}
	return token, nil
}

// GetSession retrieves an unexpired session by token
func (s *AuthService) GetSession(token string) (*models.Session, error) {
	var session models.Session
	if err := models.DB.Where("token = ? AND expires_at > ?", token, time.Now()).Preload("User").First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// Logout records the audit entry and removes the session row.
func (s *AuthService) Logout(session *models.Session, meta RequestMeta) error {
	s.logAuth(&session.UserID, session.User.Login, meta, true, ReasonLogout)
	return models.DB.Where("token = ?", session.Token).Delete(&models.Session{}).Error
}

// DeleteExpiredSessions removes expired sessions
func (s *AuthService) DeleteExpiredSessions() error {
	return models.DB.Where("expires_at < ?", time.Now()).Delete(&models.Session{}).Error
}

// CreateDefaultAdmin creates the configured admin account when the users table
// is empty so a fresh install has a way in.
func (s *AuthService) CreateDefaultAdmin() error {
	var count int64
	models.DB.Model(&models.User{}).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := s.HashPassword(s.cfg.DefaultAdmin.Password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Login:        s.cfg.DefaultAdmin.Login,
		PasswordHash: hash,
		FullName:     s.cfg.DefaultAdmin.FullName,
		Phone:        s.cfg.DefaultAdmin.Phone,
		Email:        normalizeEmail(s.cfg.DefaultAdmin.Email),
		RoleID:       models.AdminRoleID,
		Active:       true,
	}
	return models.DB.Create(admin).Error
}

// generateToken mints a signed JWT used as the session token
func (s *AuthService) generateToken(user *models.User) (string, time.Time, error) {
	expiresIn, err := time.ParseDuration(s.cfg.JWT.ExpiresIn)
	if err != nil {
		expiresIn = 24 * time.Hour
	}
	expiresAt := time.Now().Add(expiresIn)

	secret := s.cfg.JWT.Secret
	if secret == "" {
		secret = "fleetpanel-default-secret-change-in-production"
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"login":   user.Login,
		"role":    string(user.Role()),
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
		"iss":     s.cfg.JWT.Issuer,
		"jti":     uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

func (s *AuthService) logAuth(userID *uint, login string, meta RequestMeta, success bool, reason string) {
	entry := &models.AuthLog{
		UserID:    userID,
		Login:     login,
		IPAddress: meta.IP,
		UserAgent: meta.UserAgent,
		Success:   success,
		Reason:    reason,
	}
	models.DB.Create(entry)
}
