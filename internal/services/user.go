package services

import (
	"errors"
	"unicode/utf8"

	"fleetpanel/internal/config"
	"fleetpanel/internal/models"

	"gorm.io/gorm"
)

type UserService struct {
	authService *AuthService
}

func NewUserService(cfg *config.Config) *UserService {
	return &UserService{
		authService: NewAuthService(cfg),
	}
}

// GetUser returns a specific user by ID
func (s *UserService) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := models.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Count returns the number of user accounts
func (s *UserService) Count() (int64, error) {
	var count int64
	err := models.DB.Model(&models.User{}).Count(&count).Error
	return count, err
}

// UpdateProfile changes the email and full name of a user. The email is
// re-validated against the registration rules and checked for uniqueness
// against every other account; violations come back as field errors.
func (s *UserService) UpdateProfile(id uint, email, fullName string) (*models.User, []FieldError, error) {
	var user models.User
	if err := models.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	var errs []FieldError

	normalized := normalizeEmail(email)
	switch {
	case normalized == "":
		errs = append(errs, FieldError{"email", "Email is required"})
	case utf8.RuneCountInString(normalized) > 255 || !emailPattern.MatchString(normalized):
		errs = append(errs, FieldError{"email", "Email address is not valid"})
	case s.authService.emailTaken(normalized, user.ID):
		errs = append(errs, FieldError{"email", "Email is already registered"})
	}

	switch {
	case fullName == "":
		errs = append(errs, FieldError{"full_name", "Full name is required"})
	case utf8.RuneCountInString(fullName) > 200:
		errs = append(errs, FieldError{"full_name", "Full name must be at most 200 characters"})
	}

	if len(errs) > 0 {
		return &user, errs, nil
	}

	user.Email = normalized
	user.FullName = fullName
	if err := models.DB.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &user, []FieldError{{"email", "Email is already registered"}}, nil
		}
		return nil, nil, err
	}

	return &user, nil, nil
}
