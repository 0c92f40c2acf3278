package services

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"fleetpanel/internal/models"

	"gorm.io/gorm"
)

// FieldError scopes a validation message to the form field that caused it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RegistrationInput is the raw form input for a registration attempt.
type RegistrationInput struct {
	Login    string
	Password string
	FullName string
	Phone    string
	Email    string
}

var (
	loginPattern = regexp.MustCompile(`^[A-Za-z0-9]{6,}$`)
	phonePattern = regexp.MustCompile(`^8\(\d{3}\)\d{3}-\d{2}-\d{2}$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateRegistration checks every rule and accumulates all violations so the
// form can report them at once. Uniqueness is checked against active rows here
// and backed by unique indexes for the concurrent case.
func (s *AuthService) ValidateRegistration(in *RegistrationInput) []FieldError {
	var errs []FieldError

	switch {
	case in.Login == "":
		errs = append(errs, FieldError{"login", "Login is required"})
	case len(in.Login) < 6 || len(in.Login) > 64 || !loginPattern.MatchString(in.Login):
		errs = append(errs, FieldError{"login", "Login must be 6-64 letters or digits"})
	case s.loginTaken(in.Login, 0):
		errs = append(errs, FieldError{"login", "Login is already registered"})
	}

	// Length limits count characters, not bytes: names and passwords are
	// frequently Cyrillic.
	switch pwLen := utf8.RuneCountInString(in.Password); {
	case in.Password == "":
		errs = append(errs, FieldError{"password", "Password is required"})
	case pwLen < 8 || pwLen > 128:
		errs = append(errs, FieldError{"password", "Password must be 8-128 characters"})
	}

	switch {
	case in.FullName == "":
		errs = append(errs, FieldError{"full_name", "Full name is required"})
	case utf8.RuneCountInString(in.FullName) > 200:
		errs = append(errs, FieldError{"full_name", "Full name must be at most 200 characters"})
	}

	switch {
	case in.Phone == "":
		errs = append(errs, FieldError{"phone", "Phone is required"})
	case !phonePattern.MatchString(in.Phone):
		errs = append(errs, FieldError{"phone", "Phone must match 8(XXX)XXX-XX-XX"})
	case s.phoneTaken(in.Phone, 0):
		errs = append(errs, FieldError{"phone", "Phone is already registered"})
	}

	email := normalizeEmail(in.Email)
	switch {
	case email == "":
		errs = append(errs, FieldError{"email", "Email is required"})
	case utf8.RuneCountInString(email) > 255 || !emailPattern.MatchString(email):
		errs = append(errs, FieldError{"email", "Email address is not valid"})
	case s.emailTaken(email, 0):
		errs = append(errs, FieldError{"email", "Email is already registered"})
	}

	return errs
}

// Register validates the input and, when clean, creates the user together with
// the registration audit row and the queued welcome mail in one transaction.
// A duplicate-key failure from a concurrent registration is mapped back to the
// offending field instead of surfacing the raw constraint error.
func (s *AuthService) Register(in *RegistrationInput, meta RequestMeta) (*models.User, []FieldError, error) {
	if errs := s.ValidateRegistration(in); len(errs) > 0 {
		s.logAuth(nil, in.Login, meta, false, ReasonRegistration)
		return nil, errs, nil
	}

	hash, err := s.HashPassword(in.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Login:        in.Login,
		PasswordHash: hash,
		FullName:     in.FullName,
		Phone:        in.Phone,
		Email:        normalizeEmail(in.Email),
		RoleID:       models.RoleUser.ID(),
		Active:       true,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		log := &models.AuthLog{
			UserID:    &user.ID,
			Login:     user.Login,
			IPAddress: meta.IP,
			UserAgent: meta.UserAgent,
			Success:   true,
			Reason:    ReasonRegistration,
		}
		if err := tx.Create(log).Error; err != nil {
			return err
		}

		mail := &models.EmailQueue{
			Recipient: user.Email,
			Subject:   "Welcome to the fleet dashboard",
			Body:      "Hello " + user.FullName + ", your account " + user.Login + " was created on " + time.Now().Format("2006-01-02") + ".",
		}
		return tx.Create(mail).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.logAuth(nil, in.Login, meta, false, ReasonRegistration)
			return nil, []FieldError{s.duplicateField(in)}, nil
		}
		return nil, nil, err
	}

	return user, nil, nil
}

// duplicateField re-checks which unique column the lost race was on. The
// duplicate-key error itself names the index, but the name differs per driver,
// so asking the store again is the portable way to scope the message.
func (s *AuthService) duplicateField(in *RegistrationInput) FieldError {
	if s.loginTaken(in.Login, 0) {
		return FieldError{"login", "Login is already registered"}
	}
	if s.phoneTaken(in.Phone, 0) {
		return FieldError{"phone", "Phone is already registered"}
	}
	return FieldError{"email", "Email is already registered"}
}

func (s *AuthService) loginTaken(login string, excludeID uint) bool {
	var count int64
	models.DB.Model(&models.User{}).Where("login = ? AND id != ?", login, excludeID).Count(&count)
	return count > 0
}

func (s *AuthService) phoneTaken(phone string, excludeID uint) bool {
	var count int64
	models.DB.Model(&models.User{}).Where("phone = ? AND id != ?", phone, excludeID).Count(&count)
	return count > 0
}

func (s *AuthService) emailTaken(email string, excludeID uint) bool {
	var count int64
	models.DB.Model(&models.User{}).Where("email = ? AND id != ?", email, excludeID).Count(&count)
	return count > 0
}
