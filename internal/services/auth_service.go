package services

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/diegocrew/kidtracker/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAuthCredentialsInvalid = errors.New("auth credentials invalid")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrEmailAlreadyExists     = errors.New("email already exists")
	ErrWeakPassword           = errors.New("weak password")
	ErrPasswordMismatch       = errors.New("password mismatch")
	ErrUserNotFound           = errors.New("user not found")
	ErrCreateUserFailed       = errors.New("create user failed")
	ErrUpdatePasswordFailed   = errors.New("update password failed")
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, bool, error)
	FindByID(userID uint) (models.User, bool, error)
	Create(user *models.User) error
	Save(user *models.User) error
}

type AuthService struct {
	users AuthUserRepository
	now   func() time.Time
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{
		users: users,
		now:   time.Now,
	}
}

func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}

func ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < 8 {
		return ErrWeakPassword
	}

	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}

	if hasUpper && hasLower && hasDigit {
		return nil
	}
	return ErrWeakPassword
}

func (service *AuthService) Register(emailRaw string, password string, confirmPassword string) (models.User, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" || strings.TrimSpace(password) == "" {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	if confirmPassword != "" && confirmPassword != password {
		return models.User{}, ErrPasswordMismatch
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrCreateUserFailed, err)
	}
	if exists {
		return models.User{}, ErrEmailAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrCreateUserFailed, err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
		CreatedAt:    service.now(),
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrCreateUserFailed, err)
	}
	return user, nil
}

func (service *AuthService) Authenticate(emailRaw string, password string) (models.User, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" || password == "" {
		return models.User{}, ErrAuthCredentialsInvalid
	}

	user, found, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	user, found, err := service.users.FindByID(userID)
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

// ChangePassword verifies the current password unless the account is flagged
// for a forced change, then stores the new hash and clears the flag.
func (service *AuthService) ChangePassword(userID uint, currentPassword string, newPassword string) error {
	user, err := service.FindByID(userID)
	if err != nil {
		return err
	}
	if !user.MustChangePassword {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
			return ErrInvalidCredentials
		}
	}
	if err := ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpdatePasswordFailed, err)
	}
	user.PasswordHash = string(passwordHash)
	user.MustChangePassword = false
	if err := service.users.Save(&user); err != nil {
		return fmt.Errorf("%w: %v", ErrUpdatePasswordFailed, err)
	}
	return nil
}

// ResetPassword replaces the password of the account behind email. With
// forceChange the account must pick a new password at its next request.
func (service *AuthService) ResetPassword(emailRaw string, newPassword string, forceChange bool) (models.User, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	if !forceChange {
		if err := ValidatePasswordStrength(newPassword); err != nil {
			return models.User{}, err
		}
	}
	if newPassword == "" {
		return models.User{}, ErrWeakPassword
	}

	user, found, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, ErrUserNotFound
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrUpdatePasswordFailed, err)
	}
	user.PasswordHash = string(passwordHash)
	user.MustChangePassword = forceChange
	if err := service.users.Save(&user); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrUpdatePasswordFailed, err)
	}
	return user, nil
}
