package api

import (
	"errors"
	"time"

	"github.com/diegocrew/kidtracker/internal/models"
	"github.com/diegocrew/kidtracker/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type sessionResponse struct {
	User      userResponse     `json:"user"`
	Profiles  []models.Profile `json:"profiles,omitempty"`
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
}

type userResponse struct {
	ID                 uint   `json:"id"`
	Email              string `json:"email"`
	MustChangePassword bool   `json:"must_change_password"`
}

func newUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:                 user.ID,
		Email:              user.Email,
		MustChangePassword: user.MustChangePassword,
	}
}

// Register creates the account together with its first profile and opens a
// remembered session.
func (handler *Handler) Register(c *fiber.Ctx) error {
	credentials, err := parseCredentials(c)
	if err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, messageInvalidInput)
	}

	user, err := handler.authService.Register(credentials.Email, credentials.Password, credentials.ConfirmPassword)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	profile, err := handler.profileService.EnsureDefaultProfile(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	token, expiresAt, err := handler.setAuthCookie(c, &user, true)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	handler.logger.Info("account registered", zap.Uint("user_id", user.ID))
	return c.Status(fiber.StatusCreated).JSON(sessionResponse{
		User:      newUserResponse(&user),
		Profiles:  []models.Profile{profile},
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	credentials, err := parseCredentials(c)
	if err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, messageInvalidInput)
	}

	limiterKey := loginLimiterKey(c, credentials.Email)
	now := handler.now()
	if handler.loginLimiter.tooManyRecent(limiterKey, now, loginAttemptLimit, loginAttemptWindow) {
		return handler.apiError(c, fiber.StatusTooManyRequests, messageTooManyAttempts)
	}

	user, err := handler.authService.Authenticate(credentials.Email, credentials.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) || errors.Is(err, services.ErrAuthCredentialsInvalid) {
			handler.loginLimiter.addFailure(limiterKey, now, loginAttemptWindow)
			return handler.apiError(c, fiber.StatusUnauthorized, messageInvalidCredentials)
		}
		return handler.respondServiceError(c, err)
	}
	handler.loginLimiter.reset(limiterKey)

	token, expiresAt, err := handler.setAuthCookie(c, &user, credentials.RememberMe)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	return c.JSON(sessionResponse{
		User:      newUserResponse(&user),
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, messageUnauthorized)
	}
	return c.JSON(fiber.Map{"user": newUserResponse(user)})
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, messageUnauthorized)
	}

	input := changePasswordInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, messageInvalidInput)
	}
	if input.ConfirmPassword != "" && input.ConfirmPassword != input.NewPassword {
		return handler.apiError(c, fiber.StatusBadRequest, messagePasswordMismatch)
	}

	if err := handler.authService.ChangePassword(user.ID, input.CurrentPassword, input.NewPassword); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
