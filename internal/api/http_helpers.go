package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/diegocrew/kidtracker/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	messageInternal               = "error.internal"
	messageInvalidInput           = "error.invalid_input"
	messageUnauthorized           = "error.unauthorized"
	messageInvalidCredentials     = "error.invalid_credentials"
	messageCredentialsRequired    = "error.credentials_required"
	messageTooManyAttempts        = "error.too_many_attempts"
	messagePasswordChangeRequired = "error.password_change_required"
	messageEmailExists            = "error.email_exists"
	messageWeakPassword           = "error.weak_password"
	messagePasswordMismatch       = "error.password_mismatch"
	messageProfileNotFound        = "error.profile_not_found"
	messageProfileLimit           = "error.profile_limit"
	messageLastProfile            = "error.last_profile"
	messageInvalidProfileName     = "error.invalid_profile_name"
	messageInvalidAvatarColor     = "error.invalid_avatar_color"
	messageInvalidDateOfBirth     = "error.invalid_date_of_birth"
	messageInvalidDate            = "error.invalid_date"
	messageInvalidRange           = "error.invalid_range"
	messageInvalidTemperature     = "error.invalid_temperature"
	messageInvalidMedication      = "error.invalid_medication"
	messageNotFound               = "error.not_found"
)

type serviceErrorMapping struct {
	target  error
	status  int
	message string
}

var serviceErrorMappings = []serviceErrorMapping{
	{services.ErrAuthCredentialsInvalid, fiber.StatusBadRequest, messageCredentialsRequired},
	{services.ErrInvalidCredentials, fiber.StatusUnauthorized, messageInvalidCredentials},
	{services.ErrEmailAlreadyExists, fiber.StatusConflict, messageEmailExists},
	{services.ErrWeakPassword, fiber.StatusBadRequest, messageWeakPassword},
	{services.ErrPasswordMismatch, fiber.StatusBadRequest, messagePasswordMismatch},
	{services.ErrUserNotFound, fiber.StatusUnauthorized, messageUnauthorized},
	{services.ErrProfileNotFound, fiber.StatusNotFound, messageProfileNotFound},
	{services.ErrProfileLimitReached, fiber.StatusConflict, messageProfileLimit},
	{services.ErrLastProfileDelete, fiber.StatusConflict, messageLastProfile},
	{services.ErrInvalidProfileName, fiber.StatusBadRequest, messageInvalidProfileName},
	{services.ErrInvalidAvatarColor, fiber.StatusBadRequest, messageInvalidAvatarColor},
	{services.ErrInvalidDateOfBirth, fiber.StatusBadRequest, messageInvalidDateOfBirth},
	{services.ErrInvalidDateKey, fiber.StatusBadRequest, messageInvalidDate},
	{services.ErrInvalidDateRange, fiber.StatusBadRequest, messageInvalidRange},
	{services.ErrInvalidTemperature, fiber.StatusBadRequest, messageInvalidTemperature},
	{services.ErrInvalidMedication, fiber.StatusBadRequest, messageInvalidMedication},
}

// apiError writes {"error": <localized text>, "code": <message key>}.
func (handler *Handler) apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": handler.i18n.Translate(currentLanguage(c), message),
		"code":  message,
	})
}

// respondServiceError maps service sentinels to a status and message. Anything
// unknown is logged and reported as a 500.
func (handler *Handler) respondServiceError(c *fiber.Ctx, err error) error {
	for _, mapping := range serviceErrorMappings {
		if errors.Is(err, mapping.target) {
			return handler.apiError(c, mapping.status, mapping.message)
		}
	}

	handler.logger.Error("request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return handler.apiError(c, fiber.StatusInternalServerError, messageInternal)
}

// optionalRange reads ?from and ?to; blank values mean an open bound.
func optionalRange(c *fiber.Ctx) (*string, *string) {
	return optionalQuery(c, "from"), optionalQuery(c, "to")
}

func optionalQuery(c *fiber.Ctx, name string) *string {
	value := strings.TrimSpace(c.Query(name))
	if value == "" {
		return nil
	}
	return &value
}

func setAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
}
