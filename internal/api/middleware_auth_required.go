package api

import (
	"github.com/gofiber/fiber/v2"
)

// AuthRequired accepts the session cookie or an Authorization: Bearer token.
// Accounts flagged for a forced password change may only reach the account
// endpoints until they pick a new password.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return handler.apiError(c, fiber.StatusUnauthorized, messageUnauthorized)
	}

	c.Locals(contextUserKey, user)
	if user.MustChangePassword && !isPasswordChangeExempt(c.Path()) {
		return handler.apiError(c, fiber.StatusForbidden, messagePasswordChangeRequired)
	}
	return c.Next()
}

func isPasswordChangeExempt(path string) bool {
	switch path {
	case "/api/auth/me", "/api/auth/change-password", "/api/auth/logout":
		return true
	default:
		return false
	}
}
