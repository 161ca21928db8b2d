package api

import (
	"github.com/gofiber/fiber/v2"
)

// ProfileAccess resolves :id to a profile owned by the current user. Foreign
// and unknown profiles both answer 404.
func (handler *Handler) ProfileAccess(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, messageUnauthorized)
	}

	profile, err := handler.profileService.FindProfileForUser(user.ID, c.Params("id"))
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	c.Locals(contextProfileKey, &profile)
	return c.Next()
}
