package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (handler *Handler) ListProfiles(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, messageUnauthorized)
	}

	profiles, err := handler.profileService.ListProfiles(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"profiles": profiles})
}

func (handler *Handler) CreateProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, messageUnauthorized)
	}

	payload := profilePayload{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return handler.apiError(c, fiber.StatusBadRequest, messageInvalidInput)
		}
	}

	profile, err := handler.profileService.CreateProfile(user.ID, payload.toInput())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	profile, ok := currentProfile(c)
	if !ok {
		return handler.apiError(c, fiber.StatusNotFound, messageProfileNotFound)
	}
	return c.JSON(profile)
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	profile, ok := currentProfile(c)
	if !ok {
		return handler.apiError(c, fiber.StatusNotFound, messageProfileNotFound)
	}

	payload := profilePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, messageInvalidInput)
	}

	updated, err := handler.profileService.UpdateProfile(user.ID, profile.ID, payload.toInput())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(updated)
}

func (handler *Handler) DeleteProfile(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	profile, ok := currentProfile(c)
	if !ok {
		return handler.apiError(c, fiber.StatusNotFound, messageProfileNotFound)
	}

	if err := handler.profileService.DeleteProfile(user.ID, profile.ID); err != nil {
		return handler.respondServiceError(c, err)
	}
	handler.logger.Info("profile deleted", zap.Uint("user_id", user.ID), zap.String("profile_id", profile.ID))
	return c.SendStatus(fiber.StatusNoContent)
}
