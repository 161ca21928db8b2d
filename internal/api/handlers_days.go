package api

import (
	"github.com/gofiber/fiber/v2"
)

// GetDays returns the stored logs keyed by day, optionally limited to a
// from/to window.
func (handler *Handler) GetDays(c *fiber.Ctx) error {
	profile, ok := currentProfile(c)
	if !ok {
		return handler.apiError(c, fiber.StatusNotFound, messageProfileNotFound)
	}

	from, to := optionalRange(c)
	logs, err := handler.dayService.FetchLogMap(profile.ID, from, to)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"logs": logs})
}

func (handler *Handler) GetDay(c *fiber.Ctx) error {
	profile, ok := currentProfile(c)
	if !ok {
		return handler.apiError(c, fiber.StatusNotFound, messageProfileNotFound)
	}

	entry, err := handler.dayService.FetchDayLog(profile.ID, c.Params("date"))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(entry)
}

// UpsertDay replaces the whole log of a day. A payload without any content
// removes the stored log and answers with deleted=true.
func (handler *Handler) UpsertDay(c *fiber.Ctx) error {
	profile, ok := currentProfile(c)
	if !ok {
		return handler.apiError(c, fiber.StatusNotFound, messageProfileNotFound)
	}

	payload := dayPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, messageInvalidInput)
	}

	entry, deleted, err := handler.dayService.UpsertDayLog(profile.ID, c.Params("date"), payload.toInput())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"log": entry, "deleted": deleted})
}

func (handler *Handler) DeleteDay(c *fiber.Ctx) error {
	profile, ok := currentProfile(c)
	if !ok {
		return handler.apiError(c, fiber.StatusNotFound, messageProfileNotFound)
	}

	if err := handler.dayService.DeleteDayLog(profile.ID, c.Params("date")); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
