package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return handler.apiError(c, fiber.StatusNotFound, messageNotFound)
}
