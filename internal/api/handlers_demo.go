package api

import (
	"github.com/diegocrew/kidtracker/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LoadDemoData writes the sample illness history into the profile,
// overwriting logs stored for the same days.
func (handler *Handler) LoadDemoData(c *fiber.Ctx) error {
	profile, ok := currentProfile(c)
	if !ok {
		return handler.apiError(c, fiber.StatusNotFound, messageProfileNotFound)
	}

	logs := services.GenerateDemoLogs(handler.now().In(handler.location))
	imported, err := handler.dayService.ImportDayLogs(profile.ID, logs)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	handler.logger.Info("demo data loaded", zap.String("profile_id", profile.ID), zap.Int("days", imported))
	return c.JSON(fiber.Map{"imported": imported})
}
