package api

import (
	"github.com/diegocrew/kidtracker/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) GetStats(c *fiber.Ctx) error {
	profile, ok := currentProfile(c)
	if !ok {
		return handler.apiError(c, fiber.StatusNotFound, messageProfileNotFound)
	}

	from, to := optionalRange(c)
	stats, err := handler.statsService.BuildStatsForProfile(profile.ID, from, to)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(stats)
}

// GetEpisodes lists the episodes oldest first. ?limit keeps the most recent
// ones only.
func (handler *Handler) GetEpisodes(c *fiber.Ctx) error {
	profile, ok := currentProfile(c)
	if !ok {
		return handler.apiError(c, fiber.StatusNotFound, messageProfileNotFound)
	}

	limit := c.QueryInt("limit", 0)
	if limit < 0 {
		return handler.apiError(c, fiber.StatusBadRequest, messageInvalidInput)
	}

	from, to := optionalRange(c)
	episodes, err := handler.statsService.BuildEpisodesForProfile(profile.ID, from, to)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"episodes": services.TrimTrailingEpisodes(episodes, limit)})
}
