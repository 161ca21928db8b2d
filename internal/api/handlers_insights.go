package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// GenerateInsight answers 200 unless the account is throttled; generator
// failures surface as a localized fallback text with generated=false.
func (handler *Handler) GenerateInsight(c *fiber.Ctx) error {
	profile, ok := currentProfile(c)
	if !ok {
		return handler.apiError(c, fiber.StatusNotFound, messageProfileNotFound)
	}
	if user, ok := currentUser(c); ok && !handler.insightLimit.allow(user.ID, handler.now()) {
		return handler.apiError(c, fiber.StatusTooManyRequests, messageTooManyAttempts)
	}

	logs, err := handler.dayService.FetchLogsForProfile(profile.ID, nil, nil)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), insightRequestTimeout)
	defer cancel()

	insight := handler.insightService.GenerateInsight(ctx, *profile, logs, currentLanguage(c))
	return c.JSON(insight)
}
