package api

import (
	"github.com/diegocrew/kidtracker/internal/models"
	"github.com/gofiber/fiber/v2"
)

const (
	authCookieName     = "kidtracker_auth"
	languageCookieName = "kidtracker_lang"
	contextUserKey     = "current_user"
	contextProfileKey  = "current_profile"
	contextLanguageKey = "current_language"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok && user != nil
}

func currentProfile(c *fiber.Ctx) (*models.Profile, bool) {
	profile, ok := c.Locals(contextProfileKey).(*models.Profile)
	return profile, ok && profile != nil
}

func currentLanguage(c *fiber.Ctx) string {
	language, _ := c.Locals(contextLanguageKey).(string)
	return language
}
