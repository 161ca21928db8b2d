package api

import (
	"strings"

	"github.com/diegocrew/kidtracker/internal/models"
	"github.com/diegocrew/kidtracker/internal/services"
	"github.com/gofiber/fiber/v2"
)

type credentialsInput struct {
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
	RememberMe      bool   `json:"remember_me" form:"remember_me"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

type profilePayload struct {
	Name        *string `json:"name"`
	AvatarColor *string `json:"avatar_color"`
	DateOfBirth *string `json:"date_of_birth"`
}

type dayPayload struct {
	Symptoms     []string                    `json:"symptoms"`
	Temperatures []models.TemperatureReading `json:"temperatures"`
	Medications  []models.Medication         `json:"medications"`
	Notes        string                      `json:"notes"`
}

func parseCredentials(c *fiber.Ctx) (credentialsInput, error) {
	credentials := credentialsInput{}
	if err := c.BodyParser(&credentials); err != nil {
		return credentialsInput{}, err
	}
	credentials.Email = strings.TrimSpace(credentials.Email)
	return credentials, nil
}

func (payload profilePayload) toInput() services.ProfileInput {
	return services.ProfileInput{
		Name:        payload.Name,
		AvatarColor: payload.AvatarColor,
		DateOfBirth: payload.DateOfBirth,
	}
}

func (payload dayPayload) toInput() services.DayLogInput {
	return services.DayLogInput{
		Symptoms:     payload.Symptoms,
		Temperatures: payload.Temperatures,
		Medications:  payload.Medications,
		Notes:        payload.Notes,
	}
}
