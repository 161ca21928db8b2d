package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api", handler.LanguageMiddleware)

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)
	auth.Post("/change-password", handler.AuthRequired, handler.ChangePassword)

	profiles := api.Group("/profiles", handler.AuthRequired)
	profiles.Get("", handler.ListProfiles)
	profiles.Post("", handler.CreateProfile)

	profile := profiles.Group("/:id", handler.ProfileAccess)
	profile.Get("", handler.GetProfile)
	profile.Patch("", handler.UpdateProfile)
	profile.Delete("", handler.DeleteProfile)

	profile.Get("/days", handler.GetDays)
	profile.Get("/days/:date", handler.GetDay)
	profile.Post("/days/:date", handler.UpsertDay)
	profile.Put("/days/:date", handler.UpsertDay)
	profile.Delete("/days/:date", handler.DeleteDay)

	profile.Get("/stats", handler.GetStats)
	profile.Get("/episodes", handler.GetEpisodes)
	profile.Post("/insights", handler.GenerateInsight)
	profile.Post("/demo", handler.LoadDemoData)

	export := profile.Group("/export")
	export.Get("/csv", handler.ExportCSV)
	export.Get("/json", handler.ExportJSON)
	export.Get("/xlsx", handler.ExportXLSX)
}
