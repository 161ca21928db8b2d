package api

import (
	"github.com/diegocrew/kidtracker/internal/db"
	"github.com/diegocrew/kidtracker/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB, generator services.InsightGenerator) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.authService = services.NewAuthService(handler.repositories.Users)
	handler.profileService = services.NewProfileService(handler.repositories.Profiles)
	handler.dayService = services.NewDayService(handler.repositories.DailyLogs)
	handler.statsService = services.NewStatsService(handler.dayService)
	handler.exportService = services.NewExportService(handler.dayService)
	handler.insightService = services.NewInsightService(generator, handler.i18n, handler.logger)
	return handler
}
