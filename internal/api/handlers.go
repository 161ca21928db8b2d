package api

import (
	"errors"
	"time"

	"github.com/diegocrew/kidtracker/internal/db"
	"github.com/diegocrew/kidtracker/internal/i18n"
	"github.com/diegocrew/kidtracker/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultAuthTokenTTL   = 7 * 24 * time.Hour
	rememberAuthTokenTTL  = 30 * 24 * time.Hour
	insightRequestTimeout = 45 * time.Second
)

type HandlerConfig struct {
	SecretKey    string
	Location     *time.Location
	CookieSecure bool
	I18n         *i18n.Manager
	// Generator is left nil when no API key is configured.
	Generator services.InsightGenerator
	Logger    *zap.Logger
}

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	i18n         *i18n.Manager
	logger       *zap.Logger
	loginLimiter *attemptLimiter
	insightLimit *insightLimiter
	now          func() time.Time

	repositories   *db.Repositories
	authService    *services.AuthService
	profileService *services.ProfileService
	dayService     *services.DayService
	statsService   *services.StatsService
	insightService *services.InsightService
	exportService  *services.ExportService
}

func NewHandler(database *gorm.DB, config HandlerConfig) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if len(config.SecretKey) == 0 {
		return nil, errors.New("secret key is required")
	}
	if config.I18n == nil {
		return nil, errors.New("i18n manager is required")
	}
	if config.Location == nil {
		config.Location = time.Local
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	handler := &Handler{
		db:           database,
		secretKey:    []byte(config.SecretKey),
		location:     config.Location,
		cookieSecure: config.CookieSecure,
		i18n:         config.I18n,
		logger:       config.Logger.Named("api"),
		loginLimiter: newAttemptLimiter(),
		insightLimit: newInsightLimiter(insightRequestInterval, insightRequestBurst),
		now:          time.Now,
	}
	return handler.withDependencies(database, config.Generator), nil
}
