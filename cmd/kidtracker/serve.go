package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/diegocrew/kidtracker/internal/api"
	"github.com/diegocrew/kidtracker/internal/db"
	"github.com/diegocrew/kidtracker/internal/i18n"
	"github.com/diegocrew/kidtracker/internal/insights"
	"github.com/diegocrew/kidtracker/internal/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCommand(envErr error) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default command)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(envErr)
		},
	}
}

func runServe(envErr error) error {
	cfg, err := loadServeConfig()
	if err != nil {
		return err
	}
	if envErr != nil {
		cfg.Warnings = append([]error{envErr}, cfg.Warnings...)
	}
	time.Local = cfg.Location

	log, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat, "kidtracker")
	if err != nil {
		return fmt.Errorf("logger init failed: %w", err)
	}
	defer func() {
		_ = log.Sync()
	}()
	for _, warning := range cfg.Warnings {
		log.Warn("configuration fallback", zap.Error(warning))
	}

	database, err := db.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	i18nManager, err := i18n.NewEmbeddedManager(cfg.DefaultLanguage)
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	handlerConfig := api.HandlerConfig{
		SecretKey:    cfg.SecretKey,
		Location:     cfg.Location,
		CookieSecure: cfg.CookieSecure,
		I18n:         i18nManager,
		Logger:       log,
	}
	if cfg.GeminiAPIKey != "" {
		client, err := insights.NewGeminiClient(cfg.GeminiAPIKey, insights.Options{Model: cfg.GeminiModel, RetryCount: 2}, log)
		if err != nil {
			return fmt.Errorf("insight client init failed: %w", err)
		}
		handlerConfig.Generator = client
		log.Info("insights enabled", zap.String("model", client.Model()))
	} else {
		log.Warn("GEMINI_API_KEY is not set, insights will answer with the configuration hint")
	}

	handler, err := api.NewHandler(database, handlerConfig)
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := newApp(handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("server shutdown failed", zap.Error(err))
		}
	}()

	log.Info("kidtracker listening",
		zap.String("addr", "0.0.0.0:"+cfg.Port),
		zap.String("db", cfg.DBPath),
		zap.String("tz", cfg.Location.String()),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func newApp(handler *api.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "KidTracker " + Version,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())

	metrics := fiberprometheus.New("kidtracker")
	metrics.RegisterAt(app, "/metrics")
	app.Use(metrics.Middleware)

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}
