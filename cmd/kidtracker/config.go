package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	insecureSecretPlaceholder = "change_me_in_production"
	minSecretKeyLength        = 32
)

type config struct {
	Port            string
	DBPath          string
	SecretKey       string
	Location        *time.Location
	LogLevel        string
	LogFormat       string
	DefaultLanguage string
	CookieSecure    bool
	GeminiAPIKey    string
	GeminiModel     string
	// Warnings hold recoverable configuration problems, logged once the
	// logger exists.
	Warnings []error
}

// loadDotEnv reads .env when present. Variables already set in the process
// environment win. A missing file is not an error.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("ignoring .env: %w", err)
	}
	return nil
}

func loadServeConfig() (config, error) {
	secretKey, err := resolveSecretKey()
	if err != nil {
		return config{}, err
	}
	port, err := resolvePort()
	if err != nil {
		return config{}, err
	}
	cookieSecure, err := resolveBool("COOKIE_SECURE", false)
	if err != nil {
		return config{}, err
	}

	location, locationErr := loadLocation(getEnv("TZ", "UTC"))

	cfg := config{
		Port:            port,
		DBPath:          resolveDBPath(),
		SecretKey:       secretKey,
		Location:        location,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en"),
		CookieSecure:    cookieSecure,
		GeminiAPIKey:    strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:     strings.TrimSpace(os.Getenv("GEMINI_MODEL")),
	}
	if locationErr != nil {
		cfg.Warnings = append(cfg.Warnings, locationErr)
	}
	return cfg, nil
}

func resolveDBPath() string {
	return getEnv("DB_PATH", filepath.Join("data", "kidtracker.db"))
}

func resolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if secret == insecureSecretPlaceholder {
		return "", errors.New("SECRET_KEY uses the insecure placeholder value")
	}
	if len(secret) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}

func resolvePort() (string, error) {
	raw := strings.TrimSpace(os.Getenv("PORT"))
	if raw == "" {
		return "8080", nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid PORT %q", raw)
	}
	return strconv.Itoa(port), nil
}

func resolveBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q", key, raw)
	}
	return value, nil
}

// loadLocation falls back to UTC and reports why when name is unknown.
func loadLocation(name string) (*time.Location, error) {
	location, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC, fmt.Errorf("invalid TZ %q, falling back to UTC: %w", name, err)
	}
	return location, nil
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
