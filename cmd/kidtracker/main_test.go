package main

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/diegocrew/kidtracker/internal/api"
	"github.com/diegocrew/kidtracker/internal/db"
	"github.com/diegocrew/kidtracker/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSecretKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	_, err := resolveSecretKey()
	assert.Error(t, err)

	t.Setenv("SECRET_KEY", insecureSecretPlaceholder)
	_, err = resolveSecretKey()
	assert.Error(t, err)

	t.Setenv("SECRET_KEY", "too-short-secret")
	_, err = resolveSecretKey()
	assert.Error(t, err)

	valid := "0123456789abcdef0123456789abcdef"
	t.Setenv("SECRET_KEY", valid)
	secret, err := resolveSecretKey()
	require.NoError(t, err)
	assert.Equal(t, valid, secret)
}

func TestResolvePort(t *testing.T) {
	t.Setenv("PORT", "")
	port, err := resolvePort()
	require.NoError(t, err)
	assert.Equal(t, "8080", port)

	t.Setenv("PORT", "9090")
	port, err = resolvePort()
	require.NoError(t, err)
	assert.Equal(t, "9090", port)

	for _, invalid := range []string{"0", "70000", "not-a-number"} {
		t.Setenv("PORT", invalid)
		_, err := resolvePort()
		assert.Error(t, err, invalid)
	}
}

func TestResolveBool(t *testing.T) {
	t.Setenv("COOKIE_SECURE", "")
	value, err := resolveBool("COOKIE_SECURE", true)
	require.NoError(t, err)
	assert.True(t, value)

	t.Setenv("COOKIE_SECURE", "false")
	value, err = resolveBool("COOKIE_SECURE", true)
	require.NoError(t, err)
	assert.False(t, value)

	t.Setenv("COOKIE_SECURE", "maybe")
	_, err = resolveBool("COOKIE_SECURE", true)
	assert.Error(t, err)
}

func TestLoadLocationFallsBackToUTC(t *testing.T) {
	location, err := loadLocation("Not/AZone")
	assert.Equal(t, time.UTC, location)
	assert.Error(t, err)

	location, err = loadLocation("UTC")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, location)
}

func TestLoadServeConfigCollectsLocationWarning(t *testing.T) {
	t.Setenv("SECRET_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("PORT", "")
	t.Setenv("COOKIE_SECURE", "")
	t.Setenv("TZ", "Not/AZone")

	cfg, err := loadServeConfig()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, cfg.Location)
	require.Len(t, cfg.Warnings, 1)
	assert.Contains(t, cfg.Warnings[0].Error(), "Not/AZone")
}

func TestLoadDotEnvReturnsErrors(t *testing.T) {
	t.Chdir(t.TempDir())
	assert.NoError(t, loadDotEnv(), "a missing .env is fine")

	require.NoError(t, os.Mkdir(".env", 0o755))
	err := loadDotEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".env")
}

func TestOneShotCommandsReportEnvErrorOnStderr(t *testing.T) {
	root := newRootCommand(errors.New("ignoring .env: broken"))
	var stderr bytes.Buffer
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&stderr)
	root.SetArgs([]string{"seed-demo", "parent@example.com", "--today", "not-a-date"})

	assert.Error(t, root.Execute())
	assert.Contains(t, stderr.String(), "Warning: ignoring .env: broken")
}

func TestAppServesHealthAndMetrics(t *testing.T) {
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "app.db"), nil)
	require.NoError(t, err)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewEmbeddedManager("en")
	require.NoError(t, err)
	handler, err := api.NewHandler(database, api.HandlerConfig{
		SecretKey: "0123456789abcdef0123456789abcdef",
		Location:  time.UTC,
		I18n:      i18nManager,
	})
	require.NoError(t, err)

	app := newApp(handler)

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode)

	response, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode)

	response, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, response.StatusCode)
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCommand(nil)
	names := make([]string, 0)
	for _, command := range root.Commands() {
		names = append(names, command.Name())
	}
	assert.Subset(t, names, []string{"serve", "reset-password", "seed-demo"})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"seed-demo"})
	assert.Error(t, root.Execute(), "seed-demo needs an email argument")
}
