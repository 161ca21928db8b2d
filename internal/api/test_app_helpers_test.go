package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/diegocrew/kidtracker/internal/db"
	"github.com/diegocrew/kidtracker/internal/i18n"
	"github.com/diegocrew/kidtracker/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testSecretKey = "test-secret-key-with-at-least-32-characters"
	testPassword  = "StrongPass1"
)

type stubGenerator struct {
	text    string
	err     error
	prompts []string
}

func (generator *stubGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	generator.prompts = append(generator.prompts, prompt)
	return generator.text, generator.err
}

type testApp struct {
	app      *fiber.App
	database *gorm.DB
	handler  *Handler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithGenerator(t, nil)
}

func newTestAppWithGenerator(t *testing.T, generator services.InsightGenerator) *testApp {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "api-test.db"), nil)
	require.NoError(t, err)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewEmbeddedManager("en")
	require.NoError(t, err)

	handler, err := NewHandler(database, HandlerConfig{
		SecretKey: testSecretKey,
		Location:  time.UTC,
		I18n:      i18nManager,
		Generator: generator,
	})
	require.NoError(t, err)

	app := fiber.New()
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return &testApp{app: app, database: database, handler: handler}
}

func (env *testApp) request(t *testing.T, method string, path string, body any, token string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("Accept", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := env.app.Test(request, -1)
	require.NoError(t, err)
	defer response.Body.Close()

	content, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	return response, content
}

type registeredAccount struct {
	token     string
	profileID string
	userID    uint
}

func (env *testApp) register(t *testing.T, email string) registeredAccount {
	t.Helper()

	response, body := env.request(t, http.MethodPost, "/api/auth/register", fiber.Map{
		"email":    email,
		"password": testPassword,
	}, "")
	require.Equal(t, http.StatusCreated, response.StatusCode, string(body))

	session := sessionResponse{}
	require.NoError(t, json.Unmarshal(body, &session))
	require.NotEmpty(t, session.Token)
	require.Len(t, session.Profiles, 1)

	return registeredAccount{token: session.Token, profileID: session.Profiles[0].ID, userID: session.User.ID}
}

func decodeJSON(t *testing.T, body []byte, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(body, target), string(body))
}

func readAPIError(t *testing.T, body []byte) (string, string) {
	t.Helper()

	payload := map[string]string{}
	decodeJSON(t, body, &payload)
	return payload["code"], payload["error"]
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
