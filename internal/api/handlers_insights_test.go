package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/diegocrew/kidtracker/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsightWithoutGeneratorAsksForKey(t *testing.T) {
	env := newTestApp(t)
	account := env.register(t, "nokey@example.com")

	response, body := env.request(t, http.MethodPost, "/api/profiles/"+account.profileID+"/insights", nil, account.token)
	require.Equal(t, http.StatusOK, response.StatusCode)

	insight := services.Insight{}
	decodeJSON(t, body, &insight)
	assert.False(t, insight.Generated)
	assert.Equal(t, "Please configure your API Key to get AI insights.", insight.Text)
}

func TestInsightWithoutSickDaysIsLocalized(t *testing.T) {
	generator := &stubGenerator{text: "never used"}
	env := newTestAppWithGenerator(t, generator)
	account := env.register(t, "healthy@example.com")

	response, _ := env.request(t, http.MethodPost, "/api/profiles/"+account.profileID+"/days/2024-03-01", fiber.Map{"notes": "all good"}, account.token)
	require.Equal(t, http.StatusOK, response.StatusCode)

	response, body := env.request(t, http.MethodPost, "/api/profiles/"+account.profileID+"/insights?lang=ru", nil, account.token)
	require.Equal(t, http.StatusOK, response.StatusCode)

	insight := services.Insight{}
	decodeJSON(t, body, &insight)
	assert.Equal(t, "За последнее время заметных записей о болезни нет. Отлично, так держать!", insight.Text)
	assert.Empty(t, generator.prompts)
}

func TestInsightUsesGeneratorAndCaches(t *testing.T) {
	generator := &stubGenerator{text: "* One fever episode in March."}
	env := newTestAppWithGenerator(t, generator)
	account := env.register(t, "insight@example.com")
	seedScenarioLogs(t, env, account)

	path := "/api/profiles/" + account.profileID + "/insights"
	response, body := env.request(t, http.MethodPost, path, nil, account.token)
	require.Equal(t, http.StatusOK, response.StatusCode)

	first := services.Insight{}
	decodeJSON(t, body, &first)
	assert.True(t, first.Generated)
	assert.False(t, first.Cached)
	assert.Equal(t, 4, first.SickDays)
	assert.Equal(t, "* One fever episode in March.", first.Text)
	require.Len(t, generator.prompts, 1)
	assert.Contains(t, generator.prompts[0], "child named Alex")
	assert.NotContains(t, generator.prompts[0], "Vitamin D")

	_, body = env.request(t, http.MethodPost, path, nil, account.token)
	second := services.Insight{}
	decodeJSON(t, body, &second)
	assert.True(t, second.Cached)
	assert.Len(t, generator.prompts, 1)
}

func TestInsightGeneratorFailureFallsBack(t *testing.T) {
	generator := &stubGenerator{err: errors.New("quota exceeded")}
	env := newTestAppWithGenerator(t, generator)
	account := env.register(t, "failure@example.com")
	seedScenarioLogs(t, env, account)

	response, body := env.request(t, http.MethodPost, "/api/profiles/"+account.profileID+"/insights", nil, account.token)
	require.Equal(t, http.StatusOK, response.StatusCode)

	insight := services.Insight{}
	decodeJSON(t, body, &insight)
	assert.False(t, insight.Generated)
	assert.Equal(t, "Unable to generate insights at this time.", insight.Text)
}

func TestInsightRequestsAreThrottledPerAccount(t *testing.T) {
	generator := &stubGenerator{text: "summary"}
	env := newTestAppWithGenerator(t, generator)
	account := env.register(t, "busy@example.com")
	other := env.register(t, "calm@example.com")

	path := "/api/profiles/" + account.profileID + "/insights"
	for attempt := 0; attempt < insightRequestBurst; attempt++ {
		response, _ := env.request(t, http.MethodPost, path, nil, account.token)
		require.Equal(t, http.StatusOK, response.StatusCode, "attempt %d", attempt)
	}

	response, body := env.request(t, http.MethodPost, path, nil, account.token)
	require.Equal(t, http.StatusTooManyRequests, response.StatusCode)
	code, _ := readAPIError(t, body)
	assert.Equal(t, messageTooManyAttempts, code)

	response, _ = env.request(t, http.MethodPost, "/api/profiles/"+other.profileID+"/insights", nil, other.token)
	assert.Equal(t, http.StatusOK, response.StatusCode)
}
