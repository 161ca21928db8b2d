package i18n

import (
	"encoding/json"
	"sort"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocaleKeysParity(t *testing.T) {
	en := mustLoadLocaleMessages(t, "en")
	ru := mustLoadLocaleMessages(t, "ru")

	assert.Empty(t, missingKeys(en, ru), "keys missing in ru locale")
	assert.Empty(t, missingKeys(ru, en), "keys missing in en locale")
}

func TestTranslateFallsBackToDefaultLanguageAndKey(t *testing.T) {
	manager, err := NewEmbeddedManager("en")
	require.NoError(t, err)

	assert.Equal(t, "Unable to generate insights at this time.", manager.Translate("en", "insight.unavailable"))
	assert.Equal(t, "Сейчас не удалось подготовить рекомендации.", manager.Translate("ru-RU", "insight.unavailable"))
	assert.Equal(t, "Unable to generate insights at this time.", manager.Translate("de", "insight.unavailable"))
	assert.Equal(t, "unknown.key", manager.Translate("en", "unknown.key"))
}

func TestNewManagerDefaultsUnsupportedLanguageToEnglish(t *testing.T) {
	manager, err := NewEmbeddedManager("fr")
	require.NoError(t, err)
	assert.Equal(t, LangEN, manager.DefaultLanguage())

	manager, err = NewEmbeddedManager("RU")
	require.NoError(t, err)
	assert.Equal(t, LangRU, manager.DefaultLanguage())
}

func TestDetectFromAcceptLanguage(t *testing.T) {
	manager, err := NewEmbeddedManager("en")
	require.NoError(t, err)

	assert.Equal(t, LangRU, manager.DetectFromAcceptLanguage("de-DE,ru;q=0.8,en;q=0.5"))
	assert.Equal(t, LangEN, manager.DetectFromAcceptLanguage("fr-FR"))
	assert.Equal(t, LangEN, manager.DetectFromAcceptLanguage(""))
}

func TestNewManagerRequiresBothLocales(t *testing.T) {
	_, err := NewManager("en", fstest.MapFS{
		"en.json": {Data: []byte(`{"a":"b"}`)},
	})
	require.Error(t, err)

	_, err = NewManager("en", fstest.MapFS{
		"en.json": {Data: []byte(`{"a":"b"}`)},
		"ru.json": {Data: []byte(`{}`)},
	})
	require.Error(t, err)
}

func mustLoadLocaleMessages(t *testing.T, language string) map[string]string {
	t.Helper()

	content, err := embeddedLocales.ReadFile("locales/" + language + ".json")
	require.NoError(t, err)

	messages := map[string]string{}
	require.NoError(t, json.Unmarshal(content, &messages))
	require.NotEmpty(t, messages)
	return messages
}

func missingKeys(source map[string]string, target map[string]string) []string {
	missing := make([]string, 0)
	for key := range source {
		if _, ok := target[key]; !ok {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}
