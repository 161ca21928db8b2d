package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/diegocrew/kidtracker/internal/models"
)

type stubInsightGenerator struct {
	text    string
	err     error
	calls   int
	prompts []string
}

func (stub *stubInsightGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	stub.calls++
	stub.prompts = append(stub.prompts, prompt)
	return stub.text, stub.err
}

type stubInsightTranslator struct{}

func (stubInsightTranslator) Translate(language string, key string) string {
	return language + ":" + key
}

func insightTestLogs() []models.DailyLog {
	return []models.DailyLog{
		{Date: "2024-03-02", Symptoms: []string{"Fever"}},
		{Date: "2024-03-01", Symptoms: []string{"Fever"}, Notes: "first day"},
		{Date: "2024-03-03", Notes: "recovered"},
	}
}

func TestGenerateInsightWithoutGenerator(t *testing.T) {
	service := NewInsightService(nil, stubInsightTranslator{}, nil)

	insight := service.GenerateInsight(context.Background(), models.Profile{ID: "p1", Name: "Alex"}, insightTestLogs(), "ru")
	if insight.Generated || insight.Text != "ru:"+InsightMessageMissingAPIKey {
		t.Fatalf("unexpected insight %#v", insight)
	}
}

func TestGenerateInsightWithoutSickDays(t *testing.T) {
	generator := &stubInsightGenerator{text: "unused"}
	service := NewInsightService(generator, stubInsightTranslator{}, nil)

	logs := []models.DailyLog{{Date: "2024-03-01", Notes: "fine"}}
	insight := service.GenerateInsight(context.Background(), models.Profile{ID: "p1", Name: "Alex"}, logs, "en")
	if insight.Text != "en:"+InsightMessageNoSickDays || insight.SickDays != 0 {
		t.Fatalf("unexpected insight %#v", insight)
	}
	if generator.calls != 0 {
		t.Fatalf("expected no generator call, got %d", generator.calls)
	}
}

func TestGenerateInsightCachesIdenticalHistory(t *testing.T) {
	generator := &stubInsightGenerator{text: "Two fever days in early March."}
	service := NewInsightService(generator, stubInsightTranslator{}, nil)
	profile := models.Profile{ID: "p1", Name: "Alex"}

	first := service.GenerateInsight(context.Background(), profile, insightTestLogs(), "en")
	if !first.Generated || first.Cached || first.SickDays != 2 || first.Text != generator.text {
		t.Fatalf("unexpected first insight %#v", first)
	}

	second := service.GenerateInsight(context.Background(), profile, insightTestLogs(), "en")
	if !second.Cached || second.Text != generator.text {
		t.Fatalf("expected cached insight, got %#v", second)
	}
	if generator.calls != 1 {
		t.Fatalf("expected one generator call, got %d", generator.calls)
	}

	changed := append(insightTestLogs(), models.DailyLog{Date: "2024-03-10", Symptoms: []string{"Cough"}})
	third := service.GenerateInsight(context.Background(), profile, changed, "en")
	if third.Cached || generator.calls != 2 {
		t.Fatalf("expected new history to bypass the cache, got %#v after %d calls", third, generator.calls)
	}
}

func TestGenerateInsightFallsBackOnGeneratorFailure(t *testing.T) {
	for name, generator := range map[string]*stubInsightGenerator{
		"error":       {err: errors.New("quota exceeded")},
		"blank reply": {text: "   "},
	} {
		t.Run(name, func(t *testing.T) {
			service := NewInsightService(generator, stubInsightTranslator{}, nil)
			insight := service.GenerateInsight(context.Background(), models.Profile{ID: "p1", Name: "Alex"}, insightTestLogs(), "en")
			if insight.Generated || insight.Text != "en:"+InsightMessageUnavailable || insight.SickDays != 2 {
				t.Fatalf("unexpected insight %#v", insight)
			}
		})
	}
}

func TestBuildInsightPromptEmbedsSickDaysOnly(t *testing.T) {
	sick := SickDayLogs(insightTestLogs())
	if len(sick) != 2 || sick[0].Date != "2024-03-01" || sick[1].Date != "2024-03-02" {
		t.Fatalf("expected sorted sick days, got %#v", sick)
	}

	prompt, fingerprint, err := BuildInsightPrompt("Alex", sick)
	if err != nil {
		t.Fatalf("BuildInsightPrompt() unexpected error: %v", err)
	}
	if !strings.Contains(prompt, "a child named Alex") || !strings.Contains(prompt, `"date": "2024-03-01"`) {
		t.Fatalf("prompt is missing the child or the data:\n%s", prompt)
	}
	if strings.Contains(prompt, "recovered") {
		t.Fatal("prompt must not embed healthy days")
	}

	_, renamed, err := BuildInsightPrompt("Sam", sick)
	if err != nil {
		t.Fatalf("BuildInsightPrompt() renamed: %v", err)
	}
	if renamed == fingerprint || len(fingerprint) != 64 {
		t.Fatalf("expected distinct sha256 fingerprints, got %q and %q", fingerprint, renamed)
	}
}
