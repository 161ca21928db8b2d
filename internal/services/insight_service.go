package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/diegocrew/kidtracker/internal/models"
	cache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	InsightMessageMissingAPIKey = "insight.missing_api_key"
	InsightMessageNoSickDays    = "insight.no_sick_days"
	InsightMessageUnavailable   = "insight.unavailable"
)

const (
	insightCacheTTL     = 6 * time.Hour
	insightCacheCleanup = 30 * time.Minute
)

const insightPromptTemplate = `
You are a helpful family health assistant.
Analyze the following sickness history for a child named %s.

The data provided are days where symptoms or fever were recorded.

Data:
%s

Please provide:
1. A brief summary of recent illnesses (look for consecutive days to identify episodes).
2. Any patterns noticed (e.g., frequency, common symptoms).
3. General wellness advice based on these patterns (disclaimer: not medical advice).

Keep the tone supportive, encouraging and concise. Return the response in plain text with nice formatting (bullet points).
`

type InsightGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type InsightTranslator interface {
	Translate(language string, key string) string
}

type Insight struct {
	Text      string `json:"text"`
	Generated bool   `json:"generated"`
	Cached    bool   `json:"cached"`
	SickDays  int    `json:"sick_days"`
}

type InsightService struct {
	generator  InsightGenerator
	translator InsightTranslator
	cache      *cache.Cache
	logger     *zap.Logger
}

// NewInsightService accepts a nil generator, in which case every request is
// answered with the missing-key advisory.
func NewInsightService(generator InsightGenerator, translator InsightTranslator, logger *zap.Logger) *InsightService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InsightService{
		generator:  generator,
		translator: translator,
		cache:      cache.New(insightCacheTTL, insightCacheCleanup),
		logger:     logger,
	}
}

// GenerateInsight never fails: every problem degrades to a fixed advisory text.
func (service *InsightService) GenerateInsight(ctx context.Context, profile models.Profile, logs []models.DailyLog, language string) Insight {
	if service.generator == nil {
		return service.fallback(language, InsightMessageMissingAPIKey, 0)
	}

	sickLogs := SickDayLogs(logs)
	if len(sickLogs) == 0 {
		return service.fallback(language, InsightMessageNoSickDays, 0)
	}

	prompt, fingerprint, err := BuildInsightPrompt(profile.Name, sickLogs)
	if err != nil {
		service.logger.Error("build insight prompt", zap.String("profile_id", profile.ID), zap.Error(err))
		return service.fallback(language, InsightMessageUnavailable, len(sickLogs))
	}

	cacheKey := profile.ID + ":" + fingerprint
	if cached, ok := service.cache.Get(cacheKey); ok {
		if text, ok := cached.(string); ok {
			return Insight{Text: text, Generated: true, Cached: true, SickDays: len(sickLogs)}
		}
	}

	text, err := service.generator.GenerateText(ctx, prompt)
	if err != nil || strings.TrimSpace(text) == "" {
		service.logger.Warn("insight generation failed",
			zap.String("profile_id", profile.ID),
			zap.Int("sick_days", len(sickLogs)),
			zap.Error(err),
		)
		return service.fallback(language, InsightMessageUnavailable, len(sickLogs))
	}

	service.cache.Set(cacheKey, text, cache.DefaultExpiration)
	return Insight{Text: text, Generated: true, SickDays: len(sickLogs)}
}

func (service *InsightService) fallback(language string, key string, sickDays int) Insight {
	text := key
	if service.translator != nil {
		text = service.translator.Translate(language, key)
	}
	return Insight{Text: text, SickDays: sickDays}
}

// SickDayLogs keeps the sick days only, ordered by date.
func SickDayLogs(logs []models.DailyLog) []models.DailyLog {
	sick := make([]models.DailyLog, 0, len(logs))
	for index := range logs {
		if IsSick(&logs[index]) {
			sick = append(sick, logs[index])
		}
	}
	sort.SliceStable(sick, func(i, j int) bool {
		return sick[i].Date < sick[j].Date
	})
	return sick
}

// BuildInsightPrompt renders the prompt and returns a fingerprint of the data
// it embeds.
func BuildInsightPrompt(childName string, sickLogs []models.DailyLog) (string, string, error) {
	payload, err := json.MarshalIndent(sickLogs, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("marshal sick logs: %w", err)
	}

	digest := sha256.Sum256(append([]byte(childName+"\n"), payload...))
	return fmt.Sprintf(insightPromptTemplate, childName, payload), hex.EncodeToString(digest[:]), nil
}
