package insights

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.5-flash"
)

var (
	ErrMissingAPIKey = errors.New("gemini api key is not configured")
	ErrEmptyResponse = errors.New("gemini returned no text")
	ErrRequestFailed = errors.New("gemini request failed")
)

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
}

type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

type Options struct {
	BaseURL    string
	Model      string
	Timeout    time.Duration
	RetryCount int
}

// GeminiClient calls the generateContent endpoint of the Gemini API.
type GeminiClient struct {
	httpClient *resty.Client
	model      string
	logger     *zap.Logger
}

func NewGeminiClient(apiKey string, options Options, logger *zap.Logger) (*GeminiClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if strings.TrimSpace(options.BaseURL) == "" {
		options.BaseURL = DefaultBaseURL
	}
	if strings.TrimSpace(options.Model) == "" {
		options.Model = DefaultModel
	}
	if options.Timeout <= 0 {
		options.Timeout = 30 * time.Second
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(options.BaseURL, "/")).
		SetTimeout(options.Timeout).
		SetRetryCount(options.RetryCount).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(3*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("x-goog-api-key", apiKey)

	return &GeminiClient{
		httpClient: client,
		model:      strings.TrimSpace(options.Model),
		logger:     logger.Named("gemini"),
	}, nil
}

func (client *GeminiClient) Model() string {
	return client.model
}

// GenerateText sends prompt as a single user turn and joins the text parts of
// the first candidate.
func (client *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	started := time.Now()
	defer func() {
		generateLatency.Observe(time.Since(started).Seconds())
	}()

	request := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}

	var result generateResponse
	var failure apiErrorResponse
	resp, err := client.httpClient.R().
		SetContext(ctx).
		SetPathParam("model", client.model).
		SetBody(request).
		SetResult(&result).
		SetError(&failure).
		Post("/v1beta/models/{model}:generateContent")
	if err != nil {
		generateRequests.WithLabelValues(outcomeError).Inc()
		client.logger.Error("gemini call failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if resp.IsError() {
		generateRequests.WithLabelValues(outcomeError).Inc()
		client.logger.Warn("gemini returned error",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("status", failure.Error.Status),
			zap.String("message", failure.Error.Message),
		)
		return "", fmt.Errorf("%w: status %d: %s", ErrRequestFailed, resp.StatusCode(), failure.Error.Message)
	}

	text := firstCandidateText(result)
	if text == "" {
		generateRequests.WithLabelValues(outcomeEmpty).Inc()
		return "", ErrEmptyResponse
	}

	generateRequests.WithLabelValues(outcomeSuccess).Inc()
	client.logger.Debug("gemini insight generated", zap.Int("characters", len(text)))
	return text, nil
}

func firstCandidateText(result generateResponse) string {
	if len(result.Candidates) == 0 {
		return ""
	}
	var builder strings.Builder
	for _, item := range result.Candidates[0].Content.Parts {
		builder.WriteString(item.Text)
	}
	return strings.TrimSpace(builder.String())
}
