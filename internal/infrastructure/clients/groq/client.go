package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/arogyapath/backend/internal/domain/providers"
	"github.com/arogyapath/backend/pkg/config"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const defaultAPIURL = "https://api.groq.com/openai/v1/chat/completions"

// Client calls the Groq chat-completions endpoint. When no API key is
// configured it degrades to a fixed language-specific fallback narrative
// instead of failing, so report generation always produces content.
type Client struct {
	apiURL     string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient creates a new Groq client.
func NewClient(cfg *config.GroqConfig) *Client {
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	model := cfg.Model
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}

	return &Client{
		apiURL: apiURL,
		apiKey: cfg.APIKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

var _ providers.ReportModelProvider = (*Client)(nil)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends the user prompt to the model and returns the narrative text.
func (c *Client) Complete(ctx context.Context, language, userPrompt string) (string, error) {
	if c.apiKey == "" {
		log.Warn().Msg("GROQ_API_KEY not set, skipping LLM call and returning fallback text")
		return SkipFallbackMessage(language), nil
	}

	// Devanagari output needs more tokens than the English narrative.
	maxTokens := 800
	if language == LanguageHindi {
		maxTokens = 1200
	}

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: SystemPrompt(language)},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.7,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordGroqMetric(ctx, c.model, 0, time.Since(start), err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		recordGroqMetric(ctx, c.model, resp.StatusCode, time.Since(start), fmt.Errorf("status %d", resp.StatusCode))
		return "", fmt.Errorf("groq request failed with status %d", resp.StatusCode)
	}

	var envelope chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		recordGroqMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return "", err
	}

	if len(envelope.Choices) == 0 || envelope.Choices[0].Message.Content == "" {
		recordGroqMetric(ctx, c.model, resp.StatusCode, time.Since(start), errors.New("missing message content"))
		return "", errors.New("groq response missing message content")
	}

	recordGroqMetric(ctx, c.model, resp.StatusCode, time.Since(start), nil)
	return envelope.Choices[0].Message.Content, nil
}

type groqMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
}

var groqMetricsInit = false
var groqMetricsInstruments groqMetrics

func ensureGroqMetrics() {
	if groqMetricsInit {
		return
	}
	meter := otel.Meter("github.com/arogyapath/backend/groq")

	requestCount, err := meter.Int64Counter(
		"ai.groq.request.count",
		metric.WithDescription("Number of Groq requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"ai.groq.request.duration",
		metric.WithDescription("Groq request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"ai.groq.request.errors",
		metric.WithDescription("Number of Groq request errors"),
	)
	if err != nil {
		return
	}

	groqMetricsInstruments = groqMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
	}
	groqMetricsInit = true
}

func recordGroqMetric(ctx context.Context, model string, statusCode int, duration time.Duration, err error) {
	ensureGroqMetrics()
	if !groqMetricsInit {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "groq"),
		attribute.String("ai.model", model),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	groqMetricsInstruments.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	groqMetricsInstruments.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		groqMetricsInstruments.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
