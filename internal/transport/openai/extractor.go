// Package openai extracts search criteria from free text with an
// OpenAI-compatible chat completion and a function tool.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/prodsearch/internal/domain"
	"github.com/kailas-cloud/prodsearch/internal/domain/intent"
	"github.com/kailas-cloud/prodsearch/internal/metrics"
)

// Extractor is an intent provider using the OpenAI-compatible chat API.
type Extractor struct {
	client      *openai.Client
	model       string
	toolName    string
	temperature float32
	maxQueryLen int
	user        string
	provider    string
	logger      *zap.Logger
}

// Config holds the intent provider settings.
type Config struct {
	APIKey      string
	BaseURL     string // empty keeps the public OpenAI endpoint
	Model       string
	ToolName    string
	Temperature float32
	MaxQueryLen int // longer queries are truncated; 0 disables the cap
	Timeout     time.Duration
	User        string
	Provider    string
	Logger      *zap.Logger
}

// NewExtractor creates an OpenAI-compatible intent extractor.
func NewExtractor(cfg *Config) *Extractor {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	toolName := cfg.ToolName
	if toolName == "" {
		toolName = domain.DefaultIntentConfig().ToolName
	}

	return &Extractor{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		toolName:    toolName,
		temperature: cfg.Temperature,
		maxQueryLen: cfg.MaxQueryLen,
		user:        cfg.User,
		provider:    cfg.Provider,
		logger:      logger,
	}
}

// Extract implements intent.Extractor. A reply without a search tool call is
// not an error: it yields an unmatched extraction with empty criteria.
func (e *Extractor) Extract(ctx context.Context, query string) (intent.Extraction, error) {
	query = truncate(query, e.maxQueryLen)

	req := openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
		Tools:       []openai.Tool{searchTool(e.toolName)},
		ToolChoice:  "auto",
		Temperature: e.temperature,
		User:        e.user,
	}

	start := time.Now()
	resp, err := e.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		e.fail("api_error")
		return intent.Extraction{}, parseAPIError(err)
	}
	if len(resp.Choices) == 0 {
		e.fail("empty_response")
		return intent.Extraction{}, fmt.Errorf("empty chat completion response: %w", domain.ErrIntentProviderError)
	}

	metrics.IntentRequestsTotal.WithLabelValues(e.provider, e.model, "success").Inc()
	metrics.IntentRequestDuration.WithLabelValues(e.provider, e.model).Observe(duration.Seconds())

	ext := intent.Extraction{
		PromptTokens: resp.Usage.PromptTokens,
		TotalTokens:  resp.Usage.TotalTokens,
	}
	if ext.TotalTokens > 0 {
		metrics.IntentTokensTotal.WithLabelValues(e.provider, e.model, "prompt").Add(float64(ext.PromptTokens))
		metrics.IntentTokensTotal.WithLabelValues(e.provider, e.model, "total").Add(float64(ext.TotalTokens))
	}

	args, ok := e.toolArguments(resp.Choices[0].Message)
	if !ok {
		return ext, nil
	}

	var raw toolArgs
	if err = json.Unmarshal([]byte(args), &raw); err != nil {
		metrics.IntentErrorsTotal.WithLabelValues(e.provider, e.model, "malformed_arguments").Inc()
		return intent.Extraction{}, fmt.Errorf("%w: decode tool arguments: %w", domain.ErrMalformedExtraction, err)
	}
	c, err := raw.toCriteria()
	if err != nil {
		metrics.IntentErrorsTotal.WithLabelValues(e.provider, e.model, "invalid_criteria").Inc()
		return intent.Extraction{}, fmt.Errorf("%w: %w", domain.ErrMalformedExtraction, err)
	}

	ext.Criteria = c
	ext.Matched = true
	return ext, nil
}

// toolArguments returns the arguments of the search tool call. Older
// deployments answer with the legacy function_call field instead of tool_calls.
func (e *Extractor) toolArguments(msg openai.ChatCompletionMessage) (string, bool) {
	for _, call := range msg.ToolCalls {
		if call.Function.Name == e.toolName {
			return call.Function.Arguments, true
		}
	}
	if msg.FunctionCall != nil && msg.FunctionCall.Name == e.toolName {
		return msg.FunctionCall.Arguments, true
	}
	if len(msg.ToolCalls) > 0 {
		e.logger.Warn("Model called an unknown tool", zap.String("tool", msg.ToolCalls[0].Function.Name))
	}
	return "", false
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func (e *Extractor) fail(errorType string) {
	metrics.IntentRequestsTotal.WithLabelValues(e.provider, e.model, "error").Inc()
	metrics.IntentErrorsTotal.WithLabelValues(e.provider, e.model, errorType).Inc()
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (e *Extractor) HealthCheck(ctx context.Context) error {
	if _, err := e.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAPIError extracts a readable message from the API error.
// 429 maps to domain.ErrRateLimited, everything else to domain.ErrIntentProviderError.
func parseAPIError(err error) error {
	var (
		status int
		detail string
	)

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status, detail = apiErr.HTTPStatusCode, apiErr.Message
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
		if detail = extractDetail(reqErr.Body); detail == "" {
			detail = string(reqErr.Body)
		}
	default:
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return fmt.Errorf("intent request aborted: %w: %w", err, domain.ErrIntentProviderError)
		}
		return fmt.Errorf("intent request failed: %w", domain.ErrIntentProviderError)
	}

	wrap := domain.ErrIntentProviderError
	if status == http.StatusTooManyRequests {
		wrap = domain.ErrRateLimited
	}
	return fmt.Errorf("intent API error %d: %s: %w", status, detail, wrap)
}

// extractDetail pulls "detail" (FastAPI-style proxies) or "error.message" from a JSON body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
		Error  struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &parsed) != nil {
		return ""
	}
	if parsed.Detail != "" {
		return parsed.Detail
	}
	return parsed.Error.Message
}
