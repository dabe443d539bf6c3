// Package llm implements the completion client against an
// OpenRouter-compatible chat-completions endpoint.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sami-lachheb/local-warp/internal/domain"
	"github.com/sami-lachheb/local-warp/internal/ports"
)

const (
	// Identification headers required by OpenRouter.
	refererHeader = "https://github.com/sami-lachheb/local-warp"
	titleHeader   = "local-warp"

	// Error bodies are kept short; they end up in one-line messages.
	maxErrorBodyBytes = 4 << 10
)

// Client generates shell commands through the remote completion
// endpoint, managing retries, backoff, and failure classification.
// Every expected failure is returned as a *domain.GenerateError.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	timeout     time.Duration
	maxRetries  int
	retryDelay  time.Duration
	maxTokens   int
	temperature float64

	httpClient *http.Client
	sleep      func(time.Duration)
	log        ports.Logger
}

// NewClient builds a client from model settings. Zero-valued settings
// fall back to the domain defaults.
func NewClient(settings domain.ModelSettings, apiKey string, log ports.Logger) *Client {
	timeout := domain.DefaultRequestTimeout
	if settings.TimeoutSeconds > 0 {
		timeout = time.Duration(settings.TimeoutSeconds) * time.Second
	}
	retryDelay := domain.DefaultRetryDelay
	if settings.RetryDelaySeconds > 0 {
		retryDelay = time.Duration(settings.RetryDelaySeconds * float64(time.Second))
	}
	maxRetries := settings.MaxRetries
	if maxRetries <= 0 {
		maxRetries = domain.DefaultMaxRetries
	}
	maxTokens := settings.MaxTokens
	if maxTokens <= 0 {
		maxTokens = domain.DefaultMaxTokens
	}
	temperature := settings.Temperature
	if temperature == 0 {
		temperature = domain.DefaultTemperature
	}
	if log == nil {
		log = nopLogger{}
	}

	return &Client{
		baseURL:     strings.TrimSuffix(valueOrDefault(settings.BaseURL, domain.DefaultBaseURL), "/"),
		apiKey:      apiKey,
		model:       valueOrDefault(settings.ModelID, domain.DefaultModelID),
		timeout:     timeout,
		maxRetries:  maxRetries,
		retryDelay:  retryDelay,
		maxTokens:   maxTokens,
		temperature: temperature,
		httpClient:  &http.Client{},
		sleep:       time.Sleep,
		log:         log,
	}
}

// Generate implements ports.CommandGenerator.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		outcome := c.attempt(ctx, prompt)
		next := nextStep(outcome, attempt, c.maxRetries, c.retryDelay)

		switch next.action {
		case actionReturn:
			return outcome.command, nil
		case actionFail:
			return "", next.err
		case actionRetry:
			c.log.Debug("retrying completion request", map[string]interface{}{
				"attempt": attempt + 1,
				"reason":  string(next.err.Kind),
				"delay":   next.delay.String(),
			})
			c.sleep(next.delay)
		}
	}
	return "", &domain.GenerateError{Kind: domain.KindMaxRetries, Message: "max retries exceeded"}
}

// attempt performs one HTTP round trip and classifies the result.
func (c *Client) attempt(ctx context.Context, prompt string) attemptOutcome {
	payload := chatCompletionRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return attemptOutcome{kind: outcomeTransport, err: err}
	}

	cctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(cctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return attemptOutcome{kind: outcomeTransport, err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("HTTP-Referer", refererHeader)
	req.Header.Set("X-Title", titleHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return attemptOutcome{kind: outcomeTimedOut, err: err}
		}
		return attemptOutcome{kind: outcomeTransport, err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var decoded chatCompletionResponse
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return attemptOutcome{kind: outcomeParse, err: err}
		}
		command := decoded.FirstMessage()
		if command == "" {
			return attemptOutcome{kind: outcomeParse, err: errors.New("completion text missing from response")}
		}
		return attemptOutcome{kind: outcomeSuccess, command: command}

	case http.StatusUnauthorized:
		return attemptOutcome{kind: outcomeUnauthorized, status: resp.StatusCode}

	case http.StatusTooManyRequests:
		return attemptOutcome{
			kind:       outcomeRateLimited,
			status:     resp.StatusCode,
			retryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}

	default:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return attemptOutcome{
			kind:   outcomeHTTPError,
			status: resp.StatusCode,
			body:   strings.TrimSpace(string(raw)),
		}
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// parseRetryAfter reads the delay-seconds form of the header. Anything
// else yields zero and the caller falls back to exponential backoff.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

func valueOrDefault(value string, def string) string {
	if value == "" {
		return def
	}
	return value
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{})        {}
func (nopLogger) Info(string, map[string]interface{})         {}
func (nopLogger) Warn(string, map[string]interface{})         {}
func (nopLogger) Error(string, error, map[string]interface{}) {}

var _ ports.CommandGenerator = (*Client)(nil)
