package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"egym/plan-service/internal/config"
	"egym/plan-service/internal/logger"
	"egym/plan-service/internal/planner"
)

// Failure classes for a completion call. The distinction matters: a timeout
// means the provider-side job may still have completed after we stopped
// waiting, so the caller reconciles instead of retrying; any other failure
// is definitive for this attempt.
var (
	ErrGenerationFailed   = errors.New("workout plan generation failed")
	ErrGenerationTimedOut = errors.New("workout plan generation timed out")
)

// Client invokes the completion endpoint with the fixed instruction set and
// returns the raw text. No automatic retry: a completion is too expensive
// and too slow to re-fire blindly; retry policy belongs to the caller.
type Client interface {
	Complete(ctx context.Context, msgs planner.PromptMessages) (string, error)
}

type openAIClient struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewOpenAIClient builds a chat-completions client with fixed zero-temperature
// decoding and a bounded wall-clock timeout.
func NewOpenAIClient(cfg config.OpenAIConfig, log *logger.Logger) (Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("missing OpenAI API key")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gpt-4o-mini"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}

	return &openAIClient{
		log:        log.With("service", "OpenAIClient"),
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionsRequest struct {
	Model string `json:"model"`
	// Temperature is fixed at 0 for deterministic decoding; no omitempty,
	// the zero must reach the wire.
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatCompletionsResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *openAIClient) Complete(ctx context.Context, msgs planner.PromptMessages) (string, error) {
	reqBody := chatCompletionsRequest{
		Model:       c.model,
		Temperature: 0,
		Messages: []chatMessage{
			{Role: "system", Content: msgs.System},
			{Role: "developer", Content: msgs.Developer},
			{Role: "user", Content: msgs.User},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ErrGenerationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", &buf)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return "", classifyTransportError(readErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: openai http %d: %s", ErrGenerationFailed, resp.StatusCode, truncate(string(raw), 300))
	}

	var parsed chatCompletionsResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrGenerationFailed, err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: completion returned no content", ErrGenerationFailed)
	}

	content := parsed.Choices[0].Message.Content
	c.log.Info("raw completion received", "model", c.model, "preview", truncate(content, 300))
	return content, nil
}

// classifyTransportError separates the ambiguous timeout class from hard
// transport failures. Caller cancellation counts as a timeout: we stopped
// waiting, but the provider-side job may still finish, and reconciliation is
// the only way to find out.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrGenerationTimedOut, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrGenerationTimedOut, err)
	}
	return fmt.Errorf("%w: %v", ErrGenerationFailed, err)
}

// truncate cuts s to at most n bytes without splitting a UTF-8 rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}
