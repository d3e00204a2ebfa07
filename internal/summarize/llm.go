package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/orgviz/orgviz/schema"
)

// LLMConfig configures the OpenAI-compatible chat completions endpoint.
type LLMConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

// LLMConfigFromEnv reads the LLM configuration from the environment. The
// second return value lists the variables still missing.
func LLMConfigFromEnv() (LLMConfig, []string) {
	cfg := LLMConfig{
		BaseURL: strings.TrimSpace(os.Getenv("ORGVIZ_LLM_BASE_URL")),
		APIKey:  strings.TrimSpace(os.Getenv("ORGVIZ_LLM_API_KEY")),
		Model:   strings.TrimSpace(os.Getenv("ORGVIZ_LLM_MODEL")),
	}
	var missing []string
	if cfg.BaseURL == "" {
		missing = append(missing, "ORGVIZ_LLM_BASE_URL")
	}
	if cfg.APIKey == "" {
		missing = append(missing, "ORGVIZ_LLM_API_KEY")
	}
	if cfg.Model == "" {
		missing = append(missing, "ORGVIZ_LLM_MODEL")
	}
	return cfg, missing
}

// LLMSummarizer calls an OpenAI-compatible /chat/completions endpoint.
type LLMSummarizer struct {
	cfg    LLMConfig
	client *http.Client

	// retries counts extra attempts after the first failure.
	retries int
}

// NewLLMSummarizer creates a summarizer backed by a remote model.
func NewLLMSummarizer(cfg LLMConfig) *LLMSummarizer {
	return &LLMSummarizer{
		cfg:     cfg,
		client:  &http.Client{Timeout: 30 * time.Second},
		retries: 2,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (s *LLMSummarizer) Summarize(ctx context.Context, slot *schema.SummarySlot) ([]string, error) {
	maxLines := slot.MaxLines
	if maxLines <= 0 {
		maxLines = schema.SummaryMaxLines
	}

	var src []string
	for _, p := range []string{slot.Description, slot.IntentionPI, slot.IntentionNext} {
		if t := strings.TrimSpace(p); t != "" {
			src = append(src, t)
		}
	}
	if len(src) == 0 {
		return []string{"No description or intention provided."}, nil
	}

	body := chatRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: fmt.Sprintf("Summarize the epic intention below in at most %d short lines. Plain text only, one statement per line.", maxLines)},
			{Role: "user", Content: strings.Join(src, "\n\n")},
		},
		Temperature: 0.2,
		MaxTokens:   300,
	}

	var lastErr error
	for attempt := 0; attempt <= s.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}
		lines, err := s.call(ctx, body, maxLines)
		if err == nil {
			return lines, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (s *LLMSummarizer) call(ctx context.Context, body chatRequest, maxLines int) ([]string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	url := strings.TrimSuffix(s.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 300))
		return nil, fmt.Errorf("llm endpoint returned %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode llm response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("llm response has no choices")
	}

	var lines []string
	for _, line := range strings.Split(parsed.Choices[0].Message.Content, "\n") {
		if t := strings.Trim(strings.TrimSpace(line), "-* "); t != "" {
			lines = append(lines, t)
		}
		if len(lines) >= maxLines {
			break
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("llm response was empty")
	}
	return lines, nil
}
