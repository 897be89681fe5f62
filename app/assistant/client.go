// Package assistant talks to an OpenAI-compatible chat completions API to
// draft blog posts.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultAPIURL = "https://api.openai.com/v1/chat/completions"
	DefaultModel  = "gpt-4o-mini"

	placeholderKey = "PLACEHOLDER_API_KEY"
)

// ErrNotConfigured is returned when no API key is available.
var ErrNotConfigured = errors.New("draft assistant: API key not configured")

// GenerationError reports that the assistant was reachable but did not
// produce a usable draft.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return "draft generation failed: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Draft is a generated post body.
type Draft struct {
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
	Content string `json:"content"`
}

// ChatMessage represents a single message in the chat conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequestBody represents the request payload for the chat completions API.
type ChatRequestBody struct {
	Model          string            `json:"model"`
	Messages       []ChatMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
}

// ChatChoice represents one of the returned completions.
type ChatChoice struct {
	Message ChatMessage `json:"message"`
}

// ChatResponseBody represents the structure of the API response.
type ChatResponseBody struct {
	Choices []ChatChoice `json:"choices"`
}

// Config holds the assistant's connection settings.
type Config struct {
	APIURL  string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client generates drafts through the chat completions API.
type Client struct {
	apiURL     string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient creates a Client, filling unset config with defaults.
func NewClient(cfg Config) *Client {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{
		apiURL:     cfg.APIURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	key := strings.TrimSpace(c.apiKey)
	return key != "" && key != placeholderKey
}

func prompt(topic, tone string) string {
	return fmt.Sprintf(`Write a blog post about %q.
Tone: %s.

Return the response in strictly valid JSON format with the following schema:
{
  "title": "Catchy Title",
  "excerpt": "A 2-sentence summary.",
  "content": "The full blog post content in Markdown format (no markdown code blocks, just the text)."
}`, topic, tone)
}

// Generate asks the model for a draft about topic written in tone.
func (c *Client) Generate(ctx context.Context, topic, tone string) (Draft, error) {
	if !c.Configured() {
		return Draft{}, ErrNotConfigured
	}

	reqBody := ChatRequestBody{
		Model: c.model,
		Messages: []ChatMessage{
			{Role: "system", Content: "You are a helpful blog writing assistant."},
			{Role: "user", Content: prompt(topic, tone)},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
	}
	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return Draft{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(reqBytes))
	if err != nil {
		return Draft{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Draft{}, &GenerationError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Draft{}, &GenerationError{Err: fmt.Errorf("non-200 response from API: %d; response: %s", resp.StatusCode, string(bodyBytes))}
	}

	var responseBody ChatResponseBody
	if err := json.NewDecoder(resp.Body).Decode(&responseBody); err != nil {
		return Draft{}, &GenerationError{Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(responseBody.Choices) == 0 || responseBody.Choices[0].Message.Content == "" {
		return Draft{}, &GenerationError{Err: errors.New("no response from model")}
	}

	draft, err := parseDraft(responseBody.Choices[0].Message.Content)
	if err != nil {
		return Draft{}, &GenerationError{Err: err}
	}
	return draft, nil
}

// parseDraft decodes the model's JSON answer, tolerating a surrounding
// markdown code fence.
func parseDraft(text string) (Draft, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var draft Draft
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &draft); err != nil {
		return Draft{}, fmt.Errorf("parse draft: %w", err)
	}
	if draft.Title == "" || draft.Content == "" {
		return Draft{}, errors.New("draft is missing title or content")
	}
	return draft, nil
}
