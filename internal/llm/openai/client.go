package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"jobtrack-backend/internal/llm"
)

const apiURL = "https://api.openai.com/v1/chat/completions"

const systemPrompt = "You are a career document generation engine. Respond with JSON only. No markdown. Never omit required keys. Output must match the requested schema exactly."

// Client implements llm.Client using OpenAI Chat Completions.
type Client struct {
	apiKey     string
	httpClient *http.Client
}

// NewClient constructs an OpenAI client with a bounded request timeout.
func NewClient(apiKey string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    *float32       `json:"temperature,omitempty"`
	MaxTokens      int            `json:"max_tokens,omitempty"`
	ResponseFormat responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Generate issues a single logical chat-completion request and normalizes
// the response. Retries are the caller's concern (see llm.WithRetry).
func (c *Client) Generate(ctx context.Context, req llm.Request) (llm.Result, error) {
	if strings.TrimSpace(req.Model) == "" {
		return llm.Result{}, &llm.ProviderError{Message: "model is required", Transient: false}
	}

	temp := req.Temperature
	body := chatRequest{
		Model: req.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: req.Prompt},
		},
		Temperature:    &temp,
		MaxTokens:      req.MaxTokens,
		ResponseFormat: responseFormat{Type: "json_object"},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return llm.Result{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return llm.Result{}, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return llm.Result{}, &llm.ProviderError{Message: "request timeout: " + err.Error(), Transient: true}
		}
		return llm.Result{}, &llm.ProviderError{Message: err.Error(), Transient: true}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return llm.Result{}, &llm.ProviderError{Message: "read response: " + err.Error(), Transient: true}
	}

	if resp.StatusCode >= 500 {
		return llm.Result{}, &llm.ProviderError{Status: resp.StatusCode, Message: truncate(string(raw), 200), Transient: true}
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return llm.Result{}, &llm.ProviderError{Status: resp.StatusCode, Message: "rate limited by provider", Transient: true}
	}
	if resp.StatusCode >= 400 {
		return llm.Result{}, &llm.ProviderError{Status: resp.StatusCode, Message: truncate(string(raw), 200), Transient: false}
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return llm.Result{}, &llm.ProviderError{Message: "response parse: " + err.Error(), Transient: false}
	}
	if parsed.Error != nil {
		return llm.Result{}, &llm.ProviderError{Message: fmt.Sprintf("%s (%s)", parsed.Error.Message, parsed.Error.Type), Transient: false}
	}
	if len(parsed.Choices) == 0 {
		return llm.Result{}, &llm.ProviderError{Message: "response missing choices", Transient: false}
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	result := llm.Result{
		Meta: llm.Meta{Provider: "openai", Model: parsed.Model, RequestID: parsed.ID},
	}
	if json.Valid([]byte(content)) {
		result.JSON = json.RawMessage(content)
	} else {
		result.Text = content
	}
	if parsed.Usage != nil {
		result.Tokens = llm.Usage{
			Prompt:     parsed.Usage.PromptTokens,
			Completion: parsed.Usage.CompletionTokens,
			Total:      parsed.Usage.TotalTokens,
		}
		logUsage(req.Model, req.Kind, parsed.Usage.PromptTokens, parsed.Usage.CompletionTokens, parsed.Usage.TotalTokens)
	}
	return result, nil
}

func logUsage(model, kind string, prompt, completion, total int) {
	log.Printf("llm response model=%s kind=%s prompt_tokens=%d completion_tokens=%d total_tokens=%d",
		model, kind, prompt, completion, total)
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max]
}

var _ llm.Client = (*Client)(nil)
