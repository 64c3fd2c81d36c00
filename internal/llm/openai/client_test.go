package openai

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"jobtrack-backend/internal/llm"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func fakeClient(t *testing.T, status int, body string) *Client {
	t.Helper()
	client, err := NewClient("test-key", time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	client.httpClient.Transport = roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if got := req.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("Authorization = %q", got)
		}
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(bytes.NewReader([]byte(body))),
			Header:     http.Header{"Content-Type": []string{"application/json"}},
		}, nil
	})
	return client
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient("", time.Second); err == nil {
		t.Fatal("expected an error for an empty API key")
	}
	if _, err := NewClient("  ", time.Second); err == nil {
		t.Fatal("expected an error for a blank API key")
	}
}

func TestGenerateParsesJSONContent(t *testing.T) {
	client := fakeClient(t, http.StatusOK, `{
		"id": "chatcmpl-1",
		"model": "gpt-4o-mini",
		"choices": [{"message": {"role": "assistant", "content": "{\"summary\": \"ok\"}"}}],
		"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
	}`)

	result, err := client.Generate(context.Background(), llm.Request{Kind: "resume", Prompt: "p", Model: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(result.JSON) == 0 {
		t.Fatal("expected JSON content")
	}
	if result.Text != "" {
		t.Fatalf("text should be empty when content is JSON, got %q", result.Text)
	}
	if result.Tokens.Total != 15 {
		t.Fatalf("tokens = %+v", result.Tokens)
	}
	if result.Meta.Provider != "openai" || result.Meta.RequestID != "chatcmpl-1" {
		t.Fatalf("meta = %+v", result.Meta)
	}
}

func TestGenerateFreeTextContent(t *testing.T) {
	client := fakeClient(t, http.StatusOK, `{
		"choices": [{"message": {"role": "assistant", "content": "plain prose answer"}}]
	}`)

	result, err := client.Generate(context.Background(), llm.Request{Kind: "resume", Prompt: "p", Model: "m"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.Text != "plain prose answer" || len(result.JSON) != 0 {
		t.Fatalf("result = %+v", result)
	}
}

func TestGenerateStatusClassification(t *testing.T) {
	cases := []struct {
		name          string
		status        int
		wantTransient bool
	}{
		{"server error", http.StatusInternalServerError, true},
		{"bad gateway", http.StatusBadGateway, true},
		{"rate limited", http.StatusTooManyRequests, true},
		{"bad request", http.StatusBadRequest, false},
		{"unauthorized", http.StatusUnauthorized, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := fakeClient(t, tc.status, `{"error": {"message": "boom"}}`)
			_, err := client.Generate(context.Background(), llm.Request{Kind: "resume", Prompt: "p", Model: "m"})
			if err == nil {
				t.Fatal("expected an error")
			}
			var provErr *llm.ProviderError
			if !errors.As(err, &provErr) {
				t.Fatalf("error type = %T", err)
			}
			if provErr.Transient != tc.wantTransient {
				t.Fatalf("transient = %v, want %v", provErr.Transient, tc.wantTransient)
			}
		})
	}
}

func TestGenerateMissingChoices(t *testing.T) {
	client := fakeClient(t, http.StatusOK, `{"choices": []}`)

	_, err := client.Generate(context.Background(), llm.Request{Kind: "resume", Prompt: "p", Model: "m"})
	var provErr *llm.ProviderError
	if !errors.As(err, &provErr) || provErr.Transient {
		t.Fatalf("err = %v, want a non-transient provider error", err)
	}
}

func TestGenerateRequiresModel(t *testing.T) {
	client := fakeClient(t, http.StatusOK, `{}`)

	_, err := client.Generate(context.Background(), llm.Request{Kind: "resume", Prompt: "p"})
	if err == nil {
		t.Fatal("expected an error for a missing model")
	}
}
