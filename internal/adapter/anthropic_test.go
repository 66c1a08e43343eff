package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAnthropicComplete(t *testing.T) {
	var gotReq anthropicRequest
	var gotKey, gotVersion string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":[{"type":"text","text":"=== MARKET NOTES ===\nFormatted entry."}]}`))
	}))
	defer srv.Close()

	c := NewAnthropicClient(srv.URL, "claude-sonnet-4-20250514", 2000)
	got, err := c.Complete(context.Background(), "sk-ant-test", "be a journal", "my raw thoughts")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if !strings.Contains(got, "Formatted entry.") {
		t.Errorf("unexpected completion: %q", got)
	}
	if gotKey != "sk-ant-test" {
		t.Errorf("api key header not set, got %q", gotKey)
	}
	if gotVersion != "2023-06-01" {
		t.Errorf("version header not set, got %q", gotVersion)
	}
	if gotReq.Model != "claude-sonnet-4-20250514" || gotReq.MaxTokens != 2000 {
		t.Errorf("request misconfigured: %+v", gotReq)
	}
	if gotReq.System != "be a journal" {
		t.Errorf("system prompt not forwarded: %q", gotReq.System)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Content != "my raw thoughts" {
		t.Errorf("user message not forwarded: %+v", gotReq.Messages)
	}
}

func TestAnthropicCompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer srv.Close()

	c := NewAnthropicClient(srv.URL, "claude-sonnet-4-20250514", 2000)
	_, err := c.Complete(context.Background(), "bad-key", "system", "message")
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !strings.Contains(err.Error(), "invalid x-api-key") {
		t.Errorf("error should carry the API message, got %v", err)
	}
}

func TestAnthropicCompleteNoTextBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":[]}`))
	}))
	defer srv.Close()

	c := NewAnthropicClient(srv.URL, "claude-sonnet-4-20250514", 2000)
	if _, err := c.Complete(context.Background(), "sk-ant-test", "system", "message"); err == nil {
		t.Fatalf("expected an error for a response without text content")
	}
}
