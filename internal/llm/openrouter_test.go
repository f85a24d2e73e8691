package llm

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

func TestNewOpenRouterProvider(t *testing.T) {
	t.Run("model passes through", func(t *testing.T) {
		for _, model := range []string{"google/gemini-2.0-flash-001", "anthropic/claude-3-haiku", "gpt-4o-mini"} {
			p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: model})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.ModelID() != model {
				t.Errorf("model = %q, want %q", p.ModelID(), model)
			}
		}
	})

	t.Run("empty API key", func(t *testing.T) {
		_, err := NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.0-flash-001"})
		if err == nil {
			t.Fatal("expected error for empty API key")
		}
	})
}

// openRouterStub serves one canned chat completion. The returned func
// reports the last request seen.
func openRouterStub(t *testing.T, status int, body string) (*httptest.Server, func() *http.Request) {
	t.Helper()
	var (
		mu   sync.Mutex
		last *http.Request
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		mu.Lock()
		last = r.Clone(context.Background())
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, func() *http.Request {
		mu.Lock()
		defer mu.Unlock()
		return last
	}
}

func TestOpenRouter_GenerateSendsAttribution(t *testing.T) {
	srv, lastRequest := openRouterStub(t, http.StatusOK, `{
		"id": "gen-1",
		"object": "chat.completion",
		"model": "google/gemini-2.0-flash-001",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"text\":\"Vous (finir) vite.\"}"}, "finish_reason": "stop"}],
		"usage": {"prompt_tokens": 30, "completion_tokens": 12, "total_tokens": 42}
	}`)

	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "google/gemini-2.0-flash-001", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp, err := p.Generate(context.Background(), Request{
		System:    "sys",
		Messages:  []Message{{Role: RoleUser, Content: "finir"}},
		MaxTokens: 100,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := lastRequest()
	if got.URL.Path != "/chat/completions" {
		t.Errorf("path = %q", got.URL.Path)
	}
	if got.Header.Get("X-Title") != "verbiz" || got.Header.Get("HTTP-Referer") == "" {
		t.Errorf("attribution headers missing: %v", got.Header)
	}
	if !strings.HasPrefix(got.Header.Get("Authorization"), "Bearer sk-or-test") {
		t.Errorf("authorization = %q", got.Header.Get("Authorization"))
	}
	if string(resp.Content) != `{"text":"Vous (finir) vite."}` {
		t.Errorf("content = %s", resp.Content)
	}
	if resp.Usage.TotalTokens != 42 || resp.StopReason != StopEnd || resp.Model != "google/gemini-2.0-flash-001" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestOpenRouter_ErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   any
	}{
		{"bad key", http.StatusUnauthorized, `{"error":{"message":"No auth credentials found","code":401}}`, new(*ErrRejected)},
		{"rate limited", http.StatusTooManyRequests, `{"error":{"message":"slow down","code":429}}`, new(*ErrRateLimit)},
		{"upstream down", http.StatusBadGateway, `{"error":{"message":"upstream error","code":502}}`, new(*ErrProviderUnavailable)},
		{"refusal", http.StatusOK, `{"choices":[{"index":0,"message":{"role":"assistant","content":"","refusal":"I can't help with that."},"finish_reason":"stop"}]}`, new(*ErrInvalidResponse)},
		{"no choices", http.StatusOK, `{"choices":[]}`, new(*ErrInvalidResponse)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := openRouterStub(t, tt.status, tt.body)
			p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "google/gemini-2.0-flash-001", BaseURL: srv.URL})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			_, err = p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "aller"}}})
			if !errors.As(err, tt.want) {
				t.Fatalf("error = %v (%T), want %T", err, err, tt.want)
			}
		})
	}
}
