package service

import (
	"career_compass_backend/internal/config"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAIServiceGenerate(t *testing.T) {
	var gotAuth string
	var gotReq ChatCompletionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "hello"}},
			},
		})
	}))
	defer server.Close()

	svc := NewAIService(config.AIConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
	})

	text, err := svc.Generate(context.Background(), "system prompt", "user prompt")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != "hello" {
		t.Fatalf("text = %q, want hello", text)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("auth header = %q", gotAuth)
	}
	if gotReq.Model != "gpt-4o-mini" {
		t.Fatalf("model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Fatalf("unexpected messages: %+v", gotReq.Messages)
	}
}

func TestAIServiceGenerateWithoutSystemPrompt(t *testing.T) {
	var gotReq ChatCompletionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "ok"}},
			},
		})
	}))
	defer server.Close()

	svc := NewAIService(config.AIConfig{BaseURL: server.URL})
	if _, err := svc.Generate(context.Background(), "", "user prompt"); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "user" {
		t.Fatalf("unexpected messages: %+v", gotReq.Messages)
	}
}

func TestAIServiceGenerateHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limited"}}`))
	}))
	defer server.Close()

	svc := NewAIService(config.AIConfig{BaseURL: server.URL})
	_, err := svc.Generate(context.Background(), "", "user prompt")
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("err = %v, want status 429 error", err)
	}
}

func TestAIServiceGenerateAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": {"message": "invalid api key"}}`))
	}))
	defer server.Close()

	svc := NewAIService(config.AIConfig{BaseURL: server.URL})
	_, err := svc.Generate(context.Background(), "", "user prompt")
	if err == nil || !strings.Contains(err.Error(), "invalid api key") {
		t.Fatalf("err = %v, want api error", err)
	}
}

func TestAIServiceGenerateNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	svc := NewAIService(config.AIConfig{BaseURL: server.URL})
	_, err := svc.Generate(context.Background(), "", "user prompt")
	if err == nil {
		t.Fatalf("expected error on empty choices")
	}
}
