package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAIClientChangeStyle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Fatalf("unexpected auth header: %q", got)
		}
		var payload struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		if payload.Model != "gpt-test" {
			t.Fatalf("unexpected model: %s", payload.Model)
		}
		user := payload.Messages[len(payload.Messages)-1]
		if user.Role != "user" || !strings.Contains(user.Content, "in a formal style") {
			t.Fatalf("unexpected user message: %+v", user)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"rewrittenText\":\"Greetings.\"}"}}]}`))
	}))
	defer server.Close()

	client := newClient(&openAIClient{
		apiKey: "sk-test",
		model:  "gpt-test",
		base:   server.URL + "/v1",
		client: server.Client(),
	})

	got, err := client.ChangeStyle(context.Background(), "hey there", StyleFormal)
	if err != nil {
		t.Fatalf("change style failed: %v", err)
	}
	if got != "Greetings." {
		t.Fatalf("unexpected rewrite: %q", got)
	}
}

func TestNewFromEnvPicksBackend(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OLLAMA_HOST", "localhost:9999/")
	t.Setenv("OLLAMA_MODEL", "")
	t.Setenv("OPENAI_BASE_URL", "")
	t.Setenv("OPENAI_MODEL", "")

	c, err := NewFromEnv(Config{})
	if err != nil {
		t.Fatalf("NewFromEnv() error = %v", err)
	}
	backend, ok := c.(*client).backend.(*ollamaClient)
	if !ok {
		t.Fatalf("expected ollama backend, got %T", c.(*client).backend)
	}
	if backend.host != "http://localhost:9999" {
		t.Fatalf("unexpected host: %s", backend.host)
	}
	if backend.model != defaultOllamaModel {
		t.Fatalf("unexpected model: %s", backend.model)
	}
	if backend.client.Timeout != defaultLLMHTTPTimeout {
		t.Fatalf("expected default timeout %s, got %s", defaultLLMHTTPTimeout, backend.client.Timeout)
	}

	t.Setenv("OPENAI_API_KEY", "sk-env")
	c, err = NewFromEnv(Config{OpenAIModel: "gpt-custom"})
	if err != nil {
		t.Fatalf("NewFromEnv() error = %v", err)
	}
	openai, ok := c.(*client).backend.(*openAIClient)
	if !ok {
		t.Fatalf("expected openai backend, got %T", c.(*client).backend)
	}
	if openai.apiKey != "sk-env" || openai.model != "gpt-custom" || openai.base != defaultOpenAIBaseURL {
		t.Fatalf("unexpected openai config: %+v", openai)
	}
	if c.Name() != "OpenAI (gpt-custom)" {
		t.Fatalf("unexpected name: %s", c.Name())
	}
}

func TestPickHTTPClientHonorsCustomClient(t *testing.T) {
	custom := &http.Client{}
	if got := pickHTTPClient(custom); got != custom {
		t.Fatalf("expected custom client to be returned")
	}
}
