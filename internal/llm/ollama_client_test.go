package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newOllamaTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return newClient(&ollamaClient{
		host:   server.URL,
		model:  "qwen3-vl:8b",
		client: server.Client(),
	})
}

func TestOllamaClientRewriteToLength(t *testing.T) {
	client := newOllamaTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		var payload struct {
			Model  string `json:"model"`
			Prompt string `json:"prompt"`
			Stream bool   `json:"stream"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		if payload.Model != "qwen3-vl:8b" {
			t.Fatalf("expected model qwen3-vl:8b, got %s", payload.Model)
		}
		if !strings.Contains(payload.Prompt, "exactly 5 words long") {
			t.Fatalf("prompt missing length: %s", payload.Prompt)
		}
		if !strings.Contains(payload.Prompt, "Hello") {
			t.Fatalf("prompt missing text: %s", payload.Prompt)
		}
		if payload.Stream {
			t.Fatal("expected streaming to be disabled")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response":"{\"rewrittenText\":\"Hello there my dear friend\"}","done":true}`))
	})

	got, err := client.RewriteToLength(context.Background(), "Hello", 5)
	if err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}
	if got != "Hello there my dear friend" {
		t.Fatalf("unexpected rewrite: %q", got)
	}
}

func TestOllamaClientTranslateUsesLanguage(t *testing.T) {
	client := newOllamaTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Prompt string `json:"prompt"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		if !strings.Contains(payload.Prompt, "Translate the following text to Tamil:") {
			t.Fatalf("prompt missing language: %s", payload.Prompt)
		}
		w.Write([]byte(`{"response":"{\"translatedText\":\"வணக்கம்\"}","done":true}`))
	})

	got, err := client.Translate(context.Background(), "Hello", Tamil)
	if err != nil {
		t.Fatalf("translate failed: %v", err)
	}
	if got != "வணக்கம்" {
		t.Fatalf("unexpected translation: %q", got)
	}
}

func TestOllamaClientFetchReferences(t *testing.T) {
	client := newOllamaTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":"{\"references\":[\"Knuth (1984). Literate Programming.\",\"  \"]}","done":true}`))
	})

	refs, err := client.FetchReferences(context.Background(), "Programs should be written for people.")
	if err != nil {
		t.Fatalf("fetch references failed: %v", err)
	}
	if len(refs) != 1 || refs[0] != "Knuth (1984). Literate Programming." {
		t.Fatalf("unexpected references: %#v", refs)
	}
}

func TestOllamaClientWrapsFailuresInErrService(t *testing.T) {
	client := newOllamaTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	})

	_, err := client.Humanize(context.Background(), "stiff prose")
	if !errors.Is(err, ErrService) {
		t.Fatalf("expected ErrService, got %v", err)
	}
	if !strings.Contains(err.Error(), "model not found") {
		t.Fatalf("error should carry the backend message: %v", err)
	}
}

func TestOllamaClientRejectsEmptyResponse(t *testing.T) {
	client := newOllamaTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":"","done":true}`))
	})

	if _, err := client.ContinueWriting(context.Background(), "Once upon a time"); !errors.Is(err, ErrService) {
		t.Fatalf("expected ErrService, got %v", err)
	}
}

func TestClientRejectsEmptyInputWithoutCallingBackend(t *testing.T) {
	client := newOllamaTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("backend should not be called")
	})

	if _, err := client.Humanize(context.Background(), "   "); !errors.Is(err, ErrService) {
		t.Fatalf("expected ErrService, got %v", err)
	}
	if _, err := client.RewriteToLength(context.Background(), "text", 0); !errors.Is(err, ErrService) {
		t.Fatalf("expected ErrService for zero length, got %v", err)
	}
	if _, err := client.ChangeStyle(context.Background(), "text", Style("Baroque")); !errors.Is(err, ErrService) {
		t.Fatalf("expected ErrService for unknown style, got %v", err)
	}
}
