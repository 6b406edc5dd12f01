package config

import (
	"testing"
	"time"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("CHRONICLE_PROGRESS", "memory")
	t.Setenv("CHRONICLE_WORD_GOAL", "750")
	t.Setenv("CHRONICLE_AI_TIMEOUT", "45s")
	t.Setenv("OLLAMA_HOST", "http://ollama:11434/")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Progress != "memory" {
		t.Fatalf("Progress = %q", cfg.Progress)
	}
	if cfg.WordGoal != 750 {
		t.Fatalf("WordGoal = %d", cfg.WordGoal)
	}
	if cfg.AITimeout != 45*time.Second {
		t.Fatalf("AITimeout = %s", cfg.AITimeout)
	}
	if cfg.LLM.OllamaHost != "http://ollama:11434" {
		t.Fatalf("OllamaHost = %q", cfg.LLM.OllamaHost)
	}
	if cfg.LLM.OpenAIKey != "sk-test" {
		t.Fatalf("OpenAIKey = %q", cfg.LLM.OpenAIKey)
	}
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("CHRONICLE_WORD_GOAL", "750")

	cfg, err := Load([]string{"-goal", "120", "-open", "draft.txt", "-no-alt-screen"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.WordGoal != 120 || cfg.Open != "draft.txt" || !cfg.NoAltScreen {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadRejectsNonPositiveGoal(t *testing.T) {
	if _, err := Load([]string{"-goal", "0"}); err == nil {
		t.Fatal("expected error for zero goal")
	}
}

func TestMalformedEnvironmentFallsBack(t *testing.T) {
	t.Setenv("CHRONICLE_WORD_GOAL", "lots")
	t.Setenv("CHRONICLE_AI_TIMEOUT", "soon")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.WordGoal != defaultWordGoal || cfg.AITimeout != defaultAITimeout {
		t.Fatalf("expected defaults, got goal=%d timeout=%s", cfg.WordGoal, cfg.AITimeout)
	}
}
