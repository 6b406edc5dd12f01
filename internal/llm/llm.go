package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultOllamaHost    = "http://localhost:11434"
	defaultOllamaModel   = "ministral-3:latest"
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-4o-mini"
	// Drafts are short; the cap only keeps a pasted novel from blowing the context window.
	maxPromptChars = 60_000
)

const defaultLLMHTTPTimeout = 3 * time.Minute

// ErrService marks every failure that originates in the generation backend,
// including responses that could not be parsed.
var ErrService = errors.New("generation service error")

// Config describes how to build an LLM client. Empty fields fall back to the
// environment and then to built-in defaults.
type Config struct {
	OllamaHost    string
	OllamaModel   string
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
	HTTPClient    *http.Client
}

// Client exposes one method per writing capability.
type Client interface {
	ContinueWriting(ctx context.Context, text string) (string, error)
	RewriteToLength(ctx context.Context, text string, words int) (string, error)
	ChangeStyle(ctx context.Context, text string, style Style) (string, error)
	Humanize(ctx context.Context, text string) (string, error)
	Translate(ctx context.Context, text string, language Language) (string, error)
	FetchReferences(ctx context.Context, text string) ([]string, error)
	Name() string
}

// Style is a target register for ChangeStyle.
type Style string

const (
	StyleFormal Style = "Formal"
	StyleCasual Style = "Casual"
	StyleModern Style = "Modern"
)

// Styles lists every supported style in display order.
var Styles = []Style{StyleFormal, StyleCasual, StyleModern}

// ParseStyle matches value case-insensitively against Styles.
func ParseStyle(value string) (Style, error) {
	for _, s := range Styles {
		if strings.EqualFold(strings.TrimSpace(value), string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown style %q", value)
}

// Language is a translation target.
type Language string

const (
	Hindi   Language = "Hindi"
	Tamil   Language = "Tamil"
	Bengali Language = "Bengali"
	Telugu  Language = "Telugu"
	Marathi Language = "Marathi"
	Urdu    Language = "Urdu"
)

// Languages lists every supported translation target in display order.
var Languages = []Language{Hindi, Tamil, Bengali, Telugu, Marathi, Urdu}

// ParseLanguage matches value case-insensitively against Languages.
func ParseLanguage(value string) (Language, error) {
	for _, l := range Languages {
		if strings.EqualFold(strings.TrimSpace(value), string(l)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown language %q", value)
}

// NewFromEnv builds a client from cfg, filling gaps from the environment.
// An OpenAI-compatible backend is used when an API key is available,
// otherwise a local Ollama server.
func NewFromEnv(cfg Config) (Client, error) {
	httpClient := pickHTTPClient(cfg.HTTPClient)

	key := firstNonEmpty(cfg.OpenAIKey, os.Getenv("OPENAI_API_KEY"))
	if key != "" {
		base := strings.TrimRight(firstNonEmpty(cfg.OpenAIBaseURL, os.Getenv("OPENAI_BASE_URL"), defaultOpenAIBaseURL), "/")
		if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
			return nil, fmt.Errorf("openai base url must be http(s): %q", base)
		}
		return newClient(&openAIClient{
			apiKey: key,
			model:  firstNonEmpty(cfg.OpenAIModel, os.Getenv("OPENAI_MODEL"), defaultOpenAIModel),
			base:   base,
			client: httpClient,
		}), nil
	}

	host := strings.TrimRight(firstNonEmpty(cfg.OllamaHost, os.Getenv("OLLAMA_HOST"), defaultOllamaHost), "/")
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return newClient(&ollamaClient{
		host:   host,
		model:  firstNonEmpty(cfg.OllamaModel, os.Getenv("OLLAMA_MODEL"), defaultOllamaModel),
		client: httpClient,
	}), nil
}

func pickHTTPClient(custom *http.Client) *http.Client {
	if custom != nil {
		return custom
	}
	// Local models can take well over a minute; callers cancel through ctx.
	return &http.Client{Timeout: defaultLLMHTTPTimeout}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
