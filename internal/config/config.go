package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultWordGoal  = 500
	defaultAITimeout = 2 * time.Minute
)

// Config is the resolved runtime configuration.
type Config struct {
	// Open is an optional document to import at startup (path or URL).
	Open string
	// Progress selects the gamification store: file path, redis URL or "memory".
	Progress      string
	ProgressScope string
	LogFile       string
	Debug         bool
	WordGoal      int
	AITimeout     time.Duration
	NoAltScreen   bool
	LLM           LLMConfig
}

// LLMConfig selects and configures the generation backend.
type LLMConfig struct {
	OllamaHost    string
	OllamaModel   string
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
}

// Load reads an optional .env file, then environment variables, then flags.
// Flags win over the environment.
func Load(args []string) (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Progress:      getEnv("CHRONICLE_PROGRESS", defaultDataPath("progress.json")),
		ProgressScope: getEnv("CHRONICLE_PROGRESS_SCOPE", "chronicle"),
		LogFile:       getEnv("CHRONICLE_LOG_FILE", defaultDataPath("chronicle.log")),
		Debug:         getEnvAsBool("CHRONICLE_DEBUG", false),
		WordGoal:      getEnvAsInt("CHRONICLE_WORD_GOAL", defaultWordGoal),
		AITimeout:     getEnvAsDuration("CHRONICLE_AI_TIMEOUT", defaultAITimeout),
		LLM: LLMConfig{
			OllamaHost:    strings.TrimRight(os.Getenv("OLLAMA_HOST"), "/"),
			OllamaModel:   os.Getenv("OLLAMA_MODEL"),
			OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
			OpenAIBaseURL: strings.TrimRight(os.Getenv("OPENAI_BASE_URL"), "/"),
			OpenAIModel:   os.Getenv("OPENAI_MODEL"),
		},
	}

	fs := flag.NewFlagSet("chronicle", flag.ContinueOnError)
	fs.StringVar(&cfg.Open, "open", "", "document to import at startup (.txt, .html, .pdf or http(s) URL)")
	fs.StringVar(&cfg.Progress, "progress", cfg.Progress, "progress store: file path, redis:// URL or \"memory\"")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "path of the rotating JSON log")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "log debug entries")
	fs.IntVar(&cfg.WordGoal, "goal", cfg.WordGoal, "word goal for the session")
	fs.DurationVar(&cfg.AITimeout, "ai-timeout", cfg.AITimeout, "timeout for a single generation request")
	fs.BoolVar(&cfg.NoAltScreen, "no-alt-screen", false, "disable the alternate screen buffer")
	fs.StringVar(&cfg.LLM.OllamaModel, "llm-model", cfg.LLM.OllamaModel, "override the default Ollama model")
	fs.StringVar(&cfg.LLM.OllamaHost, "llm-endpoint", cfg.LLM.OllamaHost, "custom Ollama host (eg. http://localhost:11434)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.WordGoal <= 0 {
		return Config{}, fmt.Errorf("word goal must be positive, got %d", cfg.WordGoal)
	}
	if cfg.AITimeout < 0 {
		return Config{}, fmt.Errorf("ai timeout must not be negative, got %s", cfg.AITimeout)
	}
	return cfg, nil
}

func defaultDataPath(name string) string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "chronicle", name)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
