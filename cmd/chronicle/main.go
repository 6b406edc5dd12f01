package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/csheth/chronicle/internal/config"
	"github.com/csheth/chronicle/internal/docimport"
	"github.com/csheth/chronicle/internal/editor"
	"github.com/csheth/chronicle/internal/llm"
	"github.com/csheth/chronicle/internal/logging"
	"github.com/csheth/chronicle/internal/progress"
	"github.com/csheth/chronicle/internal/streak"
	"github.com/csheth/chronicle/internal/tui"
)

const startupTimeout = 2 * time.Minute

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Println("invalid configuration:", err)
		os.Exit(2)
	}

	logger := logging.NewFile(cfg.LogFile, cfg.Debug, uuid.New().String())
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	store := progress.Open(cfg.Progress, cfg.ProgressScope)
	saved, err := store.Load(ctx)
	if err != nil {
		logger.Warn("main", "progress unavailable, starting fresh", map[string]any{"error": err, "location": cfg.Progress})
	}
	today := streak.DateOf(time.Now())
	current := streak.Load(saved, today)
	logger.Info("main", "session started", map[string]any{
		"xp":     current.XP,
		"streak": current.Streak,
		"saved":  saved.Streak,
	})

	var content string
	if cfg.Open != "" {
		content, err = docimport.New(docimport.Options{}).Load(ctx, cfg.Open)
		if err != nil {
			fmt.Println("failed to open document:", err)
			os.Exit(1)
		}
		logger.Info("main", "document imported", map[string]any{"source": cfg.Open, "bytes": len(content)})
	}

	llmClient, err := llm.NewFromEnv(llm.Config{
		OllamaHost:    cfg.LLM.OllamaHost,
		OllamaModel:   cfg.LLM.OllamaModel,
		OpenAIKey:     cfg.LLM.OpenAIKey,
		OpenAIBaseURL: cfg.LLM.OpenAIBaseURL,
		OpenAIModel:   cfg.LLM.OpenAIModel,
	})
	if err != nil {
		fmt.Println("LLM configuration error:", err)
		os.Exit(1)
	}
	logger.Info("main", "llm backend selected", map[string]any{"backend": llmClient.Name()})

	doc := editor.NewStore(editor.Options{
		Content:  content,
		WordGoal: cfg.WordGoal,
		Progress: current,
		Saver:    store,
		Logger:   logger,
	})

	opts := []tea.ProgramOption{}
	if !cfg.NoAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Store:     doc,
			LLM:       llmClient,
			Logger:    logger,
			AITimeout: cfg.AITimeout,
		}),
		opts...,
	)

	if _, err := program.Run(); err != nil {
		logger.Error("main", "program error", map[string]any{"error": err})
		fmt.Println("program error:", err)
		os.Exit(1)
	}
}
