package llm

import (
	"context"
	"fmt"
	"strings"
)

// completer sends a single prompt to a backend and returns its raw text.
type completer interface {
	complete(ctx context.Context, prompt string) (string, error)
	Name() string
}

// client turns the writing capabilities into prompts for any completer.
type client struct {
	backend completer
}

func newClient(backend completer) *client {
	return &client{backend: backend}
}

func (c *client) Name() string {
	return c.backend.Name()
}

func (c *client) ContinueWriting(ctx context.Context, text string) (string, error) {
	return c.text(ctx, "continue writing", text, fieldExpanded, buildContinuePrompt)
}

func (c *client) RewriteToLength(ctx context.Context, text string, words int) (string, error) {
	if words <= 0 {
		return "", fmt.Errorf("%w: rewrite to length: target must be positive, got %d", ErrService, words)
	}
	return c.text(ctx, "rewrite to length", text, fieldRewritten, func(input string) string {
		return buildRewritePrompt(input, words)
	})
}

func (c *client) ChangeStyle(ctx context.Context, text string, style Style) (string, error) {
	if _, err := ParseStyle(string(style)); err != nil {
		return "", fmt.Errorf("%w: change style: %w", ErrService, err)
	}
	return c.text(ctx, "change style", text, fieldRewritten, func(input string) string {
		return buildStylePrompt(input, style)
	})
}

func (c *client) Humanize(ctx context.Context, text string) (string, error) {
	return c.text(ctx, "humanize", text, fieldHumanized, buildHumanizePrompt)
}

func (c *client) Translate(ctx context.Context, text string, language Language) (string, error) {
	if _, err := ParseLanguage(string(language)); err != nil {
		return "", fmt.Errorf("%w: translate: %w", ErrService, err)
	}
	return c.text(ctx, "translate", text, fieldTranslated, func(input string) string {
		return buildTranslatePrompt(input, language)
	})
}

func (c *client) FetchReferences(ctx context.Context, text string) ([]string, error) {
	input := clipText(text, maxPromptChars)
	if input == "" {
		return nil, fmt.Errorf("%w: fetch references: text empty", ErrService)
	}
	raw, err := c.backend.complete(ctx, buildReferencesPrompt(input))
	if err != nil {
		return nil, fmt.Errorf("%w: fetch references: %w", ErrService, err)
	}
	refs, err := parseReferences(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch references: %w", ErrService, err)
	}
	return refs, nil
}

func (c *client) text(ctx context.Context, op, text, field string, build func(string) string) (string, error) {
	input := clipText(text, maxPromptChars)
	if input == "" {
		return "", fmt.Errorf("%w: %s: text empty", ErrService, op)
	}
	raw, err := c.backend.complete(ctx, build(input))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrService, op, err)
	}
	out, err := parseTextField(raw, field)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrService, op, err)
	}
	return strings.TrimSpace(out), nil
}
