package tui

import (
	"time"

	"github.com/csheth/chronicle/internal/assist"
)

type overlay int

const (
	overlayNone overlay = iota
	overlayComposer
	overlayHelp
)

const heroTagline = "Write every day. Let the assistant carry the tedious parts."

const (
	minEditorWidth          = 40
	minEditorHeight         = 5
	editorHorizontalPadding = 4
	noticeLifetime          = 6 * time.Second
	selectionPreviewLimit   = 60
)

const composerPlaceholder = "rewrite 50 • style formal • translate hindi • refs • goal 800 • select <text>"

// completionMsg carries a finished AI job back onto the event loop.
type completionMsg struct {
	completion assist.Completion
}

// noticeExpiredMsg clears a notice unless a newer one replaced it.
type noticeExpiredMsg struct {
	seq int
}
