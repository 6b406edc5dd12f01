package tui

import "strings"

// Rows outside the editor: hero, status bar, selection and notice lines.
const chromeHeight = 6

// Rows kept free below the editor for result and help panels.
const panelReserve = 8

type pageLayout struct {
	windowWidth  int
	windowHeight int
	editorWidth  int
	editorHeight int
}

func newPageLayout() pageLayout {
	return pageLayout{
		editorWidth:  80,
		editorHeight: 12,
	}
}

func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	l.editorWidth = width - editorHorizontalPadding
	if l.editorWidth < minEditorWidth {
		l.editorWidth = minEditorWidth
	}
	l.editorHeight = height - chromeHeight - panelReserve
	if l.editorHeight < minEditorHeight {
		l.editorHeight = minEditorHeight
	}
}

func (l pageLayout) wrapWidth(padding int) int {
	width := l.editorWidth
	if width <= 0 {
		width = 80
	}
	if padding < 0 {
		padding = 0
	}
	available := width - padding
	if available < 20 {
		available = 20
	}
	return available
}

func indentMultiline(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}

func joinLines(parts ...string) string {
	return strings.Join(parts, "\n")
}
