package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/chronicle/internal/assist"
	"github.com/csheth/chronicle/internal/editor"
	"github.com/csheth/chronicle/internal/llm"
	"github.com/csheth/chronicle/internal/logging"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Store  *editor.Store
	LLM    llm.Client
	Logger logging.Logger

	// AITimeout bounds each generation request. Zero disables it.
	AITimeout time.Duration
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	if config.Logger == nil {
		config.Logger = logging.Nop()
	}

	area := textarea.New()
	area.Placeholder = "Start writing…"
	area.CharLimit = 0
	area.ShowLineNumbers = false
	area.SetWidth(80)
	area.SetHeight(12)
	area.Focus()

	composer := textinput.New()
	composer.Placeholder = composerPlaceholder
	composer.CharLimit = 400
	composer.Width = 70

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := &model{
		config:      config,
		store:       config.Store,
		logger:      config.Logger,
		textarea:    area,
		composer:    composer,
		spinner:     spin,
		layout:      newPageLayout(),
		infoMessage: "Start typing. F1 shows shortcuts and tips.",
	}
	m.dispatcher = assist.New(assist.Options{
		Store:    config.Store,
		Client:   config.LLM,
		Notifier: m,
		Logger:   config.Logger,
		Timeout:  config.AITimeout,
	})
	m.syncEditorFromStore()
	return m
}

type model struct {
	config     Config
	store      *editor.Store
	dispatcher *assist.Dispatcher
	logger     logging.Logger

	textarea textarea.Model
	composer textinput.Model
	spinner  spinner.Model
	layout   pageLayout
	overlay  overlay

	// lastText is the editor value most recently pushed into the store.
	lastText string

	infoMessage  string
	errorMessage string
	noticeSeq    int
}

func (m *model) Init() tea.Cmd {
	return textarea.Blink
}

// Notify receives dispatcher notices. It always runs inside Update.
func (m *model) Notify(n assist.Notice) {
	m.noticeSeq++
	if n.Level == assist.NoticeError {
		m.errorMessage = n.Message
		m.infoMessage = ""
		return
	}
	m.infoMessage = n.Message
	m.errorMessage = ""
}

func (m *model) notify(isError bool, message string) tea.Cmd {
	level := assist.NoticeInfo
	if isError {
		level = assist.NoticeError
	}
	m.Notify(assist.Notice{Level: level, Message: message})
	return m.noticeTimer()
}

func (m *model) noticeTimer() tea.Cmd {
	seq := m.noticeSeq
	return tea.Tick(noticeLifetime, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.store.State().Busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case completionMsg:
		m.infoMessage = ""
		before := m.store.State().Version
		if m.dispatcher.Complete(msg.completion) && m.store.State().Version != before {
			m.syncEditorFromStore()
		}
		return m, m.noticeTimer()
	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq && !m.store.State().Busy {
			m.infoMessage = ""
			m.errorMessage = ""
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.textarea.SetWidth(m.layout.editorWidth)
		m.textarea.SetHeight(m.layout.editorHeight)
		m.composer.Width = m.layout.editorWidth - 4
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	if m.overlay == overlayComposer {
		m.composer, cmd = m.composer.Update(msg)
	} else {
		m.textarea, cmd = m.textarea.Update(msg)
	}
	return m, cmd
}

func (m *model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "f1":
		if m.overlay == overlayHelp {
			m.overlay = overlayNone
		} else {
			m.closeComposer()
			m.overlay = overlayHelp
		}
		return m, nil
	}

	if m.overlay == overlayComposer {
		return m.handleComposerKey(key)
	}

	switch key.String() {
	case "esc":
		if m.overlay == overlayHelp {
			m.overlay = overlayNone
			return m, nil
		}
		if m.store.Dispatch(editor.SetSelection{}) {
			return m, m.notify(false, "Selection cleared.")
		}
		return m, nil
	case "ctrl+g":
		return m, m.startAssist(assist.Request{Capability: assist.ContinueWriting})
	case "ctrl+t":
		m.overlay = overlayComposer
		m.textarea.Blur()
		m.composer.SetValue("")
		m.composer.Focus()
		return m, textinput.Blink
	case "ctrl+l":
		return m, m.selectCurrentLine()
	case "ctrl+a":
		return m, m.applyResult()
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(key)
	m.syncStoreFromEditor()
	return m, cmd
}

func (m *model) handleComposerKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.closeComposer()
		return m, nil
	case "enter":
		input := m.composer.Value()
		parsed, err := parseCommand(input)
		if err != nil {
			m.logger.Debug("tui", "command rejected", map[string]any{"input": input, "error": err})
			return m, m.notify(true, err.Error())
		}
		m.closeComposer()
		return m, m.runCommand(parsed)
	}
	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(key)
	return m, cmd
}

func (m *model) closeComposer() {
	if m.overlay == overlayComposer {
		m.overlay = overlayNone
	}
	m.composer.SetValue("")
	m.composer.Blur()
	m.textarea.Focus()
}

// syncStoreFromEditor pushes user edits into the store as paragraph markup.
func (m *model) syncStoreFromEditor() {
	value := m.textarea.Value()
	if value == m.lastText {
		return
	}
	m.lastText = value
	m.store.Dispatch(editor.SetContent{Doc: editor.FromParagraphs(value)})
}

// syncEditorFromStore reloads the editor after the store changed on its own,
// for example when an AI result was merged.
func (m *model) syncEditorFromStore() {
	m.textarea.SetValue(editor.Paragraphs(m.store.State().Content))
	m.lastText = m.textarea.Value()
}

func (m *model) backendName() string {
	if m.config.LLM == nil {
		return "no model"
	}
	return m.config.LLM.Name()
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

func preview(text string, limit int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "…"
}
