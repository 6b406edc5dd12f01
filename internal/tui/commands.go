package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/chronicle/internal/assist"
	"github.com/csheth/chronicle/internal/editor"
	"github.com/csheth/chronicle/internal/llm"
)

type commandKind int

const (
	commandAssist commandKind = iota
	commandGoal
	commandSelect
	commandApply
	commandClear
)

// command is a parsed composer line.
type command struct {
	kind    commandKind
	request assist.Request
	goal    int
	text    string
}

// parseCommand understands the composer language:
//
//	continue | rewrite [words] | style <formal|casual|modern> | humanize
//	translate <language> | refs | goal <words> | select <text> | apply | clear
func parseCommand(input string) (command, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return command{}, fmt.Errorf("type a command, for example `rewrite 50`")
	}
	name, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(name) {
	case "continue", "cont":
		return assistCommand(assist.Request{Capability: assist.ContinueWriting}), nil
	case "rewrite":
		words := assist.DefaultRewriteWords
		if rest != "" {
			n, err := strconv.Atoi(rest)
			if err != nil || n <= 0 {
				return command{}, fmt.Errorf("rewrite needs a positive word count, got %q", rest)
			}
			words = n
		}
		return assistCommand(assist.Request{Capability: assist.RewriteToLength, Words: words}), nil
	case "style":
		style, err := llm.ParseStyle(rest)
		if err != nil {
			return command{}, fmt.Errorf("style must be one of %s", joinStyles())
		}
		return assistCommand(assist.Request{Capability: assist.ChangeStyle, Style: style}), nil
	case "humanize", "human":
		return assistCommand(assist.Request{Capability: assist.Humanize}), nil
	case "translate":
		language, err := llm.ParseLanguage(rest)
		if err != nil {
			return command{}, fmt.Errorf("translate supports %s", joinLanguages())
		}
		return assistCommand(assist.Request{Capability: assist.Translate, Language: language}), nil
	case "refs", "references":
		return assistCommand(assist.Request{Capability: assist.FetchReferences}), nil
	case "goal":
		n, err := strconv.Atoi(rest)
		if err != nil || n <= 0 {
			return command{}, fmt.Errorf("goal needs a positive word count, got %q", rest)
		}
		return command{kind: commandGoal, goal: n}, nil
	case "select":
		if rest == "" {
			return command{}, fmt.Errorf("select needs the text to select")
		}
		return command{kind: commandSelect, text: rest}, nil
	case "apply":
		return command{kind: commandApply}, nil
	case "clear":
		return command{kind: commandClear}, nil
	default:
		return command{}, fmt.Errorf("unknown command %q", name)
	}
}

func assistCommand(req assist.Request) command {
	return command{kind: commandAssist, request: req}
}

func joinStyles() string {
	names := make([]string, 0, len(llm.Styles))
	for _, s := range llm.Styles {
		names = append(names, strings.ToLower(string(s)))
	}
	return strings.Join(names, ", ")
}

func joinLanguages() string {
	names := make([]string, 0, len(llm.Languages))
	for _, l := range llm.Languages {
		names = append(names, strings.ToLower(string(l)))
	}
	return strings.Join(names, ", ")
}

func (m *model) runCommand(cmd command) tea.Cmd {
	switch cmd.kind {
	case commandAssist:
		return m.startAssist(cmd.request)
	case commandGoal:
		m.store.Dispatch(editor.SetWordGoal{Words: cmd.goal})
		return m.notify(false, fmt.Sprintf("Word goal set to %d.", cmd.goal))
	case commandSelect:
		return m.selectText(cmd.text)
	case commandApply:
		return m.applyResult()
	case commandClear:
		m.store.Dispatch(editor.ClearResults{})
		return m.notify(false, "Results cleared.")
	}
	return nil
}

// selectText selects the first occurrence of plain text in the document.
func (m *model) selectText(text string) tea.Cmd {
	needle := editor.EscapeText(text)
	if _, ok := editor.FindText(m.store.State().Content, needle); !ok {
		return m.notify(true, fmt.Sprintf("%q is not in the document.", text))
	}
	m.store.Dispatch(editor.SetSelection{Selection: editor.Selection{Text: needle}})
	return nil
}

func (m *model) selectCurrentLine() tea.Cmd {
	lines := strings.Split(m.textarea.Value(), "\n")
	row := m.textarea.Line()
	if row < 0 || row >= len(lines) || strings.TrimSpace(lines[row]) == "" {
		return m.notify(false, "The current line is empty.")
	}
	return m.selectText(strings.TrimSpace(lines[row]))
}

// applyResult swaps the last free-text result in over the selection.
func (m *model) applyResult() tea.Cmd {
	state := m.store.State()
	switch {
	case state.Busy:
		return m.notify(false, "Wait for the current AI request to finish.")
	case state.Result == "":
		return m.notify(false, "There is no result to apply.")
	case state.Selection.IsEmpty():
		return m.notify(false, "Select the text the result should replace.")
	}
	if !m.store.Dispatch(editor.ReplaceSelection{Text: editor.EscapeText(state.Result)}) {
		return m.notify(true, "The selected text is no longer in the document.")
	}
	m.store.Dispatch(editor.ClearResults{})
	m.syncEditorFromStore()
	return m.notify(false, "Result applied.")
}
