package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/chronicle/internal/editor"
	"github.com/csheth/chronicle/internal/guide"
	"github.com/csheth/chronicle/internal/metrics"
)

var (
	titleStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff8c00"))
	taglineStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#d8c3a5")).Italic(true)
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	statusBarStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	goalMetStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#a3be8c")).Padding(0, 1)
	selectionStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#bde0fe"))
	appendedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#a3be8c")).Italic(true)
	keyStyle           = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	keyDescStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
	legendBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(1, 2)
	helpBoxStyle       = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#7f5af0")).Padding(1, 2)
	resultBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#ff8c00")).Padding(0, 1)
)

func (m *model) View() string {
	state := m.store.State()
	parts := []string{
		m.heroView(),
		m.textarea.View(),
		m.statusBarView(state),
		m.selectionView(state),
		m.noticeView(state),
		m.appendedView(state),
		m.resultView(state),
	}
	switch m.overlay {
	case overlayComposer:
		parts = append(parts, m.composerPanel())
	case overlayHelp:
		parts = append(parts, m.keyLegendView(), m.helpView(state))
	}
	return joinNonEmpty(parts)
}

func (m *model) heroView() string {
	title := titleStyle.Render("Chronicle")
	backend := helperStyle.Render("· " + m.backendName())
	return lipgloss.JoinHorizontal(lipgloss.Top, title, " ", backend) + "\n" + taglineStyle.Render(heroTagline)
}

func (m *model) statusBarView(state editor.State) string {
	cells := []string{
		pluralize(state.WordCount, "word", "words"),
		fmt.Sprintf("%d min read", state.ReadingMinutes),
		fmt.Sprintf("goal %d%% of %d", int(state.GoalProgress()*100), state.WordGoal),
		fmt.Sprintf("%d XP", state.Progress.XP),
		"streak " + pluralize(state.Progress.Streak, "day", "days"),
	}
	if state.Busy {
		cells = append(cells, m.spinner.View()+" AI working")
	}
	style := statusBarStyle
	if state.GoalProgress() >= 1 {
		style = goalMetStyle
	}
	return style.Render(strings.Join(cells, " │ "))
}

func (m *model) selectionView(state editor.State) string {
	if state.Selection.IsEmpty() {
		return helperStyle.Render("No selection. Ctrl+L selects the current line.")
	}
	text := preview(metrics.StripMarkup(state.Selection.Text), selectionPreviewLimit)
	return helperStyle.Render("Selected: ") + selectionStyle.Render(text)
}

func (m *model) noticeView(state editor.State) string {
	if m.errorMessage != "" {
		return errorStyle.Render(m.errorMessage)
	}
	if m.infoMessage == "" {
		return ""
	}
	message := m.infoMessage
	if state.Busy {
		message = fmt.Sprintf("%s %s", m.spinner.View(), message)
	}
	return helperStyle.Render(message)
}

// appendedView echoes the latest continuation since the editor cannot style
// ranges of its own text.
func (m *model) appendedView(state editor.State) string {
	marker := state.AppendMarker
	if marker.IsEmpty() || marker.End > len(state.Content) {
		return ""
	}
	added := metrics.StripMarkup(state.Content[marker.Start:marker.End])
	if strings.TrimSpace(added) == "" {
		return ""
	}
	body := wordwrap.String(strings.Join(strings.Fields(added), " "), m.layout.wrapWidth(4))
	return joinLines(sectionHeaderStyle.Render("Just added"), appendedStyle.Render(indentMultiline(body, "  ")))
}

func (m *model) resultView(state editor.State) string {
	width := m.layout.wrapWidth(6)
	switch {
	case len(state.References) > 0:
		lines := []string{sectionHeaderStyle.Render("References")}
		for i, ref := range state.References {
			entry := wordwrap.String(fmt.Sprintf("%d. %s", i+1, ref), width)
			lines = append(lines, indentMultiline(entry, "  "))
		}
		lines = append(lines, helperStyle.Render("`clear` dismisses the list."))
		return resultBoxStyle.Render(strings.Join(lines, "\n"))
	case state.Result != "":
		body := wordwrap.String(state.Result, width)
		return resultBoxStyle.Render(joinLines(
			sectionHeaderStyle.Render("Result"),
			indentMultiline(body, "  "),
			helperStyle.Render("Ctrl+A replaces the selection • `clear` dismisses."),
		))
	}
	return ""
}

func (m *model) composerPanel() string {
	return joinLines(
		sectionHeaderStyle.Render("Command"),
		m.composer.View(),
		helperStyle.Render("Enter runs • Esc cancels"),
	)
}

type keyHint struct {
	Key         string
	Description string
}

func (m *model) keyLegendView() string {
	hints := []keyHint{
		{"Ctrl+G", "Continue writing"},
		{"Ctrl+L", "Select line"},
		{"Ctrl+T", "Command"},
		{"Ctrl+A", "Apply result"},
		{"Esc", "Clear selection"},
		{"F1", "Toggle help"},
		{"Ctrl+C", "Quit"},
	}
	rows := []string{sectionHeaderStyle.Render("Shortcuts")}
	const columns = 3
	for i := 0; i < len(hints); i += columns {
		end := i + columns
		if end > len(hints) {
			end = len(hints)
		}
		var cells []string
		for _, hint := range hints[i:end] {
			key := keyStyle.Render(hint.Key)
			desc := keyDescStyle.Render(" " + hint.Description + "  ")
			cells = append(cells, lipgloss.JoinHorizontal(lipgloss.Top, key, desc))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return legendBoxStyle.Render(strings.Join(rows, "\n"))
}

func (m *model) helpView(state editor.State) string {
	steps := guide.Build(guide.Metadata{
		Words:    state.WordCount,
		WordGoal: state.WordGoal,
		Streak:   state.Progress.Streak,
	})
	width := m.layout.wrapWidth(10)
	lines := []string{sectionHeaderStyle.Render("Writing Guide")}
	for _, step := range steps {
		lines = append(lines, keyDescStyle.Render("• "+step.Title))
		lines = append(lines, helperStyle.Render(indentMultiline(wordwrap.String(step.Description, width), "  ")))
	}
	lines = append(lines, helperStyle.Render("Commands: "+composerPlaceholder))
	return helpBoxStyle.Render(strings.Join(lines, "\n"))
}
