package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/chronicle/internal/assist"
)

// startAssist claims the dispatcher for req and returns the command that runs
// the job off the event loop. Rejections have already raised a notice.
func (m *model) startAssist(req assist.Request) tea.Cmd {
	job, err := m.dispatcher.Start(req)
	if err != nil {
		return m.noticeTimer()
	}
	m.errorMessage = ""
	m.infoMessage = workingLabel(req.Capability)
	return tea.Batch(runJobCmd(job), m.spinner.Tick)
}

func runJobCmd(job *assist.Job) tea.Cmd {
	return func() tea.Msg {
		return completionMsg{completion: job.Run(context.Background())}
	}
}

func workingLabel(c assist.Capability) string {
	switch c {
	case assist.ContinueWriting:
		return "Continuing your draft…"
	case assist.RewriteToLength:
		return "Rewriting the selection…"
	case assist.ChangeStyle:
		return "Restyling the selection…"
	case assist.Humanize:
		return "Humanizing the selection…"
	case assist.Translate:
		return "Translating the selection…"
	case assist.FetchReferences:
		return "Looking for references…"
	default:
		return "Working…"
	}
}
