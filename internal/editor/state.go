package editor

import (
	"github.com/csheth/chronicle/internal/metrics"
	"github.com/csheth/chronicle/internal/streak"
)

// Span is a half-open byte range [Start, End) into the document.
type Span struct {
	Start int
	End   int
}

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.End <= s.Start
}

// Selection is the text operand for AI actions: the selected substring and
// where it sat in the document at the captured version.
type Selection struct {
	Text    string
	Span    Span
	Version uint64
}

// IsEmpty reports whether there is no text operand.
func (s Selection) IsEmpty() bool {
	return s.Text == ""
}

// State is a snapshot of everything the editor owns. Metrics are derived from
// Content and are never set directly.
type State struct {
	Content        string
	Version        uint64
	WordCount      int
	ReadingMinutes int
	Empty          bool
	WordGoal       int

	Selection Selection
	// AppendMarker covers the latest AI continuation so views can highlight it.
	AppendMarker Span

	Progress streak.State

	Busy       bool
	Result     string
	References []string
}

// GoalProgress returns the completed share of the word goal in [0, 1].
func (s State) GoalProgress() float64 {
	return metrics.GoalProgress(s.WordCount, s.WordGoal)
}

func (s State) clone() State {
	if s.References != nil {
		s.References = append([]string(nil), s.References...)
	}
	return s
}
