package editor

import "strings"

// Action is a state transition accepted by Store.Dispatch. apply runs with
// the store lock held and reports whether state changed.
type Action interface {
	apply(s *Store) bool
}

// SetContent replaces the document, typically with what the user typed.
type SetContent struct {
	Doc string
}

// AppendContent appends an AI continuation to the document.
type AppendContent struct {
	Fragment string
}

// ReplaceSelection splices Text over the captured selection. It is a no-op
// when the selected text is no longer present in the document.
type ReplaceSelection struct {
	Text string
	// Target replaces a selection captured earlier instead of the current one.
	Target Selection
}

// SetSelection records the current selection. An empty selection clears it.
type SetSelection struct {
	Selection Selection
}

// SetBusy toggles the in-flight flag. Setting it while already busy is rejected.
type SetBusy struct {
	Busy bool
}

// SetResult stores a free-text AI result and drops any references.
type SetResult struct {
	Text string
}

// SetReferences stores a reference list and drops any free-text result.
type SetReferences struct {
	List []string
}

// ClearResults empties both result slots.
type ClearResults struct{}

// SetWordGoal changes the session word target.
type SetWordGoal struct {
	Words int
}

func (a SetContent) apply(s *Store) bool {
	before := s.state.WordCount
	s.setContent(a.Doc)
	s.state.AppendMarker = Span{}
	s.award(before, s.state.WordCount)
	return true
}

func (a AppendContent) apply(s *Store) bool {
	if strings.TrimSpace(a.Fragment) == "" {
		return false
	}
	content := s.state.Content
	sep := separatorFor(content)
	start := len(content) + len(sep)
	s.setContent(content + sep + a.Fragment)
	s.state.AppendMarker = Span{Start: start, End: len(s.state.Content)}
	return true
}

func (a ReplaceSelection) apply(s *Store) bool {
	target := s.state.Selection
	if !a.Target.IsEmpty() {
		target = a.Target
	}
	span, ok := locate(s.state.Content, target)
	if !ok {
		s.logger.Debug("editor", "selection no longer present; replace skipped", map[string]any{
			"selection": previewText(target.Text, 40),
			"version":   s.state.Version,
		})
		return false
	}
	s.setContent(Splice(s.state.Content, span, a.Text))
	s.state.Selection = Selection{}
	s.state.AppendMarker = Span{}
	return true
}

func (a SetSelection) apply(s *Store) bool {
	sel := a.Selection
	if sel.IsEmpty() {
		if s.state.Selection.IsEmpty() {
			return false
		}
		s.state.Selection = Selection{}
		return true
	}
	if span, ok := locate(s.state.Content, sel); ok {
		sel.Span = span
	} else {
		sel.Span = Span{}
	}
	sel.Version = s.state.Version
	s.state.Selection = sel
	return true
}

func (a SetBusy) apply(s *Store) bool {
	if a.Busy == s.state.Busy {
		return false
	}
	s.state.Busy = a.Busy
	return true
}

func (a SetResult) apply(s *Store) bool {
	s.state.Result = a.Text
	s.state.References = nil
	return true
}

func (a SetReferences) apply(s *Store) bool {
	s.state.References = append([]string(nil), a.List...)
	s.state.Result = ""
	return true
}

func (ClearResults) apply(s *Store) bool {
	if s.state.Result == "" && len(s.state.References) == 0 {
		return false
	}
	s.state.Result = ""
	s.state.References = nil
	return true
}

func (a SetWordGoal) apply(s *Store) bool {
	if a.Words <= 0 || a.Words == s.state.WordGoal {
		return false
	}
	s.state.WordGoal = a.Words
	return true
}

func previewText(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit]) + "…"
}
