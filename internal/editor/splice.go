package editor

import "strings"

// CaptureSelection turns a pair of offsets from the rendering surface into a
// Selection. Offsets are clamped to the document and may be given in either
// order.
func CaptureSelection(doc string, start, end int, version uint64) Selection {
	span := clampSpan(doc, Span{Start: start, End: end})
	if span.IsEmpty() {
		return Selection{}
	}
	return Selection{Text: doc[span.Start:span.End], Span: span, Version: version}
}

// Splice replaces the bytes covered by span with text.
func Splice(doc string, span Span, text string) string {
	span = clampSpan(doc, span)
	return doc[:span.Start] + text + doc[span.End:]
}

// locate finds where sel currently lives in doc. Recorded offsets win when
// they still cover the selected text without cutting a tag; otherwise the
// first occurrence outside tags is used.
func locate(doc string, sel Selection) (Span, bool) {
	if sel.Text == "" {
		return Span{}, false
	}
	span := sel.Span
	if span.Start >= 0 && span.End <= len(doc) && span.Start < span.End && doc[span.Start:span.End] == sel.Text &&
		!cutsTag(anyTagRe.FindAllStringIndex(doc, -1), span) {
		return span, true
	}
	return FindText(doc, sel.Text)
}

// FindText returns the first occurrence of text in doc that does not start
// or end inside a tag. Occurrences may enclose whole tags, as a selection
// across paragraphs does.
func FindText(doc, text string) (Span, bool) {
	if text == "" {
		return Span{}, false
	}
	tags := anyTagRe.FindAllStringIndex(doc, -1)
	for from := 0; from <= len(doc)-len(text); {
		idx := strings.Index(doc[from:], text)
		if idx < 0 {
			break
		}
		span := Span{Start: from + idx, End: from + idx + len(text)}
		if !cutsTag(tags, span) {
			return span, true
		}
		from = span.Start + 1
	}
	return Span{}, false
}

func cutsTag(tags [][]int, span Span) bool {
	for _, tag := range tags {
		if (tag[0] < span.Start && span.Start < tag[1]) || (tag[0] < span.End && span.End < tag[1]) {
			return true
		}
	}
	return false
}

func clampSpan(doc string, span Span) Span {
	if span.Start > span.End {
		span.Start, span.End = span.End, span.Start
	}
	span.Start = clampInt(span.Start, 0, len(doc))
	span.End = clampInt(span.End, 0, len(doc))
	return span
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// separatorFor returns what goes between content and an appended fragment.
func separatorFor(content string) string {
	if content == "" {
		return ""
	}
	last := content[len(content)-1]
	switch last {
	case ' ', '\t', '\n', '\r', '.', '!', '?':
		return ""
	}
	if strings.HasSuffix(content, "…") {
		return ""
	}
	return " "
}
