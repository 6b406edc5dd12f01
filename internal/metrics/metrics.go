package metrics

import (
	"html"
	"math"
	"regexp"
	"strings"
)

// WordsPerMinute is the reading speed used for reading-time estimates.
const WordsPerMinute = 200

var (
	tagRe        = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	selfCloseRe  = regexp.MustCompile(`<br\s*/>`)
)

// emptyShapes lists what a contentEditable surface reports when it holds no
// authored text. Entries are compared after normalizeShape.
var emptyShapes = map[string]struct{}{
	"":                {},
	"<br>":            {},
	"<p></p>":         {},
	"<p><br></p>":     {},
	"<div></div>":     {},
	"<div><br></div>": {},
}

// StripMarkup removes tags and entities and collapses whitespace.
func StripMarkup(doc string) string {
	text := tagRe.ReplaceAllString(doc, " ")
	text = html.UnescapeString(text)
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// IsEmpty reports whether doc carries no authored text. Both the stripped
// content and the raw shape are checked, since a lone line break looks
// non-empty to a naive length test.
func IsEmpty(doc string) bool {
	if StripMarkup(doc) != "" {
		return false
	}
	_, ok := emptyShapes[normalizeShape(doc)]
	return ok
}

// WordCount returns the number of whitespace separated words in doc.
func WordCount(doc string) int {
	if IsEmpty(doc) {
		return 0
	}
	return len(strings.Fields(StripMarkup(doc)))
}

// ReadingTimeMinutes estimates reading time for doc in whole minutes.
func ReadingTimeMinutes(doc string) int {
	return ReadingMinutes(WordCount(doc))
}

// ReadingMinutes applies the reading-time rule to an existing word count.
func ReadingMinutes(words int) int {
	if words <= 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / WordsPerMinute))
}

// GoalProgress reports how far words is towards goal, clamped to [0, 1].
func GoalProgress(words, goal int) float64 {
	if goal <= 0 || words <= 0 {
		return 0
	}
	ratio := float64(words) / float64(goal)
	if ratio > 1 {
		return 1
	}
	return ratio
}

func normalizeShape(doc string) string {
	shape := strings.ToLower(whitespaceRe.ReplaceAllString(doc, ""))
	return selfCloseRe.ReplaceAllString(shape, "<br>")
}
