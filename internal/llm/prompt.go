package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

const (
	fieldExpanded   = "expandedText"
	fieldRewritten  = "rewrittenText"
	fieldHumanized  = "humanizedText"
	fieldTranslated = "translatedText"
	fieldReferences = "references"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	fenceRe      = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")
	listMarkerRe = regexp.MustCompile(`^(?:[-*•]+|\d+[.)])\s*`)
)

func clipText(text string, limit int) string {
	text = strings.TrimSpace(text)
	if limit <= 0 || len(text) <= limit {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

func jsonInstruction(field string) string {
	if field == fieldReferences {
		return `Return ONLY JSON formatted as {"references":["Author (Year). Title. Venue."]} with non-empty strings.`
	}
	return fmt.Sprintf(`Return ONLY JSON formatted as {%q:""}.`, field)
}

func buildContinuePrompt(text string) string {
	return "You are helping an author draft a document.\n" +
		"Continue the text below with one or two sentences that follow naturally, in the same voice and tense.\n" +
		"Do not repeat or summarise the existing text.\n" +
		jsonInstruction(fieldExpanded) + "\n\n" +
		"Text:\n" + text
}

func buildRewritePrompt(text string, words int) string {
	return fmt.Sprintf("Rewrite the following text to be exactly %d words long.\n%s\n\n%s",
		words, jsonInstruction(fieldRewritten), text)
}

func buildStylePrompt(text string, style Style) string {
	return fmt.Sprintf("Rewrite the following text in a %s style.\n%s\n\n%s",
		strings.ToLower(string(style)), jsonInstruction(fieldRewritten), text)
}

func buildHumanizePrompt(text string) string {
	return "Rewrite the following text to sound more natural:\n" +
		jsonInstruction(fieldHumanized) + "\n\n" + text
}

func buildTranslatePrompt(text string, language Language) string {
	return fmt.Sprintf("Translate the following text to %s:\n%s\n\n%s",
		language, jsonInstruction(fieldTranslated), text)
}

func buildReferencesPrompt(text string) string {
	return "You are an AI assistant that fetches academic references for a given text.\n" +
		"Given the following text, find academic references that support the claims made in the text.\n" +
		jsonInstruction(fieldReferences) + "\n\n" +
		"Text:\n" + text
}

// jsonCandidates returns raw plus the outermost {...} block, if any.
func jsonCandidates(raw string) []string {
	candidates := []string{raw}
	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start && (start > 0 || end < len(raw)-1) {
			candidates = append(candidates, raw[start:end+1])
		}
	}
	return candidates
}

func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if m := fenceRe.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	return raw
}

// parseTextField extracts field from a JSON reply. Models that ignore the
// format instruction and answer in prose are accepted verbatim.
func parseTextField(raw, field string) (string, error) {
	raw = stripFences(raw)
	if raw == "" {
		return "", fmt.Errorf("empty %s response", field)
	}
	for _, candidate := range jsonCandidates(raw) {
		var obj map[string]any
		if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
			continue
		}
		if value, ok := obj[field].(string); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value), nil
		}
		return "", fmt.Errorf("response missing %s", field)
	}
	if strings.HasPrefix(raw, "{") {
		return "", fmt.Errorf("unable to parse %s payload", field)
	}
	return raw, nil
}

// parseReferences accepts {"references":[...]}, a bare JSON array, or a
// plain list with one reference per line.
func parseReferences(raw string) ([]string, error) {
	raw = stripFences(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty references response")
	}
	for _, candidate := range jsonCandidates(raw) {
		var wrapper struct {
			References []string `json:"references"`
		}
		if err := json.Unmarshal([]byte(candidate), &wrapper); err == nil {
			if refs := sanitizeBullets(wrapper.References); len(refs) > 0 {
				return refs, nil
			}
			return nil, fmt.Errorf("response contained no references")
		}
	}
	if start := strings.Index(raw, "["); start >= 0 {
		if end := strings.LastIndex(raw, "]"); end > start {
			var arr []string
			if err := json.Unmarshal([]byte(raw[start:end+1]), &arr); err == nil {
				if refs := sanitizeBullets(arr); len(refs) > 0 {
					return refs, nil
				}
			}
		}
	}
	if strings.HasPrefix(raw, "{") || strings.HasPrefix(raw, "[") {
		return nil, fmt.Errorf("unable to parse references payload")
	}
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		lines = append(lines, listMarkerRe.ReplaceAllString(strings.TrimSpace(line), ""))
	}
	if refs := sanitizeBullets(lines); len(refs) > 0 {
		return refs, nil
	}
	return nil, fmt.Errorf("response contained no references")
}

func sanitizeBullets(items []string) []string {
	var cleaned []string
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		item = whitespaceRe.ReplaceAllString(item, " ")
		cleaned = append(cleaned, item)
	}
	return cleaned
}
