package docimport

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

const defaultArxivAPI = "https://export.arxiv.org/api/query"

var (
	arxivURLRe = regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.|export\.)?arxiv\.org/(?:abs|pdf)/([0-9a-z.\-]+?)(?:\.pdf)?/?$`)
	arxivIDRe  = regexp.MustCompile(`(?i)^arxiv:([0-9a-z.\-]+)$`)
	whitespace = regexp.MustCompile(`\s+`)
)

// extractArxivID recognises arxiv:<id> and arxiv.org abs/pdf links. Other
// URLs are left to the generic downloader.
func extractArxivID(source string) string {
	source = strings.TrimSpace(source)
	if m := arxivIDRe.FindStringSubmatch(source); m != nil {
		return m[1]
	}
	if m := arxivURLRe.FindStringSubmatch(source); m != nil {
		return m[1]
	}
	return ""
}

type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title   string       `xml:"title"`
	Summary string       `xml:"summary"`
	Authors []atomAuthor `xml:"author"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

// loadArxiv starts a document from a paper's metadata: title, authors and
// abstract, ready to be annotated or summarised.
func (im *Importer) loadArxiv(ctx context.Context, id string) (string, error) {
	endpoint := im.arxivAPI + "?id_list=" + url.QueryEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	resp, err := im.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("arxiv API error: %s (%s)", resp.Status, strings.TrimSpace(string(body)))
	}

	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return "", fmt.Errorf("failed to decode arxiv response: %w", err)
	}
	if len(feed.Entries) == 0 || normalizeWhitespace(feed.Entries[0].Title) == "" {
		return "", fmt.Errorf("arxiv paper %s not found", id)
	}
	entry := feed.Entries[0]

	var b strings.Builder
	b.WriteString("<h1>" + html.EscapeString(normalizeWhitespace(entry.Title)) + "</h1>")
	if len(entry.Authors) > 0 {
		names := make([]string, 0, len(entry.Authors))
		for _, a := range entry.Authors {
			if name := normalizeWhitespace(a.Name); name != "" {
				names = append(names, name)
			}
		}
		b.WriteString("<p>" + html.EscapeString(strings.Join(names, ", ")) + "</p>")
	}
	if abstract := normalizeWhitespace(entry.Summary); abstract != "" {
		b.WriteString("<p>" + html.EscapeString(abstract) + "</p>")
	}
	return b.String(), nil
}

func normalizeWhitespace(s string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(s), " ")
}
