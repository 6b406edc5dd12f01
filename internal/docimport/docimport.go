package docimport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/csheth/chronicle/internal/editor"
)

const (
	maxImportBytes     = 20 << 20
	defaultHTTPTimeout = 90 * time.Second
)

var horizontalSpace = regexp.MustCompile(`[ \t\f\v]+`)

// Options configures an Importer.
type Options struct {
	// CacheDir holds downloaded sources. Empty uses CHRONICLE_CACHE_DIR or
	// the user cache directory.
	CacheDir   string
	HTTPClient *http.Client
	// ArxivAPI overrides the arXiv metadata endpoint.
	ArxivAPI string
}

// Importer turns files and URLs into document markup.
type Importer struct {
	cacheDir string
	client   *http.Client
	arxivAPI string
}

// New builds an Importer. The download cache directory is created lazily on
// the first remote import.
func New(opts Options) *Importer {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	api := opts.ArxivAPI
	if api == "" {
		api = defaultArxivAPI
	}
	return &Importer{cacheDir: opts.CacheDir, client: client, arxivAPI: api}
}

// Load reads source and returns it as markup. Sources may be local paths,
// http(s) URLs or arXiv identifiers (arxiv:2101.00001, arxiv.org/abs/...).
// PDFs are reduced to their text, HTML is used as is and anything else is
// treated as plain text with one paragraph per line.
func (im *Importer) Load(ctx context.Context, source string) (string, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return "", fmt.Errorf("import source is empty")
	}
	if id := extractArxivID(source); id != "" {
		return im.loadArxiv(ctx, id)
	}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		cache, err := newHTTPCache(im.cacheDir, im.client)
		if err != nil {
			return "", fmt.Errorf("prepare import cache: %w", err)
		}
		file, err := cache.Fetch(ctx, source)
		if err != nil {
			return "", fmt.Errorf("download %s: %w", source, err)
		}
		return loadFile(file.Path, file.extension())
	}
	return loadFile(source, strings.ToLower(filepath.Ext(source)))
}

func loadFile(path, ext string) (string, error) {
	switch ext {
	case ".pdf":
		text, err := pdfText(path)
		if err != nil {
			return "", err
		}
		return plainToMarkup(text), nil
	case ".html", ".htm":
		data, err := readLimited(path)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	default:
		data, err := readLimited(path)
		if err != nil {
			return "", err
		}
		return plainToMarkup(string(data)), nil
	}
}

func readLimited(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(io.LimitReader(file, maxImportBytes))
}

func pdfText(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer file.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}

	var builder strings.Builder
	if _, err := io.Copy(&builder, io.LimitReader(content, maxImportBytes)); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// plainToMarkup collapses runs of horizontal whitespace and wraps each
// non-blank line in a paragraph.
func plainToMarkup(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(horizontalSpace.ReplaceAllString(line, " "))
	}
	return editor.FromParagraphs(strings.Join(lines, "\n"))
}
