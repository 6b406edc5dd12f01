package docimport

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

const (
	cacheEnvVar   = "CHRONICLE_CACHE_DIR"
	cacheSubdir   = "chronicle/imports"
	cacheTTL      = 24 * time.Hour
	partialSuffix = ".part"
	metaSuffix    = ".meta"
)

type httpCache struct {
	dir    string
	client *http.Client
}

type cacheMeta struct {
	URL          string    `json:"url"`
	ETag         string    `json:"etag"`
	LastModified string    `json:"lastModified"`
	ContentType  string    `json:"contentType"`
	CachedAt     time.Time `json:"cachedAt"`
	Size         int64     `json:"size"`
}

// cachedFile is a downloaded body on disk plus what the server said it was.
type cachedFile struct {
	Path string
	Meta cacheMeta
}

func resolveCacheDir(dir string) string {
	if dir != "" {
		return dir
	}
	if env := os.Getenv(cacheEnvVar); env != "" {
		return env
	}
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(os.TempDir(), "chronicle-cache")
	}
	return filepath.Join(base, cacheSubdir)
}

func newHTTPCache(dir string, client *http.Client) (*httpCache, error) {
	dir = resolveCacheDir(dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &httpCache{dir: dir, client: client}, nil
}

// Fetch returns a local copy of rawURL. Fresh copies are reused without a
// request; stale ones are revalidated with ETag/Last-Modified and served as a
// fallback when the server cannot be reached.
func (c *httpCache) Fetch(ctx context.Context, rawURL string) (cachedFile, error) {
	bodyPath, metaPath, partialPath := c.pathsFor(cacheKey(rawURL))

	meta, _ := readMeta(metaPath)
	info, _ := os.Stat(bodyPath)
	if info != nil && info.Size() > 0 && time.Since(info.ModTime()) < cacheTTL {
		return cachedFile{Path: bodyPath, Meta: meta}, nil
	}

	file, err := c.download(ctx, rawURL, bodyPath, metaPath, partialPath, meta, info)
	if err == nil {
		return file, nil
	}
	if info != nil && info.Size() > 0 {
		return cachedFile{Path: bodyPath, Meta: meta}, nil
	}
	return cachedFile{}, err
}

func (c *httpCache) download(ctx context.Context, rawURL, bodyPath, metaPath, partialPath string, meta cacheMeta, current os.FileInfo) (cachedFile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return cachedFile{}, err
	}
	if current != nil && current.Size() > 0 {
		if meta.ETag != "" {
			req.Header.Set("If-None-Match", meta.ETag)
		}
		if meta.LastModified != "" {
			req.Header.Set("If-Modified-Since", meta.LastModified)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return cachedFile{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotModified:
		if current == nil || current.Size() == 0 {
			return c.download(ctx, rawURL, bodyPath, metaPath, partialPath, cacheMeta{}, nil)
		}
		meta.CachedAt = time.Now().UTC()
		now := time.Now()
		_ = os.Chtimes(bodyPath, now, now)
		_ = writeMeta(metaPath, meta)
		return cachedFile{Path: bodyPath, Meta: meta}, nil
	case http.StatusOK:
		return c.saveBody(resp, bodyPath, metaPath, partialPath)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return cachedFile{}, fmt.Errorf("download failed: %s (%s)", resp.Status, strings.TrimSpace(string(body)))
	}
}

func (c *httpCache) saveBody(resp *http.Response, bodyPath, metaPath, partialPath string) (cachedFile, error) {
	file, err := os.OpenFile(partialPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return cachedFile{}, err
	}
	if _, err := io.Copy(file, io.LimitReader(resp.Body, maxImportBytes)); err != nil {
		file.Close()
		return cachedFile{}, err
	}
	if err := file.Close(); err != nil {
		return cachedFile{}, err
	}
	if err := os.Rename(partialPath, bodyPath); err != nil {
		return cachedFile{}, err
	}

	meta := cacheMeta{
		URL:          resp.Request.URL.String(),
		ETag:         resp.Header.Get("Etag"),
		LastModified: resp.Header.Get("Last-Modified"),
		ContentType:  resp.Header.Get("Content-Type"),
		CachedAt:     time.Now().UTC(),
	}
	if info, err := os.Stat(bodyPath); err == nil {
		meta.Size = info.Size()
	}
	if err := writeMeta(metaPath, meta); err != nil {
		return cachedFile{}, err
	}
	return cachedFile{Path: bodyPath, Meta: meta}, nil
}

func (c *httpCache) pathsFor(key string) (string, string, string) {
	return filepath.Join(c.dir, key), filepath.Join(c.dir, key+metaSuffix), filepath.Join(c.dir, key+partialSuffix)
}

func cacheKey(rawURL string) string {
	sum := sha1.Sum([]byte(rawURL))
	return hex.EncodeToString(sum[:])
}

// extension guesses a file extension for a cached download, preferring the
// server's content type over the URL path.
func (f cachedFile) extension() string {
	if mediaType, _, err := mime.ParseMediaType(f.Meta.ContentType); err == nil {
		switch mediaType {
		case "application/pdf":
			return ".pdf"
		case "text/html", "application/xhtml+xml":
			return ".html"
		case "text/plain", "text/markdown":
			return ".txt"
		}
	}
	if f.Meta.URL != "" {
		trimmed := f.Meta.URL
		if idx := strings.IndexAny(trimmed, "?#"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
		return strings.ToLower(path.Ext(trimmed))
	}
	return ""
}

func readMeta(metaPath string) (cacheMeta, error) {
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return cacheMeta{}, err
	}
	var meta cacheMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return cacheMeta{}, err
	}
	return meta, nil
}

func writeMeta(metaPath string, meta cacheMeta) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(metaPath, data, 0o644)
}
