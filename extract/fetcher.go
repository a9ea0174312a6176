package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultArticleURLTemplate resolves a PMCID to its article page.
	DefaultArticleURLTemplate = "https://pmc.ncbi.nlm.nih.gov/articles/%s/"

	// Pages at or under this size are assumed to be error or interstitial
	// pages even on HTTP 200.
	minPlausiblePageBytes = 10 * 1024

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

var (
	// ErrNotFound means the article does not exist upstream. Rendering is
	// never attempted for it.
	ErrNotFound = errors.New("article not found")

	// ErrUnreachable means both transports were exhausted without a
	// plausible page. The caller may retry the whole document later.
	ErrUnreachable = errors.New("unable to fetch page content")
)

// Renderer is the secondary transport: a client-side rendering session that
// waits for the article body marker before reading the DOM.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// Fetcher retrieves raw article markup. The primary transport is a plain
// HTTP GET; when it times out, errors or returns an undersized body, the
// rendering transport is tried once. There is no retry beyond that.
type Fetcher struct {
	httpClient  *http.Client
	renderer    Renderer
	urlTemplate string
	timeout     time.Duration
	logger      *zap.Logger
}

func NewFetcher(httpClient *http.Client, renderer Renderer, timeout time.Duration, logger *zap.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{
		httpClient:  httpClient,
		renderer:    renderer,
		urlTemplate: DefaultArticleURLTemplate,
		timeout:     timeout,
		logger:      logger,
	}
}

// WithURLTemplate overrides the article URL template.
func (f *Fetcher) WithURLTemplate(template string) *Fetcher {
	f.urlTemplate = template
	return f
}

// Fetch retrieves the markup for one article. HTTP 404 short-circuits to
// ErrNotFound: a missing document will not become present via rendering.
func (f *Fetcher) Fetch(ctx context.Context, id PMCID) ([]byte, error) {
	pageURL := fmt.Sprintf(f.urlTemplate, id)

	body, err := f.fetchHTTP(ctx, pageURL)
	if err == nil {
		return body, nil
	}
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%w (404): %s", ErrNotFound, id)
	}
	f.logger.Warn("primary transport failed",
		zap.String("pmcid", id.String()),
		zap.Error(err))

	if f.renderer == nil {
		return nil, ErrUnreachable
	}

	renderCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	html, err := f.renderer.Render(renderCtx, pageURL)
	if err != nil {
		f.logger.Error("rendering transport failed",
			zap.String("pmcid", id.String()),
			zap.Error(err))
		return nil, ErrUnreachable
	}
	if len(html) <= minPlausiblePageBytes {
		f.logger.Warn("rendered page too short",
			zap.String("pmcid", id.String()),
			zap.Int("bytes", len(html)))
		return nil, ErrUnreachable
	}

	f.logger.Info("rendering transport succeeded",
		zap.String("pmcid", id.String()),
		zap.Int("kb", len(html)/1024))
	return []byte(html), nil
}

func (f *Fetcher) fetchHTTP(ctx context.Context, pageURL string) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if len(body) <= minPlausiblePageBytes {
		return nil, fmt.Errorf("page content too short (%d bytes)", len(body))
	}

	f.logger.Info("primary transport succeeded",
		zap.String("url", pageURL),
		zap.Int("kb", len(body)/1024))
	return body, nil
}

// NewHTTPClient builds the primary transport client with connection reuse
// across documents.
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}
