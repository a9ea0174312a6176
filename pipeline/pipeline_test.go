package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"litmine/extract"
	"litmine/pubmed"
	"litmine/report"
	"litmine/storage"
)

// entryPage renders a minimal PubMed entry. An empty pmcid omits the
// full-text link entirely.
func entryPage(title, pmcid string) string {
	link := ""
	if pmcid != "" {
		link = fmt.Sprintf(`<a href="https://pmc.ncbi.nlm.nih.gov/articles/%s/">PMCID: %s</a>`, pmcid, pmcid)
	}
	return fmt.Sprintf(`<html><body>
<h1 class="heading-title">%s</h1>
%s
</body></html>`, title, link)
}

func articlePage(sectionChars int) string {
	body := strings.Builder{}
	for body.Len() < sectionChars {
		body.WriteString("The cohort was followed for outcomes and the model was evaluated on held out data. ")
	}
	page := fmt.Sprintf(`<html><head><style>/*%s*/</style></head><body>
<section class="main-article-body">
<section><h2>Introduction</h2><p>%s</p></section>
</section>
</body></html>`, strings.Repeat("x", 11*1024), body.String())
	return page
}

type harness struct {
	pipeline *Pipeline
	writer   *report.LiteratureWriter
	progress *storage.Progress
	csvPath  string
}

func newHarness(t *testing.T, dir string, pubmedURL, pmcURL string) *harness {
	t.Helper()
	logger := zap.NewNop()

	fetcher := extract.NewFetcher(http.DefaultClient, nil, 5*time.Second, logger).
		WithURLTemplate(pmcURL + "/articles/%s/")
	extractor := extract.NewExtractor(fetcher, 0, 0, logger)
	scraper := pubmed.NewScraper(logger).WithBaseURL(pubmedURL)

	csvPath := filepath.Join(dir, "literature_data.csv")
	writer, err := report.NewLiteratureWriter(csvPath)
	require.NoError(t, err)

	progress, err := storage.OpenProgress(filepath.Join(dir, "progress.db"))
	require.NoError(t, err)

	return &harness{
		pipeline: New(scraper, extractor, writer, progress, 2, logger),
		writer:   writer,
		progress: progress,
		csvPath:  csvPath,
	}
}

func (h *harness) close(t *testing.T) {
	t.Helper()
	require.NoError(t, h.writer.Close())
	require.NoError(t, h.progress.Close())
}

func TestPipelineRun(t *testing.T) {
	pubmedServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		switch {
		case strings.HasPrefix(r.URL.Path, "/1001/"):
			w.Write([]byte(entryPage("Article with full text", "PMC1001")))
		case strings.HasPrefix(r.URL.Path, "/1002/"):
			w.Write([]byte(entryPage("Article without PMC deposit", "")))
		case strings.HasPrefix(r.URL.Path, "/1003/"):
			w.Write([]byte(entryPage("Article withdrawn upstream", "PMC1003")))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer pubmedServer.Close()

	pmcServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/articles/PMC1001/") {
			w.Write([]byte(articlePage(2000)))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer pmcServer.Close()

	dir := t.TempDir()
	h := newHarness(t, dir, pubmedServer.URL, pmcServer.URL)

	summary := h.pipeline.Run(context.Background(), []string{"1001", "1002", "1003"})

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 1, summary.NoID)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 0, summary.Skipped)

	for pmid, want := range map[string]string{
		"1001": "success",
		"1002": "no_pmcid",
		"1003": "failed",
	} {
		status, ok, err := h.progress.Status(pmid)
		require.NoError(t, err)
		assert.True(t, ok, pmid)
		assert.Equal(t, want, status, pmid)
	}
	h.close(t)

	// Second run over the same list skips everything.
	h2 := newHarness(t, dir, pubmedServer.URL, pmcServer.URL)
	summary = h2.pipeline.Run(context.Background(), []string{"1001", "1002", "1003"})
	h2.close(t)

	assert.Equal(t, 3, summary.Skipped)
	assert.Equal(t, 0, summary.Succeeded)
}

func TestPipelineRecordsStatuses(t *testing.T) {
	pubmedServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(entryPage("Findable article", "PMC2001")))
	}))
	defer pubmedServer.Close()

	pmcServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(articlePage(1500)))
	}))
	defer pmcServer.Close()

	dir := t.TempDir()
	h := newHarness(t, dir, pubmedServer.URL, pmcServer.URL)
	h.pipeline.Run(context.Background(), []string{"2001"})

	status, ok, err := h.progress.Status("2001")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "success", status)
	h.close(t)
}

func TestPipelineMetadataFailureStillExtracts(t *testing.T) {
	// PubMed down entirely; extraction cannot proceed without a PMCID, so
	// the document lands in the no-id bucket rather than erroring the run.
	pubmedServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer pubmedServer.Close()

	pmcServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer pmcServer.Close()

	dir := t.TempDir()
	h := newHarness(t, dir, pubmedServer.URL, pmcServer.URL)
	summary := h.pipeline.Run(context.Background(), []string{"3001"})
	h.close(t)

	assert.Equal(t, 1, summary.NoID)
}

func TestPipelineCancelledContext(t *testing.T) {
	pubmedServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(entryPage("never reached", "")))
	}))
	defer pubmedServer.Close()

	dir := t.TempDir()
	h := newHarness(t, dir, pubmedServer.URL, pubmedServer.URL)
	defer h.close(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary := h.pipeline.Run(ctx, make([]string, 100))
	assert.Equal(t, 100, summary.Total)
	assert.Less(t, summary.NoID+summary.Failed+summary.Skipped, 100,
		"cancellation stops dispatch before the whole list is consumed")
}
