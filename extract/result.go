package extract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Status is the terminal outcome of one extraction. Every call yields
// exactly one of the four states and never transitions afterwards.
type Status int

const (
	// StatusSuccess means the main-body or heading strategy met its gate.
	StatusSuccess Status = iota
	// StatusPartial means only the fallback strategy met its gate; the
	// text is usable but needs stricter downstream review.
	StatusPartial
	// StatusFailed means the fetch failed or no strategy met its gate.
	StatusFailed
	// StatusNoID means the input identifier was empty; no fetch happened.
	StatusNoID
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusPartial:
		return "partial"
	case StatusFailed:
		return "failed"
	case StatusNoID:
		return "no_pmcid"
	}
	return "unknown"
}

// Result is the sole output of the extraction core: one immutable record
// per call. Chunks are non-empty exactly when FullText is non-empty, and
// ErrorMessage is set exactly when it is not.
type Result struct {
	PMCID         PMCID
	Status        Status
	FullText      string
	Chunks        []string
	Method        Method
	SectionsFound []string
	CharCount     int
	WordCount     int
	ErrorMessage  string
}

// Extractor turns an article identifier into a Result.
type Extractor struct {
	fetcher      *Fetcher
	chunkWords   int
	overlapWords int
	logger       *zap.Logger
}

func NewExtractor(fetcher *Fetcher, chunkWords, overlapWords int, logger *zap.Logger) *Extractor {
	if chunkWords <= 0 {
		chunkWords = DefaultChunkWords
	}
	if overlapWords <= 0 {
		overlapWords = DefaultOverlapWords
	}
	return &Extractor{
		fetcher:      fetcher,
		chunkWords:   chunkWords,
		overlapWords: overlapWords,
		logger:       logger,
	}
}

// ExtractFullText fetches the article page and runs the extraction chain
// over it. It returns a well-formed Result for every input, including empty
// and malformed identifiers, and never panics into the caller.
func (e *Extractor) ExtractFullText(ctx context.Context, raw string) Result {
	id := NormalizePMCID(raw)
	if id == "" {
		return Result{Status: StatusNoID, ErrorMessage: "PMCID is empty"}
	}

	logger := e.logger.With(zap.String("pmcid", id.String()))
	start := time.Now()

	body, err := e.fetcher.Fetch(ctx, id)
	if err != nil {
		logger.Warn("fetch failed", zap.Error(err))
		return Result{PMCID: id, Status: StatusFailed, ErrorMessage: err.Error()}
	}

	doc, err := parseMarkup(body)
	if err != nil {
		logger.Error("markup parse failed", zap.Error(err))
		return Result{
			PMCID:        id,
			Status:       StatusFailed,
			ErrorMessage: fmt.Sprintf("markup parse failed: %v", err),
		}
	}

	text, sections, method := runChain(doc, logger)
	if method == MethodNone {
		return Result{
			PMCID:        id,
			Status:       StatusFailed,
			ErrorMessage: "all extraction strategies failed, page structure may be non-standard",
		}
	}

	clean := CleanText(text)
	if clean == "" {
		return Result{
			PMCID:        id,
			Status:       StatusFailed,
			ErrorMessage: "extracted text was empty after normalization",
		}
	}

	status := StatusSuccess
	if method == MethodFallback {
		status = StatusPartial
	}

	logger.Info("extraction finished",
		zap.String("method", string(method)),
		zap.String("status", status.String()),
		zap.Int("chars", len(clean)),
		zap.Int("sections", len(sections)),
		zap.Duration("took", time.Since(start)))

	return Result{
		PMCID:         id,
		Status:        status,
		FullText:      clean,
		Chunks:        ChunkWords(clean, e.chunkWords, e.overlapWords),
		Method:        method,
		SectionsFound: sections,
		CharCount:     len(clean),
		WordCount:     len(strings.Fields(clean)),
	}
}
