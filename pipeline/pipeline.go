package pipeline

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"litmine/extract"
	"litmine/pubmed"
	"litmine/report"
	"litmine/storage"
)

// Pipeline runs the per-document flow: PubMed metadata, PMC full-text
// extraction, report row, progress mark. Documents are independent, so a
// bounded pool of workers may process several at once; the rendering
// browser itself admits one document at a time.
type Pipeline struct {
	scraper   *pubmed.Scraper
	extractor *extract.Extractor
	writer    *report.LiteratureWriter
	progress  *storage.Progress
	workers   int
	logger    *zap.Logger
}

// Summary counts outcomes across one run.
type Summary struct {
	Total     int
	Succeeded int
	Partial   int
	Failed    int
	NoID      int
	Skipped   int
}

func New(scraper *pubmed.Scraper, extractor *extract.Extractor, writer *report.LiteratureWriter,
	progress *storage.Progress, workers int, logger *zap.Logger) *Pipeline {
	if workers <= 0 {
		workers = 1
	}
	return &Pipeline{
		scraper:   scraper,
		extractor: extractor,
		writer:    writer,
		progress:  progress,
		workers:   workers,
		logger:    logger,
	}
}

// Run processes every PMID and returns the aggregated summary. Failures of
// individual documents are recorded, never propagated.
func (p *Pipeline) Run(ctx context.Context, pmids []string) Summary {
	var (
		summary Summary
		mu      sync.Mutex
		wg      sync.WaitGroup
	)
	summary.Total = len(pmids)

	jobs := make(chan string)
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pmid := range jobs {
				outcome := p.process(ctx, pmid)
				mu.Lock()
				switch outcome {
				case extract.StatusSuccess:
					summary.Succeeded++
				case extract.StatusPartial:
					summary.Partial++
				case extract.StatusNoID:
					summary.NoID++
				case skippedOutcome:
					summary.Skipped++
				default:
					summary.Failed++
				}
				mu.Unlock()
			}
		}()
	}

	for _, pmid := range pmids {
		select {
		case <-ctx.Done():
			p.logger.Warn("run cancelled", zap.Error(ctx.Err()))
			close(jobs)
			wg.Wait()
			return summary
		case jobs <- pmid:
		}
	}
	close(jobs)
	wg.Wait()

	p.logger.Info("run finished",
		zap.Int("total", summary.Total),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("partial", summary.Partial),
		zap.Int("failed", summary.Failed),
		zap.Int("no_pmcid", summary.NoID),
		zap.Int("skipped", summary.Skipped))
	return summary
}

// skippedOutcome marks documents already present in the progress store.
const skippedOutcome = extract.Status(-1)

func (p *Pipeline) process(ctx context.Context, pmid string) extract.Status {
	logger := p.logger.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("pmid", pmid))

	if done, err := p.progress.Done(pmid); err != nil {
		logger.Warn("progress lookup failed", zap.Error(err))
	} else if done {
		logger.Info("already processed, skipping")
		return skippedOutcome
	}

	rec, err := p.scraper.Fetch(ctx, pmid)
	if err != nil {
		logger.Warn("pubmed metadata fetch failed", zap.Error(err))
		rec = pubmed.Record{PMID: pmid}
	}

	res := p.extractor.ExtractFullText(ctx, rec.PMCID)

	if err := p.writer.Write(rec, res); err != nil {
		logger.Error("report write failed", zap.Error(err))
	}
	if err := p.progress.MarkDone(pmid, res.Status.String()); err != nil {
		logger.Warn("progress mark failed", zap.Error(err))
	}

	logger.Info("document processed",
		zap.String("pmcid", res.PMCID.String()),
		zap.String("status", res.Status.String()),
		zap.String("method", string(res.Method)),
		zap.Int("word_count", res.WordCount))
	return res.Status
}
