package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"litmine/extract"
	"litmine/pubmed"
)

var literatureColumns = []string{
	"PMID",
	"Title",
	"Authors",
	"Country",
	"DOI",
	"Keywords",
	"Journal",
	"PMCID",
	"Status",
	"Method",
	"Sections",
	"Char_Count",
	"Word_Count",
	"Error",
	"Full_Text",
}

// LiteratureWriter appends one audit row per processed article. Rows are
// flushed as they are written so an interrupted run keeps everything
// emitted so far. Reopening an existing file appends without repeating the
// header.
type LiteratureWriter struct {
	mu sync.Mutex
	f  *os.File
	w  *csv.Writer
}

func NewLiteratureWriter(path string) (*LiteratureWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open report file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(literatureColumns); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return nil, err
		}
	}

	return &LiteratureWriter{f: f, w: w}, nil
}

// Write appends one row combining the scraped metadata and the extraction
// outcome.
func (lw *LiteratureWriter) Write(rec pubmed.Record, res extract.Result) error {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	row := []string{
		rec.PMID,
		rec.Title,
		rec.Authors,
		rec.Country,
		rec.DOI,
		rec.Keywords,
		rec.Journal,
		res.PMCID.String(),
		res.Status.String(),
		string(res.Method),
		strings.Join(res.SectionsFound, "; "),
		strconv.Itoa(res.CharCount),
		strconv.Itoa(res.WordCount),
		res.ErrorMessage,
		res.FullText,
	}
	if err := lw.w.Write(row); err != nil {
		return err
	}
	lw.w.Flush()
	return lw.w.Error()
}

func (lw *LiteratureWriter) Close() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	lw.w.Flush()
	if err := lw.w.Error(); err != nil {
		lw.f.Close()
		return err
	}
	return lw.f.Close()
}
