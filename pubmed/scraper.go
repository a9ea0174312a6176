package pubmed

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// DefaultBaseURL is the PubMed entry host.
const DefaultBaseURL = "https://pubmed.ncbi.nlm.nih.gov"

// Record holds article metadata scraped from one PubMed entry page. Fields
// the page does not carry stay empty.
type Record struct {
	PMID     string
	Title    string
	Authors  string
	Country  string
	DOI      string
	Keywords string
	Journal  string
	PMCID    string
}

var (
	trailingDigitsPattern = regexp.MustCompile(`(\s+\d+)+$`)
	doiPattern            = regexp.MustCompile(`10\.\S+/\S+`)
	keywordsPattern       = regexp.MustCompile(`(?im)keywords?:\s*(.+)$`)
	trailingPunctPattern  = regexp.MustCompile(`[.;]+$`)
)

// Scraper fetches article metadata from PubMed entry pages.
type Scraper struct {
	baseURL   string
	userAgent string
	logger    *zap.Logger
}

func NewScraper(logger *zap.Logger) *Scraper {
	return &Scraper{
		baseURL:   DefaultBaseURL,
		userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		logger:    logger,
	}
}

// WithBaseURL overrides the PubMed host.
func (s *Scraper) WithBaseURL(baseURL string) *Scraper {
	s.baseURL = strings.TrimRight(baseURL, "/")
	return s
}

// Fetch scrapes the entry page for one PMID. Missing fields never fail the
// record; only transport failures return an error.
func (s *Scraper) Fetch(ctx context.Context, pmid string) (Record, error) {
	rec := Record{PMID: pmid}
	if err := ctx.Err(); err != nil {
		return rec, err
	}

	c := colly.NewCollector(colly.UserAgent(s.userAgent))

	c.OnHTML("h1.heading-title", func(e *colly.HTMLElement) {
		if rec.Title == "" {
			rec.Title = strings.TrimSpace(e.Text)
		}
	})

	c.OnHTML("div.authors-list", func(e *colly.HTMLElement) {
		if rec.Authors != "" {
			return
		}
		seen := make(map[string]struct{})
		var names []string
		e.DOM.Find("a.full-name, span.author-name").Each(func(_ int, sel *goquery.Selection) {
			name := cleanAuthorName(strings.TrimSpace(sel.Text()))
			if name == "" {
				return
			}
			if _, dup := seen[name]; dup {
				return
			}
			seen[name] = struct{}{}
			names = append(names, name)
		})
		rec.Authors = strings.Join(names, ", ")
	})

	c.OnHTML("div.affiliations li, ul.affiliations li, div.affiliation", func(e *colly.HTMLElement) {
		if rec.Country != "" {
			return
		}
		rec.Country = lastAffiliationWord(e.Text)
	})

	c.OnHTML(`span.identifier`, func(e *colly.HTMLElement) {
		if rec.DOI != "" {
			return
		}
		if m := doiPattern.FindString(e.Text); m != "" {
			rec.DOI = m
		}
	})

	c.OnHTML(`meta[name="citation_doi"]`, func(e *colly.HTMLElement) {
		if rec.DOI == "" {
			rec.DOI = strings.TrimSpace(e.Attr("content"))
		}
	})

	c.OnHTML(`meta[name="citation_journal_title"]`, func(e *colly.HTMLElement) {
		if rec.Journal == "" {
			rec.Journal = strings.TrimSpace(e.Attr("content"))
		}
	})

	c.OnHTML("div.abstract-content, section.abstract, div.abstract", func(e *colly.HTMLElement) {
		if rec.Keywords != "" {
			return
		}
		rec.Keywords = keywordsFromAbstract(e.Text)
	})

	c.OnHTML(`meta[name="citation_keywords"]`, func(e *colly.HTMLElement) {
		if rec.Keywords == "" {
			rec.Keywords = joinKeywords(e.Attr("content"))
		}
	})

	c.OnHTML(`a[href*="pmc.ncbi.nlm.nih.gov/articles/PMC"]`, func(e *colly.HTMLElement) {
		if rec.PMCID != "" {
			return
		}
		text := strings.TrimSpace(e.Text)
		rec.PMCID = strings.TrimSpace(strings.TrimPrefix(text, "PMCID:"))
	})

	var visitErr error
	c.OnError(func(r *colly.Response, err error) {
		visitErr = err
	})

	url := fmt.Sprintf("%s/%s/", s.baseURL, pmid)
	if err := c.Visit(url); err != nil {
		return rec, fmt.Errorf("pubmed visit failed: %w", err)
	}
	c.Wait()
	if visitErr != nil {
		return rec, fmt.Errorf("pubmed fetch failed: %w", visitErr)
	}

	s.logger.Info("pubmed metadata scraped",
		zap.String("pmid", pmid),
		zap.String("pmcid", rec.PMCID),
		zap.Bool("has_title", rec.Title != ""),
		zap.Bool("has_doi", rec.DOI != ""))
	return rec, nil
}

// lastAffiliationWord takes the trailing word of the first affiliation,
// which on PubMed pages is the country.
func lastAffiliationWord(text string) string {
	text = trailingPunctPattern.ReplaceAllString(strings.TrimSpace(text), "")
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t'
	})
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// cleanAuthorName drops the affiliation digits PubMed appends to names.
func cleanAuthorName(name string) string {
	return strings.Trim(trailingDigitsPattern.ReplaceAllString(name, ""), " ,")
}

func keywordsFromAbstract(text string) string {
	m := keywordsPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	raw := trailingPunctPattern.ReplaceAllString(strings.TrimSpace(m[1]), "")
	if len(raw) <= 3 {
		return ""
	}
	if strings.Contains(raw, ";") {
		return raw
	}
	return joinKeywords(raw)
}

func joinKeywords(raw string) string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	var kws []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kws = append(kws, p)
		}
	}
	return strings.Join(kws, "; ")
}
