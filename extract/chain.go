package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"go.uber.org/zap"
)

// Method names the extraction strategy that produced the text.
type Method string

const (
	MethodNone     Method = ""
	MethodMainBody Method = "main_body"
	MethodHeading  Method = "heading"
	MethodFallback Method = "fallback"
)

const (
	// Candidates from the main-body and heading strategies must exceed
	// this length to be accepted.
	minMainTextChars = 1000
	// The fallback strategy runs with degraded confidence and a lower bar.
	minFallbackTextChars = 500
	// Sections shorter than this are treated as markup noise.
	sectionNoiseFloor = 50
)

type candidate struct {
	text     string
	sections []string
}

type strategy struct {
	method  Method
	minLen  int
	extract func(doc *goquery.Document) candidate
}

// The chain tries each strategy in order and stops at the first one whose
// candidate exceeds its gate.
var chainStrategies = []strategy{
	{MethodMainBody, minMainTextChars, extractMainBody},
	{MethodHeading, minMainTextChars, extractByHeadings},
	{MethodFallback, minFallbackTextChars, extractFallback},
}

func runChain(doc *goquery.Document, logger *zap.Logger) (string, []string, Method) {
	for _, s := range chainStrategies {
		cand := s.extract(doc)
		if len(cand.text) > s.minLen {
			logger.Info("extraction strategy succeeded",
				zap.String("method", string(s.method)),
				zap.Int("chars", len(cand.text)),
				zap.Int("sections", len(cand.sections)))
			return cand.text, cand.sections, s.method
		}
		logger.Debug("extraction strategy below gate",
			zap.String("method", string(s.method)),
			zap.Int("chars", len(cand.text)))
	}
	return "", nil, MethodNone
}

// extractMainBody walks the direct child sections of the canonical article
// container in document order. Accumulation stops outright at the first
// excluded title: siblings after the references block never count, however
// substantial.
func extractMainBody(doc *goquery.Document) candidate {
	var cand candidate

	container := doc.Find("section.main-article-body").First()
	if container.Length() == 0 {
		container = doc.Find("div.article-content").First()
	}
	if container.Length() == 0 {
		container = doc.Find("article.article").First()
	}
	if container.Length() == 0 {
		return cand
	}

	var parts []string
	container.ChildrenFiltered("section").EachWithBreak(func(_ int, sec *goquery.Selection) bool {
		title := strings.TrimSpace(sec.Find("h2, h3, h4").First().Text())
		if title != "" && IsExcludedSection(title) {
			return false
		}

		text := flattenText(sec)
		if len(text) > sectionNoiseFloor {
			parts = append(parts, text)
			if title != "" {
				cand.sections = append(cand.sections, title)
			}
		}
		return true
	})

	cand.text = strings.Join(parts, " ")
	return cand
}

// extractByHeadings positions on h2/h3 headings. Nothing is collected until
// the first main-content heading; collection stops permanently at the first
// excluded heading. Each collected heading gathers its following siblings
// up to the next heading of the same or higher level.
func extractByHeadings(doc *goquery.Document) candidate {
	var cand candidate
	var parts []string
	collecting := false

	doc.Find("h2, h3").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		title := strings.TrimSpace(heading.Text())

		if IsExcludedSection(title) {
			return false
		}
		if !collecting && IsMainContentSection(title) {
			collecting = true
		}
		if !collecting {
			return true
		}

		cand.sections = append(cand.sections, title)

		var body []string
		heading.NextUntil("h2, h3").Each(func(_ int, sib *goquery.Selection) {
			if text := flattenText(sib); text != "" {
				body = append(body, text)
			}
		})
		if len(body) > 0 {
			parts = append(parts, title+"\n"+strings.Join(body, " "))
		}
		return true
	})

	cand.text = strings.Join(parts, "\n\n")
	return cand
}

var boilerplateMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bReferences\b`),
	regexp.MustCompile(`(?i)\bBibliography\b`),
	regexp.MustCompile(`(?i)\bFootnotes\b`),
}

// extractFallback takes the most plausible generic article container,
// strips non-content elements and truncates the flattened text at the
// first boilerplate marker word. The marker scan covers prose too, so a
// body that merely mentions "references" is cut short; that reduced
// confidence is what the partial status reports downstream.
func extractFallback(doc *goquery.Document) candidate {
	cand := candidate{sections: []string{"[fallback mode]"}}

	container := doc.Find("article").First()
	if container.Length() == 0 {
		container = doc.Find("div.article-content").First()
	}
	if container.Length() == 0 {
		container = doc.Find(`div[id*="article"], div[id*="content"]`).First()
	}
	if container.Length() == 0 {
		container = doc.Find("main").First()
	}

	var text string
	if container.Length() > 0 {
		container.Find("script, style, nav, footer, header, aside").Remove()
		container.Find("h1, h2, h3, h4").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
			if IsExcludedSection(strings.TrimSpace(heading.Text())) {
				heading.NextAll().Remove()
				heading.Remove()
				return false
			}
			return true
		})
		text = flattenText(container)
	} else {
		text = readabilityText(doc)
	}

	cand.text = strings.TrimSpace(truncateAtBoilerplate(text))
	return cand
}

func truncateAtBoilerplate(text string) string {
	for _, marker := range boilerplateMarkers {
		if loc := marker.FindStringIndex(text); loc != nil {
			return text[:loc[0]]
		}
	}
	return text
}

// readabilityText is the last-ditch container locator: when no recognizable
// article element exists, readability picks the most plausible content
// block for the fallback strategy to truncate.
func readabilityText(doc *goquery.Document) string {
	raw, err := doc.Html()
	if err != nil {
		return ""
	}
	pageURL, _ := url.Parse("https://pmc.ncbi.nlm.nih.gov/")
	article, err := readability.FromReader(strings.NewReader(raw), pageURL)
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(article.TextContent), " ")
}

// flattenText joins a selection's text with single spaces, discarding the
// inline formatting structure.
func flattenText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}
