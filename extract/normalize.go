package extract

import (
	"regexp"
	"strings"
)

var (
	orcidPattern    = regexp.MustCompile(`(?i)ORCID\s*(ID)?\s*:\s*\S+`)
	orcidURLPattern = regexp.MustCompile(`https?://orcid\.org/\S+`)
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	captionPattern  = regexp.MustCompile(`(?i)(Figure|Table)\s*\d+\.?\s*(Open in a new tab)?`)
	spaceRunPattern = regexp.MustCompile(`\s+`)
	blankRunPattern = regexp.MustCompile(`\n\s*\n`)
)

// CleanText normalizes chain output: researcher identifiers, email tokens
// and repeated figure/table caption noise are stripped, whitespace runs
// collapse. Applying it twice equals applying it once.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	text = orcidPattern.ReplaceAllString(text, "")
	text = orcidURLPattern.ReplaceAllString(text, "")
	text = emailPattern.ReplaceAllString(text, "")
	text = captionPattern.ReplaceAllString(text, "${1} ")
	text = spaceRunPattern.ReplaceAllString(text, " ")
	text = blankRunPattern.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
