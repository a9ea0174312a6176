package extract

import (
	"regexp"
	"strings"
)

// Section title tables, compiled once at init. Matching is anchored on the
// whole normalized title: compound titles such as "References and Notes" or
// "Results and Discussion" do not classify unless a variant pattern covers
// them.
var excludeSectionPatterns = compilePatterns([]string{
	`^references?$`,
	`^bibliography$`,
	`^acknowledgm?ents?$`,
	`^acknowledg?ments?$`,
	`^author\s*contributions?$`,
	`^authors?\s*contributions?$`,
	`^contributors?$`,
	`^contributor\s*information$`,
	`^conflicts?\s*of\s*interests?$`,
	`^competing\s*interests?$`,
	`^declarations?$`,
	`^disclosure$`,
	`^funding$`,
	`^funding\s*(sources?|information)?$`,
	`^financial\s*disclosure$`,
	`^supplementary\s*(materials?|data|information)?$`,
	`^supporting\s*information$`,
	`^appendi(x|ces)$`,
	`^data\s*availability`,
	`^ethics\s*(statement|approval)?$`,
	`^ethical\s*approval$`,
	`^footnotes?$`,
	`^abbreviations?$`,
	`^associated\s*data$`,
})

var mainContentPatterns = compilePatterns([]string{
	`^abstract$`,
	`^highlights?$`,
	`^background$`,
	`^introduction$`,
	`^methods?$`,
	`^materials?\s*(and|&)\s*methods?$`,
	`^patients?\s*(and|&)\s*methods?$`,
	`^study\s*design$`,
	`^results?$`,
	`^findings?$`,
	`^discussion$`,
	`^conclusions?$`,
	`^summary$`,
})

func compilePatterns(exprs []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		compiled = append(compiled, regexp.MustCompile(`(?i)`+expr))
	}
	return compiled
}

// IsExcludedSection reports whether a section title names boilerplate that
// ends the article body: references, funding, ethics and the like.
func IsExcludedSection(title string) bool {
	return matchesAny(excludeSectionPatterns, title)
}

// IsMainContentSection reports whether a section title names substantive
// article content, introduction through conclusions.
func IsMainContentSection(title string) bool {
	return matchesAny(mainContentPatterns, title)
}

func matchesAny(patterns []*regexp.Regexp, title string) bool {
	t := strings.ToLower(strings.TrimSpace(title))
	if t == "" {
		return false
	}
	for _, p := range patterns {
		if p.MatchString(t) {
			return true
		}
	}
	return false
}
