package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsExcludedSection(t *testing.T) {
	excluded := []string{
		"References",
		"Reference",
		"REFERENCES",
		"Bibliography",
		"Acknowledgments",
		"Author Contributions",
		"Authors Contributions",
		"Conflicts of Interest",
		"Conflict of interest",
		"Competing Interests",
		"Declarations",
		"Disclosure",
		"Funding",
		"Funding Sources",
		"Financial Disclosure",
		"Supplementary Material",
		"Supplementary data",
		"Supporting Information",
		"Appendix",
		"Appendices",
		"Data Availability",
		"Data availability statement",
		"Ethics Statement",
		"Ethical Approval",
		"Footnotes",
		"Abbreviations",
		"Associated Data",
		"  references  ",
	}
	for _, title := range excluded {
		assert.True(t, IsExcludedSection(title), "expected %q to be excluded", title)
	}

	notExcluded := []string{
		"Introduction",
		"Results",
		"",
		"Referencing prior work",
	}
	for _, title := range notExcluded {
		assert.False(t, IsExcludedSection(title), "expected %q not to be excluded", title)
	}
}

func TestIsMainContentSection(t *testing.T) {
	main := []string{
		"Abstract",
		"Highlights",
		"Background",
		"Introduction",
		"INTRODUCTION",
		"Methods",
		"Method",
		"Materials and Methods",
		"Materials & Methods",
		"Patients and Methods",
		"Study Design",
		"Results",
		"Findings",
		"Discussion",
		"Conclusions",
		"Summary",
	}
	for _, title := range main {
		assert.True(t, IsMainContentSection(title), "expected %q to be main content", title)
	}

	notMain := []string{"References", "Funding", "", "Introductory remarks"}
	for _, title := range notMain {
		assert.False(t, IsMainContentSection(title), "expected %q not to be main content", title)
	}
}

func TestClassifierCaseInsensitive(t *testing.T) {
	assert.Equal(t, IsExcludedSection("REFERENCES"), IsExcludedSection("References"))
	assert.Equal(t, IsMainContentSection("RESULTS"), IsMainContentSection("results"))
}

// Matching is anchored on the full title. Compound titles fall through both
// tables; this is a known edge of the classification protocol, kept as-is.
func TestClassifierAnchoredMatching(t *testing.T) {
	assert.False(t, IsExcludedSection("References and Notes"))
	assert.False(t, IsExcludedSection("Notes on References"))
	assert.False(t, IsMainContentSection("Results and Discussion"))
	assert.False(t, IsMainContentSection("Extended Discussion of Limitations"))
}
