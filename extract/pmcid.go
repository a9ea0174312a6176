package extract

import "strings"

// PMCID is a normalized PubMed Central article identifier.
type PMCID string

// NormalizePMCID trims surrounding whitespace, upper-cases the identifier
// and adds the PMC prefix when it is missing. An empty input stays empty.
func NormalizePMCID(raw string) PMCID {
	id := strings.ToUpper(strings.TrimSpace(raw))
	if id == "" {
		return ""
	}
	if !strings.HasPrefix(id, "PMC") {
		id = "PMC" + id
	}
	return PMCID(id)
}

func (id PMCID) String() string {
	return string(id)
}
