package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePMCID(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want PMCID
	}{
		{"bare number gets prefix", "10616689", "PMC10616689"},
		{"existing prefix kept", "PMC10616689", "PMC10616689"},
		{"lower-case prefix upper-cased", "pmc10616689", "PMC10616689"},
		{"surrounding whitespace trimmed", "  PMC123 \n", "PMC123"},
		{"trimmed then prefixed", " 123 ", "PMC123"},
		{"empty stays empty", "", ""},
		{"whitespace only stays empty", "   ", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizePMCID(tc.in))
		})
	}
}
