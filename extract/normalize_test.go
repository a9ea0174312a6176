package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{
			"orcid label stripped",
			"Jane Doe ORCID: 0000-0002-1825-0097 wrote the draft",
			"Jane Doe wrote the draft",
		},
		{
			"orcid id label stripped",
			"Jane Doe ORCID ID: 0000-0002-1825-0097 wrote the draft",
			"Jane Doe wrote the draft",
		},
		{
			"orcid url stripped",
			"profile at https://orcid.org/0000-0002-1825-0097 here",
			"profile at here",
		},
		{
			"email stripped",
			"contact jane.doe+lab@example-site.org for data",
			"contact for data",
		},
		{
			"figure caption collapsed",
			"shown in Figure 3. Open in a new tab alongside controls",
			"shown in Figure alongside controls",
		},
		{
			"table caption collapsed",
			"see Table 12. for counts",
			"see Table for counts",
		},
		{
			"whitespace runs collapsed",
			"a\t b \n\n  c",
			"a b c",
		},
		{
			"leading and trailing trimmed",
			"   padded   ",
			"padded",
		},
		{
			"empty stays empty",
			"",
			"",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CleanText(tc.in))
		})
	}
}

func TestCleanTextIdempotent(t *testing.T) {
	samples := []string{
		"Jane Doe ORCID: 0000-0002-1825-0097 jane@example.org Figure 1. Open in a new tab results",
		"plain prose with no noise at all",
		"  spaced   out \n\n text with Table 4. markers ",
		"",
	}

	for _, s := range samples {
		once := CleanText(s)
		assert.Equal(t, once, CleanText(once), "CleanText must be idempotent for %q", s)
	}
}
