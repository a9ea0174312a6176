package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"litmine/extract"
	"litmine/pubmed"
)

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestLiteratureWriterRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "literature_data.csv")

	w, err := NewLiteratureWriter(path)
	require.NoError(t, err)

	rec := pubmed.Record{
		PMID:    "38000001",
		Title:   "A title, with a comma",
		Authors: "Jane Doe, Wei Zhang",
		Country: "China",
		DOI:     "10.1234/jot.2024.001",
		Journal: "Journal of Testing",
	}
	res := extract.Result{
		PMCID:         "PMC7614532",
		Status:        extract.StatusSuccess,
		FullText:      "full text with \"quotes\" and, commas",
		Method:        extract.MethodMainBody,
		SectionsFound: []string{"Introduction", "Methods"},
		CharCount:     35,
		WordCount:     6,
	}
	require.NoError(t, w.Write(rec, res))
	require.NoError(t, w.Close())

	rows := readRows(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, literatureColumns, rows[0])

	row := rows[1]
	assert.Equal(t, "38000001", row[0])
	assert.Equal(t, "A title, with a comma", row[1])
	assert.Equal(t, "PMC7614532", row[7])
	assert.Equal(t, "success", row[8])
	assert.Equal(t, "main_body", row[9])
	assert.Equal(t, "Introduction; Methods", row[10])
	assert.Equal(t, "35", row[11])
	assert.Equal(t, res.FullText, row[14])
}

func TestLiteratureWriterAppendsWithoutSecondHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "literature_data.csv")

	w, err := NewLiteratureWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(pubmed.Record{PMID: "1"}, extract.Result{Status: extract.StatusFailed}))
	require.NoError(t, w.Close())

	w, err = NewLiteratureWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(pubmed.Record{PMID: "2"}, extract.Result{Status: extract.StatusNoID}))
	require.NoError(t, w.Close())

	rows := readRows(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, "PMID", rows[0][0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "failed", rows[1][8])
	assert.Equal(t, "2", rows[2][0])
	assert.Equal(t, "no_pmcid", rows[2][8])
}
