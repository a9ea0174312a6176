package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// ReadPMIDs loads a PMID list from a CSV file. A header row containing a
// PMID column is honored; otherwise the first column of every row is taken.
func ReadPMIDs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PMID file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse PMID file: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	col := 0
	start := 0
	for i, h := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(h), "pmid") {
			col = i
			start = 1
			break
		}
	}

	var pmids []string
	for _, row := range rows[start:] {
		if len(row) <= col {
			continue
		}
		if v := strings.TrimSpace(row[col]); v != "" {
			pmids = append(pmids, v)
		}
	}
	return pmids, nil
}
