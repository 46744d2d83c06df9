// Package source reads delimited and columnar data files into the shared
// table representation. Readers are thin: they decode, they do not validate.
package source

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/aretw0/sieve/pkg/table"
)

// ReadCSV loads a comma-delimited file whose first record is the header.
func ReadCSV(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv file %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv file %s has no header row", path)
	}
	return table.New(records[0], records[1:])
}
