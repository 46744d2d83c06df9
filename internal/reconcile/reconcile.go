// Package reconcile cross-checks aggregate values between two tabular
// sources: filtered sum and count comparisons over a column, and an
// anti-join over key columns. Divergences become whole-source findings,
// never per-row ones.
package reconcile

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aretw0/sieve/pkg/table"
	"github.com/aretw0/sieve/pkg/validate"
)

// Filter restricts an aggregate to rows whose column value lies within
// inclusive bounds. When both bound and value parse as numbers the
// comparison is numeric; otherwise it is lexicographic, which orders
// ISO-formatted date strings correctly.
type Filter struct {
	Column string
	Min    string
	Max    string
}

func (f *Filter) keep(v string) bool {
	if f == nil || f.Column == "" {
		return true
	}
	if f.Min != "" && less(v, f.Min) {
		return false
	}
	if f.Max != "" && less(f.Max, v) {
		return false
	}
	return true
}

func less(a, b string) bool {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		return fa < fb
	}
	return a < b
}

// Config names the aggregates to cross-check. Empty fields disable the
// corresponding check.
type Config struct {
	SumColumn   string
	CountColumn string
	JoinColumns []string
	Filter      *Filter
}

// Run compares the configured aggregates between the primary and secondary
// sources. Errors are configuration defects (a named column missing from a
// source); mismatched aggregates are findings with a blank row index.
func Run(logger *slog.Logger, primary, secondary *table.Table, cfg Config) ([]validate.Finding, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	// A misspelled filter column would otherwise read every cell as empty,
	// exclude all rows and make both aggregates agree on zero.
	if f := cfg.Filter; f != nil && f.Column != "" {
		if !primary.HasColumn(f.Column) {
			return nil, fmt.Errorf("primary source: no filter column %q", f.Column)
		}
		if !secondary.HasColumn(f.Column) {
			return nil, fmt.Errorf("secondary source: no filter column %q", f.Column)
		}
	}

	var findings []validate.Finding

	if cfg.SumColumn != "" {
		sum1, err := columnSum(primary, cfg.SumColumn, cfg.Filter)
		if err != nil {
			return nil, fmt.Errorf("primary source: %w", err)
		}
		sum2, err := columnSum(secondary, cfg.SumColumn, cfg.Filter)
		if err != nil {
			return nil, fmt.Errorf("secondary source: %w", err)
		}
		logger.Info("sum comparison", "column", cfg.SumColumn, "primary", sum1, "secondary", sum2)
		if sum1 != sum2 {
			findings = append(findings, validate.Finding{
				Row:     validate.SourceRow,
				Column:  cfg.SumColumn,
				Message: fmt.Sprintf("Sum of %s is not the same in both sources", cfg.SumColumn),
			})
		}
	}

	if cfg.CountColumn != "" {
		n1, err := columnCount(primary, cfg.CountColumn, cfg.Filter)
		if err != nil {
			return nil, fmt.Errorf("primary source: %w", err)
		}
		n2, err := columnCount(secondary, cfg.CountColumn, cfg.Filter)
		if err != nil {
			return nil, fmt.Errorf("secondary source: %w", err)
		}
		logger.Info("count comparison", "column", cfg.CountColumn, "primary", n1, "secondary", n2)
		if n1 != n2 {
			findings = append(findings, validate.Finding{
				Row:     validate.SourceRow,
				Column:  cfg.CountColumn,
				Message: fmt.Sprintf("Count of %s is not the same in both sources", cfg.CountColumn),
			})
		}
	}

	if len(cfg.JoinColumns) > 0 {
		missing, err := AntiJoin(primary, secondary, cfg.JoinColumns)
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			key := strings.Join(cfg.JoinColumns, ",")
			noun := "rows"
			if len(missing) == 1 {
				noun = "row"
			}
			findings = append(findings, validate.Finding{
				Row:     validate.SourceRow,
				Column:  key,
				Message: fmt.Sprintf("%d %s missing from secondary source over key %s", len(missing), noun, key),
			})
		}
	}

	return findings, nil
}

// columnSum adds every filtered cell of the column that parses as a number.
// Empty and non-numeric cells are skipped, not counted as zero.
func columnSum(t *table.Table, column string, f *Filter) (float64, error) {
	values, err := t.Column(column)
	if err != nil {
		return 0, err
	}
	var sum float64
	for i, v := range values {
		if !f.keep(filterCell(t, f, i)) {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			continue
		}
		sum += n
	}
	return sum, nil
}

// columnCount counts filtered non-empty cells of the column.
func columnCount(t *table.Table, column string, f *Filter) (int, error) {
	values, err := t.Column(column)
	if err != nil {
		return 0, err
	}
	n := 0
	for i, v := range values {
		if !f.keep(filterCell(t, f, i)) {
			continue
		}
		if v != "" {
			n++
		}
	}
	return n, nil
}

func filterCell(t *table.Table, f *Filter, row int) string {
	if f == nil || f.Column == "" {
		return ""
	}
	return t.Cell(row, f.Column)
}

// AntiJoin projects both tables onto the key columns and returns the key
// rows of the primary source that have no match in the secondary one, in
// source order and with duplicates preserved.
func AntiJoin(primary, secondary *table.Table, keys []string) ([][]string, error) {
	for _, k := range keys {
		if !primary.HasColumn(k) {
			return nil, fmt.Errorf("primary source: no column %q", k)
		}
		if !secondary.HasColumn(k) {
			return nil, fmt.Errorf("secondary source: no column %q", k)
		}
	}

	present := make(map[string]bool, secondary.NumRows())
	for i := 0; i < secondary.NumRows(); i++ {
		present[joinKey(secondary, i, keys)] = true
	}

	var missing [][]string
	for i := 0; i < primary.NumRows(); i++ {
		if present[joinKey(primary, i, keys)] {
			continue
		}
		row := make([]string, len(keys))
		for j, k := range keys {
			row[j] = primary.Cell(i, k)
		}
		missing = append(missing, row)
	}
	return missing, nil
}

func joinKey(t *table.Table, row int, keys []string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = t.Cell(row, k)
	}
	return strings.Join(parts, "\x1f")
}
