// Package report serializes findings to the report sink.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/aretw0/sieve/pkg/validate"
)

// Render writes findings one per line:
//
//	Row: <row>\t Column: <column>\t\t<message>
//
// Whole-source findings render a blank row index.
func Render(w io.Writer, findings []validate.Finding) error {
	for _, f := range findings {
		row := ""
		if f.Row != validate.SourceRow {
			row = strconv.Itoa(f.Row)
		}
		if _, err := fmt.Fprintf(w, "Row: %s\t Column: %s\t\t%s\n", row, f.Column, f.Message); err != nil {
			return err
		}
	}
	return nil
}

// Write creates the report file and renders every finding into it.
// With zero findings no file is written at all.
func Write(path string, findings []validate.Finding) error {
	if len(findings) == 0 {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	w := bufio.NewWriter(f)
	if err := Render(w, findings); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	return f.Close()
}
