package source

import (
	"context"
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/aretw0/sieve/pkg/table"
)

// ReadParquet loads a Parquet file through the Arrow reader and renders
// every cell to its string form. Null cells become the empty string, the
// same absent-value sentinel the CSV reader produces.
func ReadParquet(ctx context.Context, path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer f.Close()

	pf, err := file.NewParquetReader(f, file.WithReadProps(&parquet.ReaderProperties{}))
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pf.Close()

	rdr, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, memory.NewGoAllocator())
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	at, err := rdr.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	defer at.Release()

	return fromArrowTable(at)
}

func fromArrowTable(at arrow.Table) (*table.Table, error) {
	numCols := int(at.NumCols())
	numRows := int(at.NumRows())

	columns := make([]string, numCols)
	rows := make([][]string, numRows)
	for i := range rows {
		rows[i] = make([]string, numCols)
	}

	for c := 0; c < numCols; c++ {
		columns[c] = at.Schema().Field(c).Name
		row := 0
		for _, chunk := range at.Column(c).Data().Chunks() {
			for j := 0; j < chunk.Len(); j++ {
				if !chunk.IsNull(j) {
					rows[row][c] = chunk.ValueStr(j)
				}
				row++
			}
		}
	}
	return table.New(columns, rows)
}
