package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeParquetFixture(t *testing.T, path string) {
	t.Helper()

	mem := memory.NewGoAllocator()
	fields := []arrow.Field{
		{Name: "date", Type: arrow.BinaryTypes.String},
		{Name: "quantity", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
	}
	sc := arrow.NewSchema(fields, nil)

	db := array.NewStringBuilder(mem)
	defer db.Release()
	db.AppendValues([]string{"2017-01-02", "2017-06-01", "2017-09-30"}, nil)
	dateArr := db.NewArray()
	defer dateArr.Release()

	qb := array.NewInt64Builder(mem)
	defer qb.Release()
	qb.AppendValues([]int64{5, 7}, nil)
	qb.AppendNull()
	qtyArr := qb.NewArray()
	defer qtyArr.Release()

	columns := []arrow.Column{
		*arrow.NewColumn(fields[0], arrow.NewChunked(fields[0].Type, []arrow.Array{dateArr})),
		*arrow.NewColumn(fields[1], arrow.NewChunked(fields[1].Type, []arrow.Array{qtyArr})),
	}
	tbl := array.NewTable(sc, columns, 3)
	defer tbl.Release()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	props := parquet.NewWriterProperties()
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())
	w, err := pqarrow.NewFileWriter(sc, f, props, arrowProps)
	require.NoError(t, err)
	require.NoError(t, w.WriteTable(tbl, tbl.NumRows()))
	require.NoError(t, w.Close())
}

func TestReadParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.parquet")
	writeParquetFixture(t, path)

	tbl, err := ReadParquet(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"date", "quantity"}, tbl.Columns())
	assert.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, "2017-01-02", tbl.Cell(0, "date"))
	assert.Equal(t, "5", tbl.Cell(0, "quantity"))
	assert.Equal(t, "7", tbl.Cell(1, "quantity"))
	// Nulls come through as the absent-value sentinel.
	assert.Equal(t, "", tbl.Cell(2, "quantity"))
}

func TestReadParquet_MissingFile(t *testing.T) {
	_, err := ReadParquet(context.Background(), filepath.Join(t.TempDir(), "missing.parquet"))
	require.Error(t, err)
}
