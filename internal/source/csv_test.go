package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("date,quantity\n2017-01-02,5\n2017-06-01,\n"), 0o644))

	tbl, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"date", "quantity"}, tbl.Columns())
	assert.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, "5", tbl.Cell(0, "quantity"))
	assert.Equal(t, "", tbl.Cell(1, "quantity"))
}

func TestReadCSV_Defects(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadCSV(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)

	ragged := filepath.Join(dir, "ragged.csv")
	require.NoError(t, os.WriteFile(ragged, []byte("a,b\n1\n"), 0o644))
	_, err = ReadCSV(ragged)
	require.Error(t, err)

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = ReadCSV(empty)
	require.Error(t, err)
}
