package csv_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	csvadapter "github.com/asklund/fyne-rowtable/adapters/csv"
	"github.com/asklund/fyne-rowtable/rowtable"
)

func TestNewFromReader(t *testing.T) {
	input := "name,age,active\nAna,34,true\nBo,25,false\n"
	src, err := csvadapter.NewFromReader(strings.NewReader(input), csvadapter.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 2, src.RowCount())
	assert.Equal(t, 3, src.ColumnCount())

	cols := src.Columns()
	assert.Equal(t, "name", cols[0].Accessor)
	assert.Equal(t, rowtable.TypeString, cols[0].Type)
	assert.Equal(t, rowtable.TypeInt, cols[1].Type)
	assert.Equal(t, rowtable.TypeBool, cols[2].Type)

	row, err := src.Row(0)
	require.NoError(t, err)
	age, ok := row.Attribute("age")
	require.True(t, ok)
	assert.Equal(t, int64(34), age)
	active, ok := row.Attribute("active")
	require.True(t, ok)
	assert.Equal(t, true, active)
}

func TestNewFromReaderNoHeaders(t *testing.T) {
	src, err := csvadapter.NewFromReader(strings.NewReader("Ana,34\nBo,25\n"), csvadapter.Config{})
	require.NoError(t, err)

	assert.Equal(t, 2, src.RowCount())
	cols := src.Columns()
	require.Len(t, cols, 2)
	assert.Equal(t, "column_1", cols[0].Accessor)
	assert.Equal(t, "column_2", cols[1].Accessor)
}

func TestShortRecordLeavesAttributeAbsent(t *testing.T) {
	input := "name,age\nAna,34\nBo\n"
	src, err := csvadapter.NewFromReader(strings.NewReader(input), csvadapter.DefaultConfig())
	require.NoError(t, err)

	row, err := src.Row(1)
	require.NoError(t, err)
	_, ok := row.Attribute("age")
	assert.False(t, ok)
}

func TestDuplicateHeadings(t *testing.T) {
	input := "id,id\n1,2\n"
	src, err := csvadapter.NewFromReader(strings.NewReader(input), csvadapter.DefaultConfig())
	require.NoError(t, err)

	cols := src.Columns()
	require.Len(t, cols, 2)
	assert.Equal(t, "id", cols[0].Accessor)
	assert.Equal(t, "id_2", cols[1].Accessor)
}

func TestSniffSeparator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "semi.csv")
	require.NoError(t, os.WriteFile(path, []byte("a;b;c\n1;2;3\n"), 0o644))

	sep, err := csvadapter.SniffSeparator(path)
	require.NoError(t, err)
	assert.Equal(t, ';', sep)
}

func TestNewFromFileSniffs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipes.csv")
	require.NoError(t, os.WriteFile(path, []byte("name|age\nAna|34\n"), 0o644))

	src, err := csvadapter.NewFromFile(path, csvadapter.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 1, src.RowCount())
	assert.Equal(t, 2, src.ColumnCount())
	assert.Equal(t, path, src.Metadata()["path"])

	row, err := src.Row(0)
	require.NoError(t, err)
	name, ok := row.Attribute("name")
	require.True(t, ok)
	assert.Equal(t, "Ana", name)
}

func TestReadOnlyThroughModel(t *testing.T) {
	src, err := csvadapter.NewFromReader(strings.NewReader("name\nAna\n"), csvadapter.DefaultConfig())
	require.NoError(t, err)

	m, err := rowtable.NewModel(src)
	require.NoError(t, err)
	assert.ErrorIs(t, m.Insert(0, rowtable.NewMapRow(nil)), rowtable.ErrReadOnlySource)
}

func TestEmptyInput(t *testing.T) {
	_, err := csvadapter.NewFromReader(strings.NewReader(""), csvadapter.DefaultConfig())
	assert.ErrorIs(t, err, rowtable.ErrEmptyData)
}
