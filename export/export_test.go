package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asklund/fyne-rowtable/rowtable"
)

func exportModel(t *testing.T) *rowtable.Model {
	t.Helper()
	rows := []*rowtable.MapRow{
		rowtable.NewMapRow(map[string]interface{}{"name": "Ana", "age": 34, "city": "Lund"}),
		rowtable.NewMapRow(map[string]interface{}{"name": "Bo", "age": 25}),
		rowtable.NewMapRow(map[string]interface{}{"name": "Cleo", "age": 41, "city": "Ystad"}),
	}
	m, err := rowtable.NewModel(rowtable.NewSliceSource(rows[0], rows[1], rows[2]),
		rowtable.NewColumn("Name", "name"),
		rowtable.NewColumn("Age", "age"),
		rowtable.NewColumn("City", "city"),
	)
	require.NoError(t, err)
	return m
}

type minAge struct{ limit int }

func (f minAge) Evaluate(row []rowtable.Value, accessors []string) (bool, error) {
	for i, acc := range accessors {
		if acc != "age" || row[i].IsNull {
			continue
		}
		if n, ok := row[i].Raw.(int); ok {
			return n >= f.limit, nil
		}
	}
	return false, nil
}

func (f minAge) Description() string { return "adults" }

func TestWriteCSVVisibleData(t *testing.T) {
	m := exportModel(t)
	require.NoError(t, m.SetColumnVisible("city", false))
	require.NoError(t, m.SetFilter(minAge{limit: 30}))
	require.NoError(t, m.SortBy("name", rowtable.SortDescending))

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(m, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Name", "Age"}, records[0])
	assert.Equal(t, []string{"Cleo", "41"}, records[1])
	assert.Equal(t, []string{"Ana", "34"}, records[2])
}

func TestWriteCSVNullCellIsEmpty(t *testing.T) {
	m := exportModel(t)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(m, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Bo", "25", ""}, records[2])
}

func TestWriteJSON(t *testing.T) {
	m := exportModel(t)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(m, &buf))

	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &records))
	require.Len(t, records, 3)
	assert.Equal(t, "Ana", records[0]["name"])
	assert.Equal(t, float64(34), records[0]["age"])

	city, present := records[1]["city"]
	assert.True(t, present)
	assert.Nil(t, city)
}

func TestToFileUnknownFormat(t *testing.T) {
	m := exportModel(t)
	err := ToFile(m, filepath.Join(t.TempDir(), "out.bin"), Format(99))
	assert.ErrorIs(t, err, rowtable.ErrExportFailed)
}

func TestToCSVCreateFailure(t *testing.T) {
	m := exportModel(t)
	err := ToCSV(m, filepath.Join(t.TempDir(), "missing", "out.csv"))
	assert.ErrorIs(t, err, rowtable.ErrExportFailed)
}

func TestArrowTableTypesAndNulls(t *testing.T) {
	m := exportModel(t)

	table, err := ArrowTable(m)
	require.NoError(t, err)
	defer table.Release()

	assert.EqualValues(t, 3, table.NumRows())
	require.EqualValues(t, 3, table.NumCols())

	schema := table.Schema()
	assert.Equal(t, "name", schema.Field(0).Name)
	assert.Equal(t, arrow.BinaryTypes.String, schema.Field(0).Type)
	assert.Equal(t, arrow.PrimitiveTypes.Int64, schema.Field(1).Type)

	ages := table.Column(1).Data().Chunks()[0].(*array.Int64)
	assert.Equal(t, int64(34), ages.Value(0))

	cities := table.Column(2).Data().Chunks()[0].(*array.String)
	assert.True(t, cities.IsNull(1))
	assert.Equal(t, "Ystad", cities.Value(2))
}

func TestToParquetRoundTrip(t *testing.T) {
	m := exportModel(t)
	require.NoError(t, m.SetColumnVisible("city", false))

	path := filepath.Join(t.TempDir(), "people.parquet")
	require.NoError(t, ToParquet(m, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	pf, err := file.NewParquetReader(f, file.WithReadProps(&parquet.ReaderProperties{}))
	require.NoError(t, err)
	defer pf.Close()

	reader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, memory.NewGoAllocator())
	require.NoError(t, err)

	table, err := reader.ReadTable(context.Background())
	require.NoError(t, err)
	defer table.Release()

	assert.EqualValues(t, 3, table.NumRows())
	assert.EqualValues(t, 2, table.NumCols())
	assert.Equal(t, "name", table.Schema().Field(0).Name)
	assert.Equal(t, "age", table.Schema().Field(1).Name)
}
