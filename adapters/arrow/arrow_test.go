package arrow_test

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	arrowadapter "github.com/asklund/fyne-rowtable/adapters/arrow"
	"github.com/asklund/fyne-rowtable/rowtable"
)

func buildTestTable(t *testing.T) arrow.Table {
	t.Helper()
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "name", Type: arrow.BinaryTypes.String},
		{Name: "age", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
		{Name: "score", Type: arrow.PrimitiveTypes.Float64},
	}, nil)

	b := array.NewRecordBuilder(memory.NewGoAllocator(), schema)
	defer b.Release()
	b.Field(0).(*array.StringBuilder).AppendValues([]string{"Ana", "Bo", "Cleo"}, nil)
	b.Field(1).(*array.Int64Builder).AppendValues([]int64{34, 25, 0}, []bool{true, true, false})
	b.Field(2).(*array.Float64Builder).AppendValues([]float64{9.5, 8.25, 7}, nil)

	rec := b.NewRecord()
	defer rec.Release()
	return array.NewTableFromRecords(schema, []arrow.Record{rec})
}

func TestNewFromArrowTable(t *testing.T) {
	table := buildTestTable(t)
	defer table.Release()

	src, err := arrowadapter.NewFromArrowTable(table)
	require.NoError(t, err)

	assert.Equal(t, 3, src.RowCount())
	assert.Equal(t, 3, src.ColumnCount())

	cols := src.Columns()
	assert.Equal(t, "name", cols[0].Accessor)
	assert.Equal(t, rowtable.TypeInt, cols[1].Type)
	assert.Equal(t, rowtable.TypeFloat, cols[2].Type)

	row, err := src.Row(0)
	require.NoError(t, err)
	age, ok := row.Attribute("age")
	require.True(t, ok)
	assert.Equal(t, int64(34), age)

	row, err = src.Row(1)
	require.NoError(t, err)
	score, ok := row.Attribute("score")
	require.True(t, ok)
	assert.Equal(t, 8.25, score)
}

func TestNullCellsLeaveAttributesAbsent(t *testing.T) {
	table := buildTestTable(t)
	defer table.Release()

	src, err := arrowadapter.NewFromArrowTable(table)
	require.NoError(t, err)

	row, err := src.Row(2)
	require.NoError(t, err)
	_, ok := row.Attribute("age")
	assert.False(t, ok)

	// Through a model the null routes to the missing-value fallback.
	m, err := rowtable.NewModel(src)
	require.NoError(t, err)
	m.SetMissingValue("n/a")
	v, err := m.ValueAt(2, "age")
	require.NoError(t, err)
	assert.Equal(t, "n/a", v.Formatted)
}

func TestNewFromArrowTableNil(t *testing.T) {
	_, err := arrowadapter.NewFromArrowTable(nil)
	assert.ErrorIs(t, err, rowtable.ErrNoDataSource)
}
