package rowtable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asklund/fyne-rowtable/rowtable"
)

func namedRow(name string) rowtable.Row {
	return rowtable.NewMapRow(map[string]interface{}{"name": name})
}

func TestSliceSourceRows(t *testing.T) {
	a, b := namedRow("a"), namedRow("b")
	src := rowtable.NewSliceSource(a, b)

	assert.Equal(t, 2, src.RowCount())

	got, err := src.Row(1)
	require.NoError(t, err)
	assert.Equal(t, b, got)

	_, err = src.Row(2)
	assert.ErrorIs(t, err, rowtable.ErrInvalidRow)
	_, err = src.Row(-1)
	assert.ErrorIs(t, err, rowtable.ErrInvalidRow)
}

func TestSliceSourceInsert(t *testing.T) {
	a, b, c := namedRow("a"), namedRow("b"), namedRow("c")
	src := rowtable.NewSliceSource(a, c)

	require.NoError(t, src.InsertRow(1, b))
	assert.Equal(t, 3, src.RowCount())
	assert.Equal(t, 1, src.IndexOf(b))
	assert.Equal(t, 2, src.IndexOf(c))

	end := namedRow("end")
	require.NoError(t, src.InsertRow(src.RowCount(), end))
	assert.Equal(t, 3, src.IndexOf(end))

	assert.ErrorIs(t, src.InsertRow(99, namedRow("x")), rowtable.ErrInvalidRow)
	assert.ErrorIs(t, src.InsertRow(-1, namedRow("x")), rowtable.ErrInvalidRow)
}

func TestSliceSourceRemove(t *testing.T) {
	a, b := namedRow("a"), namedRow("b")
	src := rowtable.NewSliceSource(a, b)

	require.NoError(t, src.RemoveRow(a))
	assert.Equal(t, 1, src.RowCount())
	assert.Equal(t, -1, src.IndexOf(a))

	assert.ErrorIs(t, src.RemoveRow(a), rowtable.ErrInvalidRow)
}

func TestSliceSourceClearAndAppend(t *testing.T) {
	src := rowtable.NewSliceSource(namedRow("a"))
	src.Clear()
	assert.Equal(t, 0, src.RowCount())

	r := namedRow("z")
	src.Append(r)
	assert.Equal(t, 1, src.RowCount())
	assert.Equal(t, 0, src.IndexOf(r))
}

func TestSliceSourceMetadata(t *testing.T) {
	src := rowtable.NewSliceSource()
	src.SetMetadata("origin", "unit test")
	assert.Equal(t, "unit test", src.Metadata()["origin"])
}
