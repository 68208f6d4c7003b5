package rowtable_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asklund/fyne-rowtable/rowtable"
)

// recordingBackend counts every notification the model emits.
type recordingBackend struct {
	sourceChanged int
	inserted      int
	changed       int
	removed       int
	cleared       int
	columnAdded   int
	columnRemoved int
	viewChanged   int
	scrolledTo    []int
}

func (b *recordingBackend) SourceChanged()                       { b.sourceChanged++ }
func (b *recordingBackend) RowInserted(int, rowtable.Row)        { b.inserted++ }
func (b *recordingBackend) RowChanged(rowtable.Row)              { b.changed++ }
func (b *recordingBackend) RowRemoved(rowtable.Row)              { b.removed++ }
func (b *recordingBackend) Cleared()                             { b.cleared++ }
func (b *recordingBackend) ColumnAdded(rowtable.Column)          { b.columnAdded++ }
func (b *recordingBackend) ColumnRemoved(string)                 { b.columnRemoved++ }
func (b *recordingBackend) ViewChanged()                         { b.viewChanged++ }
func (b *recordingBackend) ScrollToRow(row int)                  { b.scrolledTo = append(b.scrolledTo, row) }

// readOnlySource hides SliceSource's mutation methods.
type readOnlySource struct {
	inner *rowtable.SliceSource
}

func (s *readOnlySource) RowCount() int                     { return s.inner.RowCount() }
func (s *readOnlySource) Row(i int) (rowtable.Row, error)   { return s.inner.Row(i) }
func (s *readOnlySource) Metadata() rowtable.Metadata       { return s.inner.Metadata() }

// providingSource reports its own column layout.
type providingSource struct {
	readOnlySource
	cols []rowtable.Column
}

func (s *providingSource) Columns() []rowtable.Column { return s.cols }

// ageFilter keeps rows whose "age" value is at least the threshold.
type ageFilter struct {
	min float64
}

func (f *ageFilter) Evaluate(row []rowtable.Value, accessors []string) (bool, error) {
	for i, acc := range accessors {
		if acc != "age" {
			continue
		}
		n, ok := row[i].Raw.(int)
		if !ok {
			return false, nil
		}
		return float64(n) >= f.min, nil
	}
	return false, rowtable.ErrColumnNotFound
}

func (f *ageFilter) Description() string { return "age filter" }

// failingFilter always errors.
type failingFilter struct{}

func (failingFilter) Evaluate([]rowtable.Value, []string) (bool, error) {
	return false, errors.New("broken filter")
}
func (failingFilter) Description() string { return "broken" }

func peopleColumns() []rowtable.Column {
	cols, _ := rowtable.ZipColumns([]string{"Name", "Age"}, []string{"name", "age"})
	return cols
}

func personRow(name string, age int) rowtable.Row {
	return rowtable.NewMapRow(map[string]interface{}{"name": name, "age": age})
}

func peopleModel(t *testing.T) (*rowtable.Model, *rowtable.SliceSource) {
	t.Helper()
	src := rowtable.NewSliceSource(
		personRow("Ana", 36),
		personRow("Bo", 44),
		personRow("Cy", 29),
	)
	m, err := rowtable.NewModel(src, peopleColumns()...)
	require.NoError(t, err)
	return m, src
}

func TestModelWithoutSource(t *testing.T) {
	m, err := rowtable.NewModel(nil, peopleColumns()...)
	require.NoError(t, err)

	assert.Equal(t, 0, m.OriginalRowCount())
	assert.Equal(t, 0, m.VisibleRowCount())
	assert.Equal(t, 2, m.OriginalColumnCount())
}

func TestModelCounts(t *testing.T) {
	m, _ := peopleModel(t)
	assert.Equal(t, 3, m.OriginalRowCount())
	assert.Equal(t, 3, m.VisibleRowCount())
	assert.Equal(t, 2, m.VisibleColumnCount())
}

func TestModelAdoptsProvidedColumns(t *testing.T) {
	src := &providingSource{
		readOnlySource: readOnlySource{inner: rowtable.NewSliceSource(personRow("Ana", 36))},
		cols:           peopleColumns(),
	}
	m, err := rowtable.NewModel(src)
	require.NoError(t, err)
	assert.Equal(t, 2, m.OriginalColumnCount())

	name, err := m.VisibleColumnName(0)
	require.NoError(t, err)
	assert.Equal(t, "Name", name)
}

func TestModelRejectsDuplicateColumns(t *testing.T) {
	cols := []rowtable.Column{
		rowtable.NewColumn("Name", "name"),
		rowtable.NewColumn("Also Name", "name"),
	}
	_, err := rowtable.NewModel(nil, cols...)
	assert.ErrorIs(t, err, rowtable.ErrDuplicateColumn)
}

func TestAddRemoveColumnRestoresState(t *testing.T) {
	m, _ := peopleModel(t)
	before := m.Columns()

	require.NoError(t, m.AddColumn("Height", "height"))
	assert.Equal(t, 3, m.OriginalColumnCount())
	_, _, ok := m.ColumnByAccessor("height")
	assert.True(t, ok)

	require.NoError(t, m.RemoveColumn("height"))
	assert.Equal(t, before, m.Columns())
	_, _, ok = m.ColumnByAccessor("height")
	assert.False(t, ok)
}

func TestRemoveColumnNeverAdded(t *testing.T) {
	m, _ := peopleModel(t)
	err := m.RemoveColumn("salary")
	assert.ErrorIs(t, err, rowtable.ErrColumnNotFound)
}

func TestAddColumnDuplicate(t *testing.T) {
	m, _ := peopleModel(t)
	err := m.AddColumn("Name Again", "name")
	assert.ErrorIs(t, err, rowtable.ErrDuplicateColumn)
}

func TestMissingValueSubstitution(t *testing.T) {
	src := rowtable.NewSliceSource(
		rowtable.NewMapRow(map[string]interface{}{"name": "Ana"}),
	)
	m, err := rowtable.NewModel(src, peopleColumns()...)
	require.NoError(t, err)
	m.SetMissingValue("—")

	v, err := m.ValueAt(0, "age")
	require.NoError(t, err)
	assert.Equal(t, "—", v.Formatted)

	v, err = m.ValueAt(0, "name")
	require.NoError(t, err)
	assert.Equal(t, "Ana", v.Formatted)
}

func TestMissingValueUnset(t *testing.T) {
	src := rowtable.NewSliceSource(
		rowtable.NewMapRow(map[string]interface{}{"name": "Ana"}),
	)
	m, err := rowtable.NewModel(src, peopleColumns()...)
	require.NoError(t, err)

	v, err := m.ValueAt(0, "age")
	require.NoError(t, err)
	assert.True(t, v.IsNull)
	assert.Equal(t, "", v.Formatted)
}

func TestValueAtUnknownAccessor(t *testing.T) {
	m, _ := peopleModel(t)
	_, err := m.ValueAt(0, "salary")
	assert.ErrorIs(t, err, rowtable.ErrColumnNotFound)
}

func TestMutationsNotifyExactlyOnce(t *testing.T) {
	m, _ := peopleModel(t)
	backend := &recordingBackend{}
	m.Bind(backend)

	require.NoError(t, m.Insert(0, personRow("Di", 51)))
	assert.Equal(t, 1, backend.inserted)

	row, err := m.VisibleRow(0)
	require.NoError(t, err)
	require.NoError(t, m.Change(row))
	assert.Equal(t, 1, backend.changed)

	require.NoError(t, m.Remove(row))
	assert.Equal(t, 1, backend.removed)

	require.NoError(t, m.Clear())
	assert.Equal(t, 1, backend.cleared)
	assert.Equal(t, 0, m.VisibleRowCount())

	m.SetSource(rowtable.NewSliceSource(personRow("Ed", 33)))
	assert.Equal(t, 1, backend.sourceChanged)
	assert.Equal(t, 1, m.VisibleRowCount())
}

func TestMutationsOnReadOnlySource(t *testing.T) {
	src := &readOnlySource{inner: rowtable.NewSliceSource(personRow("Ana", 36))}
	m, err := rowtable.NewModel(src, peopleColumns()...)
	require.NoError(t, err)

	assert.ErrorIs(t, m.Insert(0, personRow("x", 1)), rowtable.ErrReadOnlySource)
	row, _ := m.VisibleRow(0)
	assert.ErrorIs(t, m.Remove(row), rowtable.ErrReadOnlySource)
	assert.ErrorIs(t, m.Clear(), rowtable.ErrReadOnlySource)

	// Change is a pure re-render notification and stays allowed.
	assert.NoError(t, m.Change(row))
}

func TestMutationsWithoutSource(t *testing.T) {
	m, err := rowtable.NewModel(nil, peopleColumns()...)
	require.NoError(t, err)

	assert.ErrorIs(t, m.Insert(0, personRow("x", 1)), rowtable.ErrNoDataSource)
	assert.ErrorIs(t, m.Clear(), rowtable.ErrNoDataSource)
}

func TestSortBy(t *testing.T) {
	m, _ := peopleModel(t)

	require.NoError(t, m.SortBy("age", rowtable.SortAscending))
	names := visibleNames(t, m)
	assert.Equal(t, []string{"Cy", "Ana", "Bo"}, names)

	require.NoError(t, m.SortBy("age", rowtable.SortDescending))
	assert.Equal(t, []string{"Bo", "Ana", "Cy"}, visibleNames(t, m))

	state := m.GetSortState()
	assert.True(t, state.IsSorted())
	assert.Equal(t, rowtable.SortDescending, state.Direction)

	m.ClearSort()
	assert.Equal(t, []string{"Ana", "Bo", "Cy"}, visibleNames(t, m))
	assert.False(t, m.GetSortState().IsSorted())
}

func TestSortByUnknownColumn(t *testing.T) {
	m, _ := peopleModel(t)
	assert.ErrorIs(t, m.SortBy("salary", rowtable.SortAscending), rowtable.ErrInvalidSortColumn)
}

func TestRemoveSortedColumnResetsSort(t *testing.T) {
	m, _ := peopleModel(t)
	require.NoError(t, m.SortBy("age", rowtable.SortAscending))
	require.NoError(t, m.RemoveColumn("age"))
	assert.False(t, m.GetSortState().IsSorted())
}

func TestSetFilter(t *testing.T) {
	m, _ := peopleModel(t)

	require.NoError(t, m.SetFilter(&ageFilter{min: 35}))
	assert.Equal(t, 2, m.VisibleRowCount())
	assert.Equal(t, 3, m.OriginalRowCount())
	assert.Equal(t, []string{"Ana", "Bo"}, visibleNames(t, m))
	assert.Equal(t, "age filter", m.FilterDescription())

	require.NoError(t, m.SetFilter(nil))
	assert.Equal(t, 3, m.VisibleRowCount())
	assert.Equal(t, "", m.FilterDescription())
}

func TestSetFilterValidation(t *testing.T) {
	m, _ := peopleModel(t)
	require.NoError(t, m.SetFilter(&ageFilter{min: 35}))

	err := m.SetFilter(failingFilter{})
	assert.Error(t, err)

	// The previous filter stays active.
	assert.Equal(t, 2, m.VisibleRowCount())
	assert.Equal(t, "age filter", m.FilterDescription())
}

func TestColumnVisibility(t *testing.T) {
	m, _ := peopleModel(t)

	require.NoError(t, m.SetColumnVisible("age", false))
	assert.Equal(t, 1, m.VisibleColumnCount())
	assert.Equal(t, 2, m.OriginalColumnCount())
	assert.False(t, m.ColumnVisible("age"))

	name, err := m.VisibleColumnName(0)
	require.NoError(t, err)
	assert.Equal(t, "Name", name)

	require.NoError(t, m.SetColumnVisible("age", true))
	assert.Equal(t, 2, m.VisibleColumnCount())

	assert.ErrorIs(t, m.SetColumnVisible("salary", false), rowtable.ErrColumnNotFound)
}

func TestFilteredIndicesMapToSource(t *testing.T) {
	m, _ := peopleModel(t)
	require.NoError(t, m.SetFilter(&ageFilter{min: 35}))

	indices := m.GetVisibleRowIndices()
	assert.Equal(t, []int{0, 1}, indices)

	src, err := m.SourceIndex(1)
	require.NoError(t, err)
	assert.Equal(t, 1, src)

	_, err = m.SourceIndex(5)
	assert.ErrorIs(t, err, rowtable.ErrInvalidRow)
}

func TestSelection(t *testing.T) {
	m, _ := peopleModel(t)

	_, ok := m.Selection()
	assert.False(t, ok)

	r0, _ := m.VisibleRow(0)
	r2, _ := m.VisibleRow(2)
	m.UpdateSelection([]rowtable.Row{r0, r2})

	sel, ok := m.Selection()
	assert.True(t, ok)
	assert.Equal(t, r0, sel)
	assert.Equal(t, []rowtable.Row{r0, r2}, m.SelectedRows())

	m.UpdateSelection(nil)
	_, ok = m.Selection()
	assert.False(t, ok)
	assert.Empty(t, m.SelectedRows())
}

func TestRemoveDropsRowFromSelection(t *testing.T) {
	m, _ := peopleModel(t)
	r0, _ := m.VisibleRow(0)
	r1, _ := m.VisibleRow(1)
	m.UpdateSelection([]rowtable.Row{r0, r1})

	require.NoError(t, m.Remove(r0))
	assert.Equal(t, []rowtable.Row{r1}, m.SelectedRows())
}

func TestScrollToRow(t *testing.T) {
	m, _ := peopleModel(t)
	backend := &recordingBackend{}
	m.Bind(backend)

	require.NoError(t, m.ScrollToRow(2))
	assert.Equal(t, []int{2}, backend.scrolledTo)

	assert.ErrorIs(t, m.ScrollToRow(3), rowtable.ErrInvalidRow)
}

func TestRowValues(t *testing.T) {
	m, _ := peopleModel(t)

	vals, err := m.RowValues(1)
	require.NoError(t, err)
	require.Len(t, vals, 2)
	assert.Equal(t, "Bo", vals[0].Formatted)
	assert.Equal(t, "44", vals[1].Formatted)

	assert.Equal(t, []string{"name", "age"}, m.Accessors())
}

func TestIconValueUnwrapsForValues(t *testing.T) {
	src := rowtable.NewSliceSource(
		rowtable.NewMapRow(map[string]interface{}{
			"name": rowtable.IconValue{Icon: &rowtable.Icon{Name: "file"}, Value: "Ana"},
			"age":  36,
		}),
	)
	m, err := rowtable.NewModel(src, peopleColumns()...)
	require.NoError(t, err)

	v, err := m.ValueAt(0, "name")
	require.NoError(t, err)
	assert.Equal(t, "Ana", v.Formatted)
}

func visibleNames(t *testing.T, m *rowtable.Model) []string {
	t.Helper()
	names := make([]string, 0, m.VisibleRowCount())
	for i := 0; i < m.VisibleRowCount(); i++ {
		v, err := m.ValueAt(i, "name")
		require.NoError(t, err)
		names = append(names, v.Formatted)
	}
	return names
}
