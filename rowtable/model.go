// Copyright 2026 Anders Sklund
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rowtable

import (
	"fmt"
	"sort"
)

// Backend is the presentation side bound to a Model. The model forwards
// every data and column mutation as a notification; each content
// notification is answered with one full reload of the native view, with no
// incremental diffing. Implemented by the widget package's table adapter and
// by test doubles.
type Backend interface {
	// SourceChanged reports that the bound source was replaced.
	SourceChanged()

	// RowInserted reports a row inserted at a source index.
	RowInserted(index int, row Row)

	// RowChanged reports that a row's attributes changed.
	RowChanged(row Row)

	// RowRemoved reports that a row was removed.
	RowRemoved(row Row)

	// Cleared reports that all rows were removed.
	Cleared()

	// ColumnAdded reports a column appended to the model.
	ColumnAdded(col Column)

	// ColumnRemoved reports a column removed from the model.
	ColumnRemoved(accessor string)

	// ViewChanged reports a sort, filter or visibility change. Row content
	// is unchanged.
	ViewChanged()

	// ScrollToRow asks the native view to scroll a visible row into view.
	ScrollToRow(row int)
}

// Model binds a Source to a set of accessor columns and tracks everything a
// table presentation needs: column visibility, sort order, the active
// filter, the current selection and the missing-value fallback.
//
// A Model is used from the UI goroutine only.
type Model struct {
	// OnSelect is invoked by the presentation layer with the active row
	// each time the selection changes, or nil when there is none. It is
	// read at notification time, so it may be assigned or replaced at any
	// point in the model's life.
	OnSelect func(Row)

	source  Source
	columns []Column
	hidden  map[string]bool

	visRows []int // source indices after filter and sort
	visCols []int // column indices after visibility

	sortState SortState
	filter    Filter

	missing    interface{}
	missingSet bool

	selected []Row

	backend Backend
}

// NewModel creates a model over a source, which may be nil until SetSource.
// When no columns are given and the source knows its own layout, the
// source's columns are adopted.
func NewModel(source Source, columns ...Column) (*Model, error) {
	m := &Model{
		source:    source,
		hidden:    make(map[string]bool),
		sortState: SortState{Column: -1},
	}

	if len(columns) == 0 {
		if provider, ok := source.(ColumnProvider); ok {
			columns = provider.Columns()
		}
	}
	for _, c := range columns {
		if m.columnIndex(c.Accessor) >= 0 {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Accessor)
		}
		m.columns = append(m.columns, c)
	}

	m.recompute()
	return m, nil
}

// Bind attaches a presentation backend. Notifications are dropped while no
// backend is bound.
func (m *Model) Bind(backend Backend) {
	m.backend = backend
}

// Source returns the bound source, which may be nil.
func (m *Model) Source() Source {
	return m.source
}

// Metadata returns the bound source's metadata, or an empty map.
func (m *Model) Metadata() Metadata {
	if m.source == nil {
		return Metadata{}
	}
	return m.source.Metadata()
}

// SetMissingValue configures the fallback substituted when a row lacks an
// attribute. Takes effect from the next reload.
func (m *Model) SetMissingValue(v interface{}) {
	m.missing = v
	m.missingSet = true
}

// ClearMissingValue removes the fallback; absent attributes render empty
// with a diagnostic instead.
func (m *Model) ClearMissingValue() {
	m.missing = nil
	m.missingSet = false
}

// MissingValue returns the configured fallback and whether one is set.
func (m *Model) MissingValue() (interface{}, bool) {
	return m.missing, m.missingSet
}

// SetSource replaces the bound source. Columns are kept, except that a model
// still without columns adopts them from a providing source. The selection
// is cleared, matching the native view's behavior on a source swap.
func (m *Model) SetSource(source Source) {
	m.source = source
	if len(m.columns) == 0 {
		if provider, ok := source.(ColumnProvider); ok {
			m.columns = append(m.columns, provider.Columns()...)
		}
	}
	m.selected = nil
	m.recompute()
	if m.backend != nil {
		m.backend.SourceChanged()
	}
}

// Insert adds a row at the given source index. The source must be editable.
func (m *Model) Insert(index int, row Row) error {
	if row == nil {
		return ErrInvalidRow
	}
	if m.source == nil {
		return ErrNoDataSource
	}
	editable, ok := m.source.(EditableSource)
	if !ok {
		return ErrReadOnlySource
	}
	if err := editable.InsertRow(index, row); err != nil {
		return err
	}
	m.recompute()
	if m.backend != nil {
		m.backend.RowInserted(index, row)
	}
	return nil
}

// Change reports that a row's attributes were mutated in place so the
// presentation re-renders it. The row itself is not touched.
func (m *Model) Change(row Row) error {
	if row == nil {
		return ErrInvalidRow
	}
	if m.source == nil {
		return ErrNoDataSource
	}
	m.recompute()
	if m.backend != nil {
		m.backend.RowChanged(row)
	}
	return nil
}

// Remove deletes a row, located by identity. The source must be editable.
// A removed row also leaves the selection.
func (m *Model) Remove(row Row) error {
	if row == nil {
		return ErrInvalidRow
	}
	if m.source == nil {
		return ErrNoDataSource
	}
	editable, ok := m.source.(EditableSource)
	if !ok {
		return ErrReadOnlySource
	}
	if err := editable.RemoveRow(row); err != nil {
		return err
	}
	for i, sel := range m.selected {
		if sel == row {
			m.selected = append(m.selected[:i], m.selected[i+1:]...)
			break
		}
	}
	m.recompute()
	if m.backend != nil {
		m.backend.RowRemoved(row)
	}
	return nil
}

// Clear removes all rows. The source must be editable.
func (m *Model) Clear() error {
	if m.source == nil {
		return ErrNoDataSource
	}
	editable, ok := m.source.(EditableSource)
	if !ok {
		return ErrReadOnlySource
	}
	editable.Clear()
	m.selected = nil
	m.recompute()
	if m.backend != nil {
		m.backend.Cleared()
	}
	return nil
}

// AddColumn appends a column for an accessor not yet present.
func (m *Model) AddColumn(heading, accessor string) error {
	if m.columnIndex(accessor) >= 0 {
		return fmt.Errorf("%w: %q", ErrDuplicateColumn, accessor)
	}
	col := Column{Heading: heading, Accessor: accessor}
	m.columns = append(m.columns, col)
	m.recompute()
	if m.backend != nil {
		m.backend.ColumnAdded(col)
	}
	return nil
}

// RemoveColumn removes the column identified by accessor. Removing an
// accessor that was never added is a programmer error and returns
// ErrColumnNotFound.
func (m *Model) RemoveColumn(accessor string) error {
	idx := m.columnIndex(accessor)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrColumnNotFound, accessor)
	}
	m.columns = append(m.columns[:idx], m.columns[idx+1:]...)
	delete(m.hidden, accessor)

	switch {
	case m.sortState.Column == idx:
		m.sortState = SortState{Column: -1}
	case m.sortState.Column > idx:
		m.sortState.Column--
	}

	m.recompute()
	if m.backend != nil {
		m.backend.ColumnRemoved(accessor)
	}
	return nil
}

// SetColumnVisible shows or hides a column without removing it.
func (m *Model) SetColumnVisible(accessor string, visible bool) error {
	if m.columnIndex(accessor) < 0 {
		return fmt.Errorf("%w: %q", ErrColumnNotFound, accessor)
	}
	if visible {
		delete(m.hidden, accessor)
	} else {
		m.hidden[accessor] = true
	}
	m.recompute()
	if m.backend != nil {
		m.backend.ViewChanged()
	}
	return nil
}

// ColumnVisible reports whether the column is currently shown. Unknown
// accessors report false.
func (m *Model) ColumnVisible(accessor string) bool {
	if m.columnIndex(accessor) < 0 {
		return false
	}
	return !m.hidden[accessor]
}

// SortBy orders visible rows by the named column. SortNone clears the sort.
func (m *Model) SortBy(accessor string, direction SortDirection) error {
	if direction == SortNone {
		m.sortState = SortState{Column: -1}
	} else {
		idx := m.columnIndex(accessor)
		if idx < 0 {
			return fmt.Errorf("%w: %q", ErrInvalidSortColumn, accessor)
		}
		m.sortState = SortState{Column: idx, Direction: direction}
	}
	m.recompute()
	if m.backend != nil {
		m.backend.ViewChanged()
	}
	return nil
}

// ClearSort removes any active sort, restoring source order.
func (m *Model) ClearSort() {
	m.sortState = SortState{Column: -1}
	m.recompute()
	if m.backend != nil {
		m.backend.ViewChanged()
	}
}

// GetSortState returns the active sort configuration.
func (m *Model) GetSortState() SortState {
	return m.sortState
}

// SetFilter installs a row filter, or removes it when nil. The filter is
// validated against the current rows first; an evaluation error leaves the
// previous filter in place.
func (m *Model) SetFilter(f Filter) error {
	if f != nil && m.source != nil {
		accessors := m.accessors()
		for i := 0; i < m.source.RowCount(); i++ {
			if _, err := f.Evaluate(m.sourceRowValues(i), accessors); err != nil {
				return err
			}
		}
	}
	m.filter = f
	m.recompute()
	if m.backend != nil {
		m.backend.ViewChanged()
	}
	return nil
}

// Filter returns the active filter, or nil.
func (m *Model) Filter() Filter {
	return m.filter
}

// FilterDescription returns the active filter's description, or "".
func (m *Model) FilterDescription() string {
	if m.filter == nil {
		return ""
	}
	return m.filter.Description()
}

// OriginalRowCount returns the bound source's row count, or 0 when no
// source is bound.
func (m *Model) OriginalRowCount() int {
	if m.source == nil {
		return 0
	}
	return m.source.RowCount()
}

// OriginalColumnCount returns the number of columns including hidden ones.
func (m *Model) OriginalColumnCount() int {
	return len(m.columns)
}

// VisibleRowCount returns the number of rows after filtering.
func (m *Model) VisibleRowCount() int {
	return len(m.visRows)
}

// VisibleColumnCount returns the number of shown columns.
func (m *Model) VisibleColumnCount() int {
	return len(m.visCols)
}

// VisibleRow returns the row at a visible index.
func (m *Model) VisibleRow(index int) (Row, error) {
	src, err := m.SourceIndex(index)
	if err != nil {
		return nil, err
	}
	return m.source.Row(src)
}

// SourceIndex maps a visible row index to its source index.
func (m *Model) SourceIndex(visible int) (int, error) {
	if visible < 0 || visible >= len(m.visRows) {
		return 0, fmt.Errorf("%w: visible row %d", ErrInvalidRow, visible)
	}
	return m.visRows[visible], nil
}

// VisibleColumn returns the column at a visible column index.
func (m *Model) VisibleColumn(index int) (Column, error) {
	if index < 0 || index >= len(m.visCols) {
		return Column{}, fmt.Errorf("%w: visible column %d", ErrInvalidColumn, index)
	}
	return m.columns[m.visCols[index]], nil
}

// VisibleColumnName returns the heading of the column at a visible index.
func (m *Model) VisibleColumnName(index int) (string, error) {
	col, err := m.VisibleColumn(index)
	if err != nil {
		return "", err
	}
	return col.Heading, nil
}

// GetVisibleRowIndices returns a copy of the visible-to-source row mapping.
func (m *Model) GetVisibleRowIndices() []int {
	out := make([]int, len(m.visRows))
	copy(out, m.visRows)
	return out
}

// GetVisibleColumnIndices returns a copy of the visible-to-model column
// mapping.
func (m *Model) GetVisibleColumnIndices() []int {
	out := make([]int, len(m.visCols))
	copy(out, m.visCols)
	return out
}

// Columns returns a copy of all columns including hidden ones.
func (m *Model) Columns() []Column {
	out := make([]Column, len(m.columns))
	copy(out, m.columns)
	return out
}

// Column returns the column at a model index.
func (m *Model) Column(index int) (Column, error) {
	if index < 0 || index >= len(m.columns) {
		return Column{}, fmt.Errorf("%w: column %d", ErrInvalidColumn, index)
	}
	return m.columns[index], nil
}

// ColumnByAccessor returns the column for an accessor and its model index.
func (m *Model) ColumnByAccessor(accessor string) (Column, int, bool) {
	idx := m.columnIndex(accessor)
	if idx < 0 {
		return Column{}, -1, false
	}
	return m.columns[idx], idx, true
}

// AttributeValue resolves a row attribute with missing-value substitution.
// The second return is false only when the attribute is absent and no
// missing value is configured.
func (m *Model) AttributeValue(row Row, accessor string) (interface{}, bool) {
	if row == nil {
		return nil, m.missingSet
	}
	if v, ok := row.Attribute(accessor); ok {
		return v, true
	}
	if m.missingSet {
		return m.missing, true
	}
	return nil, false
}

// ValueAt returns the typed value for a visible row and accessor. Absent
// attributes resolve to the missing value, or to a null value when none is
// configured.
func (m *Model) ValueAt(visible int, accessor string) (Value, error) {
	col, _, ok := m.ColumnByAccessor(accessor)
	if !ok {
		return Value{}, fmt.Errorf("%w: %q", ErrColumnNotFound, accessor)
	}
	row, err := m.VisibleRow(visible)
	if err != nil {
		return Value{}, err
	}
	raw, ok := m.AttributeValue(row, accessor)
	if !ok || raw == nil {
		return NewNullValue(col.Type), nil
	}
	return ValueOf(unwrapCellValue(raw)), nil
}

// RowValues returns the typed values of a visible row for every column, in
// column order. Used by filters and exporters.
func (m *Model) RowValues(visible int) ([]Value, error) {
	src, err := m.SourceIndex(visible)
	if err != nil {
		return nil, err
	}
	return m.sourceRowValues(src), nil
}

// Accessors returns every column accessor in column order.
func (m *Model) Accessors() []string {
	return m.accessors()
}

// UpdateSelection stores the abstract selection. Called by the presentation
// backend when the native selection changes; the rows are kept in the order
// given.
func (m *Model) UpdateSelection(rows []Row) {
	m.selected = append(m.selected[:0:0], rows...)
}

// Selection returns the first selected row, with false when nothing is
// selected. This is the whole selection for single-select tables.
func (m *Model) Selection() (Row, bool) {
	if len(m.selected) == 0 {
		return nil, false
	}
	return m.selected[0], true
}

// SelectedRows returns a copy of the ordered selection.
func (m *Model) SelectedRows() []Row {
	return append([]Row(nil), m.selected...)
}

// ScrollToRow asks the bound backend to bring a visible row into view.
func (m *Model) ScrollToRow(visible int) error {
	if visible < 0 || visible >= len(m.visRows) {
		return fmt.Errorf("%w: visible row %d", ErrInvalidRow, visible)
	}
	if m.backend != nil {
		m.backend.ScrollToRow(visible)
	}
	return nil
}

func (m *Model) columnIndex(accessor string) int {
	for i, c := range m.columns {
		if c.Accessor == accessor {
			return i
		}
	}
	return -1
}

func (m *Model) accessors() []string {
	out := make([]string, len(m.columns))
	for i, c := range m.columns {
		out[i] = c.Accessor
	}
	return out
}

// sourceRowValues resolves every column value of a source row. Rows whose
// lookup fails resolve to nulls; this path never errors.
func (m *Model) sourceRowValues(src int) []Value {
	out := make([]Value, len(m.columns))
	var row Row
	if m.source != nil {
		row, _ = m.source.Row(src)
	}
	for i, c := range m.columns {
		raw, ok := m.AttributeValue(row, c.Accessor)
		if !ok || raw == nil {
			out[i] = NewNullValue(c.Type)
			continue
		}
		out[i] = ValueOf(unwrapCellValue(raw))
	}
	return out
}

// unwrapCellValue strips icon decoration so filtering, sorting and export
// see the displayable value.
func unwrapCellValue(raw interface{}) interface{} {
	if pair, ok := raw.(IconValue); ok {
		return pair.Value
	}
	if pair, ok := raw.(*IconValue); ok && pair != nil {
		return pair.Value
	}
	return raw
}

// recompute rebuilds the visible row and column mappings from the current
// source, filter, sort and visibility state. Filter evaluation errors keep
// the row visible; SetFilter validates up front.
func (m *Model) recompute() {
	m.visCols = m.visCols[:0]
	for i, c := range m.columns {
		if !m.hidden[c.Accessor] {
			m.visCols = append(m.visCols, i)
		}
	}

	m.visRows = m.visRows[:0]
	if m.source == nil {
		return
	}

	accessors := m.accessors()
	for i := 0; i < m.source.RowCount(); i++ {
		if m.filter != nil {
			pass, err := m.filter.Evaluate(m.sourceRowValues(i), accessors)
			if err == nil && !pass {
				continue
			}
		}
		m.visRows = append(m.visRows, i)
	}

	if m.sortState.IsSorted() && m.sortState.Column < len(m.columns) {
		accessor := m.columns[m.sortState.Column].Accessor
		ascending := m.sortState.Direction == SortAscending
		sort.SliceStable(m.visRows, func(a, b int) bool {
			va := m.sourceValue(m.visRows[a], accessor)
			vb := m.sourceValue(m.visRows[b], accessor)
			if ascending {
				return Compare(va, vb) < 0
			}
			return Compare(va, vb) > 0
		})
	}
}

func (m *Model) sourceValue(src int, accessor string) Value {
	var row Row
	if m.source != nil {
		row, _ = m.source.Row(src)
	}
	raw, ok := m.AttributeValue(row, accessor)
	if !ok || raw == nil {
		return NewNullValue(TypeString)
	}
	return ValueOf(unwrapCellValue(raw))
}
