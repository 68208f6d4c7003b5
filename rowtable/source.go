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

// Source provides read-only access to an ordered collection of rows.
// Sources are read exclusively from the UI goroutine once bound to a model;
// they do not need internal locking.
type Source interface {
	// RowCount returns the total number of rows in the source.
	RowCount() int

	// Row returns the row at the given index.
	// Returns ErrInvalidRow if index is out of range.
	Row(index int) (Row, error)

	// Metadata returns optional metadata about the source.
	// Returns an empty Metadata map if none is available.
	Metadata() Metadata
}

// EditableSource is a Source whose row set can be mutated through the model.
// Sources that do not implement it reject Insert, Remove and Clear with
// ErrReadOnlySource.
type EditableSource interface {
	Source

	// InsertRow inserts a row at the given index (0..RowCount inclusive).
	// Returns ErrInvalidRow if index is out of range.
	InsertRow(index int, row Row) error

	// RemoveRow removes the given row, located by identity.
	// Returns ErrInvalidRow if the row is not present.
	RemoveRow(row Row) error

	// Clear removes all rows.
	Clear()
}

// ColumnProvider is implemented by sources that know their own column
// layout, such as file and table adapters. A model constructed without
// explicit columns adopts the provider's.
type ColumnProvider interface {
	Columns() []Column
}

// SliceSource is an editable, in-memory Source.
type SliceSource struct {
	rows []Row
	meta Metadata
}

// NewSliceSource creates a SliceSource over the given rows.
func NewSliceSource(rows ...Row) *SliceSource {
	return &SliceSource{
		rows: rows,
		meta: Metadata{},
	}
}

// RowCount implements the Source interface.
func (s *SliceSource) RowCount() int {
	return len(s.rows)
}

// Row implements the Source interface.
func (s *SliceSource) Row(index int) (Row, error) {
	if index < 0 || index >= len(s.rows) {
		return nil, ErrInvalidRow
	}
	return s.rows[index], nil
}

// Metadata implements the Source interface.
func (s *SliceSource) Metadata() Metadata {
	return s.meta
}

// SetMetadata stores a metadata entry.
func (s *SliceSource) SetMetadata(key string, value interface{}) {
	s.meta[key] = value
}

// InsertRow implements the EditableSource interface.
func (s *SliceSource) InsertRow(index int, row Row) error {
	if index < 0 || index > len(s.rows) {
		return ErrInvalidRow
	}
	s.rows = append(s.rows, nil)
	copy(s.rows[index+1:], s.rows[index:])
	s.rows[index] = row
	return nil
}

// Append adds a row at the end.
func (s *SliceSource) Append(row Row) {
	s.rows = append(s.rows, row)
}

// RemoveRow implements the EditableSource interface.
func (s *SliceSource) RemoveRow(row Row) error {
	for i, r := range s.rows {
		if r == row {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return ErrInvalidRow
}

// Clear implements the EditableSource interface.
func (s *SliceSource) Clear() {
	s.rows = s.rows[:0]
}

// IndexOf returns the position of a row, or -1 if it is not present.
func (s *SliceSource) IndexOf(row Row) int {
	for i, r := range s.rows {
		if r == row {
			return i
		}
	}
	return -1
}
