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

// Package arrow adapts Apache Arrow tables to rowtable sources. The
// table's contents are materialized into Go values up front, so the
// Arrow table can be released once the source is built.
package arrow

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/asklund/fyne-rowtable/rowtable"
)

// Source is a read-only source over a materialized Arrow table.
type Source struct {
	rows    []rowtable.Row
	columns []rowtable.Column
	meta    rowtable.Metadata
}

var (
	_ rowtable.Source         = (*Source)(nil)
	_ rowtable.ColumnProvider = (*Source)(nil)
)

// RowCount implements rowtable.Source.
func (s *Source) RowCount() int {
	return len(s.rows)
}

// Row implements rowtable.Source.
func (s *Source) Row(index int) (rowtable.Row, error) {
	if index < 0 || index >= len(s.rows) {
		return nil, rowtable.ErrInvalidRow
	}
	return s.rows[index], nil
}

// Metadata implements rowtable.Source.
func (s *Source) Metadata() rowtable.Metadata {
	return s.meta
}

// Columns implements rowtable.ColumnProvider.
func (s *Source) Columns() []rowtable.Column {
	out := make([]rowtable.Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// ColumnCount returns the number of columns.
func (s *Source) ColumnCount() int {
	return len(s.columns)
}

// NewFromArrowTable copies an Arrow table into a source. Null cells
// leave the row attribute absent, which routes them through the model's
// missing-value fallback.
func NewFromArrowTable(table arrow.Table) (*Source, error) {
	if table == nil {
		return nil, rowtable.ErrNoDataSource
	}
	schema := table.Schema()
	numCols := int(table.NumCols())
	numRows := int(table.NumRows())
	if numCols == 0 {
		return nil, rowtable.ErrEmptyData
	}

	columns := make([]rowtable.Column, numCols)
	for i, field := range schema.Fields() {
		columns[i] = rowtable.Column{
			Heading:  field.Name,
			Accessor: field.Name,
			Type:     dataTypeOf(field.Type),
		}
	}

	values := make([]map[string]interface{}, numRows)
	for i := range values {
		values[i] = make(map[string]interface{}, numCols)
	}

	for c := 0; c < numCols; c++ {
		accessor := columns[c].Accessor
		row := 0
		for _, chunk := range table.Column(c).Data().Chunks() {
			for pos := 0; pos < chunk.Len(); pos++ {
				if !chunk.IsNull(pos) {
					values[row][accessor] = goValue(chunk, pos)
				}
				row++
			}
		}
	}

	rows := make([]rowtable.Row, numRows)
	for i, v := range values {
		rows[i] = rowtable.NewMapRow(v)
	}

	return &Source{
		rows:    rows,
		columns: columns,
		meta:    rowtable.Metadata{"format": "arrow"},
	}, nil
}

func dataTypeOf(dt arrow.DataType) rowtable.DataType {
	switch dt.ID() {
	case arrow.BOOL:
		return rowtable.TypeBool
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
		return rowtable.TypeInt
	case arrow.FLOAT16, arrow.FLOAT32, arrow.FLOAT64:
		return rowtable.TypeFloat
	case arrow.DATE32, arrow.DATE64:
		return rowtable.TypeDate
	case arrow.TIMESTAMP:
		return rowtable.TypeTimestamp
	case arrow.BINARY:
		return rowtable.TypeBinary
	case arrow.DECIMAL128:
		return rowtable.TypeDecimal
	case arrow.STRUCT:
		return rowtable.TypeStruct
	case arrow.LIST:
		return rowtable.TypeList
	default:
		return rowtable.TypeString
	}
}

// goValue extracts one non-null cell as a Go value.
func goValue(col arrow.Array, pos int) interface{} {
	switch col.DataType().ID() {
	case arrow.STRING:
		return col.(*array.String).Value(pos)
	case arrow.BINARY:
		return col.(*array.Binary).Value(pos)
	case arrow.BOOL:
		return col.(*array.Boolean).Value(pos)
	case arrow.INT8:
		return col.(*array.Int8).Value(pos)
	case arrow.INT16:
		return col.(*array.Int16).Value(pos)
	case arrow.INT32:
		return col.(*array.Int32).Value(pos)
	case arrow.INT64:
		return col.(*array.Int64).Value(pos)
	case arrow.UINT8:
		return col.(*array.Uint8).Value(pos)
	case arrow.UINT16:
		return col.(*array.Uint16).Value(pos)
	case arrow.UINT32:
		return col.(*array.Uint32).Value(pos)
	case arrow.UINT64:
		return col.(*array.Uint64).Value(pos)
	case arrow.FLOAT16:
		return col.(*array.Float16).Value(pos).Float32()
	case arrow.FLOAT32:
		return col.(*array.Float32).Value(pos)
	case arrow.FLOAT64:
		return col.(*array.Float64).Value(pos)
	case arrow.DATE32:
		return col.(*array.Date32).Value(pos).ToTime()
	case arrow.DATE64:
		return col.(*array.Date64).Value(pos).ToTime()
	case arrow.TIMESTAMP:
		unit := col.DataType().(*arrow.TimestampType).Unit
		return col.(*array.Timestamp).Value(pos).ToTime(unit)
	case arrow.DECIMAL128:
		scale := col.DataType().(*arrow.Decimal128Type).Scale
		return col.(*array.Decimal128).Value(pos).ToFloat64(scale)
	case arrow.STRUCT:
		s := col.(*array.Struct)
		st := s.DataType().(*arrow.StructType)
		fields := make(map[string]interface{}, s.NumField())
		for i := 0; i < s.NumField(); i++ {
			if !s.Field(i).IsNull(pos) {
				fields[st.Field(i).Name] = goValue(s.Field(i), pos)
			}
		}
		return fields
	case arrow.LIST:
		l := col.(*array.List)
		offsets := l.Offsets()
		start, end := int(offsets[pos]), int(offsets[pos+1])
		items := make([]interface{}, 0, end-start)
		for i := start; i < end; i++ {
			if l.ListValues().IsNull(i) {
				items = append(items, nil)
				continue
			}
			items = append(items, goValue(l.ListValues(), i))
		}
		return items
	default:
		return nil
	}
}
