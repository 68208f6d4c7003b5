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

package export

import (
	"fmt"
	"os"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/asklund/fyne-rowtable/rowtable"
)

// ToParquet writes the visible data to a Snappy-compressed Parquet
// file with the Arrow schema stored alongside it.
func ToParquet(m *rowtable.Model, path string) error {
	table, err := ArrowTable(m)
	if err != nil {
		return err
	}
	defer table.Release()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", rowtable.ErrExportFailed, err)
	}
	defer f.Close()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(table.Schema(), f, props, arrowProps)
	if err != nil {
		return fmt.Errorf("%w: %v", rowtable.ErrExportFailed, err)
	}

	if err := writer.WriteTable(table, table.NumRows()); err != nil {
		writer.Close()
		return fmt.Errorf("%w: %v", rowtable.ErrExportFailed, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("%w: %v", rowtable.ErrExportFailed, err)
	}
	return nil
}

// ArrowTable materializes the model's visible data as an Arrow table.
// The caller owns the returned table and must Release it.
func ArrowTable(m *rowtable.Model) (arrow.Table, error) {
	accessors := visibleAccessors(m)
	if len(accessors) == 0 {
		return nil, rowtable.ErrEmptyData
	}

	fields := make([]arrow.Field, len(accessors))
	for i, acc := range accessors {
		fields[i] = arrow.Field{Name: acc, Type: arrowTypeOf(effectiveType(m, acc)), Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	pool := memory.NewGoAllocator()
	rows := m.VisibleRowCount()

	columns := make([]arrow.Column, len(accessors))
	for i, acc := range accessors {
		builder := array.NewBuilder(pool, fields[i].Type)
		defer builder.Release()

		for r := 0; r < rows; r++ {
			v, err := m.ValueAt(r, acc)
			if err != nil {
				return nil, err
			}
			appendValue(builder, v)
		}

		arr := builder.NewArray()
		defer arr.Release()

		chunked := arrow.NewChunked(fields[i].Type, []arrow.Array{arr})
		columns[i] = *arrow.NewColumn(fields[i], chunked)
	}

	return array.NewTable(schema, columns, int64(rows)), nil
}

// effectiveType resolves the type a column exports as. Columns added
// after construction default to string, so the first non-null value
// decides, falling back to the declared column type.
func effectiveType(m *rowtable.Model, accessor string) rowtable.DataType {
	for r := 0; r < m.VisibleRowCount(); r++ {
		v, err := m.ValueAt(r, accessor)
		if err == nil && !v.IsNull {
			return v.Type
		}
	}
	if col, _, ok := m.ColumnByAccessor(accessor); ok {
		return col.Type
	}
	return rowtable.TypeString
}

func arrowTypeOf(dt rowtable.DataType) arrow.DataType {
	switch dt {
	case rowtable.TypeBool:
		return arrow.FixedWidthTypes.Boolean
	case rowtable.TypeInt:
		return arrow.PrimitiveTypes.Int64
	case rowtable.TypeFloat, rowtable.TypeDecimal:
		return arrow.PrimitiveTypes.Float64
	case rowtable.TypeDate:
		return arrow.FixedWidthTypes.Date32
	case rowtable.TypeTimestamp:
		return arrow.FixedWidthTypes.Timestamp_us
	case rowtable.TypeBinary:
		return arrow.BinaryTypes.Binary
	default:
		// Structs and lists export as their formatted text.
		return arrow.BinaryTypes.String
	}
}

// appendValue appends a model value to the matching typed builder. A
// value that does not fit the column's exported type becomes null.
func appendValue(builder array.Builder, v rowtable.Value) {
	if v.IsNull {
		builder.AppendNull()
		return
	}

	switch b := builder.(type) {
	case *array.BooleanBuilder:
		if x, ok := v.Raw.(bool); ok {
			b.Append(x)
		} else {
			b.AppendNull()
		}
	case *array.Int64Builder:
		if n, ok := asInt64(v.Raw); ok {
			b.Append(n)
		} else {
			b.AppendNull()
		}
	case *array.Float64Builder:
		if f, ok := asFloat64(v.Raw); ok {
			b.Append(f)
		} else {
			b.AppendNull()
		}
	case *array.Date32Builder:
		if t, ok := v.Raw.(time.Time); ok {
			b.Append(arrow.Date32FromTime(t))
		} else {
			b.AppendNull()
		}
	case *array.TimestampBuilder:
		if t, ok := v.Raw.(time.Time); ok {
			b.Append(arrow.Timestamp(t.UnixMicro()))
		} else {
			b.AppendNull()
		}
	case *array.BinaryBuilder:
		if buf, ok := v.Raw.([]byte); ok {
			b.Append(buf)
		} else {
			b.AppendNull()
		}
	case *array.StringBuilder:
		b.Append(v.Formatted)
	default:
		builder.AppendNull()
	}
}

func asInt64(raw interface{}) (int64, bool) {
	switch n := raw.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	default:
		return 0, false
	}
}

func asFloat64(raw interface{}) (float64, bool) {
	switch f := raw.(type) {
	case float32:
		return float64(f), true
	case float64:
		return f, true
	default:
		if n, ok := asInt64(raw); ok {
			return float64(n), true
		}
		return 0, false
	}
}
