// Package slice adapts in-memory Go collections to rowtable sources:
// attribute maps, struct slices and prepared rows. The resulting source
// is editable, so model-level Insert, Remove and Clear work on it.
package slice

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/asklund/fyne-rowtable/rowtable"
)

// Source is an editable in-memory source that knows its own column
// layout. A model constructed over it without explicit columns adopts
// that layout.
type Source struct {
	*rowtable.SliceSource
	columns []rowtable.Column
}

var (
	_ rowtable.EditableSource = (*Source)(nil)
	_ rowtable.ColumnProvider = (*Source)(nil)
)

// Columns implements rowtable.ColumnProvider.
func (s *Source) Columns() []rowtable.Column {
	out := make([]rowtable.Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// NewFromRows builds a source over prepared rows with an explicit
// column layout.
func NewFromRows(columns []rowtable.Column, rows ...rowtable.Row) *Source {
	return &Source{
		SliceSource: rowtable.NewSliceSource(rows...),
		columns:     append([]rowtable.Column(nil), columns...),
	}
}

// NewFromMaps builds a source from attribute maps, one row per map. The
// column set is the union of all keys in sorted order; each column's
// type is inferred from the first value seen for it.
func NewFromMaps(records []map[string]interface{}) (*Source, error) {
	if len(records) == 0 {
		return nil, rowtable.ErrEmptyData
	}

	seen := make(map[string]bool)
	var accessors []string
	rows := make([]rowtable.Row, len(records))
	for i, rec := range records {
		for key := range rec {
			if !seen[key] {
				seen[key] = true
				accessors = append(accessors, key)
			}
		}
		rows[i] = rowtable.NewMapRow(rec)
	}
	sort.Strings(accessors)

	columns := make([]rowtable.Column, len(accessors))
	for i, acc := range accessors {
		columns[i] = rowtable.Column{
			Heading:  acc,
			Accessor: acc,
			Type:     mapColumnType(records, acc),
		}
	}
	return NewFromRows(columns, rows...), nil
}

func mapColumnType(records []map[string]interface{}, accessor string) rowtable.DataType {
	for _, rec := range records {
		if v, ok := rec[accessor]; ok && v != nil {
			return rowtable.InferType(v)
		}
	}
	return rowtable.TypeString
}

// NewFromStructs builds a source from a slice of structs or struct
// pointers. Columns come from the element type's exported fields; a
// `row` tag renames the accessor and `row:"-"` skips the field.
func NewFromStructs(records interface{}) (*Source, error) {
	v := reflect.ValueOf(records)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, fmt.Errorf("expected a slice of structs, got %T", records)
	}
	if v.Len() == 0 {
		return nil, rowtable.ErrEmptyData
	}

	et := v.Type().Elem()
	for et.Kind() == reflect.Ptr {
		et = et.Elem()
	}
	if et.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected struct elements, got %s", et.Kind())
	}

	rows := make([]rowtable.Row, v.Len())
	for i := 0; i < v.Len(); i++ {
		rows[i] = rowtable.NewStructRow(v.Index(i).Interface())
	}
	return NewFromRows(structColumns(et), rows...), nil
}

func structColumns(t reflect.Type) []rowtable.Column {
	var cols []rowtable.Column
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		accessor := f.Name
		if tag, ok := f.Tag.Lookup("row"); ok {
			if tag == "-" || tag == "" {
				continue
			}
			accessor = tag
		}
		cols = append(cols, rowtable.Column{
			Heading:  f.Name,
			Accessor: accessor,
			Type:     rowtable.InferType(reflect.Zero(f.Type).Interface()),
		})
	}
	return cols
}
