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
	"reflect"
	"strings"

	"github.com/google/uuid"
)

// Row is an application-supplied record exposing named attributes, one per
// column accessor. No attribute is guaranteed to be present.
//
// Row values are compared with == for identity (Remove, selection tracking),
// so implementations should be pointer types.
type Row interface {
	// Attribute returns the value of the named attribute and whether the
	// row has it at all.
	Attribute(name string) (interface{}, bool)
}

// Identified is implemented by rows with a stable identity. The presentation
// layer keys per-row render state by RowID when available, so cached cells
// survive re-sorting and re-filtering. Rows without an identity are keyed by
// their position instead.
type Identified interface {
	RowID() string
}

// Icon names or locates an image resource for a cell. Name is a symbolic
// icon name resolved by the presentation layer's factory; Path is a file
// path used when the name is not recognized.
type Icon struct {
	Name string
	Path string
}

// Iconer is implemented by attribute values that carry an icon alongside
// their displayable value.
type Iconer interface {
	TableIcon() *Icon
}

// IconValue pairs an explicit icon with the value it decorates. An attribute
// resolving to an IconValue renders the value as the cell label and the icon
// beside it.
type IconValue struct {
	Icon  *Icon
	Value interface{}
}

// MapRow is a Row backed by a map of attribute values. Each MapRow has a
// stable generated identity.
type MapRow struct {
	id     string
	values map[string]interface{}
}

// NewMapRow creates a MapRow over the given attribute values. The map is
// used directly, not copied.
func NewMapRow(values map[string]interface{}) *MapRow {
	if values == nil {
		values = make(map[string]interface{})
	}
	return &MapRow{
		id:     uuid.NewString(),
		values: values,
	}
}

// Attribute implements the Row interface.
func (r *MapRow) Attribute(name string) (interface{}, bool) {
	v, ok := r.values[name]
	return v, ok
}

// RowID implements the Identified interface.
func (r *MapRow) RowID() string {
	return r.id
}

// Set assigns an attribute value. Call Model.Change afterwards so bound
// views re-render the row.
func (r *MapRow) Set(name string, value interface{}) {
	r.values[name] = value
}

// Delete removes an attribute so lookups fall back to the missing value.
func (r *MapRow) Delete(name string) {
	delete(r.values, name)
}

// StructRow adapts a struct to the Row interface using reflection.
// Attributes resolve to exported fields by `row` tag, exact name, or
// case-insensitive name, in that order.
type StructRow struct {
	id string
	v  reflect.Value
}

// NewStructRow wraps a struct or pointer to struct. Non-struct values yield
// a row with no attributes.
func NewStructRow(v interface{}) *StructRow {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr && !rv.IsNil() {
		rv = rv.Elem()
	}
	return &StructRow{
		id: uuid.NewString(),
		v:  rv,
	}
}

// Attribute implements the Row interface.
func (r *StructRow) Attribute(name string) (interface{}, bool) {
	if r.v.Kind() != reflect.Struct {
		return nil, false
	}

	t := r.v.Type()
	var fallback = -1
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if tag, ok := f.Tag.Lookup("row"); ok {
			if tag == name {
				return r.v.Field(i).Interface(), true
			}
			continue
		}
		if f.Name == name {
			return r.v.Field(i).Interface(), true
		}
		if fallback < 0 && strings.EqualFold(f.Name, name) {
			fallback = i
		}
	}
	if fallback >= 0 {
		return r.v.Field(fallback).Interface(), true
	}
	return nil, false
}

// RowID implements the Identified interface.
func (r *StructRow) RowID() string {
	return r.id
}
