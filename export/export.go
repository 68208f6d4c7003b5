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

// Package export writes a model's visible data to CSV, JSON and
// Parquet. What you see is what you get: hidden columns and
// filtered-out rows are not exported, and the current sort order is
// kept.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/asklund/fyne-rowtable/rowtable"
)

// Format enumerates the supported output formats.
type Format int

const (
	FormatCSV Format = iota
	FormatJSON
	FormatParquet
)

// String returns the format's file extension without the dot.
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	case FormatParquet:
		return "parquet"
	default:
		return "unknown"
	}
}

// ToFile writes the model's visible data to a file in the given format.
func ToFile(m *rowtable.Model, path string, format Format) error {
	switch format {
	case FormatCSV:
		return ToCSV(m, path)
	case FormatJSON:
		return ToJSON(m, path)
	case FormatParquet:
		return ToParquet(m, path)
	default:
		return fmt.Errorf("%w: unknown format %d", rowtable.ErrExportFailed, format)
	}
}

// ToCSV writes the visible data to a CSV file.
func ToCSV(m *rowtable.Model, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", rowtable.ErrExportFailed, err)
	}
	defer f.Close()
	return WriteCSV(m, f)
}

// WriteCSV writes the visible data as CSV: one header record of column
// headings, then one record per visible row of formatted values.
func WriteCSV(m *rowtable.Model, w io.Writer) error {
	writer := csv.NewWriter(w)

	headings := make([]string, 0, m.VisibleColumnCount())
	for i := 0; i < m.VisibleColumnCount(); i++ {
		col, err := m.VisibleColumn(i)
		if err != nil {
			return err
		}
		headings = append(headings, col.Heading)
	}
	if err := writer.Write(headings); err != nil {
		return fmt.Errorf("%w: %v", rowtable.ErrExportFailed, err)
	}

	accessors := visibleAccessors(m)
	for r := 0; r < m.VisibleRowCount(); r++ {
		record := make([]string, len(accessors))
		for i, acc := range accessors {
			v, err := m.ValueAt(r, acc)
			if err != nil {
				return err
			}
			record[i] = v.Formatted
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("%w: %v", rowtable.ErrExportFailed, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("%w: %v", rowtable.ErrExportFailed, err)
	}
	return nil
}

// ToJSON writes the visible data to a JSON file.
func ToJSON(m *rowtable.Model, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", rowtable.ErrExportFailed, err)
	}
	defer f.Close()
	return WriteJSON(m, f)
}

// WriteJSON writes the visible data as an indented JSON array of
// objects keyed by accessor. Null cells encode as JSON null.
func WriteJSON(m *rowtable.Model, w io.Writer) error {
	accessors := visibleAccessors(m)

	records := make([]map[string]interface{}, 0, m.VisibleRowCount())
	for r := 0; r < m.VisibleRowCount(); r++ {
		record := make(map[string]interface{}, len(accessors))
		for _, acc := range accessors {
			v, err := m.ValueAt(r, acc)
			if err != nil {
				return err
			}
			record[acc] = jsonValue(v)
		}
		records = append(records, record)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("%w: %v", rowtable.ErrExportFailed, err)
	}
	return nil
}

// jsonValue picks the JSON representation of a typed value: raw Go
// values where they encode naturally, formatted strings for times and
// binary data.
func jsonValue(v rowtable.Value) interface{} {
	if v.IsNull {
		return nil
	}
	switch v.Type {
	case rowtable.TypeDate, rowtable.TypeTimestamp:
		return v.Formatted
	case rowtable.TypeBinary:
		if b, ok := v.Raw.([]byte); ok {
			return string(b)
		}
	}
	return v.Raw
}

func visibleAccessors(m *rowtable.Model) []string {
	out := make([]string, 0, m.VisibleColumnCount())
	for i := 0; i < m.VisibleColumnCount(); i++ {
		if col, err := m.VisibleColumn(i); err == nil {
			out = append(out, col.Accessor)
		}
	}
	return out
}
