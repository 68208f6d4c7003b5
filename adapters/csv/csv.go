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

// Package csv loads delimited text into read-only rowtable sources.
// Fields are parsed into typed values so numeric columns sort
// numerically, and the delimiter can be sniffed from the file's first
// line.
package csv

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/asklund/fyne-rowtable/rowtable"
)

// Config controls parsing.
type Config struct {
	// HasHeaders treats the first record as column headings.
	HasHeaders bool

	// TrimSpace trims surrounding whitespace from every field.
	TrimSpace bool

	// Delimiter separates fields. Zero means sniff it from the file's
	// first line; readers without a file fall back to comma.
	Delimiter rune

	// Comment, when nonzero, marks lines starting with it as comments.
	Comment rune
}

// DefaultConfig returns the config used for typical header-first files.
func DefaultConfig() Config {
	return Config{HasHeaders: true, TrimSpace: true}
}

// Source is a read-only source over parsed records. Mutating it through
// a model returns ErrReadOnlySource.
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

// NewFromFile parses a delimited file. A zero Config.Delimiter is
// sniffed from the first line.
func NewFromFile(path string, cfg Config) (*Source, error) {
	if cfg.Delimiter == 0 {
		sep, err := SniffSeparator(path)
		if err != nil {
			return nil, err
		}
		cfg.Delimiter = sep
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	src, err := NewFromReader(f, cfg)
	if err != nil {
		return nil, err
	}
	src.meta["path"] = path
	return src, nil
}

// NewFromReader parses delimited text from a reader.
func NewFromReader(r io.Reader, cfg Config) (*Source, error) {
	if cfg.Delimiter == 0 {
		cfg.Delimiter = ','
	}

	reader := csv.NewReader(r)
	reader.Comma = cfg.Delimiter
	reader.Comment = cfg.Comment
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, rowtable.ErrEmptyData
	}

	var headings []string
	if cfg.HasHeaders {
		headings = records[0]
		records = records[1:]
	} else {
		headings = make([]string, len(records[0]))
		for i := range headings {
			headings[i] = fmt.Sprintf("column_%d", i+1)
		}
	}
	if cfg.TrimSpace {
		for i, h := range headings {
			headings[i] = strings.TrimSpace(h)
		}
	}
	accessors := uniqueAccessors(headings)

	types := make([]rowtable.DataType, len(accessors))
	typed := make([]bool, len(accessors))

	rows := make([]rowtable.Row, len(records))
	for ri, rec := range records {
		values := make(map[string]interface{}, len(accessors))
		for ci, acc := range accessors {
			// Short records leave the remaining attributes absent, so
			// the missing-value fallback applies to them.
			if ci >= len(rec) {
				continue
			}
			field := rec[ci]
			if cfg.TrimSpace {
				field = strings.TrimSpace(field)
			}
			v := parseField(field)
			values[acc] = v
			if !typed[ci] && field != "" {
				types[ci] = rowtable.InferType(v)
				typed[ci] = true
			}
		}
		rows[ri] = rowtable.NewMapRow(values)
	}

	columns := make([]rowtable.Column, len(accessors))
	for i := range accessors {
		columns[i] = rowtable.Column{
			Heading:  headings[i],
			Accessor: accessors[i],
			Type:     types[i],
		}
	}

	return &Source{
		rows:    rows,
		columns: columns,
		meta: rowtable.Metadata{
			"delimiter": string(cfg.Delimiter),
		},
	}, nil
}

// SniffSeparator detects the delimiter from a file's first line by
// counting candidate characters. Files that give no signal default to
// comma.
func SniffSeparator(path string) (rune, error) {
	f, err := os.Open(path)
	if err != nil {
		return ',', fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return ',', nil
	}
	firstLine := scanner.Text()
	if firstLine == "" {
		return ',', nil
	}

	candidates := map[rune]int{
		',':  strings.Count(firstLine, ","),
		';':  strings.Count(firstLine, ";"),
		'\t': strings.Count(firstLine, "\t"),
		'|':  strings.Count(firstLine, "|"),
	}

	best := ','
	maxCount := 0
	for sep, count := range candidates {
		if count > maxCount {
			maxCount = count
			best = sep
		}
	}
	return best, nil
}

// uniqueAccessors disambiguates repeated headings so accessors stay
// unique within the model.
func uniqueAccessors(headings []string) []string {
	seen := make(map[string]int, len(headings))
	out := make([]string, len(headings))
	for i, h := range headings {
		acc := h
		if acc == "" {
			acc = fmt.Sprintf("column_%d", i+1)
		}
		if n := seen[acc]; n > 0 {
			acc = fmt.Sprintf("%s_%d", acc, n+1)
		}
		seen[h]++
		out[i] = acc
	}
	return out
}

// parseField turns a raw field into a typed value: integer, float and
// boolean forms parse to their Go types, everything else stays a
// string.
func parseField(s string) interface{} {
	if s == "" {
		return ""
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}
