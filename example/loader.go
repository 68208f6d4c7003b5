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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	arrowadapter "github.com/asklund/fyne-rowtable/adapters/arrow"
	csvadapter "github.com/asklund/fyne-rowtable/adapters/csv"
	sliceadapter "github.com/asklund/fyne-rowtable/adapters/slice"
	"github.com/asklund/fyne-rowtable/rowtable"
)

// fileType classifies what a path points at.
type fileType int

const (
	fileTypeUnknown fileType = iota
	fileTypeCSV
	fileTypeParquet
	fileTypeJSON
	fileTypeShareProfile
)

// detectFileType classifies a file by extension, distinguishing Delta
// Sharing profiles from plain JSON data by their content.
func detectFileType(path string, content string) fileType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return fileTypeCSV
	case ".parquet":
		return fileTypeParquet
	case ".json", ".share", ".txt":
		if isShareProfile(content) {
			return fileTypeShareProfile
		}
		return fileTypeJSON
	default:
		return fileTypeUnknown
	}
}

// isShareProfile reports whether content looks like a Delta Sharing
// profile. Profiles carry a credentials version, an endpoint and a
// bearer token.
func isShareProfile(content string) bool {
	var profile map[string]interface{}
	if err := json.Unmarshal([]byte(content), &profile); err != nil {
		return false
	}
	_, hasVersion := profile["shareCredentialsVersion"]
	_, hasEndpoint := profile["endpoint"]
	_, hasToken := profile["bearerToken"]
	return hasVersion && hasEndpoint && hasToken
}

// loadCSV builds a model from a delimited text file, sniffing the
// separator from the first line.
func loadCSV(path string) (*rowtable.Model, string, string, error) {
	sep, err := csvadapter.SniffSeparator(path)
	if err != nil {
		sep = ','
	}

	cfg := csvadapter.DefaultConfig()
	cfg.Delimiter = sep

	src, err := csvadapter.NewFromFile(path, cfg)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to load CSV file: %w", err)
	}

	m, err := rowtable.NewModel(src)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to create table model: %w", err)
	}

	name := filepath.Base(path)
	status := fmt.Sprintf("Loaded %s (%d rows, %d columns, separator: %s)",
		name, src.RowCount(), src.ColumnCount(), separatorName(sep))
	return m, name, status, nil
}

func separatorName(sep rune) string {
	switch sep {
	case ',':
		return "comma"
	case ';':
		return "semicolon"
	case '\t':
		return "tab"
	case '|':
		return "pipe"
	default:
		return string(sep)
	}
}

// loadParquet reads a whole Parquet file into an Arrow table and wraps
// it in a model.
func loadParquet(path string) (*rowtable.Model, string, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, "", "", err
	}

	pf, err := file.NewParquetReader(f, file.WithReadProps(&parquet.ReaderProperties{}))
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pf.Close()

	reader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, memory.NewGoAllocator())
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to create arrow reader: %w", err)
	}

	table, err := reader.ReadTable(context.Background())
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to read parquet data: %w", err)
	}
	defer table.Release()

	src, err := arrowadapter.NewFromArrowTable(table)
	if err != nil {
		return nil, "", "", err
	}

	m, err := rowtable.NewModel(src)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to create table model: %w", err)
	}

	name := filepath.Base(path)
	status := fmt.Sprintf("Loaded %s (%d rows, %d columns, %.2f MB)",
		name, src.RowCount(), src.ColumnCount(), float64(info.Size())/(1024*1024))
	return m, name, status, nil
}

// loadJSON builds a model from a JSON array of objects. A single object
// becomes a one-row table.
func loadJSON(name string, content []byte) (*rowtable.Model, string, string, error) {
	var records []map[string]interface{}
	if err := json.Unmarshal(content, &records); err != nil {
		var single map[string]interface{}
		if err := json.Unmarshal(content, &single); err != nil {
			return nil, "", "", fmt.Errorf("failed to parse JSON: %w", err)
		}
		records = []map[string]interface{}{single}
	}

	src, err := sliceadapter.NewFromMaps(records)
	if err != nil {
		return nil, "", "", err
	}

	m, err := rowtable.NewModel(src)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to create table model: %w", err)
	}

	status := fmt.Sprintf("Loaded %s (%d rows, %d columns)", name, len(records), len(src.Columns()))
	return m, name, status, nil
}
