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

package widget

import "time"

// SelectionMode controls what a tap selects.
type SelectionMode int

const (
	// SelectionModeCell selects individual cells.
	SelectionModeCell SelectionMode = iota
	// SelectionModeRow selects whole rows.
	SelectionModeRow
)

// Config holds the optional features of a DataTable. Pass it to
// NewDataTableWithConfig; the zero value disables everything, use
// DefaultConfig for sensible defaults.
type Config struct {
	// ShowFilterBar adds a debounced filter entry above the table.
	ShowFilterBar bool

	// ShowStatusBar adds a row/column count line below the table.
	ShowStatusBar bool

	// ShowColumnSelector adds a button opening a column visibility menu.
	ShowColumnSelector bool

	// AutoAdjustColumnWidths sizes columns to fit their heading and a
	// sample of their content. Without it columns are sized to fit the
	// heading alone.
	AutoAdjustColumnWidths bool

	// SelectionMode selects rows or individual cells.
	SelectionMode SelectionMode

	// MultiSelect lets taps toggle rows in and out of an ordered
	// selection instead of replacing it. Fixed at creation.
	MultiSelect bool

	// MinColumnWidth is the narrowest a column may be sized, in device
	// independent pixels.
	MinColumnWidth float32

	// MaxColumnWidth caps the size-to-fit pass. Zero means no cap.
	MaxColumnWidth float32

	// MinWidth and MinHeight are the minimum intrinsic size the widget
	// reports to the layout system.
	MinWidth  float32
	MinHeight float32

	// DebounceInterval is how long the filter bar waits after the last
	// keystroke before applying the filter.
	DebounceInterval time.Duration

	// RenderCacheSize bounds the per-cell render cache. Zero picks a
	// default.
	RenderCacheSize int

	// SelectionVeto, when set, is consulted before any selection
	// change. Returning false rejects the change. Nil allows all.
	SelectionVeto func() bool

	// IconFactory resolves cell icons. Nil uses ThemeIconFactory.
	IconFactory IconFactory
}

// DefaultConfig returns the configuration the widget was designed
// around: row selection, auto-sized columns, no chrome.
func DefaultConfig() Config {
	return Config{
		ShowFilterBar:          false,
		ShowStatusBar:          false,
		ShowColumnSelector:     false,
		AutoAdjustColumnWidths: true,
		SelectionMode:          SelectionModeRow,
		MultiSelect:            false,
		MinColumnWidth:         100,
		MinWidth:               100,
		MinHeight:              100,
		DebounceInterval:       250 * time.Millisecond,
		RenderCacheSize:        4096,
	}
}
