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

// Package widget provides the Fyne table widget for rowtable models.
// A DataTable renders a rowtable.Model through the toolkit's
// data-source and selection protocols and adds optional chrome: a
// debounced filter bar, a status line, a column selector and a copy
// shortcut.
package widget

import (
	"image/color"
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	fynewidget "fyne.io/fyne/v2/widget"

	"github.com/asklund/fyne-rowtable/rowtable"
)

// DataTable is a table widget bound to a rowtable.Model. The model owns
// the data; the widget reacts to its notifications with full reloads of
// the visible content. Create one with NewDataTable or
// NewDataTableWithConfig and keep mutating the model afterwards.
type DataTable struct {
	fynewidget.BaseWidget

	model *rowtable.Model
	cfg   Config

	adapter *tableAdapter
	table   *fynewidget.Table

	filterBar    *filterBar
	statusBar    *statusBar
	columnSelect *fynewidget.Button

	window fyne.Window
}

var _ View = (*DataTable)(nil)

// NewDataTable creates a table widget over a model with DefaultConfig.
func NewDataTable(model *rowtable.Model) *DataTable {
	return NewDataTableWithConfig(model, DefaultConfig())
}

// NewDataTableWithConfig creates a table widget over a model. The
// adapter is injected as the model's backend and the model's columns
// are registered with the native layout in one bulk pass.
func NewDataTableWithConfig(model *rowtable.Model, cfg Config) *DataTable {
	t := &DataTable{model: model, cfg: cfg}
	t.ExtendBaseWidget(t)

	t.adapter = newTableAdapter(model, &t.cfg, t)
	t.buildTable()

	for _, col := range model.Columns() {
		t.adapter.cols.add(col)
	}

	if t.cfg.ShowStatusBar {
		t.statusBar = newStatusBar()
		t.statusBar.update(model)
	}
	if t.cfg.ShowFilterBar {
		t.filterBar = newFilterBar(model, &t.cfg)
	}
	if t.cfg.ShowColumnSelector {
		t.columnSelect = newColumnSelector(t)
	}

	model.Bind(t.adapter)
	t.adapter.applyColumnWidths()

	return t
}

func (t *DataTable) buildTable() {
	t.table = fynewidget.NewTable(
		func() (int, int) {
			return t.adapter.RowCount(), t.model.VisibleColumnCount()
		},
		func() fyne.CanvasObject {
			return newTableCell()
		},
		func(id fynewidget.TableCellID, obj fyne.CanvasObject) {
			t.adapter.updateCell(id.Row, id.Col, obj.(*tableCell))
		},
	)
	t.table.ShowHeaderRow = true
	t.table.CreateHeader = func() fyne.CanvasObject {
		return fynewidget.NewButton("", nil)
	}
	t.table.UpdateHeader = func(id fynewidget.TableCellID, obj fyne.CanvasObject) {
		btn := obj.(*fynewidget.Button)
		col, err := t.model.VisibleColumn(id.Col)
		if err != nil {
			btn.SetText("")
			btn.OnTapped = nil
			return
		}
		btn.SetText(t.headerText(col))
		btn.OnTapped = func() {
			t.cycleSort(col.Accessor)
		}
	}
	t.table.OnSelected = t.adapter.onSelected
}

// CreateRenderer assembles the chrome around the table: the optional
// bars, a vertical scroll area and a border drawn over its edges.
func (t *DataTable) CreateRenderer() fyne.WidgetRenderer {
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = theme.Color(theme.ColorNameInputBorder)
	border.StrokeWidth = 1

	scroll := container.NewVScroll(t.table)
	scroll.SetMinSize(fyne.NewSize(t.cfg.MinWidth, t.cfg.MinHeight))
	center := container.NewStack(scroll, border)

	var top fyne.CanvasObject
	switch {
	case t.filterBar != nil && t.columnSelect != nil:
		top = container.NewBorder(nil, nil, nil, t.columnSelect, t.filterBar.entry)
	case t.filterBar != nil:
		top = t.filterBar.entry
	case t.columnSelect != nil:
		top = container.NewHBox(layout.NewSpacer(), t.columnSelect)
	}

	var bottom fyne.CanvasObject
	if t.statusBar != nil {
		bottom = t.statusBar.label
	}

	content := container.NewBorder(top, bottom, nil, nil, center)
	return fynewidget.NewSimpleRenderer(content)
}

// MinSize reports the configured minimum intrinsic size so layouts
// reserve room for the table before any data arrives.
func (t *DataTable) MinSize() fyne.Size {
	min := t.BaseWidget.MinSize()
	return fyne.NewSize(
		fyne.Max(min.Width, t.cfg.MinWidth),
		fyne.Max(min.Height, t.cfg.MinHeight),
	)
}

// Model returns the bound model.
func (t *DataTable) Model() *rowtable.Model {
	return t.model
}

// Reload implements View: one full redraw of the native table plus the
// chrome that mirrors model state.
func (t *DataTable) Reload() {
	t.table.Refresh()
	if t.statusBar != nil {
		t.statusBar.update(t.model)
	}
}

// ScrollToRow implements View as a passthrough to the native
// scroll-into-view.
func (t *DataTable) ScrollToRow(row int) {
	t.table.ScrollTo(fynewidget.TableCellID{Row: row, Col: 0})
}

// SetColumnWidth implements View for the size-to-fit pass.
func (t *DataTable) SetColumnWidth(col int, width float32) {
	t.table.SetColumnWidth(col, width)
}

// UnselectAll implements View: it clears the native highlight only.
// Use ClearSelection to also reset the abstract selection.
func (t *DataTable) UnselectAll() {
	t.table.UnselectAll()
}

// ClearSelection empties the selection and notifies the selection path.
func (t *DataTable) ClearSelection() {
	t.adapter.clearSelection()
}

// AddColumn registers a new accessor column, refreshes the layout and
// sizes the columns to fit.
func (t *DataTable) AddColumn(heading, accessor string) error {
	return t.model.AddColumn(heading, accessor)
}

// RemoveColumn detaches the column registered for an accessor. Removing
// an accessor that was never added returns ErrColumnNotFound.
func (t *DataTable) RemoveColumn(accessor string) error {
	return t.model.RemoveColumn(accessor)
}

// SetOnSelect is a no-op kept for the widget's handler-setter symmetry.
// The selection path reads Model.OnSelect when a notification fires, so
// assigning that field at any time is sufficient and nothing needs to
// be re-registered here.
func (t *DataTable) SetOnSelect(func(rowtable.Row)) {}

// OnCellSelected registers a widget-level selection callback. In row
// selection mode col is -1.
func (t *DataTable) OnCellSelected(fn func(row, col int)) {
	t.adapter.onCellSelected = fn
}

// SetWindow gives the widget its window for clipboard access and
// registers the copy shortcut (Ctrl+C, Cmd+C on macOS) on the window
// canvas.
func (t *DataTable) SetWindow(w fyne.Window) {
	t.window = w
	shortcut := &desktop.CustomShortcut{
		KeyName:  fyne.KeyC,
		Modifier: fyne.KeyModifierShortcutDefault,
	}
	w.Canvas().AddShortcut(shortcut, func(fyne.Shortcut) {
		t.copySelection()
	})
}

// copySelection places the selected content on the clipboard: the
// selected rows tab-separated in row mode, the active cell otherwise.
func (t *DataTable) copySelection() {
	if t.window == nil {
		return
	}
	text := t.selectionText()
	if text == "" {
		return
	}
	t.window.Clipboard().SetContent(text)
}

func (t *DataTable) selectionText() string {
	if t.cfg.SelectionMode == SelectionModeCell {
		if t.adapter.activeRow < 0 {
			return ""
		}
		var fields []string
		for c := 0; c < t.model.VisibleColumnCount(); c++ {
			col, err := t.model.VisibleColumn(c)
			if err != nil {
				continue
			}
			fields = append(fields, t.adapter.CellValue(t.adapter.activeRow, col.Accessor).Label)
		}
		return strings.Join(fields, "\t")
	}

	var lines []string
	for _, vis := range t.adapter.selectedIndices() {
		var fields []string
		for c := 0; c < t.model.VisibleColumnCount(); c++ {
			col, err := t.model.VisibleColumn(c)
			if err != nil {
				continue
			}
			fields = append(fields, t.adapter.CellValue(vis, col.Accessor).Label)
		}
		lines = append(lines, strings.Join(fields, "\t"))
	}
	return strings.Join(lines, "\n")
}

func (t *DataTable) headerText(col rowtable.Column) string {
	st := t.model.GetSortState()
	if st.IsSorted() {
		if sorted, err := t.model.Column(st.Column); err == nil && sorted.Accessor == col.Accessor {
			if st.Direction == rowtable.SortAscending {
				return col.Heading + " ↑"
			}
			return col.Heading + " ↓"
		}
	}
	return col.Heading
}

// cycleSort advances a column through unsorted, ascending, descending.
func (t *DataTable) cycleSort(accessor string) {
	st := t.model.GetSortState()
	current := rowtable.SortNone
	if st.IsSorted() {
		if col, err := t.model.Column(st.Column); err == nil && col.Accessor == accessor {
			current = st.Direction
		}
	}

	var err error
	switch current {
	case rowtable.SortNone:
		err = t.model.SortBy(accessor, rowtable.SortAscending)
	case rowtable.SortAscending:
		err = t.model.SortBy(accessor, rowtable.SortDescending)
	default:
		t.model.ClearSort()
	}
	if err != nil {
		log.Printf("Failed to sort by %q: %v", accessor, err)
	}
}
