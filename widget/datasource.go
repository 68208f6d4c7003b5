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

import (
	"fmt"
	"log"
	"strconv"

	"fyne.io/fyne/v2"

	"github.com/asklund/fyne-rowtable/rowtable"
)

// DataSource is the content half of the toolkit protocol: how many rows
// the table shows and the render object for each cell.
type DataSource interface {
	// RowCount returns the number of rows to display, zero when the
	// model has no source.
	RowCount() int

	// CellValue resolves the render object for a visible row and an
	// accessor. It never fails; lookup problems degrade to a blank
	// label or a missing icon.
	CellValue(row int, accessor string) *RenderCell
}

// tableAdapter fills the toolkit's protocols for one DataTable: it is
// the data source for cell content, the selection delegate, and the
// model's presentation backend. Every model notification lands here and
// becomes exactly one View.Reload.
//
// The adapter runs on the UI goroutine only and holds no authoritative
// data, just the render cache and the selection bookkeeping.
type tableAdapter struct {
	model *rowtable.Model
	cfg   *Config
	view  View

	cols  *columnSet
	cache *renderCache
	icons IconFactory

	// selected holds the visible row indices in the abstract selection.
	// activeRow is the last tapped row, -1 when none; under
	// multi-select it may point at a row no longer in selected.
	selected  map[int]bool
	activeRow int

	// suppress guards against re-entry while the adapter itself drives
	// the native selection.
	suppress bool

	onCellSelected func(row, col int)
}

var (
	_ DataSource        = (*tableAdapter)(nil)
	_ SelectionDelegate = (*tableAdapter)(nil)
	_ rowtable.Backend  = (*tableAdapter)(nil)
)

func newTableAdapter(model *rowtable.Model, cfg *Config, view View) *tableAdapter {
	icons := cfg.IconFactory
	if icons == nil {
		icons = ThemeIconFactory{}
	}
	return &tableAdapter{
		model:     model,
		cfg:       cfg,
		view:      view,
		cols:      newColumnSet(),
		cache:     newRenderCache(cfg.RenderCacheSize),
		icons:     icons,
		selected:  make(map[int]bool),
		activeRow: -1,
	}
}

// RowCount implements DataSource over the model's visible rows.
func (a *tableAdapter) RowCount() int {
	return a.model.VisibleRowCount()
}

// CellValue implements DataSource. The render object is served from the
// cache when present; otherwise the attribute named by the accessor is
// resolved, split into label and icon, rendered and cached.
func (a *tableAdapter) CellValue(visible int, accessor string) *RenderCell {
	row, err := a.model.VisibleRow(visible)
	if err != nil {
		return &RenderCell{}
	}

	key := rowKey(row, visible, a.model)
	if cell, ok := a.cache.get(key, accessor); ok {
		return cell
	}

	raw, ok := a.model.AttributeValue(row, accessor)
	if !ok {
		log.Printf("Row %d has no attribute %q and no missing value is set; rendering a blank cell", visible, accessor)
	}

	cell := &RenderCell{}
	value := raw
	switch v := value.(type) {
	case rowtable.IconValue:
		cell.Icon = a.resolveIcon(v.Icon)
		value = v.Value
	case *rowtable.IconValue:
		if v != nil {
			cell.Icon = a.resolveIcon(v.Icon)
			value = v.Value
		}
	default:
		if iconer, ok := value.(rowtable.Iconer); ok {
			cell.Icon = a.resolveIcon(iconer.TableIcon())
		}
	}
	if value != nil {
		cell.Label = rowtable.ValueOf(value).Formatted
	}

	a.cache.put(key, accessor, cell)
	return cell
}

// resolveIcon binds an icon through the configured factory. Any failure
// renders as no icon.
func (a *tableAdapter) resolveIcon(icon *rowtable.Icon) fyne.Resource {
	if icon == nil {
		return nil
	}
	res, err := a.icons.Resolve(icon)
	if err != nil {
		return nil
	}
	return res
}

// updateCell renders one visible cell into the recycled template.
func (a *tableAdapter) updateCell(row, col int, cell *tableCell) {
	colDef, err := a.model.VisibleColumn(col)
	if err != nil {
		cell.SetCell(&RenderCell{}, false)
		return
	}
	rc := a.CellValue(row, colDef.Accessor)
	highlight := a.cfg.SelectionMode == SelectionModeRow && a.selected[row]
	cell.SetCell(rc, highlight)
}

// rowKey derives the cache identity for a row: its own RowID when it
// has one, else its source position.
func rowKey(row rowtable.Row, visible int, model *rowtable.Model) string {
	if id, ok := row.(rowtable.Identified); ok {
		return id.RowID()
	}
	src, err := model.SourceIndex(visible)
	if err != nil {
		return fmt.Sprintf("v%d", visible)
	}
	return strconv.Itoa(src)
}
