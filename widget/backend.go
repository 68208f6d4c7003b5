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

import "github.com/asklund/fyne-rowtable/rowtable"

// rowtable.Backend implementation: the model's mutation notifications.
// Each content notification invalidates the render cache and issues
// exactly one full reload; there is no incremental diffing. View-only
// notifications reload without invalidating, so identified rows keep
// their rendered cells across re-sorts and re-filters.

// SourceChanged handles a wholesale source swap. The selection is
// already cleared on the model side; the native bookkeeping follows.
func (a *tableAdapter) SourceChanged() {
	a.cache.invalidate()
	a.resetSelection()
	a.view.Reload()
}

// RowInserted reloads after a row insertion.
func (a *tableAdapter) RowInserted(index int, row rowtable.Row) {
	a.cache.invalidate()
	a.view.Reload()
}

// RowChanged reloads after a row's attributes were mutated in place.
func (a *tableAdapter) RowChanged(row rowtable.Row) {
	a.cache.invalidate()
	a.view.Reload()
}

// RowRemoved reloads after a row removal.
func (a *tableAdapter) RowRemoved(row rowtable.Row) {
	a.cache.invalidate()
	a.view.Reload()
}

// Cleared reloads after all rows were removed.
func (a *tableAdapter) Cleared() {
	a.cache.invalidate()
	a.resetSelection()
	a.view.Reload()
}

// ColumnAdded registers the new column with the native layout and runs
// a size-to-fit pass. The bulk registration at construction time does
// not come through here and skips that pass.
func (a *tableAdapter) ColumnAdded(col rowtable.Column) {
	a.cols.add(col)
	a.applyColumnWidths()
	a.view.Reload()
}

// ColumnRemoved detaches the column from the native layout and runs a
// size-to-fit pass over the remaining columns.
func (a *tableAdapter) ColumnRemoved(accessor string) {
	a.cols.remove(accessor)
	a.applyColumnWidths()
	a.view.Reload()
}

// ViewChanged reloads after sorting, filtering or a visibility change.
// Row content is untouched, so the render cache stays.
func (a *tableAdapter) ViewChanged() {
	a.applyColumnWidths()
	a.view.Reload()
}

// ScrollToRow forwards to the native scroller.
func (a *tableAdapter) ScrollToRow(row int) {
	a.view.ScrollToRow(row)
}
