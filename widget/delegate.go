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
	"sort"

	fynewidget "fyne.io/fyne/v2/widget"

	"github.com/asklund/fyne-rowtable/rowtable"
)

// SelectionDelegate is the selection half of the toolkit protocol:
// whether a selection change may happen, and what to do when one did.
type SelectionDelegate interface {
	// SelectionShouldChange is consulted before any selection change.
	SelectionShouldChange() bool

	// SelectionChanged pushes the native selection state into the
	// model and invokes the model's selection callback.
	SelectionChanged()
}

// SelectionShouldChange implements SelectionDelegate through the
// configured veto. A nil veto allows every change.
func (a *tableAdapter) SelectionShouldChange() bool {
	if a.cfg.SelectionVeto == nil {
		return true
	}
	return a.cfg.SelectionVeto()
}

// SelectionChanged implements SelectionDelegate. The selected visible
// rows are enumerated in ascending index order and stored on the model:
// the full ordered set under multi-select, the first row otherwise.
//
// The selection callback is computed separately from the active row.
// Under multi-select the two can disagree: toggling a row off leaves it
// the active row, so the callback names a row absent from the set. Both
// behaviors are deliberate.
func (a *tableAdapter) SelectionChanged() {
	indices := a.selectedIndices()

	rows := make([]rowtable.Row, 0, len(indices))
	for _, idx := range indices {
		row, err := a.model.VisibleRow(idx)
		if err != nil {
			continue
		}
		rows = append(rows, row)
	}

	switch {
	case a.cfg.MultiSelect:
		a.model.UpdateSelection(rows)
	case len(rows) > 0:
		a.model.UpdateSelection(rows[:1])
	default:
		a.model.UpdateSelection(nil)
	}

	var active rowtable.Row
	if a.activeRow >= 0 {
		if row, err := a.model.VisibleRow(a.activeRow); err == nil {
			active = row
		}
	}
	if cb := a.model.OnSelect; cb != nil {
		cb(active)
	}
}

// onSelected handles a native selection event. In multi-select mode a
// tap toggles the row's membership and the native highlight is cleared
// so the next tap on the same row fires again; row membership is shown
// by the cell backgrounds instead.
func (a *tableAdapter) onSelected(id fynewidget.TableCellID) {
	if a.suppress {
		return
	}
	if !a.SelectionShouldChange() {
		a.suppress = true
		a.view.UnselectAll()
		a.suppress = false
		return
	}

	row := id.Row
	if a.cfg.MultiSelect {
		if a.selected[row] {
			delete(a.selected, row)
		} else {
			a.selected[row] = true
		}
		a.activeRow = row

		a.suppress = true
		a.view.UnselectAll()
		a.suppress = false
	} else {
		for k := range a.selected {
			delete(a.selected, k)
		}
		a.selected[row] = true
		a.activeRow = row
	}

	a.view.Reload()
	a.SelectionChanged()

	if f := a.onCellSelected; f != nil {
		if a.cfg.SelectionMode == SelectionModeRow {
			f(row, -1)
		} else {
			f(row, id.Col)
		}
	}
}

// clearSelection empties both the native and the abstract selection and
// notifies the selection path once.
func (a *tableAdapter) clearSelection() {
	a.resetSelection()
	a.suppress = true
	a.view.UnselectAll()
	a.suppress = false
	a.view.Reload()
	a.SelectionChanged()
}

// resetSelection drops the bookkeeping without notifying. Used when the
// content underneath the selection is replaced wholesale.
func (a *tableAdapter) resetSelection() {
	for k := range a.selected {
		delete(a.selected, k)
	}
	a.activeRow = -1
}

// selectedIndices returns the selected visible rows in ascending order.
func (a *tableAdapter) selectedIndices() []int {
	indices := make([]int, 0, len(a.selected))
	for idx := range a.selected {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices
}
