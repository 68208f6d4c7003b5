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
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/asklund/fyne-rowtable/rowtable"
)

// columnSet mirrors the model's column list for the native layout: an
// ordered column list plus an accessor-to-position identifier map. The
// two stay in 1:1 correspondence; column visibility is a view-level
// mask applied elsewhere and never touches this set.
type columnSet struct {
	cols        []rowtable.Column
	identifiers map[string]int
}

func newColumnSet() *columnSet {
	return &columnSet{identifiers: make(map[string]int)}
}

// add registers one column. The bulk construction path calls this for
// every model column without a size-to-fit pass; the column-added
// notification follows it with one.
func (c *columnSet) add(col rowtable.Column) {
	c.identifiers[col.Accessor] = len(c.cols)
	c.cols = append(c.cols, col)
}

// remove detaches the column registered for an accessor and shifts the
// identifier positions after it. Unknown accessors are ignored here;
// the model already rejected them.
func (c *columnSet) remove(accessor string) {
	idx, ok := c.identifiers[accessor]
	if !ok {
		return
	}
	c.cols = append(c.cols[:idx], c.cols[idx+1:]...)
	delete(c.identifiers, accessor)
	for acc, i := range c.identifiers {
		if i > idx {
			c.identifiers[acc] = i - 1
		}
	}
}

func (c *columnSet) len() int {
	return len(c.cols)
}

// widthSampleRows caps how many rows the size-to-fit pass measures.
const widthSampleRows = 100

// applyColumnWidths sizes every visible column to fit its heading and,
// when AutoAdjustColumnWidths is on, a sample of its content. Widths
// are bounded below by MinColumnWidth and above by MaxColumnWidth.
func (a *tableAdapter) applyColumnWidths() {
	textSize := theme.TextSize()
	rows := a.model.VisibleRowCount()
	if rows > widthSampleRows {
		rows = widthSampleRows
	}

	for vis := 0; vis < a.model.VisibleColumnCount(); vis++ {
		col, err := a.model.VisibleColumn(vis)
		if err != nil {
			continue
		}

		width := fyne.MeasureText(col.Heading, textSize, fyne.TextStyle{Bold: true}).Width
		if a.cfg.AutoAdjustColumnWidths {
			for r := 0; r < rows; r++ {
				cell := a.CellValue(r, col.Accessor)
				w := fyne.MeasureText(cell.Label, textSize, fyne.TextStyle{}).Width
				if cell.Icon != nil {
					w += theme.IconInlineSize() + theme.Padding()
				}
				if w > width {
					width = w
				}
			}
		}

		width += theme.Padding() * 4
		if width < a.cfg.MinColumnWidth {
			width = a.cfg.MinColumnWidth
		}
		if a.cfg.MaxColumnWidth > 0 && width > a.cfg.MaxColumnWidth {
			width = a.cfg.MaxColumnWidth
		}
		a.view.SetColumnWidth(vis, width)
	}
}
