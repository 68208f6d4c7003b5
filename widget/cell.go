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
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	fynewidget "fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
)

// tableCell is the recycled template for one table cell: an optional
// icon beside a truncating label over a selection background. Hovering
// a cell shows its full text as a tooltip when the window content is
// wrapped with WrapWithTooltips.
type tableCell struct {
	ttwidget.ToolTipWidget

	background *canvas.Rectangle
	icon       *fynewidget.Icon
	label      *fynewidget.Label
}

func newTableCell() *tableCell {
	c := &tableCell{
		background: canvas.NewRectangle(color.Transparent),
		icon:       fynewidget.NewIcon(nil),
		label:      fynewidget.NewLabel(""),
	}
	c.icon.Hide()
	c.label.Truncation = fyne.TextTruncateEllipsis
	c.ExtendBaseWidget(c)
	return c
}

func (c *tableCell) CreateRenderer() fyne.WidgetRenderer {
	content := container.NewStack(
		c.background,
		container.NewBorder(nil, nil, c.icon, nil, c.label),
	)
	return fynewidget.NewSimpleRenderer(content)
}

// SetCell applies one render outcome to the recycled template.
func (c *tableCell) SetCell(cell *RenderCell, selected bool) {
	c.label.SetText(cell.Label)
	c.SetToolTip(cell.Label)

	if cell.Icon != nil {
		c.icon.SetResource(cell.Icon)
		c.icon.Show()
	} else {
		c.icon.Hide()
	}

	if selected {
		c.background.FillColor = theme.Color(theme.ColorNameSelection)
	} else {
		c.background.FillColor = color.Transparent
	}
	c.background.Refresh()
}
