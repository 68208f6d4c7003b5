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
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/zmwangx/debounce"

	"github.com/asklund/fyne-rowtable/internal/filter"
	"github.com/asklund/fyne-rowtable/rowtable"
)

// showFilterDialog builds advanced filters for the active table: a
// compiled Go expression, a fuzzy search term, or both combined.
func (b *browser) showFilterDialog() {
	dt, ok := b.activeTable()
	if !ok {
		dialog.ShowInformation("No Table", "Open a table before filtering.", b.win)
		return
	}
	model := dt.Model()

	exprEntry := widget.NewMultiLineEntry()
	exprEntry.SetPlaceHolder(`N("age") > 30 && strings.Contains(S("name"), "An")`)
	exprEntry.SetMinRowsVisible(3)

	exprStatus := widget.NewLabel("")
	exprStatus.TextStyle = fyne.TextStyle{Italic: true}
	exprStatus.Wrapping = fyne.TextWrapWord

	// Compile in the background while the user types so mistakes
	// surface before the dialog is confirmed.
	validate, _ := debounce.Debounce(func() {
		text := strings.TrimSpace(exprEntry.Text)
		if text == "" {
			fyne.Do(func() { exprStatus.SetText("") })
			return
		}
		_, err := filter.CompileGoExpr(text)
		fyne.Do(func() {
			if err != nil {
				exprStatus.SetText("Invalid expression: " + err.Error())
			} else {
				exprStatus.SetText("Expression compiles.")
			}
		})
	}, 400*time.Millisecond, debounce.WithMaxWait(2*time.Second))
	exprEntry.OnChanged = func(string) { validate() }

	fuzzyEntry := widget.NewEntry()
	fuzzyEntry.SetPlaceHolder("Fuzzy search across all columns...")

	anyMatch := widget.NewCheck("Match either instead of both", nil)

	current := widget.NewLabel("")
	current.TextStyle = fyne.TextStyle{Italic: true}
	if desc := model.FilterDescription(); desc != "" {
		current.SetText("Active filter: " + desc)
	}

	clearBtn := widget.NewButton("Clear Filter", func() {
		if err := model.SetFilter(nil); err != nil {
			dialog.ShowError(err, b.win)
			return
		}
		current.SetText("")
		b.setStatus("Filter cleared")
	})

	content := container.NewVBox(
		widget.NewLabelWithStyle("Go Expression:", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		exprEntry,
		exprStatus,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Fuzzy Search:", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		fuzzyEntry,
		anyMatch,
		widget.NewSeparator(),
		current,
		clearBtn,
	)

	d := dialog.NewCustomConfirm("Advanced Filter", "Apply", "Cancel", content, func(confirmed bool) {
		if !confirmed {
			return
		}
		f, err := buildFilter(exprEntry.Text, fuzzyEntry.Text, anyMatch.Checked)
		if err != nil {
			dialog.ShowError(err, b.win)
			return
		}
		if f == nil {
			if err := model.SetFilter(nil); err != nil {
				dialog.ShowError(err, b.win)
			}
			return
		}
		if err := model.SetFilter(f); err != nil {
			dialog.ShowError(fmt.Errorf("filter rejected: %w", err), b.win)
			return
		}
		b.setStatus("Filter applied: " + f.Description())
	}, b.win)

	d.Resize(fyne.NewSize(460, 480))
	d.Show()
}

// buildFilter combines the expression and fuzzy term into a single row
// filter. Both empty yields nil.
func buildFilter(expr, term string, anyMatch bool) (rowtable.Filter, error) {
	expr = strings.TrimSpace(expr)
	term = strings.TrimSpace(term)

	filters := make([]rowtable.Filter, 0, 2)
	if expr != "" {
		g, err := filter.CompileGoExpr(expr)
		if err != nil {
			return nil, err
		}
		filters = append(filters, g)
	}
	if term != "" {
		filters = append(filters, &filter.Fuzzy{Term: term})
	}

	switch len(filters) {
	case 0:
		return nil, nil
	case 1:
		return filters[0], nil
	default:
		logic := filter.LogicAND
		if anyMatch {
			logic = filter.LogicOR
		}
		return &filter.Composite{Filters: filters, Logic: logic}, nil
	}
}
