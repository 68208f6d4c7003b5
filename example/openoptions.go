package main

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	sliceadapter "github.com/asklund/fyne-rowtable/adapters/slice"
	"github.com/asklund/fyne-rowtable/rowtable"
)

// showOpenOptions lets the user pick columns and a row limit before a
// table is displayed. The callback receives a model restricted to the
// chosen shape.
func showOpenOptions(win fyne.Window, m *rowtable.Model, defaultLimit int64, cb func(*rowtable.Model)) {
	columns := m.Columns()

	checks := make(map[string]*widget.Check, len(columns))
	checkBox := container.NewVBox()
	for _, col := range columns {
		check := widget.NewCheck(fmt.Sprintf("%s (%s)", col.Heading, col.Type), nil)
		check.SetChecked(true)
		checks[col.Accessor] = check
		checkBox.Add(check)
	}

	selectAll := widget.NewButton("Select All", func() {
		for _, check := range checks {
			check.SetChecked(true)
		}
	})
	deselectAll := widget.NewButton("Deselect All", func() {
		for _, check := range checks {
			check.SetChecked(false)
		}
	})

	columnScroll := container.NewVScroll(checkBox)
	columnScroll.SetMinSize(fyne.NewSize(360, 200))

	limitEntry := widget.NewEntry()
	if defaultLimit > 0 {
		limitEntry.SetText(strconv.FormatInt(defaultLimit, 10))
	}
	limitEntry.SetPlaceHolder("Leave empty for all rows")

	content := container.NewVBox(
		widget.NewLabelWithStyle("Columns:", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(selectAll, deselectAll),
		columnScroll,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Row Limit:", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		limitEntry,
	)

	d := dialog.NewCustomConfirm("Open Options", "Load", "Cancel", content, func(confirmed bool) {
		if !confirmed {
			return
		}

		selected := make([]rowtable.Column, 0, len(columns))
		for _, col := range columns {
			if checks[col.Accessor].Checked {
				selected = append(selected, col)
			}
		}
		if len(selected) == 0 {
			dialog.ShowError(fmt.Errorf("please select at least one column"), win)
			return
		}

		limit := int64(-1)
		if text := strings.TrimSpace(limitEntry.Text); text != "" {
			n, err := strconv.ParseInt(text, 10, 64)
			if err != nil || n <= 0 {
				dialog.ShowError(fmt.Errorf("invalid limit: must be a positive number"), win)
				return
			}
			limit = n
		}

		restricted, err := restrictModel(m, selected, limit)
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		cb(restricted)
	}, win)

	d.Resize(fyne.NewSize(440, 520))
	d.Show()
}

// restrictModel copies the model's rows into a new model holding only
// the chosen columns and at most limit rows. A negative limit keeps
// every row.
func restrictModel(m *rowtable.Model, columns []rowtable.Column, limit int64) (*rowtable.Model, error) {
	count := m.VisibleRowCount()
	if limit >= 0 && int64(count) > limit {
		count = int(limit)
	}

	rows := make([]rowtable.Row, 0, count)
	for i := 0; i < count; i++ {
		row, err := m.VisibleRow(i)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	src := sliceadapter.NewFromRows(columns, rows...)
	return rowtable.NewModel(src)
}
