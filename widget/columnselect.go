package widget

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	fynewidget "fyne.io/fyne/v2/widget"
)

// newColumnSelector builds the button that pops up a checked menu of
// every registered column. Toggling an entry flips the column's
// visibility on the model; the table follows through the usual
// notification path.
func newColumnSelector(t *DataTable) *fynewidget.Button {
	btn := fynewidget.NewButtonWithIcon("", theme.ListIcon(), nil)
	btn.OnTapped = func() {
		model := t.model
		columns := model.Columns()
		items := make([]*fyne.MenuItem, 0, len(columns))
		for _, col := range columns {
			accessor := col.Accessor
			item := fyne.NewMenuItem(col.Heading, nil)
			item.Checked = model.ColumnVisible(accessor)
			item.Action = func() {
				visible := model.ColumnVisible(accessor)
				if err := model.SetColumnVisible(accessor, !visible); err != nil {
					log.Printf("Failed to toggle column %q: %v", accessor, err)
				}
			}
			items = append(items, item)
		}

		driver := fyne.CurrentApp().Driver()
		c := driver.CanvasForObject(btn)
		if c == nil {
			return
		}
		pos := driver.AbsolutePositionForObject(btn)
		pos.Y += btn.Size().Height
		fynewidget.ShowPopUpMenuAtPosition(fyne.NewMenu("", items...), c, pos)
	}
	return btn
}
