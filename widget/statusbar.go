package widget

import (
	"fmt"

	"fyne.io/fyne/v2"
	fynewidget "fyne.io/fyne/v2/widget"

	"github.com/asklund/fyne-rowtable/rowtable"
)

// statusBar is the summary line under the table: counts, sort order and
// the active filter.
type statusBar struct {
	label *fynewidget.Label
}

func newStatusBar() *statusBar {
	s := &statusBar{label: fynewidget.NewLabel("")}
	s.label.TextStyle = fyne.TextStyle{Italic: true}
	s.label.Truncation = fyne.TextTruncateEllipsis
	return s
}

func (s *statusBar) update(m *rowtable.Model) {
	visCols, totCols := m.VisibleColumnCount(), m.OriginalColumnCount()
	visRows, totRows := m.VisibleRowCount(), m.OriginalRowCount()

	var text string
	if visCols == totCols && visRows == totRows {
		text = fmt.Sprintf("%d columns x %d rows", totCols, totRows)
	} else {
		text = fmt.Sprintf("showing %d/%d columns x %d/%d rows", visCols, totCols, visRows, totRows)
	}

	if st := m.GetSortState(); st.IsSorted() {
		if col, err := m.Column(st.Column); err == nil {
			arrow := "↑"
			if st.Direction == rowtable.SortDescending {
				arrow = "↓"
			}
			text += fmt.Sprintf(" | Sorted: %s %s", col.Heading, arrow)
		}
	}
	if desc := m.FilterDescription(); desc != "" {
		text += " | Filter: " + desc
	}

	s.label.SetText(text)
}
