package widget

// View is the native surface the adapter drives: full-content reloads,
// scroll-into-view, column layout and selection clearing. The
// production implementation is the DataTable itself, wrapping a Fyne
// table; tests substitute a recording implementation to observe the
// adapter's traffic.
type View interface {
	// Reload redraws all visible content from the data source. Every
	// content mutation maps to exactly one Reload.
	Reload()

	// ScrollToRow brings a visible row into view.
	ScrollToRow(row int)

	// SetColumnWidth applies a computed width to a visible column.
	SetColumnWidth(col int, width float32)

	// UnselectAll clears the native selection highlight. It does not
	// touch the abstract selection.
	UnselectAll()
}
