package widget

import (
	"fyne.io/fyne/v2"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
)

// WrapWithTooltips adds the overlay layer that cell tooltips render
// into. Wrap the window content with it before calling SetContent:
//
//	w.SetContent(widget.WrapWithTooltips(content, w.Canvas()))
func WrapWithTooltips(obj fyne.CanvasObject, canvas fyne.Canvas) fyne.CanvasObject {
	return fynetooltip.AddWindowToolTipLayer(obj, canvas)
}
