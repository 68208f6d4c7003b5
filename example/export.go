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

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/asklund/fyne-rowtable/export"
	"github.com/asklund/fyne-rowtable/rowtable"
)

// showExportDialog asks for a format and writes the active table's
// visible data to a file.
func (b *browser) showExportDialog() {
	dt, ok := b.activeTable()
	if !ok {
		dialog.ShowInformation("No Table", "Open a table before exporting.", b.win)
		return
	}

	formats := widget.NewRadioGroup([]string{"CSV", "JSON", "Parquet"}, nil)
	formats.SetSelected("CSV")

	dialog.ShowCustomConfirm("Export Visible Data", "Export", "Cancel", formats, func(confirmed bool) {
		if !confirmed {
			return
		}
		format := export.FormatCSV
		switch formats.Selected {
		case "JSON":
			format = export.FormatJSON
		case "Parquet":
			format = export.FormatParquet
		}
		b.exportTo(dt.Model(), format)
	}, b.win)
}

func (b *browser) exportTo(m *rowtable.Model, format export.Format) {
	saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, b.win)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		done := b.showProgress("Exporting...")
		go func() {
			exportErr := export.ToFile(m, path, format)
			done()

			fyne.Do(func() {
				if exportErr != nil {
					dialog.ShowError(fmt.Errorf("export failed: %w", exportErr), b.win)
					return
				}
				b.setStatus("Exported " + path)
				dialog.ShowInformation("Export Successful", "Data exported to:\n"+path, b.win)
			})
		}()
	}, b.win)

	saveDialog.SetFileName("export." + format.String())
	saveDialog.SetFilter(storage.NewExtensionFileFilter([]string{"." + format.String()}))
	saveDialog.Show()
}
