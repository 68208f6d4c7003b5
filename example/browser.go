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
	"log"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/asklund/fyne-rowtable/rowtable"
	rtwidget "github.com/asklund/fyne-rowtable/widget"
)

// browser is the main window: a toolbar, a recent-file sidebar, a status
// bar and a set of document tabs each holding one table.
type browser struct {
	app   fyne.App
	win   fyne.Window
	prefs *preferences

	tabs    *container.DocTabs
	status  *widget.Label
	sidebar fyne.CanvasObject
	recent  binding.StringList

	tables map[*container.TabItem]*rtwidget.DataTable
}

func newBrowser(a fyne.App, prefs *preferences) *browser {
	b := &browser{
		app:    a,
		prefs:  prefs,
		tables: make(map[*container.TabItem]*rtwidget.DataTable),
	}

	b.win = a.NewWindow("Row Table Browser")
	b.win.Resize(fyne.NewSize(prefs.Window.Width, prefs.Window.Height))

	b.status = widget.NewLabel("Ready")
	b.status.TextStyle = fyne.TextStyle{Italic: true}

	b.recent = binding.NewStringList()
	b.recent.Set(prefs.RecentFiles)

	welcome := widget.NewLabel("Open a CSV, Parquet or JSON file, or a Delta Sharing profile, to browse it here.")
	welcome.Wrapping = fyne.TextWrapWord
	b.tabs = container.NewDocTabs(container.NewTabItem("Welcome", container.NewCenter(welcome)))
	b.tabs.CloseIntercept = func(ti *container.TabItem) {
		delete(b.tables, ti)
		b.tabs.Remove(ti)
	}

	b.sidebar = b.buildSidebar()
	return b
}

func (b *browser) buildSidebar() fyne.CanvasObject {
	list := widget.NewListWithData(b.recent,
		func() fyne.CanvasObject {
			return widget.NewLabel("template")
		},
		func(di binding.DataItem, co fyne.CanvasObject) {
			co.(*widget.Label).Bind(di.(binding.String))
		})
	list.OnSelected = func(id widget.ListItemID) {
		list.UnselectAll()
		files, err := b.recent.Get()
		if err != nil || id < 0 || id >= len(files) {
			return
		}
		b.openPath(files[id])
	}
	return container.NewGridWrap(fyne.NewSize(220, 640), widget.NewCard("", "Recent Files", list))
}

func (b *browser) buildToolbar() *widget.Toolbar {
	return widget.NewToolbar(
		widget.NewToolbarAction(theme.MenuIcon(), func() {
			if b.sidebar.Visible() {
				b.sidebar.Hide()
			} else {
				b.sidebar.Show()
			}
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.FolderOpenIcon(), b.showOpenDialog),
		widget.NewToolbarAction(theme.StorageIcon(), b.showShareDialog),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.SearchIcon(), b.showFilterDialog),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), b.showExportDialog),
		widget.NewToolbarSpacer(),
	)
}

// run assembles the window, opens any initial paths and enters the
// event loop.
func (b *browser) run(paths ...string) {
	top := b.buildToolbar()
	bottom := container.NewHBox(b.status)
	content := container.NewBorder(top, bottom, b.sidebar, nil, widget.NewCard("", "", b.tabs))

	b.win.SetContent(rtwidget.WrapWithTooltips(content, b.win.Canvas()))
	b.win.SetCloseIntercept(func() {
		size := b.win.Canvas().Size()
		b.prefs.Window.Width = size.Width
		b.prefs.Window.Height = size.Height
		if err := b.prefs.save(); err != nil {
			log.Printf("Failed to save preferences: %v", err)
		}
		b.win.Close()
	})

	for _, p := range paths {
		b.openPath(p)
	}

	b.win.ShowAndRun()
}

func (b *browser) setStatus(msg string) {
	b.status.SetText(msg)
}

// showProgress opens an indeterminate progress dialog and returns a
// function that closes it. The returned function is safe to call from
// any goroutine.
func (b *browser) showProgress(title string) func() {
	pbi := widget.NewProgressBarInfinite()
	di := dialog.NewCustomWithoutButtons(title, pbi, b.win)
	di.Resize(fyne.NewSize(240, 100))
	di.Show()
	pbi.Start()
	return func() {
		fyne.Do(func() {
			pbi.Stop()
			di.Hide()
		})
	}
}

func (b *browser) showOpenDialog() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, b.win)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		b.openPath(path)
	}, b.win)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".tsv", ".parquet", ".json", ".share", ".txt"}))
	fd.Show()
}

// openPath detects the file type and loads the file in the background.
// Delta Sharing profiles open the share browser instead of a tab.
func (b *browser) openPath(path string) {
	name := filepath.Base(path)
	b.setStatus("Loading " + name + "...")

	var content []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".share", ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			b.setStatus("Error loading file: " + err.Error())
			dialog.ShowError(err, b.win)
			return
		}
		content = data
	}

	ft := detectFileType(path, string(content))
	switch ft {
	case fileTypeShareProfile:
		b.rememberRecent(path)
		b.browseShares(string(content))
		return
	case fileTypeUnknown:
		b.setStatus("Ready")
		dialog.ShowError(fmt.Errorf("unsupported file type: %s", name), b.win)
		return
	}

	go func() {
		var (
			m             *rowtable.Model
			title, status string
			err           error
		)
		switch ft {
		case fileTypeCSV:
			m, title, status, err = loadCSV(path)
		case fileTypeParquet:
			m, title, status, err = loadParquet(path)
		case fileTypeJSON:
			m, title, status, err = loadJSON(name, content)
		}

		fyne.Do(func() {
			if err != nil {
				b.setStatus("Error loading file: " + err.Error())
				dialog.ShowError(err, b.win)
				return
			}
			b.addModelTab(title, m)
			b.setStatus(status)
			b.rememberRecent(path)
		})
	}()
}

func (b *browser) rememberRecent(path string) {
	b.prefs.rememberRecent(path)
	b.recent.Set(b.prefs.RecentFiles)
}

// addModelTab shows a model in a new document tab, replacing an existing
// tab with the same title.
func (b *browser) addModelTab(title string, m *rowtable.Model) {
	if b.prefs.MissingValue != "" {
		m.SetMissingValue(b.prefs.MissingValue)
	}

	cfg := rtwidget.DefaultConfig()
	cfg.ShowFilterBar = true
	cfg.ShowStatusBar = true
	cfg.ShowColumnSelector = true
	cfg.MultiSelect = true

	dt := rtwidget.NewDataTableWithConfig(m, cfg)
	dt.SetWindow(b.win)

	card := widget.NewCard("", title, dt)
	for _, tab := range b.tabs.Items {
		if tab.Text == title {
			tab.Content = card
			b.tables[tab] = dt
			b.tabs.Select(tab)
			b.tabs.Refresh()
			return
		}
	}

	tab := container.NewTabItem(title, card)
	b.tables[tab] = dt
	b.tabs.Append(tab)
	b.tabs.Select(tab)
}

// activeTable returns the table in the selected tab, if any.
func (b *browser) activeTable() (*rtwidget.DataTable, bool) {
	dt, ok := b.tables[b.tabs.Selected()]
	return dt, ok
}
