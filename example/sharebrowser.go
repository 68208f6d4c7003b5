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
	"context"
	"fmt"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	delta_sharing "github.com/magpierre/go_delta_sharing_client"

	"github.com/asklund/fyne-rowtable/adapters/deltasharing"
	"github.com/asklund/fyne-rowtable/rowtable"
)

// showShareDialog asks for a Delta Sharing profile file and opens the
// share browser with it.
func (b *browser) showShareDialog() {
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

		content, err := os.ReadFile(path)
		if err != nil {
			dialog.ShowError(err, b.win)
			return
		}
		if !isShareProfile(string(content)) {
			dialog.ShowError(fmt.Errorf("%s is not a Delta Sharing profile", filepath.Base(path)), b.win)
			return
		}

		b.rememberRecent(path)
		b.browseShares(string(content))
	}, b.win)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".share", ".json", ".txt"}))
	fd.Show()
}

// browseShares connects to a Delta Sharing server and lists every table
// it shares.
func (b *browser) browseShares(profile string) {
	client, err := deltasharing.NewClientFromProfile(profile, deltasharing.DefaultConfig())
	if err != nil {
		dialog.ShowError(fmt.Errorf("failed to connect to Delta Sharing: %w", err), b.win)
		return
	}

	done := b.showProgress("Listing shares...")
	go func() {
		tables, err := client.Tables(context.Background())
		done()

		fyne.Do(func() {
			if err != nil {
				b.setStatus("Error listing shares")
				dialog.ShowError(err, b.win)
				return
			}
			if len(tables) == 0 {
				dialog.ShowInformation("Delta Sharing", "The server has no shared tables.", b.win)
				return
			}
			b.setStatus(fmt.Sprintf("Found %d shared tables", len(tables)))
			b.showShareTables(client, tables)
		})
	}()
}

func (b *browser) showShareTables(client *deltasharing.Client, tables []delta_sharing.Table) {
	labels := make([]string, len(tables))
	for i, tbl := range tables {
		labels[i] = fmt.Sprintf("%s.%s.%s", tbl.Share, tbl.Schema, tbl.Name)
	}

	names := binding.NewStringList()
	names.Set(labels)

	list := widget.NewListWithData(names,
		func() fyne.CanvasObject {
			return widget.NewLabel("template")
		},
		func(di binding.DataItem, co fyne.CanvasObject) {
			co.(*widget.Label).Bind(di.(binding.String))
		})

	var d dialog.Dialog
	list.OnSelected = func(id widget.ListItemID) {
		list.UnselectAll()
		if id < 0 || id >= widget.ListItemID(len(tables)) {
			return
		}
		d.Hide()
		b.openShareTable(client, tables[id])
	}

	scroll := container.NewVScroll(list)
	scroll.SetMinSize(fyne.NewSize(420, 320))
	d = dialog.NewCustom("Shared Tables", "Close", scroll, b.win)
	d.Show()
}

// openShareTable loads the table's first data file and shows the open
// options dialog before displaying it.
func (b *browser) openShareTable(client *deltasharing.Client, table delta_sharing.Table) {
	done := b.showProgress("Loading " + table.Name + "...")
	go func() {
		src, err := func() (rowtable.Source, error) {
			ids, err := client.FileIDs(context.Background(), table)
			if err != nil {
				return nil, err
			}
			if len(ids) == 0 {
				return nil, fmt.Errorf("no files available for table %s", table.Name)
			}
			return client.Open(context.Background(), table, ids[0])
		}()
		done()

		fyne.Do(func() {
			if err != nil {
				b.setStatus("Error loading table")
				dialog.ShowError(err, b.win)
				return
			}
			m, err := rowtable.NewModel(src)
			if err != nil {
				dialog.ShowError(err, b.win)
				return
			}
			showOpenOptions(b.win, m, b.prefs.RowLimit, func(restricted *rowtable.Model) {
				b.addModelTab(table.Name, restricted)
				b.setStatus(fmt.Sprintf("Loaded table: %s (%d rows)", table.Name, restricted.VisibleRowCount()))
			})
		})
	}()
}
