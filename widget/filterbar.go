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
	"log"
	"time"

	"fyne.io/fyne/v2"
	fynewidget "fyne.io/fyne/v2/widget"
	"github.com/zmwangx/debounce"

	"github.com/asklund/fyne-rowtable/internal/filter"
	"github.com/asklund/fyne-rowtable/rowtable"
)

// filterBar is the query entry above the table. Keystrokes are
// debounced so the model is filtered once per pause, not once per
// character.
type filterBar struct {
	entry *fynewidget.Entry
}

func newFilterBar(model *rowtable.Model, cfg *Config) *filterBar {
	b := &filterBar{entry: fynewidget.NewEntry()}
	b.entry.SetPlaceHolder(`Filter rows (e.g., age > 30 AND city = "Lund")...`)

	interval := cfg.DebounceInterval
	if interval <= 0 {
		interval = DefaultConfig().DebounceInterval
	}
	// The debounced function fires on a timer goroutine; the model and
	// the entry belong to the UI goroutine.
	apply, _ := debounce.Debounce(func() {
		fyne.Do(func() {
			applyFilterText(model, b.entry.Text)
		})
	}, interval, debounce.WithMaxWait(time.Second))

	b.entry.OnChanged = func(string) {
		apply()
	}
	return b
}

// applyFilterText parses the query and installs it on the model. A nil
// parse result means no filter and must be passed as an untyped nil, a
// typed nil pointer would read as an active filter.
func applyFilterText(model *rowtable.Model, text string) {
	q, err := filter.ParseQuery(text, model.Columns())
	if err != nil {
		log.Printf("Failed to parse filter query %q: %v", text, err)
		return
	}
	if q == nil {
		if err := model.SetFilter(nil); err != nil {
			log.Printf("Failed to clear filter: %v", err)
		}
		return
	}
	if err := model.SetFilter(q); err != nil {
		log.Printf("Failed to apply filter %q: %v", text, err)
	}
}
