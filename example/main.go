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

// Browser is a small data browser built on the rowtable widget. It opens
// CSV, Parquet and JSON files as well as Delta Sharing profiles, and
// demonstrates filtering, sorting, column management, multi-select copy
// and export.
//
//	go run ./example [file...]
package main

import (
	"os"

	"fyne.io/fyne/v2/app"
)

func main() {
	a := app.NewWithID("io.github.asklund.rowtable")
	a.Settings().SetTheme(&appTheme{})

	b := newBrowser(a, loadPreferences())
	b.run(os.Args[1:]...)
}
