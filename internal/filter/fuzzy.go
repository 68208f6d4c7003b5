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

package filter

import (
	"fmt"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/asklund/fyne-rowtable/rowtable"
)

// DefaultFuzzyThreshold is the similarity a cell must exceed when the
// filter does not set its own.
const DefaultFuzzyThreshold = 0.5

// Fuzzy matches rows whose cells contain the term or resemble it closely
// enough. Matching is case-insensitive across every column.
type Fuzzy struct {
	// Term is the text searched for. An empty term passes all rows.
	Term string

	// Threshold overrides DefaultFuzzyThreshold when positive.
	Threshold float64
}

// Evaluate implements the rowtable.Filter interface.
func (f *Fuzzy) Evaluate(row []rowtable.Value, accessors []string) (bool, error) {
	term := strings.ToLower(strings.TrimSpace(f.Term))
	if term == "" {
		return true, nil
	}

	threshold := f.Threshold
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}

	hamming := metrics.NewHamming()
	for _, cell := range row {
		text := strings.ToLower(cell.Formatted)
		if strings.Contains(text, term) {
			return true, nil
		}
		if strutil.Similarity(text, term, hamming) > threshold {
			return true, nil
		}
	}

	return false, nil
}

// Description implements the rowtable.Filter interface.
func (f *Fuzzy) Description() string {
	return fmt.Sprintf("fuzzy: %q", f.Term)
}
