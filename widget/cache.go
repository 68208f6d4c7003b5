package widget

import (
	"fyne.io/fyne/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// RenderCell is the render object for one (row, column) cell: the
// formatted label and the resolved icon, if any.
type RenderCell struct {
	Label string
	Icon  fyne.Resource
}

// cellKey identifies one rendered cell. The generation changes whenever
// row content changes, so stale renders become unreachable and fall out
// of the cache without explicit clearing.
type cellKey struct {
	gen      uint64
	row      string
	accessor string
}

const defaultRenderCacheSize = 4096

// renderCache is the adapter-owned side table of render objects. Rows
// with a stable identity keep their entries across re-sorts and
// re-filters; rows without one are keyed by source position.
type renderCache struct {
	entries *lru.Cache[cellKey, *RenderCell]
	gen     uint64
}

func newRenderCache(size int) *renderCache {
	if size <= 0 {
		size = defaultRenderCacheSize
	}
	entries, _ := lru.New[cellKey, *RenderCell](size)
	return &renderCache{entries: entries}
}

func (c *renderCache) get(row, accessor string) (*RenderCell, bool) {
	return c.entries.Get(cellKey{gen: c.gen, row: row, accessor: accessor})
}

func (c *renderCache) put(row, accessor string, cell *RenderCell) {
	c.entries.Add(cellKey{gen: c.gen, row: row, accessor: accessor}, cell)
}

// invalidate makes every cached render unreachable. Called on each
// content reload.
func (c *renderCache) invalidate() {
	c.gen++
}
