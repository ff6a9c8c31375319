package suggest

import (
	"net/url"

	"github.com/gnkhotels/go-hotel-curation/internal/types"
)

// Cursor tracks the highlighted row while stepping through a suggestion
// list. -1 means nothing is highlighted and a submit falls back to the
// raw query. The index is always within [-1, len(items)-1].
type Cursor struct {
	items []types.Suggestion
	index int
}

func NewCursor(items []types.Suggestion) *Cursor {
	return &Cursor{items: items, index: -1}
}

// Down steps to the next row, stopping at the last one.
func (c *Cursor) Down() {
	if c.index < len(c.items)-1 {
		c.index++
	}
}

// Up steps back; from the first row it clears the highlight.
func (c *Cursor) Up() {
	if c.index > -1 {
		c.index--
	}
}

// Reset clears the highlight.
func (c *Cursor) Reset() {
	c.index = -1
}

func (c *Cursor) Index() int {
	return c.index
}

// Resolve returns the value a submit uses: the highlighted suggestion's
// value, or the raw query when nothing is highlighted.
func (c *Cursor) Resolve(query string) string {
	if c.index >= 0 && c.index < len(c.items) {
		return c.items[c.index].Value
	}
	return query
}

// SearchTarget builds the search page path a submit navigates to.
func SearchTarget(value string) string {
	return "/search?q=" + url.QueryEscape(value)
}
