package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gnkhotels/go-hotel-curation/internal/types"
)

func threeSuggestions() []types.Suggestion {
	return []types.Suggestion{
		{Type: types.SuggestionHotel, Value: "Finesse Resort"},
		{Type: types.SuggestionLocation, Value: "Bodrum"},
		{Type: types.SuggestionTag, Value: "beachfront"},
	}
}

func TestCursor_DownStopsAtLast(t *testing.T) {
	c := NewCursor(threeSuggestions())
	assert.Equal(t, -1, c.Index())

	c.Down()
	c.Down()
	c.Down()
	assert.Equal(t, 2, c.Index())

	// Further presses stay on the last row.
	c.Down()
	c.Down()
	assert.Equal(t, 2, c.Index())
}

func TestCursor_UpClearsFromFirstRow(t *testing.T) {
	c := NewCursor(threeSuggestions())
	c.Down()
	c.Down()
	assert.Equal(t, 1, c.Index())

	c.Up()
	assert.Equal(t, 0, c.Index())
	c.Up()
	assert.Equal(t, -1, c.Index())

	// Already cleared, stays cleared.
	c.Up()
	assert.Equal(t, -1, c.Index())
}

func TestCursor_ResolveHighlightedOrRawQuery(t *testing.T) {
	c := NewCursor(threeSuggestions())
	assert.Equal(t, "bodr", c.Resolve("bodr"))

	c.Down()
	assert.Equal(t, "Finesse Resort", c.Resolve("bodr"))

	c.Down()
	assert.Equal(t, "Bodrum", c.Resolve("bodr"))

	c.Reset()
	assert.Equal(t, "bodr", c.Resolve("bodr"))
}

func TestCursor_EmptyList(t *testing.T) {
	c := NewCursor(nil)
	c.Down()
	assert.Equal(t, -1, c.Index())
	assert.Equal(t, "query", c.Resolve("query"))
}

func TestSearchTarget_EscapesQuery(t *testing.T) {
	assert.Equal(t, "/search?q=Side%2C+Antalya", SearchTarget("Side, Antalya"))
	assert.Equal(t, "/search?q=beachfront", SearchTarget("beachfront"))
}
