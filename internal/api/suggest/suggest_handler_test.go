package suggest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnkhotels/go-hotel-curation/internal/types"
)

type stubSuggestService struct {
	suggestions []types.Suggestion
}

func (s *stubSuggestService) Suggest(context.Context, string) ([]types.Suggestion, error) {
	return s.suggestions, nil
}

func (s *stubSuggestService) Refresh(context.Context) error { return nil }

func resolve(t *testing.T, h *Handler, url string) map[string]string {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Resolve(rec, httptest.NewRequest("GET", url, nil))
	require.Equal(t, 200, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestResolve_SelectedRowWins(t *testing.T) {
	h := NewHandler(&stubSuggestService{suggestions: []types.Suggestion{
		{Type: types.SuggestionHotel, Value: "Marina Vista", Label: "Marina Vista"},
		{Type: types.SuggestionLocation, Value: "Marmaris", Label: "Marmaris"},
	}}, slog.New(slog.DiscardHandler))

	body := resolve(t, h, "/api/v1/suggest/resolve?q=mar&selected=1")
	assert.Equal(t, "Marmaris", body["value"])
	assert.Equal(t, "/search?q=Marmaris", body["target"])
}

func TestResolve_OutOfRangeSelectionFallsBackToQuery(t *testing.T) {
	h := NewHandler(&stubSuggestService{suggestions: []types.Suggestion{
		{Type: types.SuggestionHotel, Value: "Marina Vista", Label: "Marina Vista"},
	}}, slog.New(slog.DiscardHandler))

	body := resolve(t, h, "/api/v1/suggest/resolve?q=mar&selected=99")
	assert.Equal(t, "mar", body["value"])
	assert.Equal(t, "/search?q=mar", body["target"])
}

func TestResolve_EmptyValueHasNoTarget(t *testing.T) {
	h := NewHandler(&stubSuggestService{}, slog.New(slog.DiscardHandler))

	body := resolve(t, h, "/api/v1/suggest/resolve?q=&selected=0")
	assert.Equal(t, "", body["value"])
	assert.Equal(t, "", body["target"])
}
