package suggest

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnkhotels/go-hotel-curation/internal/types"
)

type stubHotelSource struct {
	refs []types.HotelRef
	err  error
}

func (s *stubHotelSource) ListRefs(context.Context) ([]types.HotelRef, error) {
	return s.refs, s.err
}

type stubTagSource struct {
	refs []types.TagRef
	err  error
}

func (s *stubTagSource) ListRefs(context.Context) ([]types.TagRef, error) {
	return s.refs, s.err
}

func newTestService(hotels []types.HotelRef, tags []types.TagRef) *ServiceImpl {
	return NewService(
		&stubHotelSource{refs: hotels},
		&stubTagSource{refs: tags},
		slog.New(slog.DiscardHandler),
	)
}

func TestSuggest_ShortQueryReturnsNothing(t *testing.T) {
	svc := newTestService(
		[]types.HotelRef{{ID: "1", Name: "Finesse Resort", Location: "Bodrum"}},
		nil,
	)

	for _, q := range []string{"", "f", " f "} {
		got, err := svc.Suggest(context.Background(), q)
		require.NoError(t, err)
		assert.Empty(t, got, "query %q should yield no suggestions", q)
	}
}

func TestSuggest_OrderingHotelsLocationsTags(t *testing.T) {
	svc := newTestService(
		[]types.HotelRef{
			{ID: "1", Name: "Marina Vista", Location: "Marmaris"},
			{ID: "2", Name: "Cliff House", Location: "Marmaris"},
		},
		[]types.TagRef{
			{Name: "Marina view", Slug: "marina-view", Icon: "Anchor"},
		},
	)

	got, err := svc.Suggest(context.Background(), "mar")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, types.SuggestionHotel, got[0].Type)
	assert.Equal(t, "Marina Vista", got[0].Value)
	assert.Equal(t, types.SuggestionLocation, got[1].Type)
	assert.Equal(t, "Marmaris", got[1].Value)
	assert.Equal(t, types.SuggestionTag, got[2].Type)
	assert.Equal(t, "marina-view", got[2].Value)
	assert.Equal(t, "Marina view", got[2].Label)
	assert.Equal(t, "Anchor", got[2].Icon)
}

func TestSuggest_CaseInsensitive(t *testing.T) {
	svc := newTestService(
		[]types.HotelRef{{ID: "1", Name: "Finesse Resort", Location: "Bodrum"}},
		nil,
	)

	for _, q := range []string{"finesse", "FINESSE", "FiNeSsE"} {
		got, err := svc.Suggest(context.Background(), q)
		require.NoError(t, err)
		require.Len(t, got, 1, "query %q", q)
		assert.Equal(t, "Finesse Resort", got[0].Value)
	}
}

func TestSuggest_LocationSubstringMatch(t *testing.T) {
	svc := newTestService(
		[]types.HotelRef{
			{ID: "1", Name: "Aurora", Location: "Side, Antalya"},
			{ID: "2", Name: "Borealis", Location: "Side, Antalya"},
		},
		nil,
	)

	got, err := svc.Suggest(context.Background(), "si")
	require.NoError(t, err)

	// Only one location entry despite two hotels sharing it.
	var locations []string
	for _, s := range got {
		if s.Type == types.SuggestionLocation {
			locations = append(locations, s.Value)
		}
	}
	assert.Equal(t, []string{"Side, Antalya"}, locations)
}

func TestSuggest_CapsAtMax(t *testing.T) {
	hotels := make([]types.HotelRef, 0, 12)
	for i := 0; i < 12; i++ {
		hotels = append(hotels, types.HotelRef{
			ID:       fmt.Sprintf("%d", i),
			Name:     fmt.Sprintf("Beach Club %d", i),
			Location: fmt.Sprintf("Beachtown %d", i),
		})
	}
	svc := newTestService(hotels, []types.TagRef{{Name: "Beachfront", Slug: "beachfront", Icon: "Waves"}})

	got, err := svc.Suggest(context.Background(), "beach")
	require.NoError(t, err)
	assert.Len(t, got, MaxSuggestions)
	// Hotels fill the cap before any location or tag appears.
	for _, s := range got {
		assert.Equal(t, types.SuggestionHotel, s.Type)
	}
}

func TestSuggest_SourceErrorDegradesToEmpty(t *testing.T) {
	svc := NewService(
		&stubHotelSource{err: fmt.Errorf("connection refused")},
		&stubTagSource{},
		slog.New(slog.DiscardHandler),
	)

	got, err := svc.Suggest(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSuggest_SnapshotIsCached(t *testing.T) {
	hotelSrc := &stubHotelSource{refs: []types.HotelRef{{ID: "1", Name: "Finesse Resort", Location: "Bodrum"}}}
	svc := NewService(hotelSrc, &stubTagSource{}, slog.New(slog.DiscardHandler))

	_, err := svc.Suggest(context.Background(), "finesse")
	require.NoError(t, err)

	// Source changes are invisible until a refresh or TTL expiry.
	hotelSrc.refs = nil
	got, err := svc.Suggest(context.Background(), "finesse")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	require.NoError(t, svc.Refresh(context.Background()))
	got, err = svc.Suggest(context.Background(), "finesse")
	require.NoError(t, err)
	assert.Empty(t, got)
}
