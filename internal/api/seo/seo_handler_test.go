package seo

import (
	"context"
	"log/slog"
	"net/http/httptest"
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

func TestSitemap_ListsStaticRoutesAndHotels(t *testing.T) {
	h := NewHandler("https://www.gnkhotels.com/", &stubHotelSource{refs: []types.HotelRef{
		{ID: "0b54f791-2c25-4f32-9ae2-76a69a93ad4c", Name: "Finesse Resort", Location: "Bodrum"},
	}}, slog.New(slog.DiscardHandler))

	rec := httptest.NewRecorder()
	h.Sitemap(rec, httptest.NewRequest("GET", "/sitemap.xml", nil))

	require.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/xml; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "<loc>https://www.gnkhotels.com/</loc>")
	assert.Contains(t, body, "<loc>https://www.gnkhotels.com/search</loc>")
	assert.Contains(t, body, "<loc>https://www.gnkhotels.com/rehber</loc>")
	assert.Contains(t, body, "<loc>https://www.gnkhotels.com/otel/0b54f791-2c25-4f32-9ae2-76a69a93ad4c</loc>")
}

func TestSitemap_SourceErrorIs500(t *testing.T) {
	h := NewHandler("https://www.gnkhotels.com", &stubHotelSource{err: assert.AnError}, slog.New(slog.DiscardHandler))

	rec := httptest.NewRecorder()
	h.Sitemap(rec, httptest.NewRequest("GET", "/sitemap.xml", nil))
	assert.Equal(t, 500, rec.Code)
}

func TestRobots_DisallowsAdmin(t *testing.T) {
	h := NewHandler("https://www.gnkhotels.com", &stubHotelSource{}, slog.New(slog.DiscardHandler))

	rec := httptest.NewRecorder()
	h.Robots(rec, httptest.NewRequest("GET", "/robots.txt", nil))

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Disallow: /admin/")
	assert.Contains(t, body, "Sitemap: https://www.gnkhotels.com/sitemap.xml")
}
