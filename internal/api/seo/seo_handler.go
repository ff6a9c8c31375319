package seo

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/gnkhotels/go-hotel-curation/internal/types"
)

// HotelSource lists the hotels included in the sitemap.
type HotelSource interface {
	ListRefs(ctx context.Context) ([]types.HotelRef, error)
}

type urlEntry struct {
	Loc        string  `xml:"loc"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type Handler struct {
	baseURL string
	hotels  HotelSource
	logger  *slog.Logger
}

func NewHandler(baseURL string, hotels HotelSource, logger *slog.Logger) *Handler {
	return &Handler{
		baseURL: strings.TrimRight(baseURL, "/"),
		hotels:  hotels,
		logger:  logger,
	}
}

// Sitemap renders the XML sitemap: the static routes plus one detail
// page per live hotel.
func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("SeoHandler").Start(r.Context(), "Sitemap", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/sitemap.xml"),
	))
	defer span.End()

	refs, err := h.hotels.ListRefs(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list hotels for sitemap", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to build sitemap")
		http.Error(w, "failed to build sitemap", http.StatusInternalServerError)
		return
	}

	set := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []urlEntry{
			{Loc: h.baseURL + "/", ChangeFreq: "daily", Priority: 1.0},
			{Loc: h.baseURL + "/search", ChangeFreq: "daily", Priority: 0.8},
			{Loc: h.baseURL + "/rehber", ChangeFreq: "weekly", Priority: 0.6},
		},
	}
	for _, ref := range refs {
		set.URLs = append(set.URLs, urlEntry{
			Loc:        fmt.Sprintf("%s/otel/%s", h.baseURL, ref.ID),
			ChangeFreq: "weekly",
			Priority:   0.7,
		})
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(xml.Header))
	if err := xml.NewEncoder(w).Encode(set); err != nil {
		h.logger.ErrorContext(ctx, "Failed to encode sitemap", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to encode sitemap")
		return
	}
	span.SetStatus(codes.Ok, "Sitemap rendered")
}

// Robots renders robots.txt, keeping crawlers off the admin surface.
func (h *Handler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", h.baseURL)
}
