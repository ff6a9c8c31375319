package suggest

import (
	"log/slog"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/gnkhotels/go-hotel-curation/app/observability/metrics"
	"github.com/gnkhotels/go-hotel-curation/internal/api"
)

type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("SuggestHandler").Start(r.Context(), "Suggest", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/suggest"),
	))
	defer span.End()

	metrics.Get().SuggestRequestsTotal.Add(ctx, 1)

	query := r.URL.Query().Get("q")
	suggestions, err := h.service.Suggest(ctx, query)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to compute suggestions", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to compute suggestions")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to compute suggestions")
		return
	}
	span.SetStatus(codes.Ok, "Suggestions computed")
	api.WriteJSONResponse(w, r, http.StatusOK, suggestions)
}

// Resolve answers what a submit should navigate to for the given query
// and highlighted row. A selected index outside the list falls back to
// the raw query, mirroring the keyboard behavior in the search box.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("SuggestHandler").Start(r.Context(), "Resolve", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/suggest/resolve"),
	))
	defer span.End()

	query := r.URL.Query().Get("q")

	selected := -1
	if raw := r.URL.Query().Get("selected"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid selected index")
			return
		}
		selected = v
	}

	suggestions, err := h.service.Suggest(ctx, query)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to resolve suggestion", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to resolve suggestion")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to resolve suggestion")
		return
	}

	cursor := NewCursor(suggestions)
	if selected >= 0 && selected < len(suggestions) {
		for i := 0; i <= selected; i++ {
			cursor.Down()
		}
	}
	value := cursor.Resolve(query)

	// An empty resolved value means nothing to navigate to.
	target := ""
	if value != "" {
		target = SearchTarget(value)
	}

	span.SetStatus(codes.Ok, "Suggestion resolved")
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{
		"value":  value,
		"target": target,
	})
}

// Refresh rebuilds the suggestion snapshot. Exposed on the admin
// surface so content edits show up without waiting out the TTL.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("SuggestHandler").Start(r.Context(), "Refresh", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/suggest/refresh"),
	))
	defer span.End()

	metrics.Get().SuggestRefreshTotal.Add(ctx, 1)

	if err := h.service.Refresh(ctx); err != nil {
		h.logger.ErrorContext(ctx, "Failed to refresh suggestion snapshot", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to refresh suggestion snapshot")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to refresh suggestions")
		return
	}
	span.SetStatus(codes.Ok, "Suggestion snapshot refreshed")
	api.WriteJSONResponse(w, r, http.StatusOK, api.Response{Success: true})
}
