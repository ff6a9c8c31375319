package hotels

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/gnkhotels/go-hotel-curation/internal/api"
	"github.com/gnkhotels/go-hotel-curation/internal/api/auth"
	"github.com/gnkhotels/go-hotel-curation/internal/types"
)

type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("HotelHandler").Start(r.Context(), "List", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/hotels"),
	))
	defer span.End()

	// Deleted rows are an admin-only view.
	includeDeleted := false
	if _, ok := auth.ClaimsFromContext(ctx); ok {
		includeDeleted = r.URL.Query().Get("include_deleted") == "true"
	}

	hotels, err := h.service.GetAll(ctx, includeDeleted)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list hotels", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list hotels")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve hotels")
		return
	}
	span.SetStatus(codes.Ok, "Hotels listed")
	api.WriteJSONResponse(w, r, http.StatusOK, hotels)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("HotelHandler").Start(r.Context(), "Get", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/hotels/{hotelID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "hotelID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid hotel ID format")
		return
	}

	hotel, err := h.service.GetByID(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to get hotel", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get hotel")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve hotel")
		return
	}
	if hotel == nil {
		api.ErrorResponse(w, r, http.StatusNotFound, "Hotel not found")
		return
	}
	span.SetStatus(codes.Ok, "Hotel fetched")
	api.WriteJSONResponse(w, r, http.StatusOK, hotel)
}

// Search reads the optional filters from the query string: q (full-text
// term), tags (comma-separated, all must match), min_price, max_price,
// min_score.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("HotelHandler").Start(r.Context(), "Search", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/hotels/search"),
	))
	defer span.End()

	q := r.URL.Query()
	var filter types.HotelFilter

	if term := strings.TrimSpace(q.Get("q")); term != "" {
		filter.SearchTerm = &term
	}
	if tags := q.Get("tags"); tags != "" {
		filter.Tags = strings.Split(tags, ",")
	}
	if raw := q.Get("min_price"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid min_price")
			return
		}
		filter.MinPrice = &v
	}
	if raw := q.Get("max_price"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid max_price")
			return
		}
		filter.MaxPrice = &v
	}
	if raw := q.Get("min_score"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid min_score")
			return
		}
		filter.MinScore = &v
	}

	hotels, err := h.service.Search(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to search hotels", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to search hotels")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to search hotels")
		return
	}
	span.SetStatus(codes.Ok, "Hotels searched")
	api.WriteJSONResponse(w, r, http.StatusOK, hotels)
}

// ByTag serves the tag landing pages: every live hotel carrying the
// given tag slug.
func (h *Handler) ByTag(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("HotelHandler").Start(r.Context(), "ByTag", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/hotels/tag/{slug}"),
	))
	defer span.End()

	slug := chi.URLParam(r, "slug")

	hotels, err := h.service.GetByTag(ctx, slug)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list hotels by tag", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list hotels by tag")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve hotels")
		return
	}
	span.SetStatus(codes.Ok, "Hotels listed by tag")
	api.WriteJSONResponse(w, r, http.StatusOK, hotels)
}

// ByPrice serves the price bracket pages. The slug carries the bounds
// as "{min}-{max}".
func (h *Handler) ByPrice(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("HotelHandler").Start(r.Context(), "ByPrice", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/hotels/price/{slug}"),
	))
	defer span.End()

	slug := chi.URLParam(r, "slug")
	minRaw, maxRaw, ok := strings.Cut(slug, "-")
	if !ok {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid price bracket slug")
		return
	}
	minPrice, err := strconv.Atoi(minRaw)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid price bracket slug")
		return
	}
	maxPrice, err := strconv.Atoi(maxRaw)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid price bracket slug")
		return
	}

	hotels, err := h.service.GetByPriceRange(ctx, minPrice, maxPrice)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list hotels by price", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list hotels by price")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve hotels")
		return
	}
	span.SetStatus(codes.Ok, "Hotels listed by price")
	api.WriteJSONResponse(w, r, http.StatusOK, hotels)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("HotelHandler").Start(r.Context(), "Create", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/hotels"),
	))
	defer span.End()

	var req types.CreateHotelParams
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" || req.Location == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "name and location are required")
		return
	}

	hotel, err := h.service.Create(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to create hotel", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create hotel")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create hotel")
		return
	}
	span.SetStatus(codes.Ok, "Hotel created")
	api.WriteJSONResponse(w, r, http.StatusCreated, hotel)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("HotelHandler").Start(r.Context(), "Update", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/hotels/{hotelID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "hotelID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid hotel ID format")
		return
	}

	var req types.UpdateHotelParams
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	hotel, err := h.service.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Hotel not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to update hotel", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update hotel")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to update hotel")
		return
	}
	span.SetStatus(codes.Ok, "Hotel updated")
	api.WriteJSONResponse(w, r, http.StatusOK, hotel)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "Delete", h.service.Delete)
}

func (h *Handler) HardDelete(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "HardDelete", h.service.HardDelete)
}

func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "Restore", h.service.Restore)
}

// lifecycle covers the three id-only state transitions which share
// identical request handling.
func (h *Handler) lifecycle(w http.ResponseWriter, r *http.Request, name string, op func(ctx context.Context, id uuid.UUID) error) {
	ctx, span := otel.Tracer("HotelHandler").Start(r.Context(), name, trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/hotels/{hotelID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "hotelID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid hotel ID format")
		return
	}

	if err := op(ctx, id); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Hotel not found")
			return
		}
		h.logger.ErrorContext(ctx, "Hotel lifecycle operation failed",
			slog.String("op", name), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Hotel lifecycle operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Operation failed")
		return
	}
	span.SetStatus(codes.Ok, name+" succeeded")
	api.WriteJSONResponse(w, r, http.StatusOK, api.Response{Success: true})
}
