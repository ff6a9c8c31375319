package restaurants

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/gnkhotels/go-hotel-curation/internal/api"
	"github.com/gnkhotels/go-hotel-curation/internal/types"
)

type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// ByLocation serves the nearby-restaurants section of a hotel detail
// page.
func (h *Handler) ByLocation(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("RestaurantHandler").Start(r.Context(), "ByLocation", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/restaurants"),
	))
	defer span.End()

	location := r.URL.Query().Get("location")
	if location == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "location is required")
		return
	}

	categories, err := h.service.GetByLocation(ctx, location)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to fetch restaurants", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to fetch restaurants")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve restaurants")
		return
	}
	span.SetStatus(codes.Ok, "Restaurants fetched")
	api.WriteJSONResponse(w, r, http.StatusOK, categories)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("RestaurantHandler").Start(r.Context(), "ListCategories", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/restaurant-categories"),
	))
	defer span.End()

	categories, err := h.service.GetCategories(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list restaurant categories", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list restaurant categories")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve restaurant categories")
		return
	}
	span.SetStatus(codes.Ok, "Restaurant categories listed")
	api.WriteJSONResponse(w, r, http.StatusOK, categories)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("RestaurantHandler").Start(r.Context(), "CreateCategory", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/restaurant-categories"),
	))
	defer span.End()

	var req types.CreateRestaurantCategoryParams
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Title == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "title is required")
		return
	}

	category, err := h.service.CreateCategory(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to create restaurant category", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create restaurant category")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create restaurant category")
		return
	}
	span.SetStatus(codes.Ok, "Restaurant category created")
	api.WriteJSONResponse(w, r, http.StatusCreated, category)
}

func (h *Handler) CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("RestaurantHandler").Start(r.Context(), "CreateRestaurant", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/restaurants"),
	))
	defer span.End()

	var req types.CreateRestaurantParams
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" || req.CategoryID == uuid.Nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "name and category_id are required")
		return
	}

	restaurant, err := h.service.CreateRestaurant(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to create restaurant", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create restaurant")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create restaurant")
		return
	}
	span.SetStatus(codes.Ok, "Restaurant created")
	api.WriteJSONResponse(w, r, http.StatusCreated, restaurant)
}

func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("RestaurantHandler").Start(r.Context(), "CreateNote", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/restaurant-notes"),
	))
	defer span.End()

	var req types.CreateRestaurantNoteParams
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Text == "" || req.RestaurantID == uuid.Nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "text and restaurant_id are required")
		return
	}

	note, err := h.service.CreateNote(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to create restaurant note", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create restaurant note")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create restaurant note")
		return
	}
	span.SetStatus(codes.Ok, "Restaurant note created")
	api.WriteJSONResponse(w, r, http.StatusCreated, note)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	h.deleteByParam(w, r, "categoryID", "Restaurant category", h.service.DeleteCategory)
}

func (h *Handler) DeleteRestaurant(w http.ResponseWriter, r *http.Request) {
	h.deleteByParam(w, r, "restaurantID", "Restaurant", h.service.DeleteRestaurant)
}

func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	h.deleteByParam(w, r, "noteID", "Restaurant note", h.service.DeleteNote)
}

func (h *Handler) deleteByParam(w http.ResponseWriter, r *http.Request, param, label string, op func(ctx context.Context, id uuid.UUID) error) {
	ctx, span := otel.Tracer("RestaurantHandler").Start(r.Context(), "Delete", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid ID format")
		return
	}

	if err := op(ctx, id); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, label+" not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to delete", slog.String("entity", label), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Delete failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Operation failed")
		return
	}
	span.SetStatus(codes.Ok, "Deleted")
	api.WriteJSONResponse(w, r, http.StatusOK, api.Response{Success: true})
}
