package pricetags

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
	ctx, span := otel.Tracer("PriceTagHandler").Start(r.Context(), "List", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/price-tags"),
	))
	defer span.End()

	// Deleted rows are an admin-only view.
	includeDeleted := false
	if _, ok := auth.ClaimsFromContext(ctx); ok {
		includeDeleted = r.URL.Query().Get("include_deleted") == "true"
	}

	priceTags, err := h.service.GetAll(ctx, includeDeleted)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list price tags", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list price tags")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve price tags")
		return
	}
	span.SetStatus(codes.Ok, "Price tags listed")
	api.WriteJSONResponse(w, r, http.StatusOK, priceTags)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PriceTagHandler").Start(r.Context(), "Get", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/price-tags/{priceTagID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "priceTagID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid price tag ID format")
		return
	}

	priceTag, err := h.service.GetByID(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to get price tag", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get price tag")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve price tag")
		return
	}
	if priceTag == nil {
		api.ErrorResponse(w, r, http.StatusNotFound, "Price tag not found")
		return
	}
	span.SetStatus(codes.Ok, "Price tag fetched")
	api.WriteJSONResponse(w, r, http.StatusOK, priceTag)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PriceTagHandler").Start(r.Context(), "Create", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/price-tags"),
	))
	defer span.End()

	var req types.CreatePriceTagParams
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Label == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "label is required")
		return
	}

	priceTag, err := h.service.Create(ctx, req)
	if err != nil {
		if errors.Is(err, ErrInvalidBounds) {
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.ErrorContext(ctx, "Failed to create price tag", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create price tag")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create price tag")
		return
	}
	span.SetStatus(codes.Ok, "Price tag created")
	api.WriteJSONResponse(w, r, http.StatusCreated, priceTag)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PriceTagHandler").Start(r.Context(), "Update", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/price-tags/{priceTagID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "priceTagID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid price tag ID format")
		return
	}

	var req types.UpdatePriceTagParams
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	priceTag, err := h.service.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Price tag not found")
			return
		}
		if errors.Is(err, ErrInvalidBounds) {
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.ErrorContext(ctx, "Failed to update price tag", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update price tag")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to update price tag")
		return
	}
	span.SetStatus(codes.Ok, "Price tag updated")
	api.WriteJSONResponse(w, r, http.StatusOK, priceTag)
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

func (h *Handler) lifecycle(w http.ResponseWriter, r *http.Request, name string, op func(ctx context.Context, id uuid.UUID) error) {
	ctx, span := otel.Tracer("PriceTagHandler").Start(r.Context(), name, trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/price-tags/{priceTagID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "priceTagID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid price tag ID format")
		return
	}

	if err := op(ctx, id); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Price tag not found")
			return
		}
		h.logger.ErrorContext(ctx, "Price tag lifecycle operation failed",
			slog.String("op", name), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Price tag lifecycle operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Operation failed")
		return
	}
	span.SetStatus(codes.Ok, name+" succeeded")
	api.WriteJSONResponse(w, r, http.StatusOK, api.Response{Success: true})
}
