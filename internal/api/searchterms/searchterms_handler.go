package searchterms

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
	ctx, span := otel.Tracer("SearchTermHandler").Start(r.Context(), "List", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/search-terms"),
	))
	defer span.End()

	// Deleted rows are an admin-only view.
	includeDeleted := false
	if _, ok := auth.ClaimsFromContext(ctx); ok {
		includeDeleted = r.URL.Query().Get("include_deleted") == "true"
	}

	terms, err := h.service.GetAll(ctx, includeDeleted)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list search terms", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list search terms")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve search terms")
		return
	}
	span.SetStatus(codes.Ok, "Search terms listed")
	api.WriteJSONResponse(w, r, http.StatusOK, terms)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("SearchTermHandler").Start(r.Context(), "Create", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/search-terms"),
	))
	defer span.End()

	var req types.CreateSearchTermParams
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Term == "" || req.Slug == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "term and slug are required")
		return
	}

	term, err := h.service.Create(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to create search term", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create search term")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create search term")
		return
	}
	span.SetStatus(codes.Ok, "Search term created")
	api.WriteJSONResponse(w, r, http.StatusCreated, term)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("SearchTermHandler").Start(r.Context(), "Update", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/search-terms/{termID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "termID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid search term ID format")
		return
	}

	var req types.UpdateSearchTermParams
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	term, err := h.service.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Search term not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to update search term", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update search term")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to update search term")
		return
	}
	if term == nil {
		api.ErrorResponse(w, r, http.StatusNotFound, "Search term not found")
		return
	}
	span.SetStatus(codes.Ok, "Search term updated")
	api.WriteJSONResponse(w, r, http.StatusOK, term)
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
	ctx, span := otel.Tracer("SearchTermHandler").Start(r.Context(), name, trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/search-terms/{termID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "termID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid search term ID format")
		return
	}

	if err := op(ctx, id); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Search term not found")
			return
		}
		h.logger.ErrorContext(ctx, "Search term lifecycle operation failed",
			slog.String("op", name), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Search term lifecycle operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Operation failed")
		return
	}
	span.SetStatus(codes.Ok, name+" succeeded")
	api.WriteJSONResponse(w, r, http.StatusOK, api.Response{Success: true})
}
