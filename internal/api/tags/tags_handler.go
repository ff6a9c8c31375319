package tags

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
	ctx, span := otel.Tracer("TagHandler").Start(r.Context(), "List", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/tags"),
	))
	defer span.End()

	// Deleted rows are an admin-only view.
	includeDeleted := false
	if _, ok := auth.ClaimsFromContext(ctx); ok {
		includeDeleted = r.URL.Query().Get("include_deleted") == "true"
	}

	tags, err := h.service.GetAll(ctx, includeDeleted)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list tags", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list tags")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve tags")
		return
	}
	span.SetStatus(codes.Ok, "Tags listed")
	api.WriteJSONResponse(w, r, http.StatusOK, tags)
}

func (h *Handler) Featured(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TagHandler").Start(r.Context(), "Featured", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/tags/featured"),
	))
	defer span.End()

	tags, err := h.service.GetFeatured(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list featured tags", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list featured tags")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve tags")
		return
	}
	span.SetStatus(codes.Ok, "Featured tags listed")
	api.WriteJSONResponse(w, r, http.StatusOK, tags)
}

func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TagHandler").Start(r.Context(), "GetBySlug", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/tags/{slug}"),
	))
	defer span.End()

	slug := chi.URLParam(r, "slug")

	tag, err := h.service.GetBySlug(ctx, slug)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to get tag", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get tag")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve tag")
		return
	}
	if tag == nil {
		api.ErrorResponse(w, r, http.StatusNotFound, "Tag not found")
		return
	}
	span.SetStatus(codes.Ok, "Tag fetched")
	api.WriteJSONResponse(w, r, http.StatusOK, tag)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TagHandler").Start(r.Context(), "Create", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/tags"),
	))
	defer span.End()

	var req types.CreateTagParams
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" || req.Slug == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "name and slug are required")
		return
	}

	tag, err := h.service.Create(ctx, req)
	if err != nil {
		if errors.Is(err, api.ErrConflict) {
			api.ErrorResponse(w, r, http.StatusConflict, "Tag slug already exists")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to create tag", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create tag")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create tag")
		return
	}
	span.SetStatus(codes.Ok, "Tag created")
	api.WriteJSONResponse(w, r, http.StatusCreated, tag)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TagHandler").Start(r.Context(), "Update", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/tags/{tagID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "tagID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid tag ID format")
		return
	}

	var req types.UpdateTagParams
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := h.service.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Tag not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to update tag", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update tag")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to update tag")
		return
	}
	if tag == nil {
		api.ErrorResponse(w, r, http.StatusNotFound, "Tag not found")
		return
	}
	span.SetStatus(codes.Ok, "Tag updated")
	api.WriteJSONResponse(w, r, http.StatusOK, tag)
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
	ctx, span := otel.Tracer("TagHandler").Start(r.Context(), name, trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/tags/{tagID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "tagID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid tag ID format")
		return
	}

	if err := op(ctx, id); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Tag not found")
			return
		}
		h.logger.ErrorContext(ctx, "Tag lifecycle operation failed",
			slog.String("op", name), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Tag lifecycle operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Operation failed")
		return
	}
	span.SetStatus(codes.Ok, name+" succeeded")
	api.WriteJSONResponse(w, r, http.StatusOK, api.Response{Success: true})
}
