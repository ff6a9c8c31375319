package articles

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

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

// List serves either the admin listing (all articles) or, when a
// location query is given, the published guides for that location.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ArticleHandler").Start(r.Context(), "List", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/articles"),
	))
	defer span.End()

	if location := r.URL.Query().Get("location"); location != "" {
		articles, err := h.service.GetPublishedByLocation(ctx, location)
		if err != nil {
			h.logger.ErrorContext(ctx, "Failed to list articles by location", slog.Any("error", err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to list articles by location")
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve articles")
			return
		}
		span.SetStatus(codes.Ok, "Articles listed by location")
		api.WriteJSONResponse(w, r, http.StatusOK, articles)
		return
	}

	// Deleted rows are an admin-only view.
	includeDeleted := false
	if _, ok := auth.ClaimsFromContext(ctx); ok {
		includeDeleted = r.URL.Query().Get("include_deleted") == "true"
	}

	articles, err := h.service.GetAll(ctx, includeDeleted)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list articles", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list articles")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve articles")
		return
	}
	span.SetStatus(codes.Ok, "Articles listed")
	api.WriteJSONResponse(w, r, http.StatusOK, articles)
}

func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ArticleHandler").Start(r.Context(), "Latest", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/articles/latest"),
	))
	defer span.End()

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = v
	}

	teasers, err := h.service.GetLatest(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list latest articles", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list latest articles")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve articles")
		return
	}
	span.SetStatus(codes.Ok, "Latest articles listed")
	api.WriteJSONResponse(w, r, http.StatusOK, teasers)
}

func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ArticleHandler").Start(r.Context(), "GetBySlug", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/articles/{slug}"),
	))
	defer span.End()

	slug := chi.URLParam(r, "slug")

	article, err := h.service.GetBySlug(ctx, slug)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to get article", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get article")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve article")
		return
	}
	if article == nil {
		api.ErrorResponse(w, r, http.StatusNotFound, "Article not found")
		return
	}
	span.SetStatus(codes.Ok, "Article fetched")
	api.WriteJSONResponse(w, r, http.StatusOK, article)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ArticleHandler").Start(r.Context(), "Create", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/articles"),
	))
	defer span.End()

	var req types.CreateArticleParams
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Slug == "" || req.Title == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "slug and title are required")
		return
	}

	article, err := h.service.Create(ctx, req)
	if err != nil {
		if errors.Is(err, api.ErrConflict) {
			api.ErrorResponse(w, r, http.StatusConflict, "Article slug already exists")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to create article", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create article")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create article")
		return
	}
	span.SetStatus(codes.Ok, "Article created")
	api.WriteJSONResponse(w, r, http.StatusCreated, article)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ArticleHandler").Start(r.Context(), "Update", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/articles/{articleID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "articleID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid article ID format")
		return
	}

	var req types.UpdateArticleParams
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	article, err := h.service.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Article not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to update article", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update article")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to update article")
		return
	}
	if article == nil {
		api.ErrorResponse(w, r, http.StatusNotFound, "Article not found")
		return
	}
	span.SetStatus(codes.Ok, "Article updated")
	api.WriteJSONResponse(w, r, http.StatusOK, article)
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
	ctx, span := otel.Tracer("ArticleHandler").Start(r.Context(), name, trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/articles/{articleID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "articleID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid article ID format")
		return
	}

	if err := op(ctx, id); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Article not found")
			return
		}
		h.logger.ErrorContext(ctx, "Article lifecycle operation failed",
			slog.String("op", name), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Article lifecycle operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Operation failed")
		return
	}
	span.SetStatus(codes.Ok, name+" succeeded")
	api.WriteJSONResponse(w, r, http.StatusOK, api.Response{Success: true})
}
