package groups

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

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("GroupHandler").Start(r.Context(), "List", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/groups"),
	))
	defer span.End()

	includeDeleted := r.URL.Query().Get("include_deleted") == "true"

	groups, err := h.service.GetAll(ctx, includeDeleted)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list groups", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list groups")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve groups")
		return
	}
	span.SetStatus(codes.Ok, "Groups listed")
	api.WriteJSONResponse(w, r, http.StatusOK, groups)
}

// Published serves the homepage sections: published groups with member
// hotel cards in stored order.
func (h *Handler) Published(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("GroupHandler").Start(r.Context(), "Published", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/groups/published"),
	))
	defer span.End()

	groups, err := h.service.GetPublishedWithHotels(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to fetch published groups", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to fetch published groups")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve groups")
		return
	}
	span.SetStatus(codes.Ok, "Published groups fetched")
	api.WriteJSONResponse(w, r, http.StatusOK, groups)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("GroupHandler").Start(r.Context(), "Get", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/groups/{groupID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "groupID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid group ID format")
		return
	}

	group, err := h.service.GetByID(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to get group", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get group")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve group")
		return
	}
	if group == nil {
		api.ErrorResponse(w, r, http.StatusNotFound, "Group not found")
		return
	}
	span.SetStatus(codes.Ok, "Group fetched")
	api.WriteJSONResponse(w, r, http.StatusOK, group)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("GroupHandler").Start(r.Context(), "Create", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/groups"),
	))
	defer span.End()

	var req types.CreateGroupParams
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Title == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "title is required")
		return
	}

	group, err := h.service.Create(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to create group", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create group")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create group")
		return
	}
	span.SetStatus(codes.Ok, "Group created")
	api.WriteJSONResponse(w, r, http.StatusCreated, group)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("GroupHandler").Start(r.Context(), "Update", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/groups/{groupID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "groupID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid group ID format")
		return
	}

	var req types.UpdateGroupParams
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	group, err := h.service.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Group not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to update group", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update group")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to update group")
		return
	}
	span.SetStatus(codes.Ok, "Group updated")
	api.WriteJSONResponse(w, r, http.StatusOK, group)
}

// SetHotels replaces the group's ordered hotel membership in one shot.
func (h *Handler) SetHotels(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("GroupHandler").Start(r.Context(), "SetHotels", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/groups/{groupID}/hotels"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "groupID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid group ID format")
		return
	}

	var req struct {
		HotelIDs []uuid.UUID `json:"hotel_ids"`
	}
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.SetHotels(ctx, id, req.HotelIDs); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Group not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to set group hotels", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to set group hotels")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to set group hotels")
		return
	}
	span.SetStatus(codes.Ok, "Group hotels set")
	api.WriteJSONResponse(w, r, http.StatusOK, api.Response{Success: true})
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
	ctx, span := otel.Tracer("GroupHandler").Start(r.Context(), name, trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/groups/{groupID}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "groupID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid group ID format")
		return
	}

	if err := op(ctx, id); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Group not found")
			return
		}
		h.logger.ErrorContext(ctx, "Group lifecycle operation failed",
			slog.String("op", name), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Group lifecycle operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Operation failed")
		return
	}
	span.SetStatus(codes.Ok, name+" succeeded")
	api.WriteJSONResponse(w, r, http.StatusOK, api.Response{Success: true})
}
