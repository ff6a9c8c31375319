package media

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/gnkhotels/go-hotel-curation/app/observability/metrics"
	"github.com/gnkhotels/go-hotel-curation/internal/api"
)

type Handler struct {
	client      *Client
	imageBucket string
	videoBucket string
	logger      *slog.Logger
}

func NewHandler(client *Client, imageBucket, videoBucket string, logger *slog.Logger) *Handler {
	return &Handler{
		client:      client,
		imageBucket: imageBucket,
		videoBucket: videoBucket,
		logger:      logger,
	}
}

// UploadImage accepts a multipart "file" part, validates it as an image
// and stores it under the optional "path" prefix.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, "UploadImage", h.imageBucket, MaxImageSize, ValidateImage)
}

// UploadVideo accepts a multipart "file" part, validates it as a video
// and stores it under the optional "path" prefix.
func (h *Handler) UploadVideo(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, "UploadVideo", h.videoBucket, MaxVideoSize, ValidateVideo)
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request, name, bucket string, maxSize int64, validate func(string, int64) (string, error)) {
	ctx, span := otel.Tracer("MediaHandler").Start(r.Context(), name, trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/media"),
	))
	defer span.End()

	r.Body = http.MaxBytesReader(w, r.Body, maxSize+1024*1024)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "file part is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	ext, err := validate(contentType, header.Size)
	if err != nil {
		if errors.Is(err, ErrUnsupportedType) || errors.Is(err, ErrTooLarge) {
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to validate upload")
		return
	}

	path := r.FormValue("path")
	if path == "" {
		path = "uploads"
	}
	object := ObjectName(path, ext)

	publicURL, err := h.client.Upload(ctx, bucket, object, contentType, file)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to upload media", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upload media")
		api.ErrorResponse(w, r, http.StatusBadGateway, "Failed to store file")
		return
	}

	metrics.Get().UploadBytesTotal.Add(ctx, header.Size)
	span.SetStatus(codes.Ok, "Media uploaded")
	api.WriteJSONResponse(w, r, http.StatusCreated, map[string]string{"url": publicURL})
}

// DeleteImage removes a stored image by its public URL.
func (h *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, "DeleteImage", h.imageBucket)
}

// DeleteVideo removes a stored video by its public URL.
func (h *Handler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, "DeleteVideo", h.videoBucket)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, name, bucket string) {
	ctx, span := otel.Tracer("MediaHandler").Start(r.Context(), name, trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/media"),
	))
	defer span.End()

	var req struct {
		URL string `json:"url"`
	}
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.URL == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "url is required")
		return
	}

	if err := h.client.Delete(ctx, bucket, req.URL); err != nil {
		if errors.Is(err, ErrNotManagedURL) {
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.ErrorContext(ctx, "Failed to delete media", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete media")
		api.ErrorResponse(w, r, http.StatusBadGateway, "Failed to delete file")
		return
	}
	span.SetStatus(codes.Ok, "Media deleted")
	api.WriteJSONResponse(w, r, http.StatusOK, api.Response{Success: true})
}
