package media

import (
	"errors"
	"fmt"
)

const (
	// MaxImageSize is the largest accepted image upload, 5 MB.
	MaxImageSize = 5 * 1024 * 1024
	// MaxVideoSize is the largest accepted video upload, 100 MB.
	MaxVideoSize = 100 * 1024 * 1024
)

var (
	ErrUnsupportedType = errors.New("unsupported media type")
	ErrTooLarge        = errors.New("file exceeds the size limit")
)

var imageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

var videoTypes = map[string]string{
	"video/mp4":       "mp4",
	"video/webm":      "webm",
	"video/quicktime": "mov",
	"video/x-msvideo": "avi",
}

// ValidateImage checks an image upload's declared content type and size
// and returns the extension to store it under.
func ValidateImage(contentType string, size int64) (string, error) {
	ext, ok := imageTypes[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s (want JPEG, PNG or WebP)", ErrUnsupportedType, contentType)
	}
	if size > MaxImageSize {
		return "", fmt.Errorf("%w: %d bytes (limit 5MB)", ErrTooLarge, size)
	}
	return ext, nil
}

// ValidateVideo checks a video upload's declared content type and size
// and returns the extension to store it under.
func ValidateVideo(contentType string, size int64) (string, error) {
	ext, ok := videoTypes[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s (want MP4, WebM, QuickTime or AVI)", ErrUnsupportedType, contentType)
	}
	if size > MaxVideoSize {
		return "", fmt.Errorf("%w: %d bytes (limit 100MB)", ErrTooLarge, size)
	}
	return ext, nil
}
