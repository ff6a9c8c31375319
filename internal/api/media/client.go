package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

// ErrNotManagedURL marks delete requests for URLs that do not point at
// the configured bucket host.
var ErrNotManagedURL = errors.New("url does not belong to the managed storage")

const publicPathPrefix = "/storage/v1/object/public/"

// Client talks to the S3-compatible object store over its HTTP API.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL, serviceKey string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}
}

// ObjectName builds the storage key for a new upload. The timestamp
// plus random suffix keeps concurrent uploads of the same file from
// colliding.
func ObjectName(path, ext string) string {
	return fmt.Sprintf("%s/%d-%06d.%s", strings.Trim(path, "/"), time.Now().UnixMilli(), rand.Intn(1000000), ext)
}

// PublicURL is the stable, unauthenticated URL of a stored object.
func (c *Client) PublicURL(bucket, object string) string {
	return fmt.Sprintf("%s%s%s/%s", c.baseURL, publicPathPrefix, bucket, object)
}

// Upload streams the object into the bucket and returns its public URL.
func (c *Client) Upload(ctx context.Context, bucket, object, contentType string, body io.Reader) (string, error) {
	l := c.logger.With(slog.String("method", "Upload"), slog.String("bucket", bucket), slog.String("object", object))

	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, bucket, object)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		l.ErrorContext(ctx, "Upload request failed", slog.Any("error", err))
		return "", fmt.Errorf("storage upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		l.ErrorContext(ctx, "Upload rejected", slog.Int("status", resp.StatusCode))
		return "", fmt.Errorf("storage upload failed with status %d: %s", resp.StatusCode, string(payload))
	}

	l.InfoContext(ctx, "Object uploaded")
	return c.PublicURL(bucket, object), nil
}

// Delete removes the object behind a public URL. The URL must point at
// this client's storage host and carry the expected bucket, otherwise
// the call fails without touching anything.
func (c *Client) Delete(ctx context.Context, bucket, publicURL string) error {
	l := c.logger.With(slog.String("method", "Delete"), slog.String("bucket", bucket))

	object, err := c.objectFromPublicURL(bucket, publicURL)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, bucket, object)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		l.ErrorContext(ctx, "Delete request failed", slog.Any("error", err))
		return fmt.Errorf("storage delete failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		l.ErrorContext(ctx, "Delete rejected", slog.Int("status", resp.StatusCode))
		return fmt.Errorf("storage delete failed with status %d", resp.StatusCode)
	}

	l.InfoContext(ctx, "Object deleted", slog.String("object", object))
	return nil
}

func (c *Client) objectFromPublicURL(bucket, publicURL string) (string, error) {
	prefix := c.baseURL + publicPathPrefix + bucket + "/"
	if !strings.HasPrefix(publicURL, prefix) {
		return "", fmt.Errorf("%w: %s", ErrNotManagedURL, publicURL)
	}
	object := strings.TrimPrefix(publicURL, prefix)
	if object == "" {
		return "", fmt.Errorf("%w: empty object path", ErrNotManagedURL)
	}
	return object, nil
}
