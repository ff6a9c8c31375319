package media

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateImage(t *testing.T) {
	ext, err := ValidateImage("image/jpeg", 1024)
	require.NoError(t, err)
	assert.Equal(t, "jpg", ext)

	ext, err = ValidateImage("image/webp", MaxImageSize)
	require.NoError(t, err)
	assert.Equal(t, "webp", ext)

	_, err = ValidateImage("image/gif", 1024)
	assert.True(t, errors.Is(err, ErrUnsupportedType))

	_, err = ValidateImage("image/png", MaxImageSize+1)
	assert.True(t, errors.Is(err, ErrTooLarge))
}

func TestValidateVideo(t *testing.T) {
	ext, err := ValidateVideo("video/quicktime", 1024)
	require.NoError(t, err)
	assert.Equal(t, "mov", ext)

	_, err = ValidateVideo("video/ogg", 1024)
	assert.True(t, errors.Is(err, ErrUnsupportedType))

	_, err = ValidateVideo("video/mp4", MaxVideoSize+1)
	assert.True(t, errors.Is(err, ErrTooLarge))
}

func TestObjectName(t *testing.T) {
	name := ObjectName("hotels/covers", "jpg")
	assert.True(t, strings.HasPrefix(name, "hotels/covers/"))
	assert.True(t, strings.HasSuffix(name, ".jpg"))

	// Leading and trailing slashes in the path are normalized away.
	name = ObjectName("/gallery/", "webp")
	assert.True(t, strings.HasPrefix(name, "gallery/"))

	// Two names for the same input must differ.
	assert.NotEqual(t, ObjectName("p", "jpg"), ObjectName("p", "jpg"))
}

func newTestClient(baseURL string) *Client {
	return NewClient(baseURL, "service-key", slog.New(slog.DiscardHandler))
}

func TestClient_UploadReturnsPublicURL(t *testing.T) {
	var gotPath, gotAuth, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	url, err := c.Upload(context.Background(), "hotel-images", "covers/1-000001.jpg", "image/jpeg", strings.NewReader("data"))
	require.NoError(t, err)

	assert.Equal(t, "/storage/v1/object/hotel-images/covers/1-000001.jpg", gotPath)
	assert.Equal(t, "Bearer service-key", gotAuth)
	assert.Equal(t, "image/jpeg", gotType)
	assert.Equal(t, srv.URL+"/storage/v1/object/public/hotel-images/covers/1-000001.jpg", url)
}

func TestClient_UploadSurfacesStorageErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bucket not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Upload(context.Background(), "missing", "x.jpg", "image/jpeg", strings.NewReader("data"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestClient_DeleteParsesObjectFromPublicURL(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	url := srv.URL + "/storage/v1/object/public/hotel-videos/tours/2-000002.mp4"
	require.NoError(t, c.Delete(context.Background(), "hotel-videos", url))

	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/storage/v1/object/hotel-videos/tours/2-000002.mp4", gotPath)
}

func TestClient_DeleteRejectsForeignURLs(t *testing.T) {
	c := newTestClient("https://storage.gnkhotels.com")

	// Different host.
	err := c.Delete(context.Background(), "hotel-images", "https://elsewhere.example/storage/v1/object/public/hotel-images/x.jpg")
	assert.True(t, errors.Is(err, ErrNotManagedURL))

	// Right host, wrong bucket.
	err = c.Delete(context.Background(), "hotel-images", "https://storage.gnkhotels.com/storage/v1/object/public/hotel-videos/x.mp4")
	assert.True(t, errors.Is(err, ErrNotManagedURL))

	// Prefix only, no object path.
	err = c.Delete(context.Background(), "hotel-images", "https://storage.gnkhotels.com/storage/v1/object/public/hotel-images/")
	assert.True(t, errors.Is(err, ErrNotManagedURL))
}
