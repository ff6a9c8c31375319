package articles

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnkhotels/go-hotel-curation/internal/api/auth"
	"github.com/gnkhotels/go-hotel-curation/internal/types"
)

// listStubService records the includeDeleted flag List passes down.
type listStubService struct {
	Service
	gotIncludeDeleted bool
}

func (s *listStubService) GetAll(_ context.Context, includeDeleted bool) ([]types.Article, error) {
	s.gotIncludeDeleted = includeDeleted
	return []types.Article{}, nil
}

func TestList_IncludeDeletedIsAdminOnly(t *testing.T) {
	svc := &listStubService{}
	h := NewHandler(svc, slog.New(slog.DiscardHandler))

	req := httptest.NewRequest("GET", "/api/v1/articles?include_deleted=true", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.False(t, svc.gotIncludeDeleted, "anonymous caller must not see deleted rows")

	req = httptest.NewRequest("GET", "/api/v1/articles?include_deleted=true", nil)
	req = req.WithContext(context.WithValue(req.Context(), auth.ClaimsContextKey, &types.Claims{UserID: "admin"}))
	rec = httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.True(t, svc.gotIncludeDeleted)
}
