package tags

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnkhotels/go-hotel-curation/internal/types"
)

// ptr wraps a value for mock rows whose columns are scanned into
// pointer destinations; pgxmock requires the row value type to match.
func ptr[T any](v T) *T { return &v }

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *PostgresTagRepo) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewPostgresTagRepo(mock, slog.New(slog.DiscardHandler))
}

var tagColumnNames = []string{"id", "name", "slug", "icon", "is_featured"}

func TestGetBySlug_NullIconFallsBackToDefault(t *testing.T) {
	mock, repo := newMockRepo(t)

	id := uuid.New()
	mock.ExpectQuery(`SELECT .+ FROM tags WHERE slug = \$1 AND deleted_at IS NULL`).
		WithArgs("beachfront").
		WillReturnRows(pgxmock.NewRows(tagColumnNames).
			AddRow(id, "Beachfront", "beachfront", nil, true))

	tag, err := repo.GetBySlug(context.Background(), "beachfront")
	require.NoError(t, err)
	require.NotNil(t, tag)
	assert.Equal(t, types.DefaultTagIcon, tag.Icon)
	assert.True(t, tag.IsFeatured)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBySlug_MissReturnsNil(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM tags WHERE slug = \$1`).
		WithArgs("nope").
		WillReturnRows(pgxmock.NewRows(tagColumnNames))

	tag, err := repo.GetBySlug(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, tag)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListRefs_CarriesIconThrough(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`SELECT name, slug, icon FROM tags`).
		WillReturnRows(pgxmock.NewRows([]string{"name", "slug", "icon"}).
			AddRow("Design", "design", ptr("Palette")).
			AddRow("Beachfront", "beachfront", nil))

	refs, err := repo.ListRefs(context.Background())
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "Palette", refs[0].Icon)
	assert.Equal(t, types.DefaultTagIcon, refs[1].Icon)
	require.NoError(t, mock.ExpectationsWereMet())
}
