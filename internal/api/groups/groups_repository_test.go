package groups

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnkhotels/go-hotel-curation/internal/api"
)

// ptr wraps a value for mock rows whose columns are scanned into
// pointer destinations; pgxmock requires the row value type to match.
func ptr[T any](v T) *T { return &v }

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *PostgresGroupRepo) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewPostgresGroupRepo(mock, slog.New(slog.DiscardHandler))
}

var publishedColumns = []string{
	"g_id", "g_title",
	"h_id", "h_name", "h_location", "h_price", "h_rating", "h_image_url",
}

func TestGetPublishedWithHotels_PreservesStoredOrder(t *testing.T) {
	mock, repo := newMockRepo(t)

	groupID := uuid.New()
	first, second := uuid.New(), uuid.New()
	rows := pgxmock.NewRows(publishedColumns).
		AddRow(groupID, "Design Hotels", &first, ptr("Cliff House"), ptr("Marmaris"), ptr(800), ptr(9.2), ptr("https://img/1")).
		AddRow(groupID, "Design Hotels", &second, ptr("Finesse Resort"), ptr("Bodrum"), ptr(450), ptr(8.7), ptr("https://img/2"))
	mock.ExpectQuery(`FROM groups g`).WillReturnRows(rows)

	got, err := repo.GetPublishedWithHotels(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Hotels, 2)
	assert.Equal(t, "Cliff House", got[0].Hotels[0].Name)
	assert.Equal(t, "Finesse Resort", got[0].Hotels[1].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPublishedWithHotels_DropsDanglingMemberships(t *testing.T) {
	mock, repo := newMockRepo(t)

	groupID := uuid.New()
	hotelID := uuid.New()
	rows := pgxmock.NewRows(publishedColumns).
		// Membership whose hotel was deleted joins as NULLs.
		AddRow(groupID, "Coastal Picks", nil, nil, nil, nil, nil, nil).
		AddRow(groupID, "Coastal Picks", &hotelID, ptr("Aurora"), ptr("Side, Antalya"), ptr(300), ptr(8.1), nil)
	mock.ExpectQuery(`FROM groups g`).WillReturnRows(rows)

	got, err := repo.GetPublishedWithHotels(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Hotels, 1)
	assert.Equal(t, "Aurora", got[0].Hotels[0].Name)
	assert.Equal(t, "", got[0].Hotels[0].CoverImageURL)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPublishedWithHotels_EmptyGroupKeepsEmptyHotelList(t *testing.T) {
	mock, repo := newMockRepo(t)

	groupID := uuid.New()
	rows := pgxmock.NewRows(publishedColumns).
		AddRow(groupID, "Coming Soon", nil, nil, nil, nil, nil, nil)
	mock.ExpectQuery(`FROM groups g`).WillReturnRows(rows)

	got, err := repo.GetPublishedWithHotels(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Coming Soon", got[0].Title)
	assert.Empty(t, got[0].Hotels)
	assert.NotNil(t, got[0].Hotels)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetHotels_ReplacesMembershipInOrder(t *testing.T) {
	mock, repo := newMockRepo(t)

	groupID := uuid.New()
	a, b := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs(groupID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec(`DELETE FROM group_hotels WHERE group_id = \$1`).
		WithArgs(groupID).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec(`INSERT INTO group_hotels`).
		WithArgs(groupID, a, 0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO group_hotels`).
		WithArgs(groupID, b, 1).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()
	mock.ExpectRollback()

	err := repo.SetHotels(context.Background(), groupID, []uuid.UUID{a, b})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetHotels_UnknownGroupIsNotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	groupID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs(groupID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	err := repo.SetHotels(context.Background(), groupID, nil)
	assert.True(t, errors.Is(err, api.ErrNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}
