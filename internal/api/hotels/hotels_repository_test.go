package hotels

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnkhotels/go-hotel-curation/internal/api"
	"github.com/gnkhotels/go-hotel-curation/internal/types"
)

// ptr wraps a value for mock rows whose columns are scanned into
// pointer destinations; pgxmock requires the row value type to match.
func ptr[T any](v T) *T { return &v }

var hotelColumnNames = []string{
	"id", "name", "location", "rating", "price", "about", "tags", "amenities",
	"image_url", "gallery_images", "about_facility", "rules", "latitude", "longitude",
	"video_url", "video_thumbnail_url", "website_url", "instagram_url",
	"google_maps_url", "how_to_get_there", "created_at",
}

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *PostgresHotelRepo) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewPostgresHotelRepo(mock, slog.New(slog.DiscardHandler))
}

func TestGetByID_NullColumnsMapToEmptyValues(t *testing.T) {
	mock, repo := newMockRepo(t)

	id := uuid.New()
	created := time.Now()
	rows := pgxmock.NewRows(hotelColumnNames).AddRow(
		id, "Finesse Resort", "Bodrum", nil, 450, nil, nil, nil,
		nil, nil, nil, nil, nil, nil,
		nil, nil, nil, nil, nil, nil, created,
	)
	mock.ExpectQuery(`SELECT .+ FROM hotels WHERE id = \$1 AND deleted_at IS NULL`).
		WithArgs(id).
		WillReturnRows(rows)

	h, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, h)

	assert.Equal(t, "Finesse Resort", h.Name)
	assert.Zero(t, h.Score)
	assert.Equal(t, "", h.About)
	assert.Equal(t, []string{}, h.Tags)
	assert.Equal(t, []string{}, h.Amenities)
	assert.Equal(t, []string{}, h.GalleryImages)
	assert.Nil(t, h.Coordinates)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_MissingRowReturnsNil(t *testing.T) {
	mock, repo := newMockRepo(t)

	id := uuid.New()
	mock.ExpectQuery(`SELECT .+ FROM hotels WHERE id = \$1 AND deleted_at IS NULL`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(hotelColumnNames))

	h, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, h)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_CoordinatesOnlyAsFullPair(t *testing.T) {
	mock, repo := newMockRepo(t)

	id := uuid.New()
	lat, lng := 36.8, 28.2
	rows := pgxmock.NewRows(hotelColumnNames).AddRow(
		id, "Cliff House", "Marmaris", ptr(9.2), 800, ptr("quiet"), []string{"design"}, []string{"pool"},
		ptr("https://img"), []string{"a", "b"}, ptr("spa"), ptr("no pets"), &lat, &lng,
		nil, nil, nil, nil, nil, nil, time.Now(),
	)
	mock.ExpectQuery(`SELECT .+ FROM hotels WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(rows)

	h, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, h.Coordinates)
	assert.Equal(t, types.Coordinates{Lat: 36.8, Lng: 28.2}, *h.Coordinates)
	assert.Equal(t, []string{"design"}, h.Tags)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_RoundTripsEveryField(t *testing.T) {
	mock, repo := newMockRepo(t)

	id := uuid.New()
	created := time.Now()
	lat, lng := 36.8, 28.2
	params := types.CreateHotelParams{
		Name:              "Cliff House",
		Location:          "Marmaris",
		Score:             9.2,
		Price:             800,
		About:             "quiet clifftop stay",
		Tags:              []string{"design", "adults-only"},
		Amenities:         []string{"pool", "spa"},
		CoverImageURL:     "https://img/cover.jpg",
		GalleryImages:     []string{"https://img/1.jpg", "https://img/2.jpg"},
		AboutFacility:     "spa and hammam",
		Rules:             "no pets",
		Coordinates:       &types.Coordinates{Lat: lat, Lng: lng},
		VideoURL:          "https://video/tour.mp4",
		VideoThumbnailURL: "https://video/tour.jpg",
		WebsiteURL:        "https://cliffhouse.example",
		InstagramURL:      "https://instagram.com/cliffhouse",
		GoogleMapsURL:     "https://maps.example/cliffhouse",
		HowToGetThere:     "ferry, then a short taxi ride",
	}

	rows := pgxmock.NewRows(hotelColumnNames).AddRow(
		id, params.Name, params.Location, ptr(params.Score), params.Price, ptr(params.About),
		params.Tags, params.Amenities, ptr(params.CoverImageURL), params.GalleryImages,
		ptr(params.AboutFacility), ptr(params.Rules), &lat, &lng,
		ptr(params.VideoURL), ptr(params.VideoThumbnailURL), ptr(params.WebsiteURL),
		ptr(params.InstagramURL), ptr(params.GoogleMapsURL), ptr(params.HowToGetThere), created,
	)
	mock.ExpectQuery(`INSERT INTO hotels`).
		WithArgs(
			params.Name, params.Location, params.About, params.Score, params.Price,
			params.About, params.Tags, params.Amenities, params.CoverImageURL,
			params.GalleryImages, params.AboutFacility, params.Rules, &lat, &lng,
			params.VideoURL, params.VideoThumbnailURL, params.WebsiteURL,
			params.InstagramURL, params.GoogleMapsURL, params.HowToGetThere,
		).
		WillReturnRows(rows)

	h, err := repo.Create(context.Background(), params)
	require.NoError(t, err)

	want := &types.Hotel{
		ID:                id,
		Name:              params.Name,
		Location:          params.Location,
		Score:             params.Score,
		Price:             params.Price,
		About:             params.About,
		Tags:              params.Tags,
		Amenities:         params.Amenities,
		CoverImageURL:     params.CoverImageURL,
		GalleryImages:     params.GalleryImages,
		AboutFacility:     params.AboutFacility,
		Rules:             params.Rules,
		Coordinates:       &types.Coordinates{Lat: lat, Lng: lng},
		VideoURL:          params.VideoURL,
		VideoThumbnailURL: params.VideoThumbnailURL,
		WebsiteURL:        params.WebsiteURL,
		InstagramURL:      params.InstagramURL,
		GoogleMapsURL:     params.GoogleMapsURL,
		HowToGetThere:     params.HowToGetThere,
		CreatedAt:         created,
	}
	assert.Equal(t, want, h)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UnsetOptionalsPersistEmptyValues(t *testing.T) {
	mock, repo := newMockRepo(t)

	id := uuid.New()
	params := types.CreateHotelParams{Name: "Finesse Resort", Location: "Bodrum", Price: 450}

	rows := pgxmock.NewRows(hotelColumnNames).AddRow(
		id, params.Name, params.Location, ptr(0.0), params.Price, ptr(""),
		[]string{}, []string{}, ptr(""), []string{}, ptr(""), ptr(""), nil, nil,
		ptr(""), ptr(""), ptr(""), ptr(""), ptr(""), ptr(""), time.Now(),
	)
	mock.ExpectQuery(`INSERT INTO hotels`).
		WithArgs(
			params.Name, params.Location, "", 0.0, params.Price,
			"", []string{}, []string{}, "", []string{}, "", "",
			(*float64)(nil), (*float64)(nil), "", "", "", "", "", "",
		).
		WillReturnRows(rows)

	h, err := repo.Create(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, []string{}, h.Tags)
	assert.Equal(t, []string{}, h.Amenities)
	assert.Equal(t, []string{}, h.GalleryImages)
	assert.Equal(t, "", h.About)
	assert.Nil(t, h.Coordinates)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_SparsePayloadTouchesOnlyGivenFields(t *testing.T) {
	mock, repo := newMockRepo(t)

	id := uuid.New()
	name := "Renamed Resort"
	rows := pgxmock.NewRows(hotelColumnNames).AddRow(
		id, name, "Bodrum", nil, 450, nil, nil, nil,
		nil, nil, nil, nil, nil, nil,
		nil, nil, nil, nil, nil, nil, time.Now(),
	)
	mock.ExpectQuery(`UPDATE hotels SET name = \$1, updated_at = now\(\) WHERE id = \$2 RETURNING`).
		WithArgs(name, id).
		WillReturnRows(rows)

	h, err := repo.Update(context.Background(), id, types.UpdateHotelParams{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, h.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_ClearCoordinatesNullsThePair(t *testing.T) {
	mock, repo := newMockRepo(t)

	id := uuid.New()
	rows := pgxmock.NewRows(hotelColumnNames).AddRow(
		id, "Finesse Resort", "Bodrum", nil, 450, nil, nil, nil,
		nil, nil, nil, nil, nil, nil,
		nil, nil, nil, nil, nil, nil, time.Now(),
	)
	mock.ExpectQuery(`UPDATE hotels SET latitude = \$1, longitude = \$2, updated_at = now\(\)`).
		WithArgs(nil, nil, id).
		WillReturnRows(rows)

	h, err := repo.Update(context.Background(), id, types.UpdateHotelParams{ClearCoordinates: true})
	require.NoError(t, err)
	assert.Nil(t, h.Coordinates)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_EmptyParamsFallsBackToRead(t *testing.T) {
	mock, repo := newMockRepo(t)

	id := uuid.New()
	rows := pgxmock.NewRows(hotelColumnNames).AddRow(
		id, "Finesse Resort", "Bodrum", nil, 450, nil, nil, nil,
		nil, nil, nil, nil, nil, nil,
		nil, nil, nil, nil, nil, nil, time.Now(),
	)
	mock.ExpectQuery(`SELECT .+ FROM hotels WHERE id = \$1 AND deleted_at IS NULL`).
		WithArgs(id).
		WillReturnRows(rows)

	h, err := repo.Update(context.Background(), id, types.UpdateHotelParams{})
	require.NoError(t, err)
	assert.Equal(t, "Finesse Resort", h.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_MissingRowIsNotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	id := uuid.New()
	name := "Renamed"
	mock.ExpectQuery(`UPDATE hotels SET name = \$1`).
		WithArgs(name, id).
		WillReturnRows(pgxmock.NewRows(hotelColumnNames))

	_, err := repo.Update(context.Background(), id, types.UpdateHotelParams{Name: &name})
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_SoftDeleteStampsRow(t *testing.T) {
	mock, repo := newMockRepo(t)

	id := uuid.New()
	mock.ExpectExec(`UPDATE hotels SET deleted_at = now\(\) WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.Delete(context.Background(), id))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_MissingRowIsNotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	id := uuid.New()
	mock.ExpectExec(`UPDATE hotels SET deleted_at = now\(\) WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Delete(context.Background(), id)
	assert.True(t, errors.Is(err, api.ErrNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSearch_ComposesOptionalPredicates(t *testing.T) {
	mock, repo := newMockRepo(t)

	term := "beach"
	minPrice := 100
	mock.ExpectQuery(`SELECT .+ FROM hotels WHERE deleted_at IS NULL AND search_vector @@ websearch_to_tsquery\('simple', \$1\) AND tags @> \$2 AND price >= \$3 ORDER BY created_at DESC`).
		WithArgs(term, []string{"beachfront"}, minPrice).
		WillReturnRows(pgxmock.NewRows(hotelColumnNames))

	got, err := repo.Search(context.Background(), types.HotelFilter{
		SearchTerm: &term,
		Tags:       []string{"beachfront"},
		MinPrice:   &minPrice,
	})
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListRefs_ReturnsSlimProjection(t *testing.T) {
	mock, repo := newMockRepo(t)

	id := uuid.New()
	mock.ExpectQuery(`SELECT id, name, location FROM hotels`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "location"}).
			AddRow(id, "Finesse Resort", "Bodrum"))

	refs, err := repo.ListRefs(context.Background())
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, id.String(), refs[0].ID)
	assert.Equal(t, "Finesse Resort", refs[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}
