package hotels

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/gnkhotels/go-hotel-curation/internal/api"
	"github.com/gnkhotels/go-hotel-curation/internal/api/store"
	"github.com/gnkhotels/go-hotel-curation/internal/types"
)

var _ Repository = (*PostgresHotelRepo)(nil)

// Repository is the contract for hotel persistence.
type Repository interface {
	GetAll(ctx context.Context, includeDeleted bool) ([]types.Hotel, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Hotel, error)
	Create(ctx context.Context, params types.CreateHotelParams) (*types.Hotel, error)
	Update(ctx context.Context, id uuid.UUID, params types.UpdateHotelParams) (*types.Hotel, error)
	Delete(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, filter types.HotelFilter) ([]types.Hotel, error)
	GetByTag(ctx context.Context, tag string) ([]types.Hotel, error)
	GetByPriceRange(ctx context.Context, minPrice, maxPrice int) ([]types.Hotel, error)
	ListRefs(ctx context.Context) ([]types.HotelRef, error)
}

type PostgresHotelRepo struct {
	logger *slog.Logger
	pgpool store.DB
}

func NewPostgresHotelRepo(pgpool store.DB, logger *slog.Logger) *PostgresHotelRepo {
	return &PostgresHotelRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

const hotelColumns = `id, name, location, rating, price, about, tags, amenities,
	image_url, gallery_images, about_facility, rules, latitude, longitude,
	video_url, video_thumbnail_url, website_url, instagram_url,
	google_maps_url, how_to_get_there, created_at`

// scanHotel maps one row to the domain shape: nullable text columns
// become empty strings, nullable arrays become empty slices, and the
// coordinate pair is present only when both columns are non-null.
func scanHotel(row pgx.Row) (*types.Hotel, error) {
	var h types.Hotel
	var about, aboutFacility, rules *string
	var imageURL, videoURL, videoThumbnailURL *string
	var websiteURL, instagramURL, googleMapsURL, howToGetThere *string
	var rating *float64
	var tags, amenities, galleryImages []string
	var lat, lng *float64

	err := row.Scan(
		&h.ID, &h.Name, &h.Location, &rating, &h.Price, &about, &tags, &amenities,
		&imageURL, &galleryImages, &aboutFacility, &rules, &lat, &lng,
		&videoURL, &videoThumbnailURL, &websiteURL, &instagramURL,
		&googleMapsURL, &howToGetThere, &h.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	h.Score = derefFloat(rating)
	h.About = deref(about)
	h.Tags = orEmpty(tags)
	h.Amenities = orEmpty(amenities)
	h.CoverImageURL = deref(imageURL)
	h.GalleryImages = orEmpty(galleryImages)
	h.AboutFacility = deref(aboutFacility)
	h.Rules = deref(rules)
	h.VideoURL = deref(videoURL)
	h.VideoThumbnailURL = deref(videoThumbnailURL)
	h.WebsiteURL = deref(websiteURL)
	h.InstagramURL = deref(instagramURL)
	h.GoogleMapsURL = deref(googleMapsURL)
	h.HowToGetThere = deref(howToGetThere)
	if lat != nil && lng != nil {
		h.Coordinates = &types.Coordinates{Lat: *lat, Lng: *lng}
	}
	return &h, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func collectHotels(rows pgx.Rows) ([]types.Hotel, error) {
	defer rows.Close()
	hotels := []types.Hotel{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, fmt.Errorf("database error scanning hotel: %w", err)
		}
		hotels = append(hotels, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error reading hotels: %w", err)
	}
	return hotels, nil
}

func (r *PostgresHotelRepo) GetAll(ctx context.Context, includeDeleted bool) ([]types.Hotel, error) {
	ctx, span := otel.Tracer("HotelRepo").Start(ctx, "GetAll", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "hotels"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "GetAll"))

	query := `SELECT ` + hotelColumns + ` FROM hotels`
	if !includeDeleted {
		query += ` WHERE deleted_at IS NULL`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pgpool.Query(ctx, query)
	if err != nil {
		l.ErrorContext(ctx, "Failed to query hotels", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error fetching hotels: %w", err)
	}

	hotels, err := collectHotels(rows)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetStatus(codes.Ok, "Hotels fetched")
	return hotels, nil
}

func (r *PostgresHotelRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.Hotel, error) {
	ctx, span := otel.Tracer("HotelRepo").Start(ctx, "GetByID", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "hotels"),
	))
	defer span.End()

	query := `SELECT ` + hotelColumns + ` FROM hotels WHERE id = $1 AND deleted_at IS NULL`
	h, err := scanHotel(r.pgpool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error fetching hotel: %w", err)
	}
	span.SetStatus(codes.Ok, "Hotel fetched")
	return h, nil
}

// Create inserts the hotel with every optional column written out:
// unset fields become empty strings and empty arrays, never NULL, so a
// create/read round trip is exact. Coordinates stay NULL unless a full
// pair was given.
func (r *PostgresHotelRepo) Create(ctx context.Context, params types.CreateHotelParams) (*types.Hotel, error) {
	ctx, span := otel.Tracer("HotelRepo").Start(ctx, "Create", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "hotels"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "Create"), slog.String("name", params.Name))

	var lat, lng *float64
	if params.Coordinates != nil {
		lat = &params.Coordinates.Lat
		lng = &params.Coordinates.Lng
	}

	query := `
        INSERT INTO hotels (
            name, location, description, rating, price, about, tags, amenities,
            image_url, gallery_images, about_facility, rules, latitude, longitude,
            video_url, video_thumbnail_url, website_url, instagram_url,
            google_maps_url, how_to_get_there
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
        RETURNING ` + hotelColumns

	h, err := scanHotel(r.pgpool.QueryRow(ctx, query,
		params.Name, params.Location, params.About, params.Score, params.Price,
		params.About, orEmpty(params.Tags), orEmpty(params.Amenities),
		params.CoverImageURL, orEmpty(params.GalleryImages), params.AboutFacility,
		params.Rules, lat, lng, params.VideoURL, params.VideoThumbnailURL,
		params.WebsiteURL, params.InstagramURL, params.GoogleMapsURL,
		params.HowToGetThere,
	))
	if err != nil {
		l.ErrorContext(ctx, "Failed to insert hotel", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return nil, fmt.Errorf("database error creating hotel: %w", err)
	}

	l.InfoContext(ctx, "Hotel created", slog.String("id", h.ID.String()))
	span.SetStatus(codes.Ok, "Hotel created")
	return h, nil
}

// Update builds a sparse payload from the non-nil fields only, so
// omitted fields are left untouched server-side. Coordinates are
// written or nulled as a pair.
func (r *PostgresHotelRepo) Update(ctx context.Context, id uuid.UUID, params types.UpdateHotelParams) (*types.Hotel, error) {
	ctx, span := otel.Tracer("HotelRepo").Start(ctx, "Update", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "hotels"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "Update"), slog.String("hotelID", id.String()))

	var setClauses []string
	var args []any
	argID := 1

	addSet := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if params.Name != nil {
		addSet("name", *params.Name)
	}
	if params.Location != nil {
		addSet("location", *params.Location)
	}
	if params.Score != nil {
		addSet("rating", *params.Score)
	}
	if params.Price != nil {
		addSet("price", *params.Price)
	}
	if params.About != nil {
		addSet("about", *params.About)
	}
	if params.Tags != nil {
		addSet("tags", *params.Tags)
	}
	if params.Amenities != nil {
		addSet("amenities", *params.Amenities)
	}
	if params.CoverImageURL != nil {
		addSet("image_url", *params.CoverImageURL)
	}
	if params.GalleryImages != nil {
		addSet("gallery_images", *params.GalleryImages)
	}
	if params.AboutFacility != nil {
		addSet("about_facility", *params.AboutFacility)
	}
	if params.Rules != nil {
		addSet("rules", *params.Rules)
	}
	if params.VideoURL != nil {
		addSet("video_url", *params.VideoURL)
	}
	if params.VideoThumbnailURL != nil {
		addSet("video_thumbnail_url", *params.VideoThumbnailURL)
	}
	if params.WebsiteURL != nil {
		addSet("website_url", *params.WebsiteURL)
	}
	if params.InstagramURL != nil {
		addSet("instagram_url", *params.InstagramURL)
	}
	if params.GoogleMapsURL != nil {
		addSet("google_maps_url", *params.GoogleMapsURL)
	}
	if params.HowToGetThere != nil {
		addSet("how_to_get_there", *params.HowToGetThere)
	}
	if params.Coordinates != nil {
		addSet("latitude", params.Coordinates.Lat)
		addSet("longitude", params.Coordinates.Lng)
	} else if params.ClearCoordinates {
		addSet("latitude", nil)
		addSet("longitude", nil)
	}

	if len(setClauses) == 0 {
		return r.GetByID(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = now()")
	query := fmt.Sprintf(
		"UPDATE hotels SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setClauses, ", "), argID, hotelColumns,
	)
	args = append(args, id)

	h, err := scanHotel(r.pgpool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("hotel %s: %w", id, api.ErrNotFound)
		}
		l.ErrorContext(ctx, "Failed to update hotel", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPDATE failed")
		return nil, fmt.Errorf("database error updating hotel: %w", err)
	}

	l.InfoContext(ctx, "Hotel updated")
	span.SetStatus(codes.Ok, "Hotel updated")
	return h, nil
}

func (r *PostgresHotelRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return store.SoftDelete(ctx, r.pgpool, "hotels", id)
}

func (r *PostgresHotelRepo) HardDelete(ctx context.Context, id uuid.UUID) error {
	return store.HardDelete(ctx, r.pgpool, "hotels", id)
}

func (r *PostgresHotelRepo) Restore(ctx context.Context, id uuid.UUID) error {
	return store.Restore(ctx, r.pgpool, "hotels", id)
}

// Search composes the optional filter predicates: full-text term over
// the precomputed search vector, tag containment, inclusive price
// bounds, minimum score. Absent filters impose no constraint.
func (r *PostgresHotelRepo) Search(ctx context.Context, filter types.HotelFilter) ([]types.Hotel, error) {
	ctx, span := otel.Tracer("HotelRepo").Start(ctx, "Search", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "hotels"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "Search"))

	conditions := []string{"deleted_at IS NULL"}
	var args []any
	argID := 1

	addCond := func(condition string, value any) {
		conditions = append(conditions, fmt.Sprintf(condition, argID))
		args = append(args, value)
		argID++
	}

	if filter.SearchTerm != nil && *filter.SearchTerm != "" {
		addCond("search_vector @@ websearch_to_tsquery('simple', $%d)", *filter.SearchTerm)
	}
	if len(filter.Tags) > 0 {
		addCond("tags @> $%d", filter.Tags)
	}
	if filter.MinPrice != nil {
		addCond("price >= $%d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		addCond("price <= $%d", *filter.MaxPrice)
	}
	if filter.MinScore != nil {
		addCond("rating >= $%d", *filter.MinScore)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM hotels WHERE %s ORDER BY created_at DESC",
		hotelColumns, strings.Join(conditions, " AND "),
	)

	rows, err := r.pgpool.Query(ctx, query, args...)
	if err != nil {
		l.ErrorContext(ctx, "Failed to search hotels", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error searching hotels: %w", err)
	}

	hotels, err := collectHotels(rows)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	l.DebugContext(ctx, "Hotel search completed", slog.Int("count", len(hotels)))
	span.SetStatus(codes.Ok, "Hotels searched")
	return hotels, nil
}

func (r *PostgresHotelRepo) GetByTag(ctx context.Context, tag string) ([]types.Hotel, error) {
	query := `SELECT ` + hotelColumns + ` FROM hotels
        WHERE tags @> $1 AND deleted_at IS NULL
        ORDER BY created_at DESC`

	rows, err := r.pgpool.Query(ctx, query, []string{tag})
	if err != nil {
		return nil, fmt.Errorf("database error fetching hotels by tag: %w", err)
	}
	return collectHotels(rows)
}

func (r *PostgresHotelRepo) GetByPriceRange(ctx context.Context, minPrice, maxPrice int) ([]types.Hotel, error) {
	query := `SELECT ` + hotelColumns + ` FROM hotels
        WHERE price >= $1 AND price <= $2 AND deleted_at IS NULL
        ORDER BY price ASC`

	rows, err := r.pgpool.Query(ctx, query, minPrice, maxPrice)
	if err != nil {
		return nil, fmt.Errorf("database error fetching hotels by price range: %w", err)
	}
	return collectHotels(rows)
}

// ListRefs returns the slim projection the suggestion engine keys on.
func (r *PostgresHotelRepo) ListRefs(ctx context.Context) ([]types.HotelRef, error) {
	query := `SELECT id, name, location FROM hotels
        WHERE deleted_at IS NULL
        ORDER BY name ASC`

	rows, err := r.pgpool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("database error fetching hotel refs: %w", err)
	}
	defer rows.Close()

	refs := []types.HotelRef{}
	for rows.Next() {
		var id uuid.UUID
		var ref types.HotelRef
		if err := rows.Scan(&id, &ref.Name, &ref.Location); err != nil {
			return nil, fmt.Errorf("database error scanning hotel ref: %w", err)
		}
		ref.ID = id.String()
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error reading hotel refs: %w", err)
	}
	return refs, nil
}
