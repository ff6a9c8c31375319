package restaurants

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/gnkhotels/go-hotel-curation/internal/api/store"
	"github.com/gnkhotels/go-hotel-curation/internal/types"
)

var _ Repository = (*PostgresRestaurantRepo)(nil)

type Repository interface {
	GetByLocation(ctx context.Context, location string) ([]types.RestaurantCategory, error)
	GetCategories(ctx context.Context) ([]types.RestaurantCategory, error)
	CreateCategory(ctx context.Context, params types.CreateRestaurantCategoryParams) (*types.RestaurantCategory, error)
	CreateRestaurant(ctx context.Context, params types.CreateRestaurantParams) (*types.Restaurant, error)
	CreateNote(ctx context.Context, params types.CreateRestaurantNoteParams) (*types.RestaurantNote, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	DeleteRestaurant(ctx context.Context, id uuid.UUID) error
	DeleteNote(ctx context.Context, id uuid.UUID) error
}

type PostgresRestaurantRepo struct {
	logger *slog.Logger
	pgpool store.DB
}

func NewPostgresRestaurantRepo(pgpool store.DB, logger *slog.Logger) *PostgresRestaurantRepo {
	return &PostgresRestaurantRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

// GetByLocation assembles the nearby-restaurants section for a hotel
// detail page: categories ordered by display_order, each carrying its
// restaurants at the given location in display order, each with its
// notes in display order. Categories with no restaurant at the location
// are dropped.
func (r *PostgresRestaurantRepo) GetByLocation(ctx context.Context, location string) ([]types.RestaurantCategory, error) {
	ctx, span := otel.Tracer("RestaurantRepo").Start(ctx, "GetByLocation", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "restaurants"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "GetByLocation"), slog.String("location", location))

	query := `
        SELECT c.id, c.title, c.display_order,
               r.id, r.category_id, r.location, r.name, r.image_url, r.description,
               r.google_rating, r.review_count, r.order_suggestion, r.display_order,
               n.id, n.restaurant_id, n.emoji, n.text, n.display_order
        FROM restaurant_categories c
        JOIN restaurants r ON r.category_id = c.id AND r.deleted_at IS NULL
        LEFT JOIN restaurant_notes n ON n.restaurant_id = r.id
        WHERE lower(r.location) = lower($1) AND c.deleted_at IS NULL
        ORDER BY c.display_order ASC, r.display_order ASC, n.display_order ASC`

	rows, err := r.pgpool.Query(ctx, query, location)
	if err != nil {
		l.ErrorContext(ctx, "Failed to query restaurants", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error fetching restaurants: %w", err)
	}
	defer rows.Close()

	categories := []types.RestaurantCategory{}
	catIndex := map[uuid.UUID]int{}
	restIndex := map[uuid.UUID][2]int{}

	for rows.Next() {
		var c types.RestaurantCategory
		var rest types.Restaurant
		var loc, imageURL, description, reviewCount, orderSuggestion *string
		var googleRating *float64
		var noteID, noteRestaurantID *uuid.UUID
		var noteEmoji, noteText *string
		var noteOrder *int

		err := rows.Scan(
			&c.ID, &c.Title, &c.DisplayOrder,
			&rest.ID, &rest.CategoryID, &loc, &rest.Name, &imageURL, &description,
			&googleRating, &reviewCount, &orderSuggestion, &rest.DisplayOrder,
			&noteID, &noteRestaurantID, &noteEmoji, &noteText, &noteOrder,
		)
		if err != nil {
			return nil, fmt.Errorf("database error scanning restaurant row: %w", err)
		}

		ci, ok := catIndex[c.ID]
		if !ok {
			ci = len(categories)
			catIndex[c.ID] = ci
			c.Restaurants = []types.Restaurant{}
			categories = append(categories, c)
		}

		pos, ok := restIndex[rest.ID]
		if !ok {
			if loc != nil {
				rest.Location = *loc
			}
			if imageURL != nil {
				rest.ImageURL = *imageURL
			}
			if description != nil {
				rest.Description = *description
			}
			if googleRating != nil {
				rest.GoogleRating = *googleRating
			}
			if reviewCount != nil {
				rest.ReviewCount = *reviewCount
			}
			if orderSuggestion != nil {
				rest.OrderSuggestion = *orderSuggestion
			}
			rest.Notes = []types.RestaurantNote{}
			categories[ci].Restaurants = append(categories[ci].Restaurants, rest)
			pos = [2]int{ci, len(categories[ci].Restaurants) - 1}
			restIndex[rest.ID] = pos
		}

		if noteID != nil {
			note := types.RestaurantNote{ID: *noteID, RestaurantID: *noteRestaurantID}
			if noteEmoji != nil {
				note.Emoji = *noteEmoji
			}
			if noteText != nil {
				note.Text = *noteText
			}
			if noteOrder != nil {
				note.DisplayOrder = *noteOrder
			}
			target := &categories[pos[0]].Restaurants[pos[1]]
			target.Notes = append(target.Notes, note)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error reading restaurants: %w", err)
	}

	l.DebugContext(ctx, "Restaurants fetched", slog.Int("categories", len(categories)))
	span.SetStatus(codes.Ok, "Restaurants fetched")
	return categories, nil
}

func (r *PostgresRestaurantRepo) GetCategories(ctx context.Context) ([]types.RestaurantCategory, error) {
	query := `SELECT id, title, display_order FROM restaurant_categories
        WHERE deleted_at IS NULL
        ORDER BY display_order ASC`

	rows, err := r.pgpool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("database error fetching restaurant categories: %w", err)
	}
	defer rows.Close()

	categories := []types.RestaurantCategory{}
	for rows.Next() {
		var c types.RestaurantCategory
		if err := rows.Scan(&c.ID, &c.Title, &c.DisplayOrder); err != nil {
			return nil, fmt.Errorf("database error scanning restaurant category: %w", err)
		}
		c.Restaurants = []types.Restaurant{}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error reading restaurant categories: %w", err)
	}
	return categories, nil
}

func (r *PostgresRestaurantRepo) CreateCategory(ctx context.Context, params types.CreateRestaurantCategoryParams) (*types.RestaurantCategory, error) {
	ctx, span := otel.Tracer("RestaurantRepo").Start(ctx, "CreateCategory", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "restaurant_categories"),
	))
	defer span.End()

	var c types.RestaurantCategory
	err := r.pgpool.QueryRow(ctx,
		`INSERT INTO restaurant_categories (title, display_order) VALUES ($1, $2)
         RETURNING id, title, display_order`,
		params.Title, params.DisplayOrder,
	).Scan(&c.ID, &c.Title, &c.DisplayOrder)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return nil, fmt.Errorf("database error creating restaurant category: %w", err)
	}
	c.Restaurants = []types.Restaurant{}
	span.SetStatus(codes.Ok, "Restaurant category created")
	return &c, nil
}

func (r *PostgresRestaurantRepo) CreateRestaurant(ctx context.Context, params types.CreateRestaurantParams) (*types.Restaurant, error) {
	ctx, span := otel.Tracer("RestaurantRepo").Start(ctx, "CreateRestaurant", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "restaurants"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "CreateRestaurant"), slog.String("name", params.Name))

	var rest types.Restaurant
	err := r.pgpool.QueryRow(ctx,
		`INSERT INTO restaurants (category_id, location, name, image_url, description,
            google_rating, review_count, order_suggestion, display_order)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
         RETURNING id, category_id, name, display_order`,
		params.CategoryID, params.Location, params.Name, params.ImageURL,
		params.Description, params.GoogleRating, params.ReviewCount,
		params.OrderSuggestion, params.DisplayOrder,
	).Scan(&rest.ID, &rest.CategoryID, &rest.Name, &rest.DisplayOrder)
	if err != nil {
		l.ErrorContext(ctx, "Failed to insert restaurant", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return nil, fmt.Errorf("database error creating restaurant: %w", err)
	}

	rest.Location = params.Location
	rest.ImageURL = params.ImageURL
	rest.Description = params.Description
	rest.GoogleRating = params.GoogleRating
	rest.ReviewCount = params.ReviewCount
	rest.OrderSuggestion = params.OrderSuggestion
	rest.Notes = []types.RestaurantNote{}

	l.InfoContext(ctx, "Restaurant created", slog.String("id", rest.ID.String()))
	span.SetStatus(codes.Ok, "Restaurant created")
	return &rest, nil
}

func (r *PostgresRestaurantRepo) CreateNote(ctx context.Context, params types.CreateRestaurantNoteParams) (*types.RestaurantNote, error) {
	var n types.RestaurantNote
	err := r.pgpool.QueryRow(ctx,
		`INSERT INTO restaurant_notes (restaurant_id, emoji, text, display_order)
         VALUES ($1, $2, $3, $4)
         RETURNING id, restaurant_id, emoji, text, display_order`,
		params.RestaurantID, params.Emoji, params.Text, params.DisplayOrder,
	).Scan(&n.ID, &n.RestaurantID, &n.Emoji, &n.Text, &n.DisplayOrder)
	if err != nil {
		return nil, fmt.Errorf("database error creating restaurant note: %w", err)
	}
	return &n, nil
}

func (r *PostgresRestaurantRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return store.SoftDelete(ctx, r.pgpool, "restaurant_categories", id)
}

func (r *PostgresRestaurantRepo) DeleteRestaurant(ctx context.Context, id uuid.UUID) error {
	return store.SoftDelete(ctx, r.pgpool, "restaurants", id)
}

// DeleteNote removes the note row; notes carry no soft-delete column.
func (r *PostgresRestaurantRepo) DeleteNote(ctx context.Context, id uuid.UUID) error {
	return store.HardDelete(ctx, r.pgpool, "restaurant_notes", id)
}
