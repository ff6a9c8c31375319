package groups

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

var _ Repository = (*PostgresGroupRepo)(nil)

// Repository is the contract for group persistence, including the
// ordered hotel membership stored in group_hotels.
type Repository interface {
	GetAll(ctx context.Context, includeDeleted bool) ([]types.Group, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Group, error)
	GetPublishedWithHotels(ctx context.Context) ([]types.GroupWithHotels, error)
	Create(ctx context.Context, params types.CreateGroupParams) (*types.Group, error)
	Update(ctx context.Context, id uuid.UUID, params types.UpdateGroupParams) (*types.Group, error)
	SetHotels(ctx context.Context, id uuid.UUID, hotelIDs []uuid.UUID) error
	GetHotelIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}

type PostgresGroupRepo struct {
	logger *slog.Logger
	pgpool store.DB
}

func NewPostgresGroupRepo(pgpool store.DB, logger *slog.Logger) *PostgresGroupRepo {
	return &PostgresGroupRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *PostgresGroupRepo) GetAll(ctx context.Context, includeDeleted bool) ([]types.Group, error) {
	ctx, span := otel.Tracer("GroupRepo").Start(ctx, "GetAll", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "groups"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "GetAll"))

	query := `
        SELECT g.id, g.title, g.is_published, g.created_at,
               COALESCE(array_agg(gh.hotel_id ORDER BY gh.order_index) FILTER (WHERE gh.hotel_id IS NOT NULL), '{}')
        FROM groups g
        LEFT JOIN group_hotels gh ON gh.group_id = g.id`
	if !includeDeleted {
		query += ` WHERE g.deleted_at IS NULL`
	}
	query += `
        GROUP BY g.id
        ORDER BY g.created_at DESC`

	rows, err := r.pgpool.Query(ctx, query)
	if err != nil {
		l.ErrorContext(ctx, "Failed to query groups", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error fetching groups: %w", err)
	}
	defer rows.Close()

	groups := []types.Group{}
	for rows.Next() {
		var g types.Group
		if err := rows.Scan(&g.ID, &g.Title, &g.IsPublished, &g.CreatedAt, &g.HotelIDs); err != nil {
			return nil, fmt.Errorf("database error scanning group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error reading groups: %w", err)
	}
	span.SetStatus(codes.Ok, "Groups fetched")
	return groups, nil
}

func (r *PostgresGroupRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.Group, error) {
	ctx, span := otel.Tracer("GroupRepo").Start(ctx, "GetByID", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "groups"),
	))
	defer span.End()

	query := `
        SELECT g.id, g.title, g.is_published, g.created_at,
               COALESCE(array_agg(gh.hotel_id ORDER BY gh.order_index) FILTER (WHERE gh.hotel_id IS NOT NULL), '{}')
        FROM groups g
        LEFT JOIN group_hotels gh ON gh.group_id = g.id
        WHERE g.id = $1 AND g.deleted_at IS NULL
        GROUP BY g.id`

	var g types.Group
	err := r.pgpool.QueryRow(ctx, query, id).Scan(&g.ID, &g.Title, &g.IsPublished, &g.CreatedAt, &g.HotelIDs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error fetching group: %w", err)
	}
	span.SetStatus(codes.Ok, "Group fetched")
	return &g, nil
}

// GetPublishedWithHotels returns every published group with its member
// hotels flattened to display cards in stored order. Memberships whose
// hotel has been deleted are dropped, not surfaced as holes.
func (r *PostgresGroupRepo) GetPublishedWithHotels(ctx context.Context) ([]types.GroupWithHotels, error) {
	ctx, span := otel.Tracer("GroupRepo").Start(ctx, "GetPublishedWithHotels", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "groups"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "GetPublishedWithHotels"))

	query := `
        SELECT g.id, g.title,
               h.id, h.name, h.location, h.price, h.rating, h.image_url
        FROM groups g
        LEFT JOIN group_hotels gh ON gh.group_id = g.id
        LEFT JOIN hotels h ON h.id = gh.hotel_id AND h.deleted_at IS NULL
        WHERE g.is_published = true AND g.deleted_at IS NULL
        ORDER BY g.created_at DESC, gh.order_index ASC`

	rows, err := r.pgpool.Query(ctx, query)
	if err != nil {
		l.ErrorContext(ctx, "Failed to query published groups", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error fetching published groups: %w", err)
	}
	defer rows.Close()

	groups := []types.GroupWithHotels{}
	index := map[uuid.UUID]int{}
	for rows.Next() {
		var groupID uuid.UUID
		var title string
		var hotelID *uuid.UUID
		var name, location, imageURL *string
		var price *int
		var rating *float64

		if err := rows.Scan(&groupID, &title, &hotelID, &name, &location, &price, &rating, &imageURL); err != nil {
			return nil, fmt.Errorf("database error scanning published group: %w", err)
		}

		i, ok := index[groupID]
		if !ok {
			i = len(groups)
			index[groupID] = i
			groups = append(groups, types.GroupWithHotels{
				ID:     groupID,
				Title:  title,
				Hotels: []types.HotelCard{},
			})
		}
		// hotelID is NULL for empty groups and for memberships whose
		// hotel no longer resolves.
		if hotelID == nil {
			continue
		}
		card := types.HotelCard{ID: *hotelID}
		if name != nil {
			card.Name = *name
		}
		if location != nil {
			card.Location = *location
		}
		if price != nil {
			card.Price = *price
		}
		if rating != nil {
			card.Score = *rating
		}
		if imageURL != nil {
			card.CoverImageURL = *imageURL
		}
		groups[i].Hotels = append(groups[i].Hotels, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error reading published groups: %w", err)
	}
	span.SetStatus(codes.Ok, "Published groups fetched")
	return groups, nil
}

// Create inserts the group and, when initial members were given, its
// membership rows in the same transaction.
func (r *PostgresGroupRepo) Create(ctx context.Context, params types.CreateGroupParams) (*types.Group, error) {
	ctx, span := otel.Tracer("GroupRepo").Start(ctx, "Create", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "groups"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "Create"), slog.String("title", params.Title))

	tx, err := r.pgpool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("database error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var g types.Group
	err = tx.QueryRow(ctx,
		`INSERT INTO groups (title, is_published) VALUES ($1, $2)
         RETURNING id, title, is_published, created_at`,
		params.Title, params.IsPublished,
	).Scan(&g.ID, &g.Title, &g.IsPublished, &g.CreatedAt)
	if err != nil {
		l.ErrorContext(ctx, "Failed to insert group", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return nil, fmt.Errorf("database error creating group: %w", err)
	}

	g.HotelIDs = []uuid.UUID{}
	for i, hotelID := range params.HotelIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO group_hotels (group_id, hotel_id, order_index) VALUES ($1, $2, $3)`,
			g.ID, hotelID, i,
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "DB INSERT failed")
			return nil, fmt.Errorf("database error adding hotel to group: %w", err)
		}
		g.HotelIDs = append(g.HotelIDs, hotelID)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("database error committing group: %w", err)
	}

	l.InfoContext(ctx, "Group created", slog.String("id", g.ID.String()))
	span.SetStatus(codes.Ok, "Group created")
	return &g, nil
}

func (r *PostgresGroupRepo) Update(ctx context.Context, id uuid.UUID, params types.UpdateGroupParams) (*types.Group, error) {
	ctx, span := otel.Tracer("GroupRepo").Start(ctx, "Update", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "groups"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "Update"), slog.String("groupID", id.String()))

	var setClauses []string
	var args []any
	argID := 1

	addSet := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if params.Title != nil {
		addSet("title", *params.Title)
	}
	if params.IsPublished != nil {
		addSet("is_published", *params.IsPublished)
	}

	if len(setClauses) == 0 {
		return r.GetByID(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = now()")
	query := fmt.Sprintf(
		"UPDATE groups SET %s WHERE id = $%d RETURNING id, title, is_published, created_at",
		strings.Join(setClauses, ", "), argID,
	)
	args = append(args, id)

	var g types.Group
	err := r.pgpool.QueryRow(ctx, query, args...).Scan(&g.ID, &g.Title, &g.IsPublished, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("group %s: %w", id, api.ErrNotFound)
		}
		l.ErrorContext(ctx, "Failed to update group", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPDATE failed")
		return nil, fmt.Errorf("database error updating group: %w", err)
	}

	ids, err := r.GetHotelIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	g.HotelIDs = ids

	l.InfoContext(ctx, "Group updated")
	span.SetStatus(codes.Ok, "Group updated")
	return &g, nil
}

// SetHotels replaces the group's membership with the given list. The
// slice position becomes the persisted order_index, so callers control
// display order by ordering the input.
func (r *PostgresGroupRepo) SetHotels(ctx context.Context, id uuid.UUID, hotelIDs []uuid.UUID) error {
	ctx, span := otel.Tracer("GroupRepo").Start(ctx, "SetHotels", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "group_hotels"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "SetHotels"), slog.String("groupID", id.String()))

	tx, err := r.pgpool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("database error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM groups WHERE id = $1 AND deleted_at IS NULL)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("database error checking group: %w", err)
	}
	if !exists {
		return fmt.Errorf("group %s: %w", id, api.ErrNotFound)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM group_hotels WHERE group_id = $1`, id); err != nil {
		return fmt.Errorf("database error clearing group membership: %w", err)
	}
	for i, hotelID := range hotelIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO group_hotels (group_id, hotel_id, order_index) VALUES ($1, $2, $3)`,
			id, hotelID, i,
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "DB INSERT failed")
			return fmt.Errorf("database error adding hotel to group: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("database error committing group membership: %w", err)
	}

	l.InfoContext(ctx, "Group membership replaced", slog.Int("count", len(hotelIDs)))
	span.SetStatus(codes.Ok, "Group membership replaced")
	return nil
}

func (r *PostgresGroupRepo) GetHotelIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT hotel_id FROM group_hotels WHERE group_id = $1 ORDER BY order_index ASC`

	rows, err := r.pgpool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("database error fetching group membership: %w", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var hotelID uuid.UUID
		if err := rows.Scan(&hotelID); err != nil {
			return nil, fmt.Errorf("database error scanning group membership: %w", err)
		}
		ids = append(ids, hotelID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error reading group membership: %w", err)
	}
	return ids, nil
}

func (r *PostgresGroupRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return store.SoftDelete(ctx, r.pgpool, "groups", id)
}

func (r *PostgresGroupRepo) HardDelete(ctx context.Context, id uuid.UUID) error {
	return store.HardDelete(ctx, r.pgpool, "groups", id)
}

func (r *PostgresGroupRepo) Restore(ctx context.Context, id uuid.UUID) error {
	return store.Restore(ctx, r.pgpool, "groups", id)
}
