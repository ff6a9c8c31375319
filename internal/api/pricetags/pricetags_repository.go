package pricetags

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

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

var _ Repository = (*PostgresPriceTagRepo)(nil)

type Repository interface {
	GetAll(ctx context.Context, includeDeleted bool) ([]types.PriceTag, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.PriceTag, error)
	Create(ctx context.Context, label, slug string, minPrice, maxPrice int) (*types.PriceTag, error)
	Update(ctx context.Context, id uuid.UUID, label, slug string, minPrice, maxPrice int) (*types.PriceTag, error)
	Delete(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}

type PostgresPriceTagRepo struct {
	logger *slog.Logger
	pgpool store.DB
}

func NewPostgresPriceTagRepo(pgpool store.DB, logger *slog.Logger) *PostgresPriceTagRepo {
	return &PostgresPriceTagRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

const priceTagColumns = `id, label, slug, min_price, max_price`

func scanPriceTag(row pgx.Row) (*types.PriceTag, error) {
	var p types.PriceTag
	if err := row.Scan(&p.ID, &p.Label, &p.Slug, &p.MinPrice, &p.MaxPrice); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresPriceTagRepo) GetAll(ctx context.Context, includeDeleted bool) ([]types.PriceTag, error) {
	ctx, span := otel.Tracer("PriceTagRepo").Start(ctx, "GetAll", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "price_tags"),
	))
	defer span.End()

	query := `SELECT ` + priceTagColumns + ` FROM price_tags`
	if !includeDeleted {
		query += ` WHERE deleted_at IS NULL`
	}
	query += ` ORDER BY min_price ASC`

	rows, err := r.pgpool.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query price tags", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error fetching price tags: %w", err)
	}
	defer rows.Close()

	priceTags := []types.PriceTag{}
	for rows.Next() {
		p, err := scanPriceTag(rows)
		if err != nil {
			return nil, fmt.Errorf("database error scanning price tag: %w", err)
		}
		priceTags = append(priceTags, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error reading price tags: %w", err)
	}
	span.SetStatus(codes.Ok, "Price tags fetched")
	return priceTags, nil
}

func (r *PostgresPriceTagRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.PriceTag, error) {
	ctx, span := otel.Tracer("PriceTagRepo").Start(ctx, "GetByID", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "price_tags"),
	))
	defer span.End()

	query := `SELECT ` + priceTagColumns + ` FROM price_tags WHERE id = $1 AND deleted_at IS NULL`
	p, err := scanPriceTag(r.pgpool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error fetching price tag: %w", err)
	}
	span.SetStatus(codes.Ok, "Price tag fetched")
	return p, nil
}

func (r *PostgresPriceTagRepo) Create(ctx context.Context, label, slug string, minPrice, maxPrice int) (*types.PriceTag, error) {
	ctx, span := otel.Tracer("PriceTagRepo").Start(ctx, "Create", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "price_tags"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "Create"), slog.String("slug", slug))

	query := `
        INSERT INTO price_tags (label, slug, min_price, max_price)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + priceTagColumns

	p, err := scanPriceTag(r.pgpool.QueryRow(ctx, query, label, slug, minPrice, maxPrice))
	if err != nil {
		l.ErrorContext(ctx, "Failed to insert price tag", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return nil, fmt.Errorf("database error creating price tag: %w", err)
	}

	l.InfoContext(ctx, "Price tag created", slog.String("id", p.ID.String()))
	span.SetStatus(codes.Ok, "Price tag created")
	return p, nil
}

// Update writes the full row. Merging sparse input into current values
// happens in the service, which also recomputes the slug.
func (r *PostgresPriceTagRepo) Update(ctx context.Context, id uuid.UUID, label, slug string, minPrice, maxPrice int) (*types.PriceTag, error) {
	ctx, span := otel.Tracer("PriceTagRepo").Start(ctx, "Update", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "price_tags"),
	))
	defer span.End()

	query := `
        UPDATE price_tags SET label = $1, slug = $2, min_price = $3, max_price = $4
        WHERE id = $5
        RETURNING ` + priceTagColumns

	p, err := scanPriceTag(r.pgpool.QueryRow(ctx, query, label, slug, minPrice, maxPrice, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("price tag %s: %w", id, api.ErrNotFound)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPDATE failed")
		return nil, fmt.Errorf("database error updating price tag: %w", err)
	}
	span.SetStatus(codes.Ok, "Price tag updated")
	return p, nil
}

func (r *PostgresPriceTagRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return store.SoftDelete(ctx, r.pgpool, "price_tags", id)
}

func (r *PostgresPriceTagRepo) HardDelete(ctx context.Context, id uuid.UUID) error {
	return store.HardDelete(ctx, r.pgpool, "price_tags", id)
}

func (r *PostgresPriceTagRepo) Restore(ctx context.Context, id uuid.UUID) error {
	return store.Restore(ctx, r.pgpool, "price_tags", id)
}
