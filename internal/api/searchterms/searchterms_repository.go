package searchterms

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

var _ Repository = (*PostgresSearchTermRepo)(nil)

type Repository interface {
	GetAll(ctx context.Context, includeDeleted bool) ([]types.SearchTerm, error)
	Create(ctx context.Context, params types.CreateSearchTermParams) (*types.SearchTerm, error)
	Update(ctx context.Context, id uuid.UUID, params types.UpdateSearchTermParams) (*types.SearchTerm, error)
	Delete(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}

type PostgresSearchTermRepo struct {
	logger *slog.Logger
	pgpool store.DB
}

func NewPostgresSearchTermRepo(pgpool store.DB, logger *slog.Logger) *PostgresSearchTermRepo {
	return &PostgresSearchTermRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *PostgresSearchTermRepo) GetAll(ctx context.Context, includeDeleted bool) ([]types.SearchTerm, error) {
	ctx, span := otel.Tracer("SearchTermRepo").Start(ctx, "GetAll", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "search_terms"),
	))
	defer span.End()

	query := `SELECT id, term, slug FROM search_terms`
	if !includeDeleted {
		query += ` WHERE deleted_at IS NULL`
	}
	query += ` ORDER BY term ASC`

	rows, err := r.pgpool.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query search terms", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error fetching search terms: %w", err)
	}
	defer rows.Close()

	terms := []types.SearchTerm{}
	for rows.Next() {
		var t types.SearchTerm
		if err := rows.Scan(&t.ID, &t.Term, &t.Slug); err != nil {
			return nil, fmt.Errorf("database error scanning search term: %w", err)
		}
		terms = append(terms, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error reading search terms: %w", err)
	}
	span.SetStatus(codes.Ok, "Search terms fetched")
	return terms, nil
}

func (r *PostgresSearchTermRepo) Create(ctx context.Context, params types.CreateSearchTermParams) (*types.SearchTerm, error) {
	ctx, span := otel.Tracer("SearchTermRepo").Start(ctx, "Create", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "search_terms"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "Create"), slog.String("slug", params.Slug))

	var t types.SearchTerm
	err := r.pgpool.QueryRow(ctx,
		`INSERT INTO search_terms (term, slug) VALUES ($1, $2) RETURNING id, term, slug`,
		params.Term, params.Slug,
	).Scan(&t.ID, &t.Term, &t.Slug)
	if err != nil {
		l.ErrorContext(ctx, "Failed to insert search term", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return nil, fmt.Errorf("database error creating search term: %w", err)
	}

	l.InfoContext(ctx, "Search term created", slog.String("id", t.ID.String()))
	span.SetStatus(codes.Ok, "Search term created")
	return &t, nil
}

func (r *PostgresSearchTermRepo) Update(ctx context.Context, id uuid.UUID, params types.UpdateSearchTermParams) (*types.SearchTerm, error) {
	ctx, span := otel.Tracer("SearchTermRepo").Start(ctx, "Update", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "search_terms"),
	))
	defer span.End()

	var setClauses []string
	var args []any
	argID := 1

	addSet := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if params.Term != nil {
		addSet("term", *params.Term)
	}
	if params.Slug != nil {
		addSet("slug", *params.Slug)
	}

	var t types.SearchTerm
	if len(setClauses) == 0 {
		err := r.pgpool.QueryRow(ctx,
			`SELECT id, term, slug FROM search_terms WHERE id = $1 AND deleted_at IS NULL`, id,
		).Scan(&t.ID, &t.Term, &t.Slug)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil
			}
			return nil, fmt.Errorf("database error fetching search term: %w", err)
		}
		return &t, nil
	}

	query := fmt.Sprintf(
		"UPDATE search_terms SET %s WHERE id = $%d RETURNING id, term, slug",
		strings.Join(setClauses, ", "), argID,
	)
	args = append(args, id)

	err := r.pgpool.QueryRow(ctx, query, args...).Scan(&t.ID, &t.Term, &t.Slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("search term %s: %w", id, api.ErrNotFound)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPDATE failed")
		return nil, fmt.Errorf("database error updating search term: %w", err)
	}
	span.SetStatus(codes.Ok, "Search term updated")
	return &t, nil
}

func (r *PostgresSearchTermRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return store.SoftDelete(ctx, r.pgpool, "search_terms", id)
}

func (r *PostgresSearchTermRepo) HardDelete(ctx context.Context, id uuid.UUID) error {
	return store.HardDelete(ctx, r.pgpool, "search_terms", id)
}

func (r *PostgresSearchTermRepo) Restore(ctx context.Context, id uuid.UUID) error {
	return store.Restore(ctx, r.pgpool, "search_terms", id)
}
