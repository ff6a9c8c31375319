package tags

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

var _ Repository = (*PostgresTagRepo)(nil)

type Repository interface {
	GetAll(ctx context.Context, includeDeleted bool) ([]types.Tag, error)
	GetFeatured(ctx context.Context) ([]types.Tag, error)
	GetBySlug(ctx context.Context, slug string) (*types.Tag, error)
	Create(ctx context.Context, params types.CreateTagParams) (*types.Tag, error)
	Update(ctx context.Context, id uuid.UUID, params types.UpdateTagParams) (*types.Tag, error)
	Delete(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	ListRefs(ctx context.Context) ([]types.TagRef, error)
}

type PostgresTagRepo struct {
	logger *slog.Logger
	pgpool store.DB
}

func NewPostgresTagRepo(pgpool store.DB, logger *slog.Logger) *PostgresTagRepo {
	return &PostgresTagRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

const tagColumns = `id, name, slug, icon, is_featured`

// scanTag maps a row; a NULL icon falls back to the default icon key.
func scanTag(row pgx.Row) (*types.Tag, error) {
	var t types.Tag
	var icon *string
	if err := row.Scan(&t.ID, &t.Name, &t.Slug, &icon, &t.IsFeatured); err != nil {
		return nil, err
	}
	if icon != nil && *icon != "" {
		t.Icon = *icon
	} else {
		t.Icon = types.DefaultTagIcon
	}
	return &t, nil
}

func collectTags(rows pgx.Rows) ([]types.Tag, error) {
	defer rows.Close()
	tags := []types.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("database error scanning tag: %w", err)
		}
		tags = append(tags, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error reading tags: %w", err)
	}
	return tags, nil
}

func (r *PostgresTagRepo) GetAll(ctx context.Context, includeDeleted bool) ([]types.Tag, error) {
	ctx, span := otel.Tracer("TagRepo").Start(ctx, "GetAll", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "tags"),
	))
	defer span.End()

	query := `SELECT ` + tagColumns + ` FROM tags`
	if !includeDeleted {
		query += ` WHERE deleted_at IS NULL`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.pgpool.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query tags", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error fetching tags: %w", err)
	}

	tags, err := collectTags(rows)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetStatus(codes.Ok, "Tags fetched")
	return tags, nil
}

func (r *PostgresTagRepo) GetFeatured(ctx context.Context) ([]types.Tag, error) {
	ctx, span := otel.Tracer("TagRepo").Start(ctx, "GetFeatured", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "tags"),
	))
	defer span.End()

	query := `SELECT ` + tagColumns + ` FROM tags
        WHERE is_featured = true AND deleted_at IS NULL
        ORDER BY name ASC`

	rows, err := r.pgpool.Query(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error fetching featured tags: %w", err)
	}

	tags, err := collectTags(rows)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetStatus(codes.Ok, "Featured tags fetched")
	return tags, nil
}

func (r *PostgresTagRepo) GetBySlug(ctx context.Context, slug string) (*types.Tag, error) {
	ctx, span := otel.Tracer("TagRepo").Start(ctx, "GetBySlug", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "tags"),
	))
	defer span.End()

	query := `SELECT ` + tagColumns + ` FROM tags WHERE slug = $1 AND deleted_at IS NULL`
	t, err := scanTag(r.pgpool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error fetching tag: %w", err)
	}
	span.SetStatus(codes.Ok, "Tag fetched")
	return t, nil
}

func (r *PostgresTagRepo) Create(ctx context.Context, params types.CreateTagParams) (*types.Tag, error) {
	ctx, span := otel.Tracer("TagRepo").Start(ctx, "Create", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "tags"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "Create"), slog.String("slug", params.Slug))

	query := `
        INSERT INTO tags (name, slug, icon, is_featured)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + tagColumns

	t, err := scanTag(r.pgpool.QueryRow(ctx, query,
		params.Name, params.Slug, params.Icon, params.IsFeatured,
	))
	if err != nil {
		l.ErrorContext(ctx, "Failed to insert tag", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		if strings.Contains(err.Error(), "unique constraint") {
			return nil, fmt.Errorf("tag slug %q: %w", params.Slug, api.ErrConflict)
		}
		return nil, fmt.Errorf("database error creating tag: %w", err)
	}

	l.InfoContext(ctx, "Tag created", slog.String("id", t.ID.String()))
	span.SetStatus(codes.Ok, "Tag created")
	return t, nil
}

func (r *PostgresTagRepo) Update(ctx context.Context, id uuid.UUID, params types.UpdateTagParams) (*types.Tag, error) {
	ctx, span := otel.Tracer("TagRepo").Start(ctx, "Update", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "tags"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "Update"), slog.String("tagID", id.String()))

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
	if params.Slug != nil {
		addSet("slug", *params.Slug)
	}
	if params.Icon != nil {
		addSet("icon", *params.Icon)
	}
	if params.IsFeatured != nil {
		addSet("is_featured", *params.IsFeatured)
	}

	if len(setClauses) == 0 {
		query := `SELECT ` + tagColumns + ` FROM tags WHERE id = $1 AND deleted_at IS NULL`
		t, err := scanTag(r.pgpool.QueryRow(ctx, query, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil
			}
			return nil, fmt.Errorf("database error fetching tag: %w", err)
		}
		return t, nil
	}

	query := fmt.Sprintf(
		"UPDATE tags SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setClauses, ", "), argID, tagColumns,
	)
	args = append(args, id)

	t, err := scanTag(r.pgpool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("tag %s: %w", id, api.ErrNotFound)
		}
		l.ErrorContext(ctx, "Failed to update tag", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPDATE failed")
		return nil, fmt.Errorf("database error updating tag: %w", err)
	}

	l.InfoContext(ctx, "Tag updated")
	span.SetStatus(codes.Ok, "Tag updated")
	return t, nil
}

func (r *PostgresTagRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return store.SoftDelete(ctx, r.pgpool, "tags", id)
}

func (r *PostgresTagRepo) HardDelete(ctx context.Context, id uuid.UUID) error {
	return store.HardDelete(ctx, r.pgpool, "tags", id)
}

func (r *PostgresTagRepo) Restore(ctx context.Context, id uuid.UUID) error {
	return store.Restore(ctx, r.pgpool, "tags", id)
}

// ListRefs returns the slim projection the suggestion engine keys on.
func (r *PostgresTagRepo) ListRefs(ctx context.Context) ([]types.TagRef, error) {
	query := `SELECT name, slug, icon FROM tags
        WHERE deleted_at IS NULL
        ORDER BY name ASC`

	rows, err := r.pgpool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("database error fetching tag refs: %w", err)
	}
	defer rows.Close()

	refs := []types.TagRef{}
	for rows.Next() {
		var ref types.TagRef
		var icon *string
		if err := rows.Scan(&ref.Name, &ref.Slug, &icon); err != nil {
			return nil, fmt.Errorf("database error scanning tag ref: %w", err)
		}
		if icon != nil && *icon != "" {
			ref.Icon = *icon
		} else {
			ref.Icon = types.DefaultTagIcon
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error reading tag refs: %w", err)
	}
	return refs, nil
}
