package articles

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

var _ Repository = (*PostgresArticleRepo)(nil)

type Repository interface {
	GetAll(ctx context.Context, includeDeleted bool) ([]types.Article, error)
	GetPublishedByLocation(ctx context.Context, location string) ([]types.Article, error)
	GetBySlug(ctx context.Context, slug string) (*types.Article, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Article, error)
	GetLatest(ctx context.Context, limit int) ([]types.ArticleTeaser, error)
	Create(ctx context.Context, params types.CreateArticleParams) (*types.Article, error)
	Update(ctx context.Context, id uuid.UUID, params types.UpdateArticleParams) (*types.Article, error)
	Delete(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}

type PostgresArticleRepo struct {
	logger *slog.Logger
	pgpool store.DB
}

func NewPostgresArticleRepo(pgpool store.DB, logger *slog.Logger) *PostgresArticleRepo {
	return &PostgresArticleRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

const articleColumns = `id, slug, title, meta_description, cover_image_url,
	content_html, location, is_published, published_at, created_at`

func scanArticle(row pgx.Row) (*types.Article, error) {
	var a types.Article
	var metaDescription, coverImageURL, contentHTML, location *string

	err := row.Scan(
		&a.ID, &a.Slug, &a.Title, &metaDescription, &coverImageURL,
		&contentHTML, &location, &a.IsPublished, &a.PublishedAt, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if metaDescription != nil {
		a.MetaDescription = *metaDescription
	}
	if coverImageURL != nil {
		a.CoverImageURL = *coverImageURL
	}
	if contentHTML != nil {
		a.ContentHTML = *contentHTML
	}
	if location != nil {
		a.Location = *location
	}
	return &a, nil
}

func collectArticles(rows pgx.Rows) ([]types.Article, error) {
	defer rows.Close()
	articles := []types.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("database error scanning article: %w", err)
		}
		articles = append(articles, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error reading articles: %w", err)
	}
	return articles, nil
}

func (r *PostgresArticleRepo) GetAll(ctx context.Context, includeDeleted bool) ([]types.Article, error) {
	ctx, span := otel.Tracer("ArticleRepo").Start(ctx, "GetAll", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "articles"),
	))
	defer span.End()

	query := `SELECT ` + articleColumns + ` FROM articles`
	if !includeDeleted {
		query += ` WHERE deleted_at IS NULL`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pgpool.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query articles", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error fetching articles: %w", err)
	}

	articles, err := collectArticles(rows)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetStatus(codes.Ok, "Articles fetched")
	return articles, nil
}

// GetPublishedByLocation serves the guides shown on a hotel detail page.
// The relation is free-text location equality, case-insensitive; there
// is no stored link between articles and hotels.
func (r *PostgresArticleRepo) GetPublishedByLocation(ctx context.Context, location string) ([]types.Article, error) {
	ctx, span := otel.Tracer("ArticleRepo").Start(ctx, "GetPublishedByLocation", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "articles"),
	))
	defer span.End()

	query := `SELECT ` + articleColumns + ` FROM articles
        WHERE is_published = true AND deleted_at IS NULL AND lower(location) = lower($1)
        ORDER BY published_at DESC NULLS LAST`

	rows, err := r.pgpool.Query(ctx, query, location)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error fetching articles by location: %w", err)
	}

	articles, err := collectArticles(rows)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetStatus(codes.Ok, "Articles fetched by location")
	return articles, nil
}

func (r *PostgresArticleRepo) GetBySlug(ctx context.Context, slug string) (*types.Article, error) {
	ctx, span := otel.Tracer("ArticleRepo").Start(ctx, "GetBySlug", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "articles"),
	))
	defer span.End()

	query := `SELECT ` + articleColumns + ` FROM articles
        WHERE slug = $1 AND is_published = true AND deleted_at IS NULL`

	a, err := scanArticle(r.pgpool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error fetching article: %w", err)
	}
	span.SetStatus(codes.Ok, "Article fetched")
	return a, nil
}

func (r *PostgresArticleRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1 AND deleted_at IS NULL`

	a, err := scanArticle(r.pgpool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error fetching article: %w", err)
	}
	return a, nil
}

// GetLatest returns teasers for the newest published articles.
func (r *PostgresArticleRepo) GetLatest(ctx context.Context, limit int) ([]types.ArticleTeaser, error) {
	query := `SELECT id, title, slug, cover_image_url FROM articles
        WHERE is_published = true AND deleted_at IS NULL
        ORDER BY published_at DESC NULLS LAST
        LIMIT $1`

	rows, err := r.pgpool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("database error fetching latest articles: %w", err)
	}
	defer rows.Close()

	teasers := []types.ArticleTeaser{}
	for rows.Next() {
		var t types.ArticleTeaser
		var coverImageURL *string
		if err := rows.Scan(&t.ID, &t.Title, &t.Slug, &coverImageURL); err != nil {
			return nil, fmt.Errorf("database error scanning article teaser: %w", err)
		}
		if coverImageURL != nil {
			t.CoverImageURL = *coverImageURL
		}
		teasers = append(teasers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error reading article teasers: %w", err)
	}
	return teasers, nil
}

// Create stamps published_at when the article is born published.
func (r *PostgresArticleRepo) Create(ctx context.Context, params types.CreateArticleParams) (*types.Article, error) {
	ctx, span := otel.Tracer("ArticleRepo").Start(ctx, "Create", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "articles"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "Create"), slog.String("slug", params.Slug))

	query := `
        INSERT INTO articles (slug, title, meta_description, cover_image_url,
            content_html, location, is_published, published_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, CASE WHEN $7 THEN now() ELSE NULL END)
        RETURNING ` + articleColumns

	a, err := scanArticle(r.pgpool.QueryRow(ctx, query,
		params.Slug, params.Title, params.MetaDescription, params.CoverImageURL,
		params.ContentHTML, params.Location, params.IsPublished,
	))
	if err != nil {
		l.ErrorContext(ctx, "Failed to insert article", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		if strings.Contains(err.Error(), "unique constraint") {
			return nil, fmt.Errorf("article slug %q: %w", params.Slug, api.ErrConflict)
		}
		return nil, fmt.Errorf("database error creating article: %w", err)
	}

	l.InfoContext(ctx, "Article created", slog.String("id", a.ID.String()))
	span.SetStatus(codes.Ok, "Article created")
	return a, nil
}

// Update is sparse. A transition to published stamps published_at the
// first time only; unpublishing keeps the original timestamp.
func (r *PostgresArticleRepo) Update(ctx context.Context, id uuid.UUID, params types.UpdateArticleParams) (*types.Article, error) {
	ctx, span := otel.Tracer("ArticleRepo").Start(ctx, "Update", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "articles"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "Update"), slog.String("articleID", id.String()))

	var setClauses []string
	var args []any
	argID := 1

	addSet := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if params.Slug != nil {
		addSet("slug", *params.Slug)
	}
	if params.Title != nil {
		addSet("title", *params.Title)
	}
	if params.MetaDescription != nil {
		addSet("meta_description", *params.MetaDescription)
	}
	if params.CoverImageURL != nil {
		addSet("cover_image_url", *params.CoverImageURL)
	}
	if params.ContentHTML != nil {
		addSet("content_html", *params.ContentHTML)
	}
	if params.Location != nil {
		addSet("location", *params.Location)
	}
	if params.IsPublished != nil {
		addSet("is_published", *params.IsPublished)
		if *params.IsPublished {
			setClauses = append(setClauses, "published_at = COALESCE(published_at, now())")
		}
	}

	if len(setClauses) == 0 {
		return r.GetByID(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = now()")
	query := fmt.Sprintf(
		"UPDATE articles SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setClauses, ", "), argID, articleColumns,
	)
	args = append(args, id)

	a, err := scanArticle(r.pgpool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("article %s: %w", id, api.ErrNotFound)
		}
		l.ErrorContext(ctx, "Failed to update article", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPDATE failed")
		return nil, fmt.Errorf("database error updating article: %w", err)
	}

	l.InfoContext(ctx, "Article updated")
	span.SetStatus(codes.Ok, "Article updated")
	return a, nil
}

func (r *PostgresArticleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return store.SoftDelete(ctx, r.pgpool, "articles", id)
}

func (r *PostgresArticleRepo) HardDelete(ctx context.Context, id uuid.UUID) error {
	return store.HardDelete(ctx, r.pgpool, "articles", id)
}

func (r *PostgresArticleRepo) Restore(ctx context.Context, id uuid.UUID) error {
	return store.Restore(ctx, r.pgpool, "articles", id)
}
