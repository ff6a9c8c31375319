package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/gnkhotels/go-hotel-curation/internal/api/store"
	"github.com/gnkhotels/go-hotel-curation/internal/types"
)

var _ Repository = (*PostgresAuthRepo)(nil)

type Repository interface {
	GetUserByEmail(ctx context.Context, email string) (*types.AdminUser, error)
	CreateUser(ctx context.Context, email, passwordHash string) (*types.AdminUser, error)
}

type PostgresAuthRepo struct {
	logger *slog.Logger
	pgpool store.DB
}

func NewPostgresAuthRepo(pgpool store.DB, logger *slog.Logger) *PostgresAuthRepo {
	return &PostgresAuthRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *PostgresAuthRepo) GetUserByEmail(ctx context.Context, email string) (*types.AdminUser, error) {
	ctx, span := otel.Tracer("AuthRepo").Start(ctx, "GetUserByEmail", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "admin_users"),
	))
	defer span.End()

	var u types.AdminUser
	err := r.pgpool.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM admin_users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error fetching admin user: %w", err)
	}
	span.SetStatus(codes.Ok, "Admin user fetched")
	return &u, nil
}

func (r *PostgresAuthRepo) CreateUser(ctx context.Context, email, passwordHash string) (*types.AdminUser, error) {
	ctx, span := otel.Tracer("AuthRepo").Start(ctx, "CreateUser", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "admin_users"),
	))
	defer span.End()

	var u types.AdminUser
	err := r.pgpool.QueryRow(ctx,
		`INSERT INTO admin_users (email, password_hash) VALUES ($1, $2)
         RETURNING id, email, password_hash, created_at`,
		email, passwordHash,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return nil, fmt.Errorf("database error creating admin user: %w", err)
	}
	span.SetStatus(codes.Ok, "Admin user created")
	return &u, nil
}
