package auth

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/gnkhotels/go-hotel-curation/config"
	"github.com/gnkhotels/go-hotel-curation/internal/types"
)

type stubRepo struct {
	user *types.AdminUser
	err  error
}

func (s *stubRepo) GetUserByEmail(context.Context, string) (*types.AdminUser, error) {
	return s.user, s.err
}

func (s *stubRepo) CreateUser(_ context.Context, email, hash string) (*types.AdminUser, error) {
	return &types.AdminUser{ID: uuid.New(), Email: email, PasswordHash: hash}, nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		SecretKey: "test-secret",
		Issuer:    "gnkhotels-api",
		Audience:  "gnkhotels-admin",
		Expiry:    time.Hour,
	}
}

func adminWithPassword(t *testing.T, password string) *types.AdminUser {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &types.AdminUser{
		ID:           uuid.New(),
		Email:        "admin@gnkhotels.com",
		PasswordHash: string(hash),
	}
}

func TestLogin_IssuesValidToken(t *testing.T) {
	user := adminWithPassword(t, "correct horse")
	svc := NewService(&stubRepo{user: user}, testJWTConfig(), slog.New(slog.DiscardHandler))

	token, err := svc.Login(context.Background(), user.Email, "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	user := adminWithPassword(t, "correct horse")
	svc := NewService(&stubRepo{user: user}, testJWTConfig(), slog.New(slog.DiscardHandler))

	_, err := svc.Login(context.Background(), user.Email, "battery staple")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	svc := NewService(&stubRepo{}, testJWTConfig(), slog.New(slog.DiscardHandler))

	_, err := svc.Login(context.Background(), "nobody@gnkhotels.com", "whatever")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestValidateToken_RejectsTampering(t *testing.T) {
	user := adminWithPassword(t, "pw")
	svc := NewService(&stubRepo{user: user}, testJWTConfig(), slog.New(slog.DiscardHandler))

	token, err := svc.Login(context.Background(), user.Email, "pw")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token + "x")
	assert.Error(t, err)

	other := NewService(&stubRepo{user: user}, config.JWTConfig{
		SecretKey: "different-secret",
		Issuer:    "gnkhotels-api",
		Audience:  "gnkhotels-admin",
		Expiry:    time.Hour,
	}, slog.New(slog.DiscardHandler))
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_RejectsExpired(t *testing.T) {
	user := adminWithPassword(t, "pw")
	cfg := testJWTConfig()
	cfg.Expiry = -time.Minute
	svc := NewService(&stubRepo{user: user}, cfg, slog.New(slog.DiscardHandler))

	token, err := svc.Login(context.Background(), user.Email, "pw")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
