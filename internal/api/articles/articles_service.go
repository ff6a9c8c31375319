package articles

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gnkhotels/go-hotel-curation/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// DefaultLatestLimit is how many teasers the latest-guides widget shows
// when no explicit limit is requested.
const DefaultLatestLimit = 3

type Service interface {
	GetAll(ctx context.Context, includeDeleted bool) ([]types.Article, error)
	GetPublishedByLocation(ctx context.Context, location string) ([]types.Article, error)
	GetBySlug(ctx context.Context, slug string) (*types.Article, error)
	GetLatest(ctx context.Context, limit int) ([]types.ArticleTeaser, error)
	Create(ctx context.Context, params types.CreateArticleParams) (*types.Article, error)
	Update(ctx context.Context, id uuid.UUID, params types.UpdateArticleParams) (*types.Article, error)
	Delete(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}

type ServiceImpl struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{repo: repo, logger: logger}
}

func (s *ServiceImpl) GetAll(ctx context.Context, includeDeleted bool) ([]types.Article, error) {
	articles, err := s.repo.GetAll(ctx, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch articles: %w", err)
	}
	return articles, nil
}

func (s *ServiceImpl) GetPublishedByLocation(ctx context.Context, location string) ([]types.Article, error) {
	articles, err := s.repo.GetPublishedByLocation(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch articles by location: %w", err)
	}
	return articles, nil
}

func (s *ServiceImpl) GetBySlug(ctx context.Context, slug string) (*types.Article, error) {
	article, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch article: %w", err)
	}
	return article, nil
}

func (s *ServiceImpl) GetLatest(ctx context.Context, limit int) ([]types.ArticleTeaser, error) {
	if limit <= 0 {
		limit = DefaultLatestLimit
	}
	teasers, err := s.repo.GetLatest(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest articles: %w", err)
	}
	return teasers, nil
}

func (s *ServiceImpl) Create(ctx context.Context, params types.CreateArticleParams) (*types.Article, error) {
	l := s.logger.With(slog.String("method", "Create"), slog.String("slug", params.Slug))

	article, err := s.repo.Create(ctx, params)
	if err != nil {
		l.ErrorContext(ctx, "Failed to create article", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create article: %w", err)
	}
	return article, nil
}

func (s *ServiceImpl) Update(ctx context.Context, id uuid.UUID, params types.UpdateArticleParams) (*types.Article, error) {
	article, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return nil, fmt.Errorf("failed to update article: %w", err)
	}
	return article, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	return nil
}

func (s *ServiceImpl) HardDelete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.HardDelete(ctx, id); err != nil {
		return fmt.Errorf("failed to hard-delete article: %w", err)
	}
	return nil
}

func (s *ServiceImpl) Restore(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Restore(ctx, id); err != nil {
		return fmt.Errorf("failed to restore article: %w", err)
	}
	return nil
}
