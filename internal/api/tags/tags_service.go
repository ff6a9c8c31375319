package tags

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gnkhotels/go-hotel-curation/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	GetAll(ctx context.Context, includeDeleted bool) ([]types.Tag, error)
	GetFeatured(ctx context.Context) ([]types.Tag, error)
	GetBySlug(ctx context.Context, slug string) (*types.Tag, error)
	Create(ctx context.Context, params types.CreateTagParams) (*types.Tag, error)
	Update(ctx context.Context, id uuid.UUID, params types.UpdateTagParams) (*types.Tag, error)
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

func (s *ServiceImpl) GetAll(ctx context.Context, includeDeleted bool) ([]types.Tag, error) {
	tags, err := s.repo.GetAll(ctx, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tags: %w", err)
	}
	return tags, nil
}

func (s *ServiceImpl) GetFeatured(ctx context.Context) ([]types.Tag, error) {
	tags, err := s.repo.GetFeatured(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch featured tags: %w", err)
	}
	return tags, nil
}

func (s *ServiceImpl) GetBySlug(ctx context.Context, slug string) (*types.Tag, error) {
	tag, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tag: %w", err)
	}
	return tag, nil
}

func (s *ServiceImpl) Create(ctx context.Context, params types.CreateTagParams) (*types.Tag, error) {
	l := s.logger.With(slog.String("method", "Create"), slog.String("slug", params.Slug))

	if params.Icon == "" {
		params.Icon = types.DefaultTagIcon
	}

	tag, err := s.repo.Create(ctx, params)
	if err != nil {
		l.ErrorContext(ctx, "Failed to create tag", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return tag, nil
}

func (s *ServiceImpl) Update(ctx context.Context, id uuid.UUID, params types.UpdateTagParams) (*types.Tag, error) {
	tag, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}
	return tag, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return nil
}

func (s *ServiceImpl) HardDelete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.HardDelete(ctx, id); err != nil {
		return fmt.Errorf("failed to hard-delete tag: %w", err)
	}
	return nil
}

func (s *ServiceImpl) Restore(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Restore(ctx, id); err != nil {
		return fmt.Errorf("failed to restore tag: %w", err)
	}
	return nil
}
