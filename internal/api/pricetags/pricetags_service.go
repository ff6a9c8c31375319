package pricetags

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gnkhotels/go-hotel-curation/internal/api"
	"github.com/gnkhotels/go-hotel-curation/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// ErrInvalidBounds rejects brackets where the lower bound exceeds the
// upper one.
var ErrInvalidBounds = errors.New("min_price must not exceed max_price")

type Service interface {
	GetAll(ctx context.Context, includeDeleted bool) ([]types.PriceTag, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.PriceTag, error)
	Create(ctx context.Context, params types.CreatePriceTagParams) (*types.PriceTag, error)
	Update(ctx context.Context, id uuid.UUID, params types.UpdatePriceTagParams) (*types.PriceTag, error)
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

func (s *ServiceImpl) GetAll(ctx context.Context, includeDeleted bool) ([]types.PriceTag, error) {
	priceTags, err := s.repo.GetAll(ctx, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch price tags: %w", err)
	}
	return priceTags, nil
}

func (s *ServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*types.PriceTag, error) {
	priceTag, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch price tag: %w", err)
	}
	return priceTag, nil
}

// Create derives the slug from the bounds; callers cannot set it.
func (s *ServiceImpl) Create(ctx context.Context, params types.CreatePriceTagParams) (*types.PriceTag, error) {
	l := s.logger.With(slog.String("method", "Create"), slog.String("label", params.Label))

	if params.MinPrice > params.MaxPrice {
		return nil, ErrInvalidBounds
	}

	slug := types.PriceTagSlug(params.MinPrice, params.MaxPrice)
	priceTag, err := s.repo.Create(ctx, params.Label, slug, params.MinPrice, params.MaxPrice)
	if err != nil {
		l.ErrorContext(ctx, "Failed to create price tag", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create price tag: %w", err)
	}
	return priceTag, nil
}

// Update merges the sparse input into the stored row and recomputes the
// slug whenever either bound changed, keeping slug and bounds in sync.
func (s *ServiceImpl) Update(ctx context.Context, id uuid.UUID, params types.UpdatePriceTagParams) (*types.PriceTag, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch price tag: %w", err)
	}
	if current == nil {
		return nil, fmt.Errorf("price tag %s: %w", id, api.ErrNotFound)
	}

	label := current.Label
	minPrice := current.MinPrice
	maxPrice := current.MaxPrice
	if params.Label != nil {
		label = *params.Label
	}
	if params.MinPrice != nil {
		minPrice = *params.MinPrice
	}
	if params.MaxPrice != nil {
		maxPrice = *params.MaxPrice
	}
	if minPrice > maxPrice {
		return nil, ErrInvalidBounds
	}

	slug := types.PriceTagSlug(minPrice, maxPrice)
	priceTag, err := s.repo.Update(ctx, id, label, slug, minPrice, maxPrice)
	if err != nil {
		return nil, fmt.Errorf("failed to update price tag: %w", err)
	}
	return priceTag, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete price tag: %w", err)
	}
	return nil
}

func (s *ServiceImpl) HardDelete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.HardDelete(ctx, id); err != nil {
		return fmt.Errorf("failed to hard-delete price tag: %w", err)
	}
	return nil
}

func (s *ServiceImpl) Restore(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Restore(ctx, id); err != nil {
		return fmt.Errorf("failed to restore price tag: %w", err)
	}
	return nil
}
