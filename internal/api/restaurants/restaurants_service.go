package restaurants

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gnkhotels/go-hotel-curation/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	GetByLocation(ctx context.Context, location string) ([]types.RestaurantCategory, error)
	GetCategories(ctx context.Context) ([]types.RestaurantCategory, error)
	CreateCategory(ctx context.Context, params types.CreateRestaurantCategoryParams) (*types.RestaurantCategory, error)
	CreateRestaurant(ctx context.Context, params types.CreateRestaurantParams) (*types.Restaurant, error)
	CreateNote(ctx context.Context, params types.CreateRestaurantNoteParams) (*types.RestaurantNote, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	DeleteRestaurant(ctx context.Context, id uuid.UUID) error
	DeleteNote(ctx context.Context, id uuid.UUID) error
}

type ServiceImpl struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{repo: repo, logger: logger}
}

func (s *ServiceImpl) GetByLocation(ctx context.Context, location string) ([]types.RestaurantCategory, error) {
	categories, err := s.repo.GetByLocation(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch restaurants: %w", err)
	}
	return categories, nil
}

func (s *ServiceImpl) GetCategories(ctx context.Context) ([]types.RestaurantCategory, error) {
	categories, err := s.repo.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch restaurant categories: %w", err)
	}
	return categories, nil
}

func (s *ServiceImpl) CreateCategory(ctx context.Context, params types.CreateRestaurantCategoryParams) (*types.RestaurantCategory, error) {
	category, err := s.repo.CreateCategory(ctx, params)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to create restaurant category", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create restaurant category: %w", err)
	}
	return category, nil
}

func (s *ServiceImpl) CreateRestaurant(ctx context.Context, params types.CreateRestaurantParams) (*types.Restaurant, error) {
	restaurant, err := s.repo.CreateRestaurant(ctx, params)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to create restaurant", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create restaurant: %w", err)
	}
	return restaurant, nil
}

func (s *ServiceImpl) CreateNote(ctx context.Context, params types.CreateRestaurantNoteParams) (*types.RestaurantNote, error) {
	note, err := s.repo.CreateNote(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create restaurant note: %w", err)
	}
	return note, nil
}

func (s *ServiceImpl) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("failed to delete restaurant category: %w", err)
	}
	return nil
}

func (s *ServiceImpl) DeleteRestaurant(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteRestaurant(ctx, id); err != nil {
		return fmt.Errorf("failed to delete restaurant: %w", err)
	}
	return nil
}

func (s *ServiceImpl) DeleteNote(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteNote(ctx, id); err != nil {
		return fmt.Errorf("failed to delete restaurant note: %w", err)
	}
	return nil
}
