package hotels

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gnkhotels/go-hotel-curation/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service is the business contract for hotels. It stays thin: the
// store is the source of truth and errors propagate unchanged in
// meaning.
type Service interface {
	GetAll(ctx context.Context, includeDeleted bool) ([]types.Hotel, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Hotel, error)
	Create(ctx context.Context, params types.CreateHotelParams) (*types.Hotel, error)
	Update(ctx context.Context, id uuid.UUID, params types.UpdateHotelParams) (*types.Hotel, error)
	Delete(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, filter types.HotelFilter) ([]types.Hotel, error)
	GetByTag(ctx context.Context, tag string) ([]types.Hotel, error)
	GetByPriceRange(ctx context.Context, minPrice, maxPrice int) ([]types.Hotel, error)
}

type ServiceImpl struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{repo: repo, logger: logger}
}

func (s *ServiceImpl) GetAll(ctx context.Context, includeDeleted bool) ([]types.Hotel, error) {
	hotels, err := s.repo.GetAll(ctx, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hotels: %w", err)
	}
	return hotels, nil
}

func (s *ServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*types.Hotel, error) {
	hotel, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hotel: %w", err)
	}
	return hotel, nil
}

func (s *ServiceImpl) Create(ctx context.Context, params types.CreateHotelParams) (*types.Hotel, error) {
	l := s.logger.With(slog.String("method", "Create"), slog.String("name", params.Name))

	// Score is clamped into the site's 0-10 band rather than rejected.
	if params.Score < 0 {
		params.Score = 0
	}
	if params.Score > 10 {
		params.Score = 10
	}

	hotel, err := s.repo.Create(ctx, params)
	if err != nil {
		l.ErrorContext(ctx, "Failed to create hotel", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create hotel: %w", err)
	}
	return hotel, nil
}

func (s *ServiceImpl) Update(ctx context.Context, id uuid.UUID, params types.UpdateHotelParams) (*types.Hotel, error) {
	hotel, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return nil, fmt.Errorf("failed to update hotel: %w", err)
	}
	return hotel, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete hotel: %w", err)
	}
	return nil
}

func (s *ServiceImpl) HardDelete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.HardDelete(ctx, id); err != nil {
		return fmt.Errorf("failed to hard-delete hotel: %w", err)
	}
	return nil
}

func (s *ServiceImpl) Restore(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Restore(ctx, id); err != nil {
		return fmt.Errorf("failed to restore hotel: %w", err)
	}
	return nil
}

func (s *ServiceImpl) Search(ctx context.Context, filter types.HotelFilter) ([]types.Hotel, error) {
	hotels, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search hotels: %w", err)
	}
	return hotels, nil
}

func (s *ServiceImpl) GetByTag(ctx context.Context, tag string) ([]types.Hotel, error) {
	hotels, err := s.repo.GetByTag(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hotels by tag: %w", err)
	}
	return hotels, nil
}

func (s *ServiceImpl) GetByPriceRange(ctx context.Context, minPrice, maxPrice int) ([]types.Hotel, error) {
	hotels, err := s.repo.GetByPriceRange(ctx, minPrice, maxPrice)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hotels by price range: %w", err)
	}
	return hotels, nil
}
