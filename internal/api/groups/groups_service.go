package groups

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gnkhotels/go-hotel-curation/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	GetAll(ctx context.Context, includeDeleted bool) ([]types.Group, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Group, error)
	GetPublishedWithHotels(ctx context.Context) ([]types.GroupWithHotels, error)
	Create(ctx context.Context, params types.CreateGroupParams) (*types.Group, error)
	Update(ctx context.Context, id uuid.UUID, params types.UpdateGroupParams) (*types.Group, error)
	SetHotels(ctx context.Context, id uuid.UUID, hotelIDs []uuid.UUID) error
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

func (s *ServiceImpl) GetAll(ctx context.Context, includeDeleted bool) ([]types.Group, error) {
	groups, err := s.repo.GetAll(ctx, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch groups: %w", err)
	}
	return groups, nil
}

func (s *ServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*types.Group, error) {
	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch group: %w", err)
	}
	return group, nil
}

func (s *ServiceImpl) GetPublishedWithHotels(ctx context.Context) ([]types.GroupWithHotels, error) {
	groups, err := s.repo.GetPublishedWithHotels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch published groups: %w", err)
	}
	return groups, nil
}

func (s *ServiceImpl) Create(ctx context.Context, params types.CreateGroupParams) (*types.Group, error) {
	l := s.logger.With(slog.String("method", "Create"), slog.String("title", params.Title))

	group, err := s.repo.Create(ctx, params)
	if err != nil {
		l.ErrorContext(ctx, "Failed to create group", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return group, nil
}

func (s *ServiceImpl) Update(ctx context.Context, id uuid.UUID, params types.UpdateGroupParams) (*types.Group, error) {
	group, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return nil, fmt.Errorf("failed to update group: %w", err)
	}
	return group, nil
}

func (s *ServiceImpl) SetHotels(ctx context.Context, id uuid.UUID, hotelIDs []uuid.UUID) error {
	if err := s.repo.SetHotels(ctx, id, hotelIDs); err != nil {
		return fmt.Errorf("failed to set group hotels: %w", err)
	}
	return nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}

func (s *ServiceImpl) HardDelete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.HardDelete(ctx, id); err != nil {
		return fmt.Errorf("failed to hard-delete group: %w", err)
	}
	return nil
}

func (s *ServiceImpl) Restore(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Restore(ctx, id); err != nil {
		return fmt.Errorf("failed to restore group: %w", err)
	}
	return nil
}
