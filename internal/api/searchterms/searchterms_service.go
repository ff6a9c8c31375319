package searchterms

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gnkhotels/go-hotel-curation/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	GetAll(ctx context.Context, includeDeleted bool) ([]types.SearchTerm, error)
	Create(ctx context.Context, params types.CreateSearchTermParams) (*types.SearchTerm, error)
	Update(ctx context.Context, id uuid.UUID, params types.UpdateSearchTermParams) (*types.SearchTerm, error)
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

func (s *ServiceImpl) GetAll(ctx context.Context, includeDeleted bool) ([]types.SearchTerm, error) {
	terms, err := s.repo.GetAll(ctx, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch search terms: %w", err)
	}
	return terms, nil
}

func (s *ServiceImpl) Create(ctx context.Context, params types.CreateSearchTermParams) (*types.SearchTerm, error) {
	term, err := s.repo.Create(ctx, params)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to create search term", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create search term: %w", err)
	}
	return term, nil
}

func (s *ServiceImpl) Update(ctx context.Context, id uuid.UUID, params types.UpdateSearchTermParams) (*types.SearchTerm, error) {
	term, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return nil, fmt.Errorf("failed to update search term: %w", err)
	}
	return term, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete search term: %w", err)
	}
	return nil
}

func (s *ServiceImpl) HardDelete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.HardDelete(ctx, id); err != nil {
		return fmt.Errorf("failed to hard-delete search term: %w", err)
	}
	return nil
}

func (s *ServiceImpl) Restore(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Restore(ctx, id); err != nil {
		return fmt.Errorf("failed to restore search term: %w", err)
	}
	return nil
}
