package pricetags

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gnkhotels/go-hotel-curation/internal/api"
	"github.com/gnkhotels/go-hotel-curation/internal/types"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetAll(ctx context.Context, includeDeleted bool) ([]types.PriceTag, error) {
	args := m.Called(ctx, includeDeleted)
	if v := args.Get(0); v != nil {
		return v.([]types.PriceTag), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*types.PriceTag, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*types.PriceTag), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, label, slug string, minPrice, maxPrice int) (*types.PriceTag, error) {
	args := m.Called(ctx, label, slug, minPrice, maxPrice)
	if v := args.Get(0); v != nil {
		return v.(*types.PriceTag), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id uuid.UUID, label, slug string, minPrice, maxPrice int) (*types.PriceTag, error) {
	args := m.Called(ctx, id, label, slug, minPrice, maxPrice)
	if v := args.Get(0); v != nil {
		return v.(*types.PriceTag), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) Restore(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func newTestService(repo Repository) *ServiceImpl {
	return NewService(repo, slog.New(slog.DiscardHandler))
}

func TestCreate_DerivesSlugFromBounds(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	expected := &types.PriceTag{Label: "Budget", Slug: "0-250", MinPrice: 0, MaxPrice: 250}
	repo.On("Create", mock.Anything, "Budget", "0-250", 0, 250).Return(expected, nil)

	got, err := svc.Create(context.Background(), types.CreatePriceTagParams{
		Label: "Budget", MinPrice: 0, MaxPrice: 250,
	})
	require.NoError(t, err)
	assert.Equal(t, "0-250", got.Slug)
	repo.AssertExpectations(t)
}

func TestCreate_RejectsInvertedBounds(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), types.CreatePriceTagParams{
		Label: "Broken", MinPrice: 500, MaxPrice: 100,
	})
	assert.True(t, errors.Is(err, ErrInvalidBounds))
	repo.AssertNotCalled(t, "Create")
}

func TestUpdate_RecomputesSlugWhenBoundChanges(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	id := uuid.New()
	current := &types.PriceTag{ID: id, Label: "Mid-range", Slug: "250-500", MinPrice: 250, MaxPrice: 500}
	repo.On("GetByID", mock.Anything, id).Return(current, nil)

	newMax := 750
	updated := &types.PriceTag{ID: id, Label: "Mid-range", Slug: "250-750", MinPrice: 250, MaxPrice: 750}
	repo.On("Update", mock.Anything, id, "Mid-range", "250-750", 250, 750).Return(updated, nil)

	got, err := svc.Update(context.Background(), id, types.UpdatePriceTagParams{MaxPrice: &newMax})
	require.NoError(t, err)
	assert.Equal(t, "250-750", got.Slug)
	repo.AssertExpectations(t)
}

func TestUpdate_LabelOnlyKeepsSlug(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	id := uuid.New()
	current := &types.PriceTag{ID: id, Label: "Luxury", Slug: "750-100000", MinPrice: 750, MaxPrice: types.MaxPriceSentinel}
	repo.On("GetByID", mock.Anything, id).Return(current, nil)

	label := "Ultra luxury"
	updated := &types.PriceTag{ID: id, Label: label, Slug: "750-100000", MinPrice: 750, MaxPrice: types.MaxPriceSentinel}
	repo.On("Update", mock.Anything, id, label, "750-100000", 750, types.MaxPriceSentinel).Return(updated, nil)

	got, err := svc.Update(context.Background(), id, types.UpdatePriceTagParams{Label: &label})
	require.NoError(t, err)
	assert.Equal(t, "750-100000", got.Slug)
	repo.AssertExpectations(t)
}

func TestUpdate_UnknownIDIsNotFound(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, nil)

	label := "Anything"
	_, err := svc.Update(context.Background(), id, types.UpdatePriceTagParams{Label: &label})
	assert.True(t, errors.Is(err, api.ErrNotFound))
	repo.AssertNotCalled(t, "Update")
}

func TestPriceTagSlug_TopBracketUsesSentinel(t *testing.T) {
	assert.Equal(t, "750-100000", types.PriceTagSlug(750, types.MaxPriceSentinel))
	assert.Equal(t, "0-250", types.PriceTagSlug(0, 250))
}
