package hotels

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gnkhotels/go-hotel-curation/internal/types"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetAll(ctx context.Context, includeDeleted bool) ([]types.Hotel, error) {
	args := m.Called(ctx, includeDeleted)
	if v := args.Get(0); v != nil {
		return v.([]types.Hotel), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*types.Hotel, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*types.Hotel), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, params types.CreateHotelParams) (*types.Hotel, error) {
	args := m.Called(ctx, params)
	if v := args.Get(0); v != nil {
		return v.(*types.Hotel), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id uuid.UUID, params types.UpdateHotelParams) (*types.Hotel, error) {
	args := m.Called(ctx, id, params)
	if v := args.Get(0); v != nil {
		return v.(*types.Hotel), args.Error(1)
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

func (m *MockRepository) Search(ctx context.Context, filter types.HotelFilter) ([]types.Hotel, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.([]types.Hotel), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) GetByTag(ctx context.Context, tag string) ([]types.Hotel, error) {
	args := m.Called(ctx, tag)
	if v := args.Get(0); v != nil {
		return v.([]types.Hotel), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) GetByPriceRange(ctx context.Context, minPrice, maxPrice int) ([]types.Hotel, error) {
	args := m.Called(ctx, minPrice, maxPrice)
	if v := args.Get(0); v != nil {
		return v.([]types.Hotel), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ListRefs(ctx context.Context) ([]types.HotelRef, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]types.HotelRef), args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestService(repo Repository) *ServiceImpl {
	return NewService(repo, slog.New(slog.DiscardHandler))
}

func TestCreate_ClampsScoreIntoBand(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  float64
	}{
		{"above band", 12.5, 10},
		{"below band", -3, 0},
		{"inside band", 8.7, 8.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			svc := newTestService(repo)

			repo.On("Create", mock.Anything, mock.MatchedBy(func(p types.CreateHotelParams) bool {
				return p.Score == tt.want
			})).Return(&types.Hotel{Name: "Finesse Resort", Score: tt.want}, nil)

			got, err := svc.Create(context.Background(), types.CreateHotelParams{
				Name: "Finesse Resort", Location: "Bodrum", Score: tt.score,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Score)
			repo.AssertExpectations(t)
		})
	}
}

func TestGetByID_PassesThroughMiss(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, nil)

	got, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, got)
	repo.AssertExpectations(t)
}
