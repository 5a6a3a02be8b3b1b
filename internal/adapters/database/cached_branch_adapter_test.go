package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bluehands/branchfinder/internal/adapters/cache"
	"github.com/bluehands/branchfinder/internal/domain/entities"
	"github.com/bluehands/branchfinder/internal/domain/repositories"
	apperrors "github.com/bluehands/branchfinder/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBranchRepository struct {
	mock.Mock
}

func (m *MockBranchRepository) ListRegions(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBranchRepository) Search(ctx context.Context, q repositories.QueryDescriptor) ([]entities.BranchRecord, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.BranchRecord), args.Error(1)
}

func newCachedAdapter(t *testing.T, repo repositories.BranchRepository) *CachedBranchAdapter {
	t.Helper()
	store := cache.NewMemoryAdapter(0, 0)
	t.Cleanup(store.Close)
	return NewCachedBranchAdapter(repo, store, time.Hour, time.Minute, nil)
}

func TestCachedBranchAdapter_SearchHitsRepositoryOncePerDescriptor(t *testing.T) {
	repo := new(MockBranchRepository)
	gangnam := repositories.QueryDescriptor{Term: "Gangnam"}
	busan := repositories.QueryDescriptor{Region: "부산"}
	repo.On("Search", mock.Anything, gangnam).Return([]entities.BranchRecord{{ID: 1, Name: "Gangnam"}}, nil).Once()
	repo.On("Search", mock.Anything, busan).Return([]entities.BranchRecord{{ID: 2, Name: "Haeundae"}}, nil).Once()
	adapter := newCachedAdapter(t, repo)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := adapter.Search(ctx, gangnam)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got[0].ID)
	}
	got, err := adapter.Search(ctx, busan)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got[0].ID, "distinct criteria are never served from another entry")

	repo.AssertExpectations(t)
}

func TestCachedBranchAdapter_ErrorsAreNotCached(t *testing.T) {
	repo := new(MockBranchRepository)
	repo.On("ListRegions", mock.Anything).Return(nil, apperrors.NewUnavailableError("down", nil)).Once()
	repo.On("ListRegions", mock.Anything).Return([]string{"서울"}, nil).Once()
	adapter := newCachedAdapter(t, repo)
	ctx := context.Background()

	_, err := adapter.ListRegions(ctx)
	require.Error(t, err)

	regions, err := adapter.ListRegions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"서울"}, regions)

	regions, err = adapter.ListRegions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"서울"}, regions)
	repo.AssertNumberOfCalls(t, "ListRegions", 2)
}

func TestCachedBranchAdapter_CapabilityFlagsSurviveCache(t *testing.T) {
	repo := new(MockBranchRepository)
	record := entities.BranchRecord{
		ID:           5,
		Coordinate:   entities.RawCoordinate{Latitude: "37.5", Longitude: "127.0"},
		Capabilities: entities.CapabilityFlags{entities.CapabilityHydrogen: true},
	}
	repo.On("Search", mock.Anything, mock.Anything).Return([]entities.BranchRecord{record}, nil).Once()
	adapter := newCachedAdapter(t, repo)
	ctx := context.Background()

	_, err := adapter.Search(ctx, repositories.QueryDescriptor{})
	require.NoError(t, err)
	cached, err := adapter.Search(ctx, repositories.QueryDescriptor{})
	require.NoError(t, err)

	assert.Equal(t, []entities.BranchRecord{record}, cached)
}

func TestCachedBranchAdapter_Invalidate(t *testing.T) {
	repo := new(MockBranchRepository)
	repo.On("ListRegions", mock.Anything).Return([]string{"서울"}, nil).Twice()
	repo.On("Search", mock.Anything, mock.Anything).Return([]entities.BranchRecord{{ID: 1}}, nil).Twice()
	adapter := newCachedAdapter(t, repo)
	ctx := context.Background()
	q := repositories.QueryDescriptor{Region: "서울"}

	_, _ = adapter.ListRegions(ctx)
	_, _ = adapter.Search(ctx, q)

	n, err := adapter.Invalidate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, _ = adapter.ListRegions(ctx)
	_, _ = adapter.Search(ctx, q)

	repo.AssertExpectations(t)
}

func TestUnavailableBranchAdapter(t *testing.T) {
	adapter := NewUnavailableBranchAdapter(errors.New("password authentication failed"))

	_, err := adapter.Search(context.Background(), repositories.QueryDescriptor{})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnavailable))

	_, err = adapter.ListRegions(context.Background())
	assert.ErrorContains(t, err, "password authentication failed")
}
