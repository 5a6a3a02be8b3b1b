package services

import (
	"context"
	"errors"
	"testing"

	"github.com/bluehands/branchfinder/internal/domain/entities"
	"github.com/bluehands/branchfinder/internal/domain/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCacheWarmingService_WarmsEveryRegion(t *testing.T) {
	repo := new(MockBranchRepository)
	repo.On("ListRegions", mock.Anything).Return([]string{"서울", "부산", "경기"}, nil)
	repo.On("Search", mock.Anything, repositories.QueryDescriptor{Region: "서울"}).Return([]entities.BranchRecord{{ID: 1}}, nil)
	repo.On("Search", mock.Anything, repositories.QueryDescriptor{Region: "부산"}).Return(nil, errors.New("timeout"))
	repo.On("Search", mock.Anything, repositories.QueryDescriptor{Region: "경기"}).Return([]entities.BranchRecord{}, nil)

	n, err := NewCacheWarmingService(repo).WarmCache(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	repo.AssertNumberOfCalls(t, "Search", 3)
}

func TestCacheWarmingService_RegionsError(t *testing.T) {
	repo := new(MockBranchRepository)
	repo.On("ListRegions", mock.Anything).Return(nil, errors.New("db down"))

	_, err := NewCacheWarmingService(repo).WarmCache(context.Background())

	assert.ErrorContains(t, err, "db down")
	repo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}
