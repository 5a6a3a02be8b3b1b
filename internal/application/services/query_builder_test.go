package services

import (
	"testing"

	"github.com/bluehands/branchfinder/internal/domain/entities"
	"github.com/bluehands/branchfinder/internal/domain/repositories"
	apperrors "github.com/bluehands/branchfinder/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuery_TermOnly(t *testing.T) {
	q, err := BuildQuery(entities.SearchCriteria{Term: "Gangnam", Region: entities.RegionAll})
	require.NoError(t, err)

	assert.Equal(t, repositories.QueryDescriptor{Term: "Gangnam"}, q)
}

func TestBuildQuery_AllConditions(t *testing.T) {
	q, err := BuildQuery(entities.SearchCriteria{
		Term:         " 강남 ",
		Capabilities: []entities.CapabilityKey{entities.CapabilityNLine, entities.CapabilityEV},
		Region:       "서울",
	})
	require.NoError(t, err)

	assert.Equal(t, "강남", q.Term)
	assert.Equal(t, []entities.CapabilityKey{entities.CapabilityEV, entities.CapabilityNLine}, q.Capabilities)
	assert.Equal(t, "서울", q.Region)
}

func TestBuildQuery_NoConditionsIsUnrestricted(t *testing.T) {
	q, err := BuildQuery(entities.SearchCriteria{Region: "(전체)"})
	require.NoError(t, err)
	assert.True(t, q.Unrestricted())
}

func TestBuildQuery_RejectsUnknownCapability(t *testing.T) {
	_, err := BuildQuery(entities.SearchCriteria{
		Capabilities: []entities.CapabilityKey{entities.CapabilityEV, "is_ev OR 1=1"},
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidCapability))
}

func TestParseCapabilities(t *testing.T) {
	keys, err := ParseCapabilities([]string{"is_frame", " ", "is_ev", "is_frame"})
	require.NoError(t, err)
	assert.Equal(t, []entities.CapabilityKey{entities.CapabilityEV, entities.CapabilityFrame}, keys)

	_, err = ParseCapabilities([]string{"is_turbo"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidCapability))
}
