package repositories

import (
	"testing"

	"github.com/bluehands/branchfinder/internal/domain/entities"
	"github.com/stretchr/testify/assert"
)

func TestQueryDescriptor_Unrestricted(t *testing.T) {
	assert.True(t, QueryDescriptor{}.Unrestricted())
	assert.False(t, QueryDescriptor{Term: "Gangnam"}.Unrestricted())
	assert.False(t, QueryDescriptor{Region: "서울"}.Unrestricted())
}

func TestQueryDescriptor_CacheKeyDistinguishesFields(t *testing.T) {
	term := QueryDescriptor{Term: "서울"}
	region := QueryDescriptor{Region: "서울"}
	caps := QueryDescriptor{Capabilities: []entities.CapabilityKey{entities.CapabilityEV}}

	assert.NotEqual(t, term.CacheKey(), region.CacheKey())
	assert.NotEqual(t, term.CacheKey(), caps.CacheKey())
	assert.Equal(t, term.CacheKey(), QueryDescriptor{Term: "서울"}.CacheKey())
	assert.Len(t, term.CacheKey(), 64)
}
