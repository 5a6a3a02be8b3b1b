package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchCriteria_Normalized(t *testing.T) {
	c := SearchCriteria{
		Term:         "  Gangnam ",
		Capabilities: []CapabilityKey{CapabilityNLine, CapabilityEV},
		Region:       "(전체)",
	}

	got := c.Normalized()
	assert.Equal(t, "Gangnam", got.Term)
	assert.Equal(t, []CapabilityKey{CapabilityEV, CapabilityNLine}, got.Capabilities)
	assert.Equal(t, RegionAll, got.Region)
	assert.False(t, got.HasRegion())
}

func TestSearchCriteria_IsEmpty(t *testing.T) {
	assert.True(t, SearchCriteria{}.IsEmpty())
	assert.True(t, SearchCriteria{Term: "  ", Region: RegionAll}.IsEmpty())
	assert.False(t, SearchCriteria{Region: "서울"}.IsEmpty())
	assert.False(t, SearchCriteria{Capabilities: []CapabilityKey{CapabilityEV}}.IsEmpty())
}

func TestSearchCriteria_FingerprintIgnoresCapabilityOrder(t *testing.T) {
	a := SearchCriteria{Capabilities: []CapabilityKey{CapabilityEV, CapabilityFrame}, Region: "서울"}
	b := SearchCriteria{Capabilities: []CapabilityKey{CapabilityFrame, CapabilityEV}, Region: " 서울"}
	c := SearchCriteria{Capabilities: []CapabilityKey{CapabilityEV}, Region: "서울"}

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	assert.Equal(t, SearchCriteria{}.Fingerprint(), SearchCriteria{Region: RegionAll}.Fingerprint())
}
