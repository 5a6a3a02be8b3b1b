package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapabilityKey_EveryMemberHasLabelAndColumn(t *testing.T) {
	for _, k := range AllCapabilities {
		assert.NotEmpty(t, k.Label(), k)
		col, err := k.Column()
		require.NoError(t, err)
		assert.Equal(t, string(k), col)
	}
}

func TestCapabilityKey_RejectsUnknown(t *testing.T) {
	_, ok := ParseCapabilityKey("is_ev; DROP TABLE branches")
	assert.False(t, ok)

	_, err := CapabilityKey("is_turbo").Column()
	assert.Error(t, err)
}

func TestSortCapabilities_OrdersAndDedupes(t *testing.T) {
	got := SortCapabilities([]CapabilityKey{CapabilityNLine, CapabilityEV, CapabilityNLine, CapabilityFrame})
	assert.Equal(t, []CapabilityKey{CapabilityEV, CapabilityFrame, CapabilityNLine}, got)
}

func TestCapabilityFlags_Enabled(t *testing.T) {
	flags := CapabilityFlags{CapabilityNLine: true, CapabilityEV: true, CapabilityFrame: false}

	assert.Equal(t, []CapabilityKey{CapabilityEV, CapabilityNLine}, flags.Enabled())
	assert.True(t, flags.Has(CapabilityEV))
	assert.False(t, flags.Has(CapabilityHydrogen))
}

func TestCategoryForType(t *testing.T) {
	assert.Equal(t, CategorySpecialist, CategoryForType(1))
	assert.Equal(t, CategoryGeneral, CategoryForType(2))
	assert.Equal(t, CategoryHighTech, CategoryForType(3))
	assert.Equal(t, CategoryDefault, CategoryForType(0))
	assert.Equal(t, CategoryDefault, CategoryForType(42))
	assert.Equal(t, "gray", CategoryForType(-1).PinColor())
}

func TestCapabilityOptions(t *testing.T) {
	options := CapabilityOptions()
	require.Len(t, options, len(AllCapabilities))
	assert.Equal(t, CapabilityEV, options[0].Key)
	assert.Equal(t, "⚡ 전기차 전담", options[0].Label)
}
