package app

import (
	"errors"
	"testing"
	"time"

	"github.com/bluehands/branchfinder/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestSearchOptions(t *testing.T) {
	opts := SearchOptions(config.SearchConfig{
		PageSize:        7,
		BlockSize:       4,
		FallbackLat:     35.1796,
		FallbackLng:     129.0756,
		FallbackRegions: []string{"부산"},
		RequireCriteria: false,
		ResultsTTL:      time.Minute,
	})

	assert.Equal(t, 7, opts.PageSize)
	assert.Equal(t, 4, opts.BlockSize)
	assert.InDelta(t, 35.1796, opts.FallbackCenter.Latitude, 1e-9)
	assert.InDelta(t, 129.0756, opts.FallbackCenter.Longitude, 1e-9)
	assert.Equal(t, []string{"부산"}, opts.FallbackRegions)
	assert.False(t, opts.RequireCriteria)
}

func TestApp_CloseRunsInReverseAndJoinsErrors(t *testing.T) {
	var order []int
	boom := errors.New("boom")

	a := &App{closers: []func() error{
		func() error { order = append(order, 1); return nil },
		func() error { order = append(order, 2); return boom },
		func() error { order = append(order, 3); return nil },
	}}

	err := a.Close()

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []int{3, 2, 1}, order)
}

func TestLongestTTL(t *testing.T) {
	got := longestTTL(config.SearchConfig{
		RegionsTTL: time.Hour,
		ResultsTTL: 10 * time.Minute,
		SessionTTL: 2 * time.Hour,
	})
	assert.Equal(t, 2*time.Hour, got)
}
