package entities

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRawCoordinate_Parse(t *testing.T) {
	tests := []struct {
		name string
		raw  RawCoordinate
		want Coordinate
		ok   bool
	}{
		{"valid", RawCoordinate{"37.4979", "127.0276"}, Coordinate{37.4979, 127.0276}, true},
		{"surrounding whitespace", RawCoordinate{" 35.1 ", "\t129.0"}, Coordinate{35.1, 129.0}, true},
		{"missing longitude", RawCoordinate{"37.5", ""}, Coordinate{}, false},
		{"non numeric", RawCoordinate{"north", "127.0"}, Coordinate{}, false},
		{"nan", RawCoordinate{"NaN", "127.0"}, Coordinate{}, false},
		{"infinite", RawCoordinate{"37.5", "+Inf"}, Coordinate{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.raw.Parse()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRawFrom_RoundTripsThroughParse(t *testing.T) {
	c := Coordinate{Latitude: 37.4979, Longitude: 127.0276}

	got, ok := RawFrom(c).Parse()
	assert.True(t, ok)
	assert.Equal(t, c, got)
}

func TestCoordinate_IsFinite(t *testing.T) {
	assert.True(t, DefaultMapCenter.IsFinite())
	assert.False(t, Coordinate{Latitude: math.NaN(), Longitude: 1}.IsFinite())
}
