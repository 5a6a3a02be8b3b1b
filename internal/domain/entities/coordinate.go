package entities

import (
	"math"
	"strconv"
	"strings"
)

// Coordinate represents a WGS84 latitude/longitude pair in degrees
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DefaultMapCenter is used when neither a result nor the user location is known (Gangnam Station)
var DefaultMapCenter = Coordinate{Latitude: 37.4979, Longitude: 127.0276}

// IsFinite reports whether both components are real numbers
func (c Coordinate) IsFinite() bool {
	return isFinite(c.Latitude) && isFinite(c.Longitude)
}

// RawCoordinate holds coordinates exactly as stored by the branch import.
// Values are free text and may be empty or unparseable.
type RawCoordinate struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// Parse converts the raw values into a Coordinate. It returns false when either
// component is missing or is not a finite number.
func (r RawCoordinate) Parse() (Coordinate, bool) {
	lat, ok := parseComponent(r.Latitude)
	if !ok {
		return Coordinate{}, false
	}
	lng, ok := parseComponent(r.Longitude)
	if !ok {
		return Coordinate{}, false
	}
	return Coordinate{Latitude: lat, Longitude: lng}, true
}

// RawFrom formats a Coordinate the way the import stores it
func RawFrom(c Coordinate) RawCoordinate {
	return RawCoordinate{
		Latitude:  strconv.FormatFloat(c.Latitude, 'f', -1, 64),
		Longitude: strconv.FormatFloat(c.Longitude, 'f', -1, 64),
	}
}

func parseComponent(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || !isFinite(f) {
		return 0, false
	}
	return f, true
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
