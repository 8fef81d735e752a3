package track

import (
	"time"

	"github.com/google/uuid"
)

// Point is one recorded GPS coordinate. Identity inside a Store is
// positional; ID stays stable across edits and undo so callers can
// correlate points independent of their current index.
type Point struct {
	ID        uuid.UUID
	Latitude  float64
	Longitude float64
	Elevation float64
	Time      time.Time
}

// NewPoint creates a Point with a fresh identity.
func NewPoint(lat, lon, ele float64, t time.Time) Point {
	return Point{
		ID:        uuid.New(),
		Latitude:  lat,
		Longitude: lon,
		Elevation: ele,
		Time:      t,
	}
}

// HasTime reports whether the point carries a timestamp.
func (p Point) HasTime() bool {
	return !p.Time.IsZero()
}
