package track

import (
	"time"

	"github.com/golang/geo/s2"
)

const (
	earthRadiusMeters = 6371000.0

	// smoothingWindow is the centered moving-average window applied to
	// elevations before the ascent sum. Endpoints keep their raw values.
	smoothingWindow = 5

	// ascentThresholdMeters filters GPS elevation jitter: only smoothed
	// climbs above this per-step delta count toward the total.
	ascentThresholdMeters = 0.3
)

// Stats summarizes a track for display.
type Stats struct {
	DistanceKm float64
	AscentM    float64
	Duration   time.Duration
}

// Distance2D returns the great-circle distance between two points in
// meters, ignoring elevation.
func Distance2D(a, b Point) float64 {
	from := s2.LatLngFromDegrees(a.Latitude, a.Longitude)
	to := s2.LatLngFromDegrees(b.Latitude, b.Longitude)
	return from.Distance(to).Radians() * earthRadiusMeters
}

// CumulativeDistances returns the running 2D distance in kilometers,
// one entry per point, starting at 0.
func CumulativeDistances(points []Point) []float64 {
	if len(points) == 0 {
		return nil
	}
	out := make([]float64, len(points))
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += Distance2D(points[i-1], points[i])
		out[i] = total / 1000.0
	}
	return out
}

// ComputeStats derives total time, 2D distance and cumulative ascent.
// Duration spans the first to the last timestamped point; tracks
// without timestamps report zero duration.
func ComputeStats(points []Point) Stats {
	var stats Stats
	if len(points) < 2 {
		return stats
	}

	dists := CumulativeDistances(points)
	stats.DistanceKm = dists[len(dists)-1]

	elevations := make([]float64, len(points))
	for i, p := range points {
		elevations[i] = p.Elevation
	}
	smoothed := smoothElevations(elevations, smoothingWindow)
	for i := 1; i < len(smoothed); i++ {
		if diff := smoothed[i] - smoothed[i-1]; diff > ascentThresholdMeters {
			stats.AscentM += diff
		}
	}

	var first, last time.Time
	for _, p := range points {
		if !p.HasTime() {
			continue
		}
		if first.IsZero() {
			first = p.Time
		}
		last = p.Time
	}
	if !first.IsZero() && last.After(first) {
		stats.Duration = last.Sub(first)
	}

	return stats
}

// smoothElevations applies a centered moving average. The half-window
// at each end keeps the raw values so the track endpoints stay exact.
func smoothElevations(elevations []float64, window int) []float64 {
	if window < 3 || len(elevations) < window {
		return elevations
	}

	out := make([]float64, len(elevations))
	copy(out, elevations)

	half := window / 2
	for i := half; i < len(elevations)-half; i++ {
		sum := 0.0
		for j := i - half; j <= i+half; j++ {
			sum += elevations[j]
		}
		out[i] = sum / float64(window)
	}
	return out
}
