package track

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance2D(t *testing.T) {
	// One degree of latitude is roughly 111 km.
	a := NewPoint(35.0, 139.0, 0, time.Time{})
	b := NewPoint(36.0, 139.0, 0, time.Time{})

	dist := Distance2D(a, b)
	assert.InDelta(t, 111195, dist, 500)

	// Elevation never contributes.
	c := NewPoint(35.0, 139.0, 3000, time.Time{})
	assert.InDelta(t, 0, Distance2D(a, c), 0.001)
}

func TestCumulativeDistances(t *testing.T) {
	assert.Nil(t, CumulativeDistances(nil))

	points := []Point{
		NewPoint(35.00, 139.0, 0, time.Time{}),
		NewPoint(35.01, 139.0, 0, time.Time{}),
		NewPoint(35.02, 139.0, 0, time.Time{}),
	}
	dists := CumulativeDistances(points)

	require.Len(t, dists, len(points))
	assert.Equal(t, 0.0, dists[0])
	for i := 1; i < len(dists); i++ {
		assert.GreaterOrEqual(t, dists[i], dists[i-1])
	}
	assert.InDelta(t, 2*dists[1], dists[2], 0.001)
}

func TestComputeStatsDuration(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	points := []Point{
		NewPoint(35.00, 139.0, 100, base),
		NewPoint(35.01, 139.0, 100, base.Add(30*time.Minute)),
		NewPoint(35.02, 139.0, 100, base.Add(90*time.Minute)),
	}

	stats := ComputeStats(points)
	assert.Equal(t, 90*time.Minute, stats.Duration)
	assert.Greater(t, stats.DistanceKm, 2.0)
}

func TestComputeStatsNoTimestamps(t *testing.T) {
	points := []Point{
		NewPoint(35.00, 139.0, 100, time.Time{}),
		NewPoint(35.01, 139.0, 100, time.Time{}),
	}

	stats := ComputeStats(points)
	assert.Equal(t, time.Duration(0), stats.Duration)
}

func TestComputeStatsAscentThreshold(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	// A steady climb: 10 m per step survives smoothing and the jitter
	// threshold.
	climb := make([]Point, 0, 10)
	for i := 0; i < 10; i++ {
		climb = append(climb, NewPoint(
			35.0+float64(i)*0.001, 139.0, float64(i*10),
			base.Add(time.Duration(i)*time.Minute)))
	}
	stats := ComputeStats(climb)
	assert.InDelta(t, 90, stats.AscentM, 5)

	// Flat track with sub-threshold jitter accumulates nothing.
	flat := make([]Point, 0, 10)
	for i := 0; i < 10; i++ {
		ele := 100.0
		if i%2 == 1 {
			ele = 100.2
		}
		flat = append(flat, NewPoint(
			35.0+float64(i)*0.001, 139.0, ele,
			base.Add(time.Duration(i)*time.Minute)))
	}
	stats = ComputeStats(flat)
	assert.Equal(t, 0.0, stats.AscentM)
}

func TestComputeStatsTooFewPoints(t *testing.T) {
	assert.Equal(t, Stats{}, ComputeStats(nil))
	assert.Equal(t, Stats{}, ComputeStats([]Point{NewPoint(35, 139, 0, time.Time{})}))
}

func TestSmoothElevations(t *testing.T) {
	t.Run("short input returned unchanged", func(t *testing.T) {
		in := []float64{1, 2, 3}
		assert.Equal(t, in, smoothElevations(in, 5))
	})

	t.Run("endpoints keep raw values", func(t *testing.T) {
		in := []float64{0, 10, 20, 30, 40, 50, 60}
		out := smoothElevations(in, 5)

		require.Len(t, out, len(in))
		assert.Equal(t, 0.0, out[0])
		assert.Equal(t, 10.0, out[1])
		assert.Equal(t, 50.0, out[5])
		assert.Equal(t, 60.0, out[6])

		// Interior values average the window; a linear ramp is its own
		// moving average.
		assert.InDelta(t, 20.0, out[2], 0.001)
		assert.InDelta(t, 30.0, out[3], 0.001)
	})

	t.Run("spike gets flattened", func(t *testing.T) {
		in := []float64{100, 100, 200, 100, 100, 100, 100}
		out := smoothElevations(in, 5)
		assert.InDelta(t, 120, out[2], 0.001)
	})
}
