package widgets

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakikimi/gpxhandle/internal/tiles"
	"github.com/sakikimi/gpxhandle/internal/track"
)

func newTestMap(t *testing.T) *TrackMap {
	t.Helper()
	test.NewApp()
	m := NewTrackMap()
	m.Resize(fyne.NewSize(400, 300))
	return m
}

func TestTrackMapZoomClamped(t *testing.T) {
	m := newTestMap(t)

	for i := 0; i < 30; i++ {
		m.ZoomIn()
	}
	assert.Equal(t, maxZoom, m.Zoom())

	for i := 0; i < 30; i++ {
		m.ZoomOut()
	}
	assert.Equal(t, minZoom, m.Zoom())
}

func TestTrackMapAutoFit(t *testing.T) {
	m := newTestMap(t)

	t.Run("single point centers and zooms in", func(t *testing.T) {
		m.SetPoints([]track.Point{
			track.NewPoint(35.5, 139.5, 0, time.Time{}),
		})
		assert.Equal(t, 35.5, m.centerLat)
		assert.Equal(t, 139.5, m.centerLon)
		assert.Equal(t, singlePointZoom, m.Zoom())
	})

	t.Run("span picks zoom with margin", func(t *testing.T) {
		m.SetPoints([]track.Point{
			track.NewPoint(35.500, 139.5, 0, time.Time{}),
			track.NewPoint(35.510, 139.5, 0, time.Time{}),
		})
		// A 0.01 degree span fits zoom 15, minus one step of margin.
		assert.Equal(t, 14.0, m.Zoom())
		assert.InDelta(t, 35.505, m.centerLat, 1e-9)
	})

	t.Run("no points keeps viewport", func(t *testing.T) {
		m.SetPoints(nil)
		assert.Equal(t, 14.0, m.Zoom())
	})
}

func TestTrackMapTappedTopmostWins(t *testing.T) {
	m := newTestMap(t)

	// Two markers on the same spot and one far away.
	m.SetPoints([]track.Point{
		track.NewPoint(35.500, 139.500, 0, time.Time{}),
		track.NewPoint(35.500, 139.500, 0, time.Time{}),
		track.NewPoint(35.800, 139.800, 0, time.Time{}),
	})

	var tapped []int
	m.SetOnSelect(func(index int) { tapped = append(tapped, index) })

	pos := m.project(35.500, 139.500, m.Size())
	m.Tapped(&fyne.PointEvent{Position: pos})

	require.Equal(t, []int{1}, tapped)

	// Empty map area is ignored.
	m.Tapped(&fyne.PointEvent{Position: fyne.NewPos(5, 5)})
	assert.Equal(t, []int{1}, tapped)
}

func TestTrackMapSetSelected(t *testing.T) {
	m := newTestMap(t)
	m.SetPoints([]track.Point{
		track.NewPoint(35.5, 139.5, 0, time.Time{}),
		track.NewPoint(35.6, 139.6, 0, time.Time{}),
	})

	m.SetSelected([]int{1})
	_, ok := m.selected[1]
	assert.True(t, ok)

	// A point update drops the stale highlight set.
	m.UpdatePoints(m.points[:1])
	assert.Empty(t, m.selected)
}

func TestTrackMapTileSource(t *testing.T) {
	m := newTestMap(t)
	assert.Equal(t, tiles.DefaultKey, m.TileSource().Key)

	photo, ok := tiles.ByKey("gsi_photo")
	require.True(t, ok)
	m.SetTileSource(photo)
	assert.Equal(t, "gsi_photo", m.TileSource().Key)
}

func TestMercatorXY(t *testing.T) {
	x, y := mercatorXY(0, 0)
	assert.InDelta(t, 0.5, x, 1e-9)
	assert.InDelta(t, 0.5, y, 1e-9)

	// Polar latitudes clamp to the projection limit instead of blowing
	// up.
	_, yn := mercatorXY(90, 0)
	_, ys := mercatorXY(-90, 0)
	assert.InDelta(t, 0.0, yn, 1e-6)
	assert.InDelta(t, 1.0, ys, 1e-6)
}

func TestZoomForSpan(t *testing.T) {
	tests := []struct {
		span float64
		want float64
	}{
		{0, 18},
		{0.002, 17},
		{0.01, 15},
		{0.1, 12},
		{0.7, 9},
		{10, 5},
		{100, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, zoomForSpan(tt.span), "span %v", tt.span)
	}
}
