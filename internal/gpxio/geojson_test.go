package gpxio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakikimi/gpxhandle/internal/logger"
	"github.com/sakikimi/gpxhandle/internal/track"
)

func TestExportGeoJSON(t *testing.T) {
	codec := NewCodec(logger.NoOp{})

	store := track.NewStore([]track.Point{
		track.NewPoint(35.10, 139.20, 10, time.Time{}),
		track.NewPoint(35.11, 139.21, 20, time.Time{}),
		track.NewPoint(35.12, 139.22, 30, time.Time{}),
	}, "Harbor Walk")

	dst := filepath.Join(t.TempDir(), "harbor.geojson")
	require.NoError(t, codec.ExportGeoJSON(store, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)

	collection, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	require.Len(t, collection.Features, 1)

	feature := collection.Features[0]
	assert.Equal(t, "Harbor Walk", feature.Properties["name"])

	line, ok := feature.Geometry.(orb.LineString)
	require.True(t, ok, "geometry is %T, want LineString", feature.Geometry)
	require.Len(t, line, 3)

	// Positions are [lon, lat] and keep store order.
	assert.InDelta(t, 139.20, line[0][0], 1e-9)
	assert.InDelta(t, 35.10, line[0][1], 1e-9)
	assert.InDelta(t, 139.22, line[2][0], 1e-9)
}

func TestExportGeoJSONIOError(t *testing.T) {
	codec := NewCodec(logger.NoOp{})
	store := track.NewStore([]track.Point{
		track.NewPoint(35.0, 139.0, 0, time.Time{}),
	}, "test")

	dst := filepath.Join(t.TempDir(), "no-such-dir", "out.geojson")
	assert.ErrorIs(t, codec.ExportGeoJSON(store, dst), ErrIO)
}
