package gpxio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakikimi/gpxhandle/internal/logger"
	"github.com/sakikimi/gpxhandle/internal/track"
)

const sampleGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk>
    <name>Mount Takao</name>
    <trkseg>
      <trkpt lat="35.62531" lon="139.24353"><ele>190.5</ele><time>2024-05-01T00:00:00Z</time></trkpt>
      <trkpt lat="35.62601" lon="139.24401"><ele>201.0</ele><time>2024-05-01T00:01:30Z</time></trkpt>
      <trkpt lat="35.62677" lon="139.24466"><ele>215.3</ele><time>2024-05-01T00:03:00Z</time></trkpt>
    </trkseg>
  </trk>
</gpx>`

const namelessGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk>
    <trkseg>
      <trkpt lat="35.0" lon="139.0"><ele>100.0</ele></trkpt>
    </trkseg>
  </trk>
</gpx>`

const emptyGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
</gpx>`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCodecLoad(t *testing.T) {
	codec := NewCodec(logger.NoOp{})

	store, err := codec.Load(writeTemp(t, "takao.gpx", sampleGPX))
	require.NoError(t, err)

	require.Equal(t, 3, store.Len())
	assert.Equal(t, "Mount Takao", store.Name())
	assert.InDelta(t, 35.62531, store.At(0).Latitude, 1e-9)
	assert.InDelta(t, 139.24353, store.At(0).Longitude, 1e-9)
	assert.Equal(t, 190.5, store.At(0).Elevation)

	// UTC midnight becomes 09:00 JST.
	first := store.At(0).Time
	assert.Equal(t, 9, first.Hour())
	assert.Equal(t, "JST", first.Location().String())
}

func TestCodecLoadNameFallsBackToStem(t *testing.T) {
	codec := NewCodec(logger.NoOp{})

	store, err := codec.Load(writeTemp(t, "riverside-walk.gpx", namelessGPX))
	require.NoError(t, err)
	assert.Equal(t, "riverside-walk", store.Name())
}

func TestCodecLoadErrors(t *testing.T) {
	codec := NewCodec(logger.NoOp{})

	t.Run("missing file is an io error", func(t *testing.T) {
		_, err := codec.Load(filepath.Join(t.TempDir(), "absent.gpx"))
		assert.ErrorIs(t, err, ErrIO)
	})

	t.Run("invalid xml is a format error", func(t *testing.T) {
		_, err := codec.Load(writeTemp(t, "bad.gpx", "this is not xml"))
		assert.ErrorIs(t, err, ErrFormat)
	})

	t.Run("no track points is a format error", func(t *testing.T) {
		_, err := codec.Load(writeTemp(t, "empty.gpx", emptyGPX))
		assert.ErrorIs(t, err, ErrFormat)
	})
}

func TestCodecRoundTrip(t *testing.T) {
	codec := NewCodec(logger.NoOp{})

	original, err := codec.Load(writeTemp(t, "takao.gpx", sampleGPX))
	require.NoError(t, err)

	dst := filepath.Join(t.TempDir(), "copy.gpx")
	require.NoError(t, codec.Save(original, dst))

	reloaded, err := codec.Load(dst)
	require.NoError(t, err)

	require.Equal(t, original.Len(), reloaded.Len())
	assert.Equal(t, original.Name(), reloaded.Name())
	for i := 0; i < original.Len(); i++ {
		want, got := original.At(i), reloaded.At(i)
		assert.InDelta(t, want.Latitude, got.Latitude, 1e-9)
		assert.InDelta(t, want.Longitude, got.Longitude, 1e-9)
		assert.InDelta(t, want.Elevation, got.Elevation, 1e-6)
		assert.True(t, want.Time.Equal(got.Time), "timestamp %d changed", i)
	}
}

func TestCodecSaveConvertsJSTBackToUTC(t *testing.T) {
	codec := NewCodec(logger.NoOp{})

	noon := time.Date(2024, 5, 1, 12, 0, 0, 0, JST)
	store := track.NewStore([]track.Point{
		track.NewPoint(35.0, 139.0, 50, noon),
	}, "tz-check")

	dst := filepath.Join(t.TempDir(), "tz.gpx")
	require.NoError(t, codec.Save(store, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(data), "2024-05-01T03:00:00Z")
}

func TestCodecSaveDefaultsTrackName(t *testing.T) {
	codec := NewCodec(logger.NoOp{})

	store := track.NewStore([]track.Point{
		track.NewPoint(35.0, 139.0, 0, time.Time{}),
	}, "   ")

	dst := filepath.Join(t.TempDir(), "unnamed.gpx")
	require.NoError(t, codec.Save(store, dst))

	reloaded, err := codec.Load(dst)
	require.NoError(t, err)
	assert.Equal(t, track.DefaultTrackName, reloaded.Name())
}

func TestCodecSaveIOError(t *testing.T) {
	codec := NewCodec(logger.NoOp{})

	store := track.NewStore([]track.Point{
		track.NewPoint(35.0, 139.0, 0, time.Time{}),
	}, "test")

	// The target directory does not exist, so the write must fail and
	// the store must stay intact.
	dst := filepath.Join(t.TempDir(), "no-such-dir", "out.gpx")
	err := codec.Save(store, dst)
	assert.ErrorIs(t, err, ErrIO)
	assert.Equal(t, 1, store.Len())
}
