// Package gpxio wraps the GPX format library behind load/save calls
// that produce and consume track stores. Timestamps are converted to
// JST on load and back to UTC on save.
package gpxio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/sakikimi/gpxhandle/internal/logger"
	"github.com/sakikimi/gpxhandle/internal/track"
)

// ErrFormat marks GPX content the parser rejected, or files without a
// single track point. No store is produced.
var ErrFormat = errors.New("malformed gpx")

// ErrIO marks an unreadable or unwritable file. The in-memory state of
// the caller is never touched when it occurs.
var ErrIO = errors.New("gpx file i/o")

// JST is the display timezone for loaded timestamps.
var JST = time.FixedZone("JST", 9*60*60)

type Codec struct {
	logger logger.Logger
}

func NewCodec(log logger.Logger) *Codec {
	return &Codec{logger: log}
}

// Load reads and parses a GPX file into a new store. The track name
// falls back from GPX metadata to the first track's name and finally
// to the file stem.
func (c *Codec) Load(path string) (*track.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrIO, path, err)
	}

	doc, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrFormat, path, err)
	}

	points := collectPoints(doc)
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: %s contains no track points", ErrFormat, path)
	}

	name := doc.Name
	if name == "" && len(doc.Tracks) > 0 {
		name = doc.Tracks[0].Name
	}
	if name == "" {
		name = fileStem(path)
	}

	c.logger.Info("Codec", "gpx loaded", map[string]interface{}{
		"path":   path,
		"points": len(points),
		"name":   name,
	})

	return track.NewStore(points, name), nil
}

// Save serializes the store as a single-track, single-segment GPX
// file. The store is not mutated; a failed write leaves it intact.
func (c *Codec) Save(store *track.Store, path string) error {
	name := strings.TrimSpace(store.Name())
	if name == "" {
		name = track.DefaultTrackName
	}

	doc := &gpx.GPX{
		Version: "1.1",
		Creator: "gpxhandle",
		Name:    name,
	}

	segment := gpx.GPXTrackSegment{}
	for _, p := range store.Points() {
		point := gpx.GPXPoint{
			Point: gpx.Point{
				Latitude:  p.Latitude,
				Longitude: p.Longitude,
				Elevation: *gpx.NewNullableFloat64(p.Elevation),
			},
		}
		if p.HasTime() {
			point.Timestamp = p.Time.UTC()
		}
		segment.AppendPoint(&point)
	}

	trk := gpx.GPXTrack{Name: name}
	trk.Segments = append(trk.Segments, segment)
	doc.Tracks = append(doc.Tracks, trk)

	data, err := doc.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return fmt.Errorf("%w: serialize %s: %v", ErrIO, path, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrIO, path, err)
	}

	c.logger.Info("Codec", "gpx saved", map[string]interface{}{
		"path":   path,
		"points": store.Len(),
		"name":   name,
	})

	return nil
}

func collectPoints(doc *gpx.GPX) []track.Point {
	var points []track.Point
	for _, trk := range doc.Tracks {
		for _, segment := range trk.Segments {
			for _, pt := range segment.Points {
				elevation := 0.0
				if ele := pt.GetElevation(); ele.NotNull() {
					elevation = ele.Value()
				}
				var ts time.Time
				if !pt.Timestamp.IsZero() {
					ts = pt.Timestamp.In(JST)
				}
				points = append(points, track.NewPoint(
					pt.GetLatitude(), pt.GetLongitude(), elevation, ts,
				))
			}
		}
	}
	return points
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
