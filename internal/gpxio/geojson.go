package gpxio

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/sakikimi/gpxhandle/internal/track"
)

// ExportGeoJSON writes the track as a FeatureCollection holding one
// LineString feature in store order. GeoJSON positions are [lon, lat].
func (c *Codec) ExportGeoJSON(store *track.Store, path string) error {
	line := make(orb.LineString, 0, store.Len())
	for _, p := range store.Points() {
		line = append(line, orb.Point{p.Longitude, p.Latitude})
	}

	feature := geojson.NewFeature(line)
	feature.Properties["name"] = store.Name()
	feature.Properties["points"] = store.Len()

	collection := geojson.NewFeatureCollection()
	collection.Append(feature)

	data, err := collection.MarshalJSON()
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrIO, path, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrIO, path, err)
	}

	c.logger.Info("Codec", "geojson exported", map[string]interface{}{
		"path":   path,
		"points": store.Len(),
	})

	return nil
}
