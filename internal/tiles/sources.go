// Package tiles lists the selectable map tile sources and their
// attribution strings.
package tiles

// Source describes one tile provider.
type Source struct {
	Key         string
	Name        string
	URLTemplate string
	Attribution string
}

// DefaultKey is the tile source shown on startup.
const DefaultKey = "gsi_std"

var sources = []Source{
	{
		Key:         "osm",
		Name:        "OpenStreetMap",
		URLTemplate: "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: "© OpenStreetMap contributors",
	},
	{
		Key:         "gsi_std",
		Name:        "GSI Standard",
		URLTemplate: "https://cyberjapandata.gsi.go.jp/xyz/std/{z}/{x}/{y}.png",
		Attribution: "Geospatial Information Authority of Japan",
	},
	{
		Key:         "gsi_pale",
		Name:        "GSI Pale",
		URLTemplate: "https://cyberjapandata.gsi.go.jp/xyz/pale/{z}/{x}/{y}.png",
		Attribution: "Geospatial Information Authority of Japan",
	},
	{
		Key:         "gsi_photo",
		Name:        "GSI Aerial Photo",
		URLTemplate: "https://cyberjapandata.gsi.go.jp/xyz/seamlessphoto/{z}/{x}/{y}.jpg",
		Attribution: "Geospatial Information Authority of Japan",
	},
}

// All returns the sources in display order.
func All() []Source {
	out := make([]Source, len(sources))
	copy(out, sources)
	return out
}

// ByKey looks a source up by its key.
func ByKey(key string) (Source, bool) {
	for _, s := range sources {
		if s.Key == key {
			return s, true
		}
	}
	return Source{}, false
}

// Names returns the display names in the same order as All.
func Names() []string {
	out := make([]string, len(sources))
	for i, s := range sources {
		out[i] = s.Name
	}
	return out
}

// ByName looks a source up by its display name.
func ByName(name string) (Source, bool) {
	for _, s := range sources {
		if s.Name == name {
			return s, true
		}
	}
	return Source{}, false
}
