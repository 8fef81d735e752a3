package widgets

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/paulmach/orb"

	"github.com/sakikimi/gpxhandle/internal/tiles"
	"github.com/sakikimi/gpxhandle/internal/track"
)

const (
	minZoom    = 1.0
	maxZoom    = 18.0
	tileSizePx = 256.0

	markerRadius    = float32(4)
	highlightRadius = float32(7)
	tapHitRadius    = 12.0

	singlePointZoom = 15.0
)

// Default view before any track is loaded: Tokyo station.
const (
	defaultCenterLat = 35.681236
	defaultCenterLon = 139.767125
	defaultZoom      = 10.0
)

// TrackMap renders the track as a Web Mercator projected polyline with
// one marker per point. Tapping a marker emits a selection event; when
// markers overlap, the last-added (topmost) one wins.
type TrackMap struct {
	widget.BaseWidget

	points   []track.Point
	selected map[int]struct{}

	centerLat float64
	centerLon float64
	zoom      float64

	source tiles.Source

	onSelect func(index int)
}

func NewTrackMap() *TrackMap {
	source, _ := tiles.ByKey(tiles.DefaultKey)
	m := &TrackMap{
		selected:  make(map[int]struct{}),
		centerLat: defaultCenterLat,
		centerLon: defaultCenterLon,
		zoom:      defaultZoom,
		source:    source,
	}
	m.ExtendBaseWidget(m)
	return m
}

// SetOnSelect registers the marker tap callback.
func (m *TrackMap) SetOnSelect(fn func(index int)) {
	m.onSelect = fn
}

// SetPoints replaces the rendered track and refits the viewport.
func (m *TrackMap) SetPoints(points []track.Point) {
	m.points = points
	m.selected = make(map[int]struct{})
	m.AutoFit()
	m.Refresh()
}

// UpdatePoints replaces the rendered track while keeping the current
// viewport, for edits to an already-loaded file.
func (m *TrackMap) UpdatePoints(points []track.Point) {
	m.points = points
	m.selected = make(map[int]struct{})
	m.Refresh()
}

// SetSelected replaces the highlighted indices.
func (m *TrackMap) SetSelected(indices []int) {
	m.selected = make(map[int]struct{}, len(indices))
	for _, idx := range indices {
		m.selected[idx] = struct{}{}
	}
	m.Refresh()
}

// SetTileSource switches the active tile source.
func (m *TrackMap) SetTileSource(source tiles.Source) {
	m.source = source
	m.Refresh()
}

// TileSource returns the active tile source.
func (m *TrackMap) TileSource() tiles.Source {
	return m.source
}

// Zoom returns the current zoom level.
func (m *TrackMap) Zoom() float64 {
	return m.zoom
}

// ZoomIn steps one zoom level in, clamped at the maximum.
func (m *TrackMap) ZoomIn() {
	if m.zoom < maxZoom {
		m.zoom = math.Min(m.zoom+1, maxZoom)
		m.Refresh()
	}
}

// ZoomOut steps one zoom level out, clamped at the minimum.
func (m *TrackMap) ZoomOut() {
	if m.zoom > minZoom {
		m.zoom = math.Max(m.zoom-1, minZoom)
		m.Refresh()
	}
}

// AutoFit centers on the track and picks a zoom level that shows the
// whole of it with one step of margin.
func (m *TrackMap) AutoFit() {
	if len(m.points) == 0 {
		return
	}

	if len(m.points) == 1 {
		m.centerLat = m.points[0].Latitude
		m.centerLon = m.points[0].Longitude
		m.zoom = singlePointZoom
		return
	}

	multi := make(orb.MultiPoint, 0, len(m.points))
	for _, p := range m.points {
		multi = append(multi, orb.Point{p.Longitude, p.Latitude})
	}
	bound := multi.Bound()
	center := bound.Center()
	m.centerLat = center.Lat()
	m.centerLon = center.Lon()

	latSpan := bound.Max.Lat() - bound.Min.Lat()
	lonSpan := bound.Max.Lon() - bound.Min.Lon()

	// Both spans must fit, so the wider one dictates the zoom; one more
	// step out leaves a margin around the track.
	base := math.Min(zoomForSpan(latSpan), zoomForSpan(lonSpan))
	m.zoom = math.Max(base-1, minZoom)
}

// Tapped resolves the topmost marker under the tap and reports it. A
// tap on empty map area is ignored.
func (m *TrackMap) Tapped(ev *fyne.PointEvent) {
	if m.onSelect == nil {
		return
	}
	size := m.Size()
	for i := len(m.points) - 1; i >= 0; i-- {
		pos := m.project(m.points[i].Latitude, m.points[i].Longitude, size)
		dx := float64(pos.X - ev.Position.X)
		dy := float64(pos.Y - ev.Position.Y)
		if math.Hypot(dx, dy) <= tapHitRadius {
			m.onSelect(i)
			return
		}
	}
}

func (m *TrackMap) CreateRenderer() fyne.WidgetRenderer {
	background := canvas.NewRectangle(m.backgroundColor())
	return &trackMapRenderer{m: m, background: background}
}

// project maps a coordinate to widget space relative to the current
// center and zoom.
func (m *TrackMap) project(lat, lon float64, size fyne.Size) fyne.Position {
	world := tileSizePx * math.Exp2(m.zoom)
	x, y := mercatorXY(lat, lon)
	cx, cy := mercatorXY(m.centerLat, m.centerLon)
	px := (x-cx)*world + float64(size.Width)/2
	py := (y-cy)*world + float64(size.Height)/2
	return fyne.NewPos(float32(px), float32(py))
}

func (m *TrackMap) backgroundColor() color.Color {
	switch m.source.Key {
	case "gsi_photo":
		return color.NRGBA{R: 52, G: 61, B: 52, A: 255}
	case "gsi_pale":
		return color.NRGBA{R: 246, G: 246, B: 242, A: 255}
	default:
		return color.NRGBA{R: 235, G: 239, B: 233, A: 255}
	}
}

// mercatorXY converts degrees to normalized Web Mercator [0,1]
// coordinates. Latitudes are clamped to the projection's valid range.
func mercatorXY(lat, lon float64) (float64, float64) {
	const latLimit = 85.05112878
	if lat > latLimit {
		lat = latLimit
	}
	if lat < -latLimit {
		lat = -latLimit
	}
	x := (lon + 180.0) / 360.0
	rad := lat * math.Pi / 180.0
	y := (1.0 - math.Log(math.Tan(rad)+1.0/math.Cos(rad))/math.Pi) / 2.0
	return x, y
}

// zoomForSpan estimates the zoom level that fits a geographic span in
// degrees.
func zoomForSpan(span float64) float64 {
	switch {
	case span == 0:
		return 18
	case span < 0.004:
		return 17
	case span < 0.008:
		return 16
	case span < 0.015:
		return 15
	case span < 0.03:
		return 14
	case span < 0.06:
		return 13
	case span < 0.12:
		return 12
	case span < 0.25:
		return 11
	case span < 0.5:
		return 10
	case span < 1.0:
		return 9
	case span < 2.0:
		return 8
	case span < 4.0:
		return 7
	case span < 8.0:
		return 6
	case span < 15.0:
		return 5
	case span < 30.0:
		return 4
	default:
		return 3
	}
}

type trackMapRenderer struct {
	m          *TrackMap
	background *canvas.Rectangle
	objects    []fyne.CanvasObject
}

func (r *trackMapRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.rebuild(size)
}

func (r *trackMapRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

func (r *trackMapRenderer) Refresh() {
	r.background.FillColor = r.m.backgroundColor()
	r.rebuild(r.m.Size())
	canvas.Refresh(r.m)
}

func (r *trackMapRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *trackMapRenderer) Destroy() {}

func (r *trackMapRenderer) rebuild(size fyne.Size) {
	lineColor := color.NRGBA{R: 25, G: 103, B: 210, A: 255}
	markerColor := color.NRGBA{R: 25, G: 103, B: 210, A: 200}
	highlightColor := color.NRGBA{R: 217, G: 48, B: 37, A: 255}

	objects := make([]fyne.CanvasObject, 0, 2*len(r.m.points)+1)
	objects = append(objects, r.background)

	positions := make([]fyne.Position, len(r.m.points))
	for i, p := range r.m.points {
		positions[i] = r.m.project(p.Latitude, p.Longitude, size)
	}

	for i := 1; i < len(positions); i++ {
		line := canvas.NewLine(lineColor)
		line.StrokeWidth = 3
		line.Position1 = positions[i-1]
		line.Position2 = positions[i]
		objects = append(objects, line)
	}

	for i, pos := range positions {
		radius := markerRadius
		fill := markerColor
		if _, ok := r.m.selected[i]; ok {
			radius = highlightRadius
			fill = highlightColor
		}
		dot := canvas.NewCircle(fill)
		dot.Position1 = fyne.NewPos(pos.X-radius, pos.Y-radius)
		dot.Position2 = fyne.NewPos(pos.X+radius, pos.Y+radius)
		objects = append(objects, dot)
	}

	r.objects = objects
}
