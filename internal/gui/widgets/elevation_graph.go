package widgets

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/sakikimi/gpxhandle/internal/track"
)

// ElevationGraph plots elevation against cumulative 2D distance, with
// the selected point marked.
type ElevationGraph struct {
	widget.BaseWidget

	points    []track.Point
	distances []float64
	highlight int
}

func NewElevationGraph() *ElevationGraph {
	g := &ElevationGraph{highlight: -1}
	g.ExtendBaseWidget(g)
	return g
}

// SetPoints replaces the plotted track.
func (g *ElevationGraph) SetPoints(points []track.Point) {
	g.points = points
	g.distances = track.CumulativeDistances(points)
	g.highlight = -1
	g.Refresh()
}

// SetHighlight marks the point at idx, or clears the mark for -1.
func (g *ElevationGraph) SetHighlight(idx int) {
	g.highlight = idx
	g.Refresh()
}

// DistanceAt returns the cumulative distance in km at idx, or 0 when
// out of range.
func (g *ElevationGraph) DistanceAt(idx int) float64 {
	if idx < 0 || idx >= len(g.distances) {
		return 0
	}
	return g.distances[idx]
}

func (g *ElevationGraph) CreateRenderer() fyne.WidgetRenderer {
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.NRGBA{R: 128, G: 128, B: 128, A: 100}
	border.StrokeWidth = 1
	return &elevationGraphRenderer{g: g, border: border}
}

type elevationGraphRenderer struct {
	g       *ElevationGraph
	border  *canvas.Rectangle
	objects []fyne.CanvasObject
}

func (r *elevationGraphRenderer) Layout(size fyne.Size) {
	r.border.Resize(size)
	r.rebuild(size)
}

func (r *elevationGraphRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 120)
}

func (r *elevationGraphRenderer) Refresh() {
	r.rebuild(r.g.Size())
	canvas.Refresh(r.g)
}

func (r *elevationGraphRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *elevationGraphRenderer) Destroy() {}

func (r *elevationGraphRenderer) rebuild(size fyne.Size) {
	objects := []fyne.CanvasObject{r.border}
	defer func() { r.objects = objects }()

	points := r.g.points
	dists := r.g.distances
	if len(points) < 2 || len(dists) != len(points) {
		return
	}

	minEle, maxEle := points[0].Elevation, points[0].Elevation
	for _, p := range points[1:] {
		minEle = math.Min(minEle, p.Elevation)
		maxEle = math.Max(maxEle, p.Elevation)
	}
	eleRange := maxEle - minEle
	if eleRange < 10 {
		eleRange = 10
	}
	maxDist := dists[len(dists)-1]
	if maxDist <= 0 {
		return
	}

	const pad = float32(6)
	plotW := float64(size.Width - 2*pad)
	plotH := float64(size.Height - 2*pad)
	if plotW <= 0 || plotH <= 0 {
		return
	}

	at := func(i int) fyne.Position {
		x := pad + float32(dists[i]/maxDist*plotW)
		y := pad + float32(plotH-(points[i].Elevation-minEle)/eleRange*plotH)
		return fyne.NewPos(x, y)
	}

	gridColor := color.NRGBA{R: 128, G: 128, B: 128, A: 60}
	for _, frac := range []float32{0.25, 0.5, 0.75} {
		grid := canvas.NewLine(gridColor)
		grid.Position1 = fyne.NewPos(pad, pad+float32(plotH)*frac)
		grid.Position2 = fyne.NewPos(pad+float32(plotW), pad+float32(plotH)*frac)
		objects = append(objects, grid)
	}

	lineColor := color.NRGBA{R: 25, G: 103, B: 210, A: 255}
	prev := at(0)
	for i := 1; i < len(points); i++ {
		pos := at(i)
		line := canvas.NewLine(lineColor)
		line.StrokeWidth = 1.5
		line.Position1 = prev
		line.Position2 = pos
		objects = append(objects, line)
		prev = pos
	}

	if r.g.highlight >= 0 && r.g.highlight < len(points) {
		pos := at(r.g.highlight)
		dot := canvas.NewCircle(color.NRGBA{R: 217, G: 48, B: 37, A: 255})
		dot.Position1 = fyne.NewPos(pos.X-4, pos.Y-4)
		dot.Position2 = fyne.NewPos(pos.X+4, pos.Y+4)
		objects = append(objects, dot)
	}
}
