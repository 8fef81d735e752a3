// Package gui composes the Fyne widgets into the editor window. The
// view implements the controller's render contract and never mutates
// track data itself.
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/sakikimi/gpxhandle/internal/gui/widgets"
	"github.com/sakikimi/gpxhandle/internal/tiles"
	"github.com/sakikimi/gpxhandle/internal/track"
)

// View owns all UI components and their layout.
type View struct {
	window fyne.Window

	toolbar   *widgets.Toolbar
	trackMap  *widgets.TrackMap
	pointList *widgets.PointList
	graph     *widgets.ElevationGraph

	statsLabel       *widget.Label
	infoLabel        *widget.Label
	attributionLabel *widget.Label

	mainContainer *fyne.Container

	// Render cache so selection-only updates avoid a full rebuild.
	store  *track.Store
	points []track.Point
}

func NewView(window fyne.Window) *View {
	v := &View{window: window}
	v.setupComponents()
	v.setupLayout()
	return v
}

func (v *View) setupComponents() {
	v.toolbar = widgets.NewToolbar()
	v.trackMap = widgets.NewTrackMap()
	v.pointList = widgets.NewPointList()
	v.graph = widgets.NewElevationGraph()

	v.statsLabel = widget.NewLabel("")
	v.infoLabel = widget.NewLabel("")
	v.attributionLabel = widget.NewLabel(v.trackMap.TileSource().Attribution)
	v.attributionLabel.TextStyle = fyne.TextStyle{Italic: true}
}

func (v *View) setupLayout() {
	zoomIn := widget.NewButtonWithIcon("", theme.ZoomInIcon(), v.trackMap.ZoomIn)
	zoomOut := widget.NewButtonWithIcon("", theme.ZoomOutIcon(), v.trackMap.ZoomOut)
	fitButton := widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), func() {
		v.trackMap.AutoFit()
		v.trackMap.Refresh()
	})
	zoomRow := container.NewHBox(layout.NewSpacer(), fitButton, zoomIn, zoomOut)

	graphHeader := container.NewHBox(
		widget.NewLabelWithStyle("Elevation (m) over distance (km)",
			fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		layout.NewSpacer(),
		v.statsLabel,
	)

	leftBottom := container.NewVBox(
		v.attributionLabel,
		widget.NewSeparator(),
		graphHeader,
		v.graph,
		v.infoLabel,
	)
	left := container.NewBorder(zoomRow, leftBottom, nil, nil, v.trackMap)

	listHeader := widget.NewLabelWithStyle("Track points",
		fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	rightTop := container.NewVBox(v.toolbar.GetContainer(), listHeader)
	right := container.NewBorder(rightTop, v.toolbar.StatusLabel(), nil, nil, v.pointList.Widget())

	split := container.NewHSplit(left, right)
	split.Offset = 0.6
	v.mainContainer = container.New(layout.NewStackLayout(), split)
}

// Render implements the controller view contract: a full rebuild of
// map, list, graph and button states from the given store state.
func (v *View) Render(store *track.Store, selected []int) {
	storeChanged := store != v.store
	v.store = store
	if store != nil {
		v.points = store.Points()
	} else {
		v.points = nil
	}

	if storeChanged {
		// New file: refit the viewport and adopt the track name.
		v.trackMap.SetPoints(v.points)
		if store != nil {
			v.toolbar.SetTrackName(store.Name())
		} else {
			v.toolbar.SetTrackName("")
		}
	} else {
		v.trackMap.UpdatePoints(v.points)
	}
	v.trackMap.SetSelected(selected)

	v.pointList.Render(v.points, selected)
	v.graph.SetPoints(v.points)

	stats := track.ComputeStats(v.points)
	v.statsLabel.SetText(formatStats(stats))

	v.applySelection(selected)
}

// OnSelectionChanged updates highlights only; the point data is
// unchanged.
func (v *View) OnSelectionChanged(selected []int) {
	v.trackMap.SetSelected(selected)
	v.pointList.Render(v.points, selected)
	v.applySelection(selected)
}

func (v *View) applySelection(selected []int) {
	single := -1
	if len(selected) == 1 {
		single = selected[0]
	}
	v.graph.SetHighlight(single)
	v.infoLabel.SetText(v.pointInfo(single))

	canUndo := v.store != nil && v.store.CanUndo()
	v.toolbar.UpdateStates(widgets.ToolbarState{
		PointCount:  len(v.points),
		Selected:    selected,
		SingleIndex: single,
		CanUndo:     canUndo,
	})
}

func (v *View) pointInfo(idx int) string {
	if idx < 0 || idx >= len(v.points) {
		return ""
	}
	p := v.points[idx]
	timeStr := "--:--:--"
	if p.HasTime() {
		timeStr = p.Time.Format("15:04:05")
	}
	return fmt.Sprintf("%s - distance: %.2f km / elevation: %.1f m",
		timeStr, v.graph.DistanceAt(idx), p.Elevation)
}

func formatStats(stats track.Stats) string {
	duration := "-"
	if stats.Duration > 0 {
		total := int(stats.Duration.Seconds())
		duration = fmt.Sprintf("%02d:%02d", total/3600, (total%3600)/60)
	}
	return fmt.Sprintf("Time: %s | Distance: %.2f km | Ascent: %.0f m",
		duration, stats.DistanceKm, stats.AscentM)
}

// SetTileSource switches the map tiles and the attribution line.
func (v *View) SetTileSource(source tiles.Source) {
	v.trackMap.SetTileSource(source)
	v.attributionLabel.SetText(source.Attribution)
}

// SetStatus updates the status line.
func (v *View) SetStatus(status string) {
	v.toolbar.SetStatus(status)
}

// Component accessors for handler wiring.
func (v *View) Toolbar() *widgets.Toolbar     { return v.toolbar }
func (v *View) TrackMap() *widgets.TrackMap   { return v.trackMap }
func (v *View) PointList() *widgets.PointList { return v.pointList }

// ShowError surfaces a file-boundary failure as a dialog.
func (v *View) ShowError(err error) {
	dialog.ShowError(err, v.window)
}

// ShowOpenDialog asks for a GPX file to load.
func (v *View) ShowOpenDialog(callback func(fyne.URIReadCloser, error)) {
	d := dialog.NewFileOpen(callback, v.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".gpx"}))
	d.Show()
}

// ShowSaveDialog asks for a GPX save target, pre-filled with a file
// name derived from the track name.
func (v *View) ShowSaveDialog(fileName string, callback func(fyne.URIWriteCloser, error)) {
	d := dialog.NewFileSave(callback, v.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".gpx"}))
	d.SetFileName(fileName)
	d.Show()
}

// ShowExportDialog asks for a GeoJSON export target.
func (v *View) ShowExportDialog(fileName string, callback func(fyne.URIWriteCloser, error)) {
	d := dialog.NewFileSave(callback, v.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".geojson", ".json"}))
	d.SetFileName(fileName)
	d.Show()
}

func (v *View) GetMainContainer() *fyne.Container {
	return v.mainContainer
}

func (v *View) GetWindow() fyne.Window {
	return v.window
}

func (v *View) Show() {
	v.window.SetContent(v.mainContainer)
	v.window.Show()
}
