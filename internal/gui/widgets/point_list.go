package widgets

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/sakikimi/gpxhandle/internal/track"
)

const timeDisplayFormat = "2006-01-02 15:04:05"

// PointList shows one row per track point with a multi-select
// checkbox, the timestamp, the coordinates and a per-row delete
// button. Row taps select a single point; checkboxes extend the
// selection set.
type PointList struct {
	list *widget.List

	points   []track.Point
	selected map[int]struct{}

	// suppress blocks OnSelected feedback while the selection is being
	// applied programmatically during a render.
	suppress bool

	rows map[fyne.CanvasObject]*pointRow

	onSelect    func(index int)
	onToggle    func(index int, checked bool)
	onDeleteRow func(index int)
}

type pointRow struct {
	check     *widget.Check
	title     *widget.Label
	subtitle  *widget.Label
	deleteBtn *widget.Button
	container *fyne.Container
}

func NewPointList() *PointList {
	l := &PointList{
		selected: make(map[int]struct{}),
		rows:     make(map[fyne.CanvasObject]*pointRow),
	}

	l.list = widget.NewList(
		func() int { return len(l.points) },
		l.createRow,
		l.updateRow,
	)
	l.list.OnSelected = func(id widget.ListItemID) {
		if l.suppress {
			return
		}
		if l.onSelect != nil {
			l.onSelect(id)
		}
	}

	return l
}

func (l *PointList) createRow() fyne.CanvasObject {
	row := &pointRow{
		check:     widget.NewCheck("", nil),
		title:     widget.NewLabel(""),
		subtitle:  widget.NewLabel(""),
		deleteBtn: widget.NewButtonWithIcon("", theme.DeleteIcon(), nil),
	}
	row.subtitle.TextStyle = fyne.TextStyle{Monospace: true}
	row.deleteBtn.Importance = widget.LowImportance

	labels := container.NewVBox(row.title, row.subtitle)
	row.container = container.NewBorder(nil, nil, row.check, row.deleteBtn, labels)

	l.rows[row.container] = row
	return row.container
}

func (l *PointList) updateRow(id widget.ListItemID, obj fyne.CanvasObject) {
	row, ok := l.rows[obj]
	if !ok || id >= len(l.points) {
		return
	}
	p := l.points[id]

	title := "no timestamp"
	if p.HasTime() {
		title = p.Time.Format(timeDisplayFormat)
	}
	row.title.SetText(title)
	row.subtitle.SetText(fmt.Sprintf("Lat: %.5f, Lon: %.5f, Ele: %.1fm",
		p.Latitude, p.Longitude, p.Elevation))

	_, checked := l.selected[id]
	row.check.OnChanged = nil
	row.check.SetChecked(checked)
	row.check.OnChanged = func(on bool) {
		if l.onToggle != nil {
			l.onToggle(id, on)
		}
	}

	row.deleteBtn.OnTapped = func() {
		if l.onDeleteRow != nil {
			l.onDeleteRow(id)
		}
	}
}

// Render replaces the displayed points and selection.
func (l *PointList) Render(points []track.Point, selected []int) {
	l.points = points
	l.selected = make(map[int]struct{}, len(selected))
	for _, idx := range selected {
		l.selected[idx] = struct{}{}
	}

	l.suppress = true
	l.list.UnselectAll()
	if len(selected) == 1 && selected[0] < len(points) {
		l.list.Select(selected[0])
		l.list.ScrollTo(selected[0])
	}
	l.suppress = false

	l.list.Refresh()
}

// Widget returns the underlying canvas object for layout.
func (l *PointList) Widget() fyne.CanvasObject {
	return l.list
}

// Event handler setters
func (l *PointList) SetSelectHandler(fn func(index int)) {
	l.onSelect = fn
}

func (l *PointList) SetToggleHandler(fn func(index int, checked bool)) {
	l.onToggle = fn
}

func (l *PointList) SetDeleteRowHandler(fn func(index int)) {
	l.onDeleteRow = fn
}
