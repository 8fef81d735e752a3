package widgets

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/sakikimi/gpxhandle/internal/tiles"
)

// ToolbarState drives the enabled/disabled state of the edit actions.
type ToolbarState struct {
	PointCount  int
	Selected    []int
	SingleIndex int // -1 unless exactly one point is selected
	CanUndo     bool
}

// Toolbar holds the file actions, the edit actions, the tile source
// selector, the track name entry and the status line.
type Toolbar struct {
	container *fyne.Container

	openButton           *widget.Button
	saveButton           *widget.Button
	exportButton         *widget.Button
	undoButton           *widget.Button
	deleteSelectedButton *widget.Button
	deleteBeforeButton   *widget.Button
	deleteAfterButton    *widget.Button
	tileSelect           *widget.Select
	nameEntry            *widget.Entry
	statusLabel          *widget.Label

	openHandler           func()
	saveHandler           func()
	exportHandler         func()
	undoHandler           func()
	deleteSelectedHandler func()
	deleteBeforeHandler   func()
	deleteAfterHandler    func()
	tileChangeHandler     func(source tiles.Source)
	nameChangeHandler     func(name string)
}

func NewToolbar() *Toolbar {
	t := &Toolbar{}
	t.createComponents()
	t.buildLayout()
	return t
}

func (t *Toolbar) createComponents() {
	t.openButton = widget.NewButtonWithIcon("Open", theme.FolderOpenIcon(), t.onOpenClicked)
	t.openButton.Importance = widget.HighImportance

	t.saveButton = widget.NewButtonWithIcon("Save As", theme.DocumentSaveIcon(), t.onSaveClicked)
	t.saveButton.Importance = widget.HighImportance
	t.saveButton.Disable() // Disabled until a track is loaded

	t.exportButton = widget.NewButton("Export GeoJSON", t.onExportClicked)
	t.exportButton.Disable()

	t.undoButton = widget.NewButtonWithIcon("Undo", theme.ContentUndoIcon(), t.onUndoClicked)
	t.undoButton.Disable()

	t.deleteSelectedButton = widget.NewButtonWithIcon("Delete Selected", theme.DeleteIcon(), t.onDeleteSelectedClicked)
	t.deleteSelectedButton.Importance = widget.DangerImportance
	t.deleteSelectedButton.Disable()

	t.deleteBeforeButton = widget.NewButton("Delete Before", t.onDeleteBeforeClicked)
	t.deleteBeforeButton.Disable()

	t.deleteAfterButton = widget.NewButton("Delete After", t.onDeleteAfterClicked)
	t.deleteAfterButton.Disable()

	t.tileSelect = widget.NewSelect(tiles.Names(), t.onTileChanged)
	if source, ok := tiles.ByKey(tiles.DefaultKey); ok {
		t.tileSelect.SetSelected(source.Name)
	}

	t.nameEntry = widget.NewEntry()
	t.nameEntry.SetPlaceHolder("Track name")
	t.nameEntry.OnChanged = t.onNameChanged

	t.statusLabel = widget.NewLabel("Open a GPX file to begin")
}

func (t *Toolbar) buildLayout() {
	fileSection := container.NewHBox(
		t.openButton,
		t.saveButton,
		t.exportButton,
	)

	editSection := container.NewHBox(
		t.deleteBeforeButton,
		t.deleteAfterButton,
		widget.NewSeparator(),
		t.deleteSelectedButton,
		t.undoButton,
	)

	tileGroup := container.NewBorder(nil, nil, widget.NewLabel("Map tiles"), nil, t.tileSelect)
	nameGroup := container.NewBorder(nil, nil, widget.NewLabel("Track name"), nil, t.nameEntry)

	t.container = container.NewVBox(
		fileSection,
		tileGroup,
		editSection,
		nameGroup,
	)
}

func (t *Toolbar) onOpenClicked() {
	if t.openHandler != nil {
		t.openHandler()
	}
}

func (t *Toolbar) onSaveClicked() {
	if t.saveHandler != nil {
		t.saveHandler()
	}
}

func (t *Toolbar) onExportClicked() {
	if t.exportHandler != nil {
		t.exportHandler()
	}
}

func (t *Toolbar) onUndoClicked() {
	if t.undoHandler != nil {
		t.undoHandler()
	}
}

func (t *Toolbar) onDeleteSelectedClicked() {
	if t.deleteSelectedHandler != nil {
		t.deleteSelectedHandler()
	}
}

func (t *Toolbar) onDeleteBeforeClicked() {
	if t.deleteBeforeHandler != nil {
		t.deleteBeforeHandler()
	}
}

func (t *Toolbar) onDeleteAfterClicked() {
	if t.deleteAfterHandler != nil {
		t.deleteAfterHandler()
	}
}

func (t *Toolbar) onTileChanged(name string) {
	if source, ok := tiles.ByName(name); ok && t.tileChangeHandler != nil {
		t.tileChangeHandler(source)
	}
}

func (t *Toolbar) onNameChanged(name string) {
	if t.nameChangeHandler != nil {
		t.nameChangeHandler(name)
	}
}

func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}

// Event handler setters
func (t *Toolbar) SetOpenHandler(fn func())                       { t.openHandler = fn }
func (t *Toolbar) SetSaveHandler(fn func())                       { t.saveHandler = fn }
func (t *Toolbar) SetExportHandler(fn func())                     { t.exportHandler = fn }
func (t *Toolbar) SetUndoHandler(fn func())                       { t.undoHandler = fn }
func (t *Toolbar) SetDeleteSelectedHandler(fn func())             { t.deleteSelectedHandler = fn }
func (t *Toolbar) SetDeleteBeforeHandler(fn func())               { t.deleteBeforeHandler = fn }
func (t *Toolbar) SetDeleteAfterHandler(fn func())                { t.deleteAfterHandler = fn }
func (t *Toolbar) SetTileChangeHandler(fn func(src tiles.Source)) { t.tileChangeHandler = fn }
func (t *Toolbar) SetNameChangeHandler(fn func(name string))      { t.nameChangeHandler = fn }

// SetStatus updates the status line.
func (t *Toolbar) SetStatus(status string) {
	t.statusLabel.SetText(status)
}

// StatusLabel exposes the status line for layout placement.
func (t *Toolbar) StatusLabel() *widget.Label {
	return t.statusLabel
}

// SetTrackName sets the name entry without firing the change handler.
func (t *Toolbar) SetTrackName(name string) {
	handler := t.nameChangeHandler
	t.nameChangeHandler = nil
	t.nameEntry.SetText(name)
	t.nameChangeHandler = handler
}

// TrackName returns the current name entry text.
func (t *Toolbar) TrackName() string {
	return t.nameEntry.Text
}

// UpdateStates enables and disables the action buttons to match the
// current store and selection.
func (t *Toolbar) UpdateStates(state ToolbarState) {
	setEnabled(t.saveButton, state.PointCount > 0)
	setEnabled(t.exportButton, state.PointCount > 0)
	setEnabled(t.undoButton, state.CanUndo)
	setEnabled(t.deleteSelectedButton, len(state.Selected) > 0)
	setEnabled(t.deleteBeforeButton, state.SingleIndex > 0)
	setEnabled(t.deleteAfterButton, state.SingleIndex >= 0 && state.SingleIndex < state.PointCount-1)
}

func setEnabled(b *widget.Button, enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}
