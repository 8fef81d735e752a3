package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"

	"github.com/sakikimi/gpxhandle/internal/controller"
	"github.com/sakikimi/gpxhandle/internal/gpxio"
	"github.com/sakikimi/gpxhandle/internal/gui"
	"github.com/sakikimi/gpxhandle/internal/logger"
)

// Handlers connects widget callbacks to controller operations and
// reports outcomes on the status line. File I/O is blocking and
// user-initiated, so every handler runs to completion on the event
// loop before the next event is processed.
type Handlers struct {
	controller *controller.Controller
	view       *gui.View
	logger     logger.Logger
}

func NewHandlers(ctrl *controller.Controller, view *gui.View, log logger.Logger) *Handlers {
	return &Handlers{controller: ctrl, view: view, logger: log}
}

func (h *Handlers) wire() {
	toolbar := h.view.Toolbar()
	toolbar.SetOpenHandler(h.handleOpen)
	toolbar.SetSaveHandler(h.handleSave)
	toolbar.SetExportHandler(h.handleExport)
	toolbar.SetUndoHandler(h.handleUndo)
	toolbar.SetDeleteSelectedHandler(h.handleDeleteSelected)
	toolbar.SetDeleteBeforeHandler(h.handleDeleteBefore)
	toolbar.SetDeleteAfterHandler(h.handleDeleteAfter)
	toolbar.SetTileChangeHandler(h.view.SetTileSource)
	toolbar.SetNameChangeHandler(h.controller.SetTrackName)

	h.view.TrackMap().SetOnSelect(h.handleSelect)

	list := h.view.PointList()
	list.SetSelectHandler(h.handleSelect)
	list.SetToggleHandler(h.handleToggle)
	list.SetDeleteRowHandler(h.handleDeleteRow)
}

func (h *Handlers) handleSelect(index int) {
	h.controller.Dispatch(controller.SelectionChanged{Index: index})
}

// handleToggle folds a checkbox change into the selection set.
func (h *Handlers) handleToggle(index int, checked bool) {
	current := h.controller.Selection().Current()
	next := current[:0]
	for _, idx := range current {
		if idx != index {
			next = append(next, idx)
		}
	}
	if checked {
		next = append(next, index)
	}
	if len(next) == 0 {
		h.controller.ClearSelection()
		return
	}
	h.controller.Select(next...)
}

func (h *Handlers) handleDeleteRow(index int) {
	h.controller.Dispatch(controller.DeleteRequested{Indices: []int{index}})
	h.reportDeletion()
}

func (h *Handlers) handleDeleteSelected() {
	if err := h.controller.DeleteSelected(); err != nil {
		h.logger.Error("Handlers", err, nil)
		return
	}
	h.reportDeletion()
}

func (h *Handlers) handleDeleteBefore() {
	if err := h.controller.DeleteBeforeSelected(); err != nil {
		h.logger.Error("Handlers", err, nil)
		return
	}
	h.reportDeletion()
}

func (h *Handlers) handleDeleteAfter() {
	if err := h.controller.DeleteAfterSelected(); err != nil {
		h.logger.Error("Handlers", err, nil)
		return
	}
	h.reportDeletion()
}

func (h *Handlers) handleOpen() {
	h.view.ShowOpenDialog(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			h.view.ShowError(err)
			return
		}
		if reader == nil {
			h.view.SetStatus("Open cancelled")
			return
		}
		path := reader.URI().Path()
		reader.Close()

		if loadErr := h.loadPath(path); loadErr != nil {
			h.view.ShowError(loadErr)
			h.view.SetStatus("Load failed")
		}
	})
}

func (h *Handlers) loadPath(path string) error {
	h.view.SetStatus("Loading...")
	if err := h.controller.Load(path); err != nil {
		if errors.Is(err, gpxio.ErrFormat) {
			h.view.SetStatus("Load failed: invalid GPX")
		} else {
			h.view.SetStatus("Load failed: file unreadable")
		}
		return err
	}

	store := h.controller.Store()
	h.view.SetStatus(fmt.Sprintf("Loaded %s (%d points)",
		filepath.Base(path), store.Len()))
	return nil
}

func (h *Handlers) handleSave() {
	store := h.controller.Store()
	if store == nil || store.Len() == 0 {
		h.view.SetStatus("Nothing to save")
		return
	}

	h.view.ShowSaveDialog(suggestFileName(store.Name(), ".gpx"),
		func(writer fyne.URIWriteCloser, err error) {
			if err != nil {
				h.view.ShowError(err)
				return
			}
			if writer == nil {
				h.view.SetStatus("Save cancelled")
				return
			}
			path := writer.URI().Path()
			writer.Close()

			path = forceExtension(path, ".gpx")
			if saveErr := h.controller.Save(path); saveErr != nil {
				h.view.ShowError(saveErr)
				h.view.SetStatus("Save failed")
				return
			}
			h.view.SetStatus(fmt.Sprintf("Saved %s", filepath.Base(path)))
		})
}

func (h *Handlers) handleExport() {
	store := h.controller.Store()
	if store == nil || store.Len() == 0 {
		h.view.SetStatus("Nothing to export")
		return
	}

	h.view.ShowExportDialog(suggestFileName(store.Name(), ".geojson"),
		func(writer fyne.URIWriteCloser, err error) {
			if err != nil {
				h.view.ShowError(err)
				return
			}
			if writer == nil {
				h.view.SetStatus("Export cancelled")
				return
			}
			path := writer.URI().Path()
			writer.Close()

			if expErr := h.controller.ExportGeoJSON(path); expErr != nil {
				h.view.ShowError(expErr)
				h.view.SetStatus("Export failed")
				return
			}
			h.view.SetStatus(fmt.Sprintf("Exported %s", filepath.Base(path)))
		})
}

func (h *Handlers) handleUndo() {
	if h.controller.Undo() {
		h.view.SetStatus("Delete undone")
	} else {
		h.view.SetStatus("Nothing to undo")
	}
}

func (h *Handlers) reportDeletion() {
	if store := h.controller.Store(); store != nil {
		h.view.SetStatus(fmt.Sprintf("%d points remaining", store.Len()))
	}
}

// suggestFileName derives a dialog default from the track name.
func suggestFileName(name, ext string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "track"
	}
	return name + ext
}

// forceExtension appends ext when the chosen path has a different one,
// removing the empty file the save dialog already created.
func forceExtension(path, ext string) string {
	if strings.EqualFold(filepath.Ext(path), ext) {
		return path
	}
	os.Remove(path)
	return path + ext
}
