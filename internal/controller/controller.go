// Package controller owns the track store and the selection model and
// applies every mutation. Views render read-only projections and talk
// back through the Event set, so the map and the list never reference
// each other.
package controller

import (
	"fmt"

	"github.com/sakikimi/gpxhandle/internal/gpxio"
	"github.com/sakikimi/gpxhandle/internal/logger"
	"github.com/sakikimi/gpxhandle/internal/selection"
	"github.com/sakikimi/gpxhandle/internal/track"
)

// View is the shared contract of the map view and the list view: a
// render over the current store and selection. Render is called
// synchronously after every mutation, so a view never observes a
// half-applied edit.
type View interface {
	Render(store *track.Store, selected []int)
}

// Controller wires the store, the selection model and the codec. It is
// single-threaded: all methods must be called from the UI event loop.
type Controller struct {
	logger logger.Logger
	codec  *gpxio.Codec

	store *track.Store
	sel   *selection.Model
	views []View

	path string
}

func New(codec *gpxio.Codec, log logger.Logger) *Controller {
	return &Controller{
		logger: log,
		codec:  codec,
		sel:    selection.NewModel(),
	}
}

// AttachView registers a view for re-render on every store mutation.
func (c *Controller) AttachView(v View) {
	c.views = append(c.views, v)
}

// Store returns the live store, nil before the first successful load.
func (c *Controller) Store() *track.Store {
	return c.store
}

// Selection exposes the selection model so views can subscribe to
// highlight changes.
func (c *Controller) Selection() *selection.Model {
	return c.sel
}

// Path returns the path of the currently loaded file.
func (c *Controller) Path() string {
	return c.path
}

// Dispatch routes a view event to the matching mutation.
func (c *Controller) Dispatch(ev Event) {
	switch e := ev.(type) {
	case SelectionChanged:
		if e.Index < 0 {
			c.ClearSelection()
		} else {
			c.Select(e.Index)
		}
	case DeleteRequested:
		if err := c.Delete(e.Indices...); err != nil {
			c.logger.Error("Controller", err, map[string]interface{}{
				"indices": e.Indices,
			})
		}
	}
}

// Load replaces the store with the file's contents and selects the
// first point. On failure the previous store and selection survive
// untouched.
func (c *Controller) Load(path string) error {
	store, err := c.codec.Load(path)
	if err != nil {
		c.logger.Error("Controller", err, map[string]interface{}{"path": path})
		return err
	}

	c.store = store
	c.path = path
	c.sel.Clear()
	c.render()
	if store.Len() > 0 {
		c.Select(0)
	}

	c.logger.Info("Controller", "track loaded", map[string]interface{}{
		"path":   path,
		"points": store.Len(),
	})
	return nil
}

// Save writes the current store without mutating it.
func (c *Controller) Save(path string) error {
	if c.store == nil || c.store.Len() == 0 {
		return fmt.Errorf("nothing to save")
	}
	if err := c.codec.Save(c.store, path); err != nil {
		c.logger.Error("Controller", err, map[string]interface{}{"path": path})
		return err
	}
	return nil
}

// ExportGeoJSON writes the current track as GeoJSON.
func (c *Controller) ExportGeoJSON(path string) error {
	if c.store == nil || c.store.Len() == 0 {
		return fmt.Errorf("nothing to export")
	}
	if err := c.codec.ExportGeoJSON(c.store, path); err != nil {
		c.logger.Error("Controller", err, map[string]interface{}{"path": path})
		return err
	}
	return nil
}

// SetTrackName updates the track name on the live store.
func (c *Controller) SetTrackName(name string) {
	if c.store == nil {
		return
	}
	c.store.SetName(name)
}

// Select replaces the selection with the given indices. Out-of-range
// indices are a programming defect in the caller: they are dropped and
// logged, never surfaced to the user.
func (c *Controller) Select(indices ...int) {
	size := 0
	if c.store != nil {
		size = c.store.Len()
	}

	valid := indices[:0]
	for _, idx := range indices {
		if idx < 0 || idx >= size {
			c.logger.Error("Controller",
				fmt.Errorf("selection index %d out of range [0,%d)", idx, size), nil)
			continue
		}
		valid = append(valid, idx)
	}
	c.sel.Select(valid...)
}

// ClearSelection empties the selection.
func (c *Controller) ClearSelection() {
	c.sel.Clear()
}

// Delete removes the given positions. The selection is cleared before
// any view re-renders, so it never points at removed data. An empty
// index set is a no-op.
func (c *Controller) Delete(indices ...int) error {
	if c.store == nil || len(indices) == 0 {
		return nil
	}
	if err := c.store.Delete(indices...); err != nil {
		return err
	}
	c.sel.Clear()
	c.render()

	c.logger.Debug("Controller", "points deleted", map[string]interface{}{
		"count":     len(indices),
		"remaining": c.store.Len(),
	})
	return nil
}

// DeleteSelected removes the currently selected points. A no-op when
// nothing is selected.
func (c *Controller) DeleteSelected() error {
	return c.Delete(c.sel.Current()...)
}

// DeleteBeforeSelected removes every point before the single selected
// index. Requires a single selection with at least one predecessor.
func (c *Controller) DeleteBeforeSelected() error {
	idx := c.sel.Single()
	if idx < 0 {
		return nil
	}
	if c.store == nil {
		return nil
	}
	if err := c.store.DeleteBefore(idx); err != nil {
		return err
	}
	c.sel.Clear()
	c.render()
	return nil
}

// DeleteAfterSelected removes every point after the single selected
// index. Requires a single selection with at least one successor.
func (c *Controller) DeleteAfterSelected() error {
	idx := c.sel.Single()
	if idx < 0 {
		return nil
	}
	if c.store == nil {
		return nil
	}
	if err := c.store.DeleteAfter(idx); err != nil {
		return err
	}
	c.sel.Clear()
	c.render()
	return nil
}

// Undo reverts the most recent delete, re-renders and selects the
// first restored point. Returns false when there is nothing to undo.
func (c *Controller) Undo() bool {
	if c.store == nil {
		return false
	}
	restored, ok := c.store.Undo()
	if !ok {
		return false
	}
	c.sel.Clear()
	c.render()
	if len(restored) > 0 {
		c.Select(restored[0])
	}

	c.logger.Debug("Controller", "delete undone", map[string]interface{}{
		"restored": len(restored),
	})
	return true
}

// CanUndo reports whether an undoable delete exists.
func (c *Controller) CanUndo() bool {
	return c.store != nil && c.store.CanUndo()
}

// Stats returns display statistics for the current track.
func (c *Controller) Stats() track.Stats {
	if c.store == nil {
		return track.Stats{}
	}
	return track.ComputeStats(c.store.Points())
}

func (c *Controller) render() {
	selected := c.sel.Current()
	for _, v := range c.views {
		v.Render(c.store, selected)
	}
}
