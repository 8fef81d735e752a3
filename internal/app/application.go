// Package app assembles the window, the controller and the view and
// owns the application lifecycle.
package app

import (
	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"github.com/sakikimi/gpxhandle/internal/controller"
	"github.com/sakikimi/gpxhandle/internal/gpxio"
	"github.com/sakikimi/gpxhandle/internal/gui"
	"github.com/sakikimi/gpxhandle/internal/logger"
)

const (
	AppName    = "GPX Track Editor"
	AppID      = "com.sakikimi.gpxhandle"
	AppVersion = "1.0.0"

	initialWidth  = 1500
	initialHeight = 900
)

type Application struct {
	fyneApp    fyne.App
	window     fyne.Window
	logger     logger.Logger
	controller *controller.Controller
	view       *gui.View
	handlers   *Handlers
}

func NewApplication(log logger.Logger) *Application {
	fyneApp := fyneapp.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(initialWidth, initialHeight))
	window.CenterOnScreen()
	window.SetMaster()

	codec := gpxio.NewCodec(log)
	ctrl := controller.New(codec, log)
	view := gui.NewView(window)

	// The view is re-rendered on every store mutation and follows
	// selection changes through the model's observer list.
	ctrl.AttachView(view)
	ctrl.Selection().Subscribe(view.OnSelectionChanged)

	handlers := NewHandlers(ctrl, view, log)
	handlers.wire()

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		logger:     log,
		controller: ctrl,
		view:       view,
		handlers:   handlers,
	}

	log.Info("Application", "initialization complete", map[string]interface{}{
		"version": AppVersion,
	})
	return application
}

// LoadInitial loads a GPX path given on the command line. A failure
// here is fatal per the CLI contract.
func (a *Application) LoadInitial(path string) error {
	return a.handlers.loadPath(path)
}

func (a *Application) Run() error {
	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "shutdown requested", nil)
		a.window.Close()
	})

	a.view.Show()
	a.logger.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	return nil
}
