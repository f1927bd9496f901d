//go:build !nogui

package gui

import (
	"context"
	"image/color"

	"darkarchiver/internal/config"
	"darkarchiver/internal/controller"
	"darkarchiver/internal/log"
	"darkarchiver/internal/status"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// AppID identifies the application for Fyne preferences storage.
const AppID = "io.github.darkarchiver"

// App is the GUI application
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	cfg        *config.Config
	configPath string
	ctrl       *controller.Controller

	files      *fileList
	preview    *previewPanel
	search     *widget.Entry
	clearBtn   *widget.Button
	statusText *canvas.Text
	toolbar    map[controller.Command]*widget.Button
}

// NewApp creates the GUI over ctrl. configPath is where settings are saved;
// empty disables saving.
func NewApp(cfg *config.Config, configPath string, ctrl *controller.Controller) *App {
	return newApp(app.NewWithID(AppID), cfg, configPath, ctrl)
}

func newApp(fyneApp fyne.App, cfg *config.Config, configPath string, ctrl *controller.Controller) *App {
	fyneApp.Settings().SetTheme(newTheme(cfg.Theme))

	a := &App{
		fyneApp:    fyneApp,
		cfg:        cfg,
		configPath: configPath,
		ctrl:       ctrl,
		toolbar:    make(map[controller.Command]*widget.Button),
	}
	a.mainWindow = fyneApp.NewWindow("Dark Archiver")
	a.mainWindow.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))

	ctrl.SetDialogs(&fileDialogs{window: a.mainWindow})
	a.setupMainWindow()

	ctrl.OnChange(a.refresh)
	ctrl.Status().OnChange(a.showStatus)
	return a
}

// GetMainWindow returns the main window instance
func (a *App) GetMainWindow() fyne.Window {
	return a.mainWindow
}

// Run shows the window and blocks until it is closed.
func (a *App) Run() {
	a.mainWindow.Show()
	a.fyneApp.Run()
}

// dispatch returns a callback running cmd on the controller.
func (a *App) dispatch(cmd controller.Command) func() {
	return func() {
		a.ctrl.Dispatch(context.Background(), cmd)
	}
}

// setupMainWindow sets up the main window content
func (a *App) setupMainWindow() {
	a.mainWindow.SetMainMenu(a.createMainMenu())

	a.files = newFileList(a.ctrl)
	a.preview = newPreviewPanel(a.ctrl)

	// Fyne windows have no minimum size; a transparent spacer provides one.
	minSize := canvas.NewRectangle(color.Transparent)
	minSize.SetMinSize(fyne.NewSize(a.cfg.Window.MinWidth, a.cfg.Window.MinHeight))

	content := container.NewBorder(
		container.NewVBox(
			a.createToolbar(),
			a.createSearchBar(),
			widget.NewSeparator(),
		),
		a.createStatusBar(),
		nil,
		container.NewPadded(a.preview.container),
		a.files.container,
	)
	a.mainWindow.SetContent(container.NewStack(minSize, content))
	a.mainWindow.SetOnDropped(a.onDropped)
	a.addShortcuts()
}

func (a *App) createMainMenu() *fyne.MainMenu {
	exit := fyne.NewMenuItem("Exit", a.fyneApp.Quit)
	exit.IsQuit = true

	return fyne.NewMainMenu(
		fyne.NewMenu("File",
			fyne.NewMenuItem("Add Files...", a.dispatch(controller.CmdAdd)),
			fyne.NewMenuItem("Add Folder...", a.dispatch(controller.CmdAddFolder)),
			fyne.NewMenuItemSeparator(),
			exit,
		),
		fyne.NewMenu("Edit",
			fyne.NewMenuItem("Select All", a.dispatch(controller.CmdSelectAll)),
			fyne.NewMenuItem("Delete", a.dispatch(controller.CmdDelete)),
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Settings...", a.showSettings),
		),
		fyne.NewMenu("View",
			fyne.NewMenuItem("Toggle Preview", a.dispatch(controller.CmdTogglePreview)),
		),
	)
}

func (a *App) createToolbar() fyne.CanvasObject {
	items := []struct {
		label string
		icon  fyne.Resource
		cmd   controller.Command
	}{
		{"Add", theme.ContentAddIcon(), controller.CmdAdd},
		{"Edit", theme.DocumentCreateIcon(), controller.CmdEdit},
		{"Copy", theme.ContentCopyIcon(), controller.CmdCopy},
		{"Export", theme.UploadIcon(), controller.CmdExport},
		{"Delete", theme.DeleteIcon(), controller.CmdDelete},
	}

	objs := make([]fyne.CanvasObject, 0, len(items)+1)
	for _, it := range items {
		b := widget.NewButtonWithIcon(it.label, it.icon, a.dispatch(it.cmd))
		a.toolbar[it.cmd] = b
		objs = append(objs, b)
	}
	objs = append(objs, layout.NewSpacer())
	return container.NewHBox(objs...)
}

func (a *App) createSearchBar() fyne.CanvasObject {
	a.search = widget.NewEntry()
	a.search.SetPlaceHolder("Search files...")
	a.search.OnChanged = a.ctrl.SetQuery

	a.clearBtn = widget.NewButtonWithIcon("", theme.ContentClearIcon(), a.dispatch(controller.CmdClearSearch))
	a.clearBtn.Importance = widget.LowImportance

	return container.NewBorder(nil, nil, widget.NewIcon(theme.SearchIcon()), a.clearBtn, a.search)
}

// createStatusBar creates the single-line status bar
func (a *App) createStatusBar() fyne.CanvasObject {
	msg := a.ctrl.Status().Current()
	a.statusText = canvas.NewText(msg.Text, statusColor(a.cfg.Theme, msg))
	return container.NewHBox(a.statusText, layout.NewSpacer())
}

func (a *App) addShortcuts() {
	c := a.mainWindow.Canvas()
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { a.dispatch(controller.CmdAdd)() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyA, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift},
		func(fyne.Shortcut) { a.dispatch(controller.CmdSelectAll)() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyF, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { c.Focus(a.search) })
}

// onDropped adds dropped files, and the files inside dropped folders.
func (a *App) onDropped(_ fyne.Position, uris []fyne.URI) {
	files, dirs := splitDropped(uris)
	log.LogWithFields(log.F("files", len(files)), log.F("folders", len(dirs))).Debug("Items dropped")
	if len(files) > 0 {
		a.ctrl.AddFiles(files)
	}
	for _, dir := range dirs {
		a.ctrl.AddFolder(dir)
	}
}

// refresh redraws everything derived from the controller.
func (a *App) refresh() {
	if q := a.ctrl.Query(); a.search.Text != q {
		a.search.SetText(q)
	}
	a.files.refresh()
	a.preview.refresh()
	a.mainWindow.Content().Refresh()
}

func (a *App) showStatus(msg status.Message) {
	a.statusText.Text = msg.Text
	a.statusText.Color = statusColor(a.cfg.Theme, msg)
	a.statusText.Refresh()
}

// ShowError logs err, shows it in a dialog and on the status bar.
func (a *App) ShowError(title string, err error) {
	if err == nil {
		return
	}
	log.LogWithError(err).Error(title)
	a.ctrl.Status().Error(title + ": " + err.Error())
	dialog.ShowError(err, a.mainWindow)
}

// ShowInfo displays an information dialog
func (a *App) ShowInfo(message string) {
	dialog.ShowInformation("Information", message, a.mainWindow)
}
