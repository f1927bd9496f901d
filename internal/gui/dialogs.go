//go:build !nogui

package gui

import (
	"darkarchiver/internal/controller"
	"darkarchiver/internal/log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// fileDialogs answers the controller's path questions with Fyne dialogs.
// Fyne's open dialog picks one file; folders and drag-and-drop cover
// multiple files.
type fileDialogs struct {
	window fyne.Window
}

var _ controller.Dialogs = (*fileDialogs)(nil)

func (d *fileDialogs) ChooseFiles(done func(paths []string)) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			log.LogWithFields(log.F("error", err)).Error("File dialog failed")
			done(nil)
			return
		}
		if reader == nil {
			done(nil)
			return
		}
		path := reader.URI().Path()
		if cerr := reader.Close(); cerr != nil {
			log.Debugf("closing %s: %v", path, cerr)
		}
		done([]string{path})
	}, d.window)
	fd.SetConfirmText("Add")
	fd.Show()
}

func (d *fileDialogs) ChooseFolder(done func(dir string)) {
	d.chooseDir("Add", done)
}

func (d *fileDialogs) ChooseDestination(title string, done func(dir string)) {
	log.Debugf("asking for destination: %s", title)
	d.chooseDir("Select", done)
}

func (d *fileDialogs) chooseDir(confirm string, done func(dir string)) {
	fd := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			log.LogWithFields(log.F("error", err)).Error("Folder dialog failed")
			done("")
			return
		}
		if uri == nil {
			done("")
			return
		}
		done(uri.Path())
	}, d.window)
	fd.SetConfirmText(confirm)
	fd.Show()
}
