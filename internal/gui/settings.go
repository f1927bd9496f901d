//go:build !nogui

package gui

import (
	"fmt"

	"darkarchiver/internal/config"
	"darkarchiver/internal/log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// settingsForm edits a draft copy of the config. Nothing is applied until save.
type settingsForm struct {
	draft config.Config

	addPolicy      *widget.Select
	transferPolicy *widget.Select
	collision      *widget.Select
	searchMode     *widget.Select
	previewShow    *widget.Check
	content        fyne.CanvasObject
}

func newSettingsForm(cfg *config.Config) *settingsForm {
	f := &settingsForm{draft: *cfg}

	f.addPolicy = widget.NewSelect([]string{config.PolicyAbort, config.PolicySkip}, func(v string) {
		f.draft.Add.ErrorPolicy = v
	})
	f.addPolicy.SetSelected(cfg.Add.ErrorPolicy)

	f.transferPolicy = widget.NewSelect([]string{config.PolicyAbort, config.PolicyContinue}, func(v string) {
		f.draft.Transfer.ErrorPolicy = v
	})
	f.transferPolicy.SetSelected(cfg.Transfer.ErrorPolicy)

	f.collision = widget.NewSelect([]string{config.CollisionOverwrite, config.CollisionSkip, config.CollisionRename}, func(v string) {
		f.draft.Transfer.Collision = v
	})
	f.collision.SetSelected(cfg.Transfer.Collision)

	f.searchMode = widget.NewSelect([]string{config.SearchSubstring, config.SearchGlob, config.SearchFuzzy}, func(v string) {
		f.draft.Search.Mode = v
	})
	f.searchMode.SetSelected(cfg.Search.Mode)

	f.previewShow = widget.NewCheck("Show the preview panel at start", func(on bool) {
		f.draft.Preview.Show = on
	})
	f.previewShow.SetChecked(cfg.Preview.Show)

	f.content = container.NewVBox(
		widget.NewCard("Adding files", "When a file cannot be read", f.addPolicy),
		widget.NewCard("Copy and export", "", widget.NewForm(
			widget.NewFormItem("On failure", f.transferPolicy),
			widget.NewFormItem("Existing files", f.collision),
		)),
		widget.NewCard("Search", "How the query matches names", f.searchMode),
		widget.NewCard("Preview", "", f.previewShow),
	)
	return f
}

// showSettings opens the settings dialog.
func (a *App) showSettings() {
	form := newSettingsForm(a.cfg)
	d := dialog.NewCustomConfirm("Settings", "Save", "Cancel", form.content, func(ok bool) {
		if ok {
			a.saveSettings(&form.draft)
		}
	}, a.mainWindow)
	d.Resize(fyne.NewSize(420, 380))
	d.Show()
}

// saveSettings validates draft, applies it and writes it to the config file.
func (a *App) saveSettings(draft *config.Config) {
	if err := draft.Validate(); err != nil {
		a.ShowError("Invalid settings", err)
		return
	}
	if err := a.ctrl.ApplyConfig(draft); err != nil {
		a.ShowError("Invalid settings", err)
		return
	}
	*a.cfg = *draft

	if a.configPath == "" {
		a.ctrl.Status().Info("Settings applied")
		return
	}
	if err := config.SaveConfig(a.cfg, a.configPath); err != nil {
		a.ShowError("Failed to save configuration", fmt.Errorf("saving %s: %w", a.configPath, err))
		return
	}
	log.LogWithFields(log.F("path", a.configPath)).Info("Configuration saved")
	a.ctrl.Status().Success("Settings saved")
}
