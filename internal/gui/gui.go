//go:build !nogui

package gui

import (
	"darkarchiver/internal/config"
	"darkarchiver/internal/controller"
)

var _ Interface = (*App)(nil)

// Start opens the main window and blocks until it is closed.
func Start(cfg *config.Config, configPath string, ctrl *controller.Controller) error {
	NewApp(cfg, configPath, ctrl).Run()
	return nil
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return true
}
