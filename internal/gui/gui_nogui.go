//go:build nogui

package gui

import (
	"fmt"

	"darkarchiver/internal/config"
	"darkarchiver/internal/controller"
)

// Start is a stub for builds with the GUI disabled.
func Start(cfg *config.Config, configPath string, ctrl *controller.Controller) error {
	fmt.Println("GUI is disabled in this build. Use --tui for the terminal interface.")
	return fmt.Errorf("GUI not available in this build")
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return false
}
