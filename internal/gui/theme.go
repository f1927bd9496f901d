//go:build !nogui

package gui

import (
	"image/color"

	"darkarchiver/internal/config"
	"darkarchiver/internal/status"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// archiverTheme is the dark emerald palette from the config over the
// default dark theme.
type archiverTheme struct {
	colors map[fyne.ThemeColorName]color.Color
	base   fyne.Theme
}

var _ fyne.Theme = (*archiverTheme)(nil)

func newTheme(t config.Theme) *archiverTheme {
	base := theme.DefaultTheme()
	c := func(hex string, name fyne.ThemeColorName) color.Color {
		return mustColor(hex, base.Color(name, theme.VariantDark))
	}
	return &archiverTheme{
		base: base,
		colors: map[fyne.ThemeColorName]color.Color{
			theme.ColorNameBackground:        c(t.Background, theme.ColorNameBackground),
			theme.ColorNameOverlayBackground: c(t.Background, theme.ColorNameOverlayBackground),
			theme.ColorNameForeground:        c(t.Foreground, theme.ColorNameForeground),
			theme.ColorNamePrimary:           c(t.Accent, theme.ColorNamePrimary),
			theme.ColorNameFocus:             c(t.Accent, theme.ColorNameFocus),
			theme.ColorNameButton:            c(t.Button, theme.ColorNameButton),
			theme.ColorNameInputBackground:   c(t.Button, theme.ColorNameInputBackground),
			theme.ColorNameMenuBackground:    c(t.Button, theme.ColorNameMenuBackground),
			theme.ColorNameHeaderBackground:  c(t.Button, theme.ColorNameHeaderBackground),
			theme.ColorNameHover:             c(t.Hover, theme.ColorNameHover),
			theme.ColorNameSelection:         c(t.Selected, theme.ColorNameSelection),
			theme.ColorNameError:             c(t.Error, theme.ColorNameError),
			theme.ColorNameSuccess:           c(t.Success, theme.ColorNameSuccess),
			theme.ColorNameWarning:           c(t.Warning, theme.ColorNameWarning),
		},
	}
}

func (t *archiverTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	if c, ok := t.colors[name]; ok {
		return c
	}
	return t.base.Color(name, theme.VariantDark)
}

func (t *archiverTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *archiverTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

func (t *archiverTheme) Size(name fyne.ThemeSizeName) float32 {
	return t.base.Size(name)
}

// statusColor picks the colour for a status message. The idle Ready text
// uses the plain foreground.
func statusColor(t config.Theme, msg status.Message) color.Color {
	fallback := theme.DefaultTheme().Color(theme.ColorNameForeground, theme.VariantDark)
	if msg.Text == status.Ready {
		return mustColor(t.Foreground, fallback)
	}
	return statusColors(t, fallback)[msg.Level]
}

func statusColors(t config.Theme, fallback color.Color) map[status.Level]color.Color {
	return map[status.Level]color.Color{
		status.Info:    mustColor(t.Info, fallback),
		status.Success: mustColor(t.Success, fallback),
		status.Warning: mustColor(t.Warning, fallback),
		status.Error:   mustColor(t.Error, fallback),
	}
}
