//go:build !nogui

package gui

import (
	"fmt"
	"image/color"
	"os"

	"darkarchiver/internal/log"

	"fyne.io/fyne/v2"
)

// parseHexColor turns "#RRGGBB" into an opaque colour.
func parseHexColor(hex string) (color.NRGBA, error) {
	var r, g, b uint8
	if len(hex) != 7 || hex[0] != '#' {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", hex)
	}
	if _, err := fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", hex, err)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// mustColor parses hex or falls back to fallback. Config validation
// normally rules out the fallback.
func mustColor(hex string, fallback color.Color) color.Color {
	c, err := parseHexColor(hex)
	if err != nil {
		log.Warnf("Using fallback colour: %v", err)
		return fallback
	}
	return c
}

// splitDropped separates dropped URIs into files and directories. URIs
// that are not on the local disk or cannot be stat'd are skipped.
func splitDropped(uris []fyne.URI) (files, dirs []string) {
	for _, u := range uris {
		if u == nil || u.Scheme() != "file" {
			continue
		}
		info, err := os.Stat(u.Path())
		if err != nil {
			log.Warnf("Ignoring dropped item %s: %v", u.Path(), err)
			continue
		}
		if info.IsDir() {
			dirs = append(dirs, u.Path())
		} else {
			files = append(files, u.Path())
		}
	}
	return files, dirs
}
