package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/orgfill/internal/config"
)

// Theme holds the resolved tcell styles for the terminal interface.
type Theme struct {
	Text   tcell.Style
	Status tcell.Style
	Error  tcell.Style
}

// NewTheme resolves a theme configuration into tcell styles. Hex colors
// are validated here so a typo in the config surfaces at startup, not
// as a black-on-black screen.
func NewTheme(tc config.ThemeConfig) (Theme, error) {
	fg, err := parseColor(tc.Foreground)
	if err != nil {
		return Theme{}, err
	}
	bg, err := parseColor(tc.Background)
	if err != nil {
		return Theme{}, err
	}
	statusFg, err := parseColor(tc.StatusFg)
	if err != nil {
		return Theme{}, err
	}
	statusBg, err := parseColor(tc.StatusBg)
	if err != nil {
		return Theme{}, err
	}
	errorFg, err := parseColor(tc.ErrorFg)
	if err != nil {
		return Theme{}, err
	}

	return Theme{
		Text:   tcell.StyleDefault.Foreground(fg).Background(bg),
		Status: tcell.StyleDefault.Foreground(statusFg).Background(statusBg),
		Error:  tcell.StyleDefault.Foreground(errorFg).Background(bg).Bold(true),
	}, nil
}

// parseColor converts a "#rrggbb" string to a tcell color.
func parseColor(hex string) (tcell.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, fmt.Errorf("theme color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
}
