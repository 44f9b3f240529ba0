package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds,
// so colors are lipgloss.AdaptiveColor pairs and "faint" styling is only
// applied on dark backgrounds (faint on light terminals often becomes
// illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted lipgloss.TerminalColor = ac("240", "243")

	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")

	colorSurfaceBg lipgloss.TerminalColor = ac("255", "235")
	colorSurfaceFg lipgloss.TerminalColor = ac("235", "252")

	colorAccent  lipgloss.TerminalColor = ac("27", "62") // blue
	colorDanger  lipgloss.TerminalColor = ac("124", "203")
	colorSuccess lipgloss.TerminalColor = ac("28", "78")
	colorWarn    lipgloss.TerminalColor = ac("130", "214")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
}

func styleBanner() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
}

func styleFlash() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorSuccess)
}

// statusStyle colors an application status the way the original badges did:
// pending amber, reviewed blue, accepted green, rejected red.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case "accepted":
		return lipgloss.NewStyle().Foreground(colorSuccess)
	case "rejected":
		return lipgloss.NewStyle().Foreground(colorDanger)
	case "reviewed":
		return lipgloss.NewStyle().Foreground(colorAccent)
	default:
		return lipgloss.NewStyle().Foreground(colorWarn)
	}
}

// setupColorProfile pins lipgloss to the terminal's detected capabilities
// before the first render, so adaptive colors resolve consistently.
func setupColorProfile() {
	lipgloss.SetColorProfile(termenv.ColorProfile())
}
