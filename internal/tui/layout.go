package tui

import (
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// truncateLine forces s to at most width columns, ANSI-aware, appending an
// ellipsis when it had to cut.
func truncateLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return xansi.Cut(s, 0, 1)
	}
	return xansi.Cut(s, 0, width-1) + "…"
}

func modalBodyWidth(width int) int {
	w := width - 12
	if w > 72 {
		w = 72
	}
	if w < 24 {
		w = 24
	}
	return w
}

// renderModalBox draws the single active modal: a titled, bordered box whose
// body is wrapped to the modal width.
func renderModalBox(width int, title, content string) string {
	bodyW := modalBodyWidth(width)

	titleLine := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Width(bodyW).
		Padding(0, 1).
		Render(truncateLine(title, bodyW-2))

	body := lipgloss.NewStyle().
		Width(bodyW).
		Padding(0, 1).
		Background(colorSurfaceBg).
		Foreground(colorSurfaceFg).
		Render(content)

	box := lipgloss.JoinVertical(lipgloss.Left, titleLine, body)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Render(box)
}

// placeCentered centers the modal in the full terminal area.
func placeCentered(width, height int, box string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
