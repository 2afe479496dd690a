// Package util provides shared utility functions used across the codebase.
package util

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Ellipsis is appended to text cut short by Truncate.
const Ellipsis = "…"

// Truncate shortens s to at most width visual columns, ending it with an
// ellipsis when anything was cut. ANSI escape codes and wide characters are
// measured correctly, so styled text can be passed in.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	if width == 1 {
		return Ellipsis
	}
	// ansi.Truncate counts the tail in the final width.
	return ansi.Truncate(s, width, Ellipsis)
}

// CenteredWindow picks which of total consecutive cells to show when only
// size fit, keeping focus as close to the middle as the edges allow. It
// returns the half-open range [start, end).
func CenteredWindow(total, focus, size int) (start, end int) {
	if total <= 0 || size <= 0 {
		return 0, 0
	}
	if size >= total {
		return 0, total
	}
	focus = max(0, min(focus, total-1))

	start = focus - size/2
	start = max(0, min(start, total-size))
	return start, start + size
}
