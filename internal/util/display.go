package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// GetDisplayWidth calculates the actual display width of a string, accounting for emojis
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadRight pads text with spaces to the given display width.
func PadRight(text string, width int) string {
	if gap := width - GetDisplayWidth(text); gap > 0 {
		return text + strings.Repeat(" ", gap)
	}
	return text
}

// PadLeft right-aligns text within the given display width.
func PadLeft(text string, width int) string {
	if gap := width - GetDisplayWidth(text); gap > 0 {
		return strings.Repeat(" ", gap) + text
	}
	return text
}

// Truncate shortens text to width display cells, marking the cut with an ellipsis.
func Truncate(text string, width int) string {
	return runewidth.Truncate(text, width, "…")
}
