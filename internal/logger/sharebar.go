package logger

import (
	"fmt"
	"strings"
)

// ShareBar renders what fraction of a total one part represents.
// Format: "[===       ] 30%"
type ShareBar struct {
	part  int
	total int
	width int
}

// NewShareBar creates a bar of the given width; widths below 1 become 10.
func NewShareBar(part, total, width int) ShareBar {
	if width < 1 {
		width = 10
	}
	return ShareBar{part: part, total: total, width: width}
}

// Percentage returns the share clamped to 0-100.
func (b ShareBar) Percentage() int {
	if b.total <= 0 {
		return 0
	}
	perc := (b.part * 100) / b.total
	if perc > 100 {
		perc = 100
	}
	if perc < 0 {
		perc = 0
	}
	return perc
}

// Render generates the ASCII bar.
func (b ShareBar) Render() string {
	perc := b.Percentage()
	filled := (perc * b.width) / 100
	return fmt.Sprintf("[%s%s] %d%%",
		strings.Repeat("=", filled), strings.Repeat(" ", b.width-filled), perc)
}
