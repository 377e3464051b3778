package logger

import (
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/harrison/sweepsafe/internal/models"
)

// CategoryColor returns the color used for a category everywhere in console output.
// Green: likely safe
// Yellow: be careful
// Cyan: do not delete
func CategoryColor(c models.Category) *color.Color {
	switch c {
	case models.LikelySafe:
		return color.New(color.FgGreen)
	case models.BeCareful:
		return color.New(color.FgYellow)
	case models.DoNotDelete:
		return color.New(color.FgCyan)
	default:
		return color.New(color.Reset)
	}
}

func formatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}
