package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/harrison/sweepsafe/internal/logger"
	"github.com/harrison/sweepsafe/internal/models"
)

// WriteTable prints an aligned console table. With color enabled the category
// column is tinted; padding is applied before coloring so columns line up.
func WriteTable(w io.Writer, entries []models.FileEntry, color bool) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No files found")
		return err
	}

	headers := []string{"CATEGORY", "SIZE", "LAST ACCESSED", "PATH", "REASON"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Category.Description(),
			e.SizeDescription(),
			e.LastAccessedDescription(),
			e.FullPath,
			e.Reason,
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, c := range row {
			if n := utf8.RuneCountInString(c); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var b strings.Builder
	b.WriteString(formatRow(headers, widths))
	for i, row := range rows {
		line := formatRow(row, widths)
		if color {
			category := pad(row[0], widths[0])
			line = logger.CategoryColor(entries[i].Category).Sprint(category) + line[len(category):]
		}
		b.WriteString(line)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		if i == len(cells)-1 {
			parts[i] = c
			continue
		}
		parts[i] = pad(c, widths[i])
	}
	return strings.Join(parts, "  ") + "\n"
}

func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
