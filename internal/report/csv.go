package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/harrison/sweepsafe/internal/models"
)

// CSVHeader is the first line of every CSV export.
const CSVHeader = "File,Size,LastAccessed,Category,Reason"

// WriteCSV writes the export format: File and Reason are always quoted with
// embedded quotes doubled, Size is the raw byte count, LastAccessed is
// yyyy-MM-dd or Unavailable, and Category is the report label.
//
// encoding/csv only quotes fields when required, so lines are built by hand.
func WriteCSV(w io.Writer, entries []models.FileEntry) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintln(bw, CSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, e := range entries {
		line := strings.Join([]string{
			quote(e.Name),
			strconv.FormatInt(e.SizeBytes, 10),
			e.LastAccessedDescription(),
			e.Category.Description(),
			quote(e.Reason),
		}, ",")
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
