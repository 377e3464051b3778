// Package report renders analysis results for people and other tools.
//
// Every writer is a pure consumer of the engine output: it never touches
// the scanned filesystem.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/harrison/sweepsafe/internal/analyzer"
	"github.com/harrison/sweepsafe/internal/models"
)

// Format identifies an output format.
type Format string

// Supported formats.
const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat normalizes a user-supplied format name. "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table":
		return FormatTable, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of table, csv, json, markdown, html", s)
	}
}

// Options controls what Write renders.
type Options struct {
	Format Format
	Color  bool // Only used by the table format
}

// Write renders entries from result in the requested format. entries is the
// already filtered and ordered subset to list; summaries always describe the
// full result.
func Write(w io.Writer, result *analyzer.Result, entries []models.FileEntry, opts Options) error {
	switch opts.Format {
	case FormatTable, "":
		return WriteTable(w, entries, opts.Color)
	case FormatCSV:
		return WriteCSV(w, entries)
	case FormatJSON:
		return WriteJSON(w, result, entries)
	case FormatMarkdown:
		return WriteMarkdown(w, result, entries)
	case FormatHTML:
		return WriteHTML(w, result, entries)
	default:
		return fmt.Errorf("unsupported format: %s", opts.Format)
	}
}

// SortBySizeDesc returns a copy of entries ordered largest first, then by path.
func SortBySizeDesc(entries []models.FileEntry) []models.FileEntry {
	out := append([]models.FileEntry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SizeBytes != out[j].SizeBytes {
			return out[i].SizeBytes > out[j].SizeBytes
		}
		return out[i].FullPath < out[j].FullPath
	})
	return out
}

// SummaryLine renders the one-sentence per-category count.
func SummaryLine(s models.Summary) string {
	return fmt.Sprintf("%d files likely safe to delete, %d need caution, %d should be preserved.",
		s.Count(models.LikelySafe), s.Count(models.BeCareful), s.Count(models.DoNotDelete))
}
