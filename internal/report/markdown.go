package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/harrison/sweepsafe/internal/analyzer"
	"github.com/harrison/sweepsafe/internal/models"
)

// WriteMarkdown writes a summary table, one section per category, and the
// duplicate groups found in the run.
func WriteMarkdown(w io.Writer, result *analyzer.Result, entries []models.FileEntry) error {
	bw := bufio.NewWriter(w)
	writeMarkdown(bw, result, entries)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write markdown: %w", err)
	}
	return nil
}

func writeMarkdown(b io.Writer, result *analyzer.Result, entries []models.FileEntry) {
	summary := result.Summary()

	fmt.Fprintf(b, "# Cleanup report for `%s`\n\n", strings.ReplaceAll(result.Root, "`", "'"))
	fmt.Fprintf(b, "- Run: %s\n", result.RunID)
	fmt.Fprintf(b, "- Started: %s\n", result.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(b, "- Files: %d (%s)\n", summary.Total.Files, bytesLabel(summary.Total.Bytes))
	if result.Cancelled {
		fmt.Fprintf(b, "- **Scan was cancelled; results are partial.**\n")
	}
	fmt.Fprintf(b, "\n%s\n\n", SummaryLine(summary))

	fmt.Fprintf(b, "## Summary\n\n")
	fmt.Fprintf(b, "| Category | Files | Size |\n")
	fmt.Fprintf(b, "| --- | ---: | ---: |\n")
	for _, c := range models.AllCategories {
		fmt.Fprintf(b, "| %s | %d | %s |\n", c.Description(), summary.Count(c), bytesLabel(summary.Bytes(c)))
	}

	for _, c := range models.AllCategories {
		var section []models.FileEntry
		for _, e := range entries {
			if e.Category == c {
				section = append(section, e)
			}
		}
		if len(section) == 0 {
			continue
		}

		fmt.Fprintf(b, "\n## %s\n\n", c.Description())
		fmt.Fprintf(b, "| File | Size | Last accessed | Reason |\n")
		fmt.Fprintf(b, "| --- | ---: | --- | --- |\n")
		for _, e := range section {
			fmt.Fprintf(b, "| %s | %s | %s | %s |\n",
				cell(e.FullPath), e.SizeDescription(), e.LastAccessedDescription(), cell(e.Reason))
		}
	}

	groups := result.DuplicateGroups()
	if len(groups) == 0 {
		return
	}

	fmt.Fprintf(b, "\n## Duplicate file names\n\n")
	for _, g := range groups {
		kept := g.Kept()
		fmt.Fprintf(b, "- **%s**: kept %s\n", cell(kept.Name), cell(kept.FullPath))
		for _, older := range g.Older() {
			fmt.Fprintf(b, "  - older: %s (%s)\n", cell(older.FullPath), older.LastModified.Format(models.DateLayout))
		}
	}
}

// cell escapes text for a markdown table cell.
func cell(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		"|", `\|`,
		"*", `\*`,
		"_", `\_`,
		"`", "\\`",
		"<", "&lt;",
		">", "&gt;",
		"\n", " ",
		"\r", " ",
	)
	return r.Replace(s)
}

func bytesLabel(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}
