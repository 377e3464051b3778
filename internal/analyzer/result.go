package analyzer

import (
	"time"

	"github.com/harrison/sweepsafe/internal/duplicates"
	"github.com/harrison/sweepsafe/internal/models"
)

// Result is the outcome of one analysis run.
type Result struct {
	RunID     string             // Unique id of this run
	Root      string             // Absolute root that was scanned
	StartedAt time.Time          // Clock reading used as "now" for every file
	Duration  time.Duration      // Wall time spent
	Cancelled bool               // True when the walk stopped early
	Entries   []models.FileEntry // One entry per inspected file
}

// Summary counts entries per category.
func (r *Result) Summary() models.Summary {
	return models.Summarize(r.Entries)
}

// DuplicateGroups returns the same-name groups found in the result.
func (r *Result) DuplicateGroups() []duplicates.Group {
	return duplicates.Groups(r.Entries)
}

// Filter returns the entries whose category is in cats. No categories means all.
func (r *Result) Filter(cats ...models.Category) []models.FileEntry {
	if len(cats) == 0 {
		return append([]models.FileEntry(nil), r.Entries...)
	}

	want := make(map[models.Category]bool, len(cats))
	for _, c := range cats {
		want[c] = true
	}

	var out []models.FileEntry
	for _, e := range r.Entries {
		if want[e.Category] {
			out = append(out, e)
		}
	}
	return out
}
