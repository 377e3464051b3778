package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/harrison/sweepsafe/internal/analyzer"
	"github.com/harrison/sweepsafe/internal/models"
)

type jsonReport struct {
	RunID      string          `json:"run_id"`
	Root       string          `json:"root"`
	StartedAt  time.Time       `json:"started_at"`
	DurationMS int64           `json:"duration_ms"`
	Cancelled  bool            `json:"cancelled"`
	Summary    jsonSummary     `json:"summary"`
	Entries    []jsonFileEntry `json:"entries"`
}

type jsonSummary struct {
	TotalFiles int                  `json:"total_files"`
	TotalBytes int64                `json:"total_bytes"`
	Categories []jsonCategoryTotals `json:"categories"`
}

type jsonCategoryTotals struct {
	Category    models.Category `json:"category"`
	Description string          `json:"description"`
	Files       int             `json:"files"`
	Bytes       int64           `json:"bytes"`
}

type jsonFileEntry struct {
	Name         string          `json:"name"`
	FullPath     string          `json:"full_path"`
	SizeBytes    int64           `json:"size_bytes"`
	LastModified time.Time       `json:"last_modified"`
	LastAccessed *time.Time      `json:"last_accessed"`
	Extension    string          `json:"extension"`
	Category     models.Category `json:"category"`
	Reason       string          `json:"reason"`
}

// WriteJSON writes the run metadata, the full summary and entries as indented JSON.
func WriteJSON(w io.Writer, result *analyzer.Result, entries []models.FileEntry) error {
	summary := result.Summary()

	doc := jsonReport{
		RunID:      result.RunID,
		Root:       result.Root,
		StartedAt:  result.StartedAt,
		DurationMS: result.Duration.Milliseconds(),
		Cancelled:  result.Cancelled,
		Summary: jsonSummary{
			TotalFiles: summary.Total.Files,
			TotalBytes: summary.Total.Bytes,
		},
		Entries: make([]jsonFileEntry, 0, len(entries)),
	}

	for _, c := range models.AllCategories {
		doc.Summary.Categories = append(doc.Summary.Categories, jsonCategoryTotals{
			Category:    c,
			Description: c.Description(),
			Files:       summary.Count(c),
			Bytes:       summary.Bytes(c),
		})
	}

	for _, e := range entries {
		doc.Entries = append(doc.Entries, jsonFileEntry{
			Name:         e.Name,
			FullPath:     e.FullPath,
			SizeBytes:    e.SizeBytes,
			LastModified: e.LastModified,
			LastAccessed: e.LastAccessed,
			Extension:    e.Extension,
			Category:     e.Category,
			Reason:       e.Reason,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
