package models

import (
	"time"

	"github.com/dustin/go-humanize"
)

// DateLayout is the yyyy-MM-dd rendering used for access dates in reports.
const DateLayout = "2006-01-02"

// Unavailable is rendered in place of an access time the filesystem did not record.
const Unavailable = "Unavailable"

// Metadata is what the metadata reader captures for one regular file.
type Metadata struct {
	Name         string     // Base filename, not unique across a tree
	FullPath     string     // Absolute path, unique within a run
	SizeBytes    int64      // File length in bytes
	LastModified time.Time  // Modification time, always present
	LastAccessed *time.Time // Access time, nil when untracked or a sentinel
	Extension    string     // Extension including the leading dot, case preserved
}

// EffectiveLastAccess returns the access time when tracked, otherwise the modification time.
func (m Metadata) EffectiveLastAccess() time.Time {
	if m.LastAccessed != nil {
		return *m.LastAccessed
	}
	return m.LastModified
}

// Judgment is the immutable verdict produced for one file.
type Judgment struct {
	Category Category
	Reason   string
}

// FileEntry is one analyzed file together with its classification.
type FileEntry struct {
	Metadata
	Judgment
}

// NewFileEntry pairs metadata with a judgment. Entries are only built once a
// judgment exists so no caller ever sees a half-classified file.
func NewFileEntry(meta Metadata, judgment Judgment) FileEntry {
	return FileEntry{Metadata: meta, Judgment: judgment}
}

// WithJudgment returns a copy of the entry carrying a different judgment.
func (e FileEntry) WithJudgment(judgment Judgment) FileEntry {
	e.Judgment = judgment
	return e
}

// SizeDescription renders the size in IEC units, e.g. "1.5 MiB".
func (e FileEntry) SizeDescription() string {
	if e.SizeBytes < 0 {
		return humanize.IBytes(0)
	}
	return humanize.IBytes(uint64(e.SizeBytes))
}

// LastAccessedDescription renders the access date or "Unavailable".
func (e FileEntry) LastAccessedDescription() string {
	if e.LastAccessed == nil {
		return Unavailable
	}
	return e.LastAccessed.Format(DateLayout)
}
