// Package classifier assigns an advisory category to a single file.
//
// Rules are evaluated in a fixed order and the first match wins:
//
//  1. a temporary or cache-style extension makes a file LikelySafe
//  2. no access for StaleAfter makes it LikelySafe
//  3. no access for DormantAfter on a file of at least LargeFileBytes makes it BeCareful
//  4. anything else is DoNotDelete
//
// The classifier only looks at metadata and the supplied clock reading.
package classifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/harrison/sweepsafe/internal/models"
)

// Day is the unit used for the age thresholds.
const Day = 24 * time.Hour

// Reasons attached to each rule.
const (
	ReasonTemporary    = "Temporary or cache-style extension."
	ReasonStale        = "Not accessed for over a year."
	ReasonLargeDormant = "Large file not opened in over six months."
	ReasonRecent       = "Recent activity or insufficient data."
)

// Rules holds the thresholds the classifier applies.
type Rules struct {
	// TempExtensions lists extensions, with leading dot, treated as disposable.
	TempExtensions []string
	// StaleAfter is the idle time after which any file is LikelySafe.
	StaleAfter time.Duration
	// DormantAfter is the idle time after which a large file needs caution.
	DormantAfter time.Duration
	// LargeFileBytes is the minimum size, inclusive, of a "large" file.
	LargeFileBytes int64
}

// DefaultRules returns the stock rule set: .tmp .log .bak .old .cache,
// 365 days stale, 180 days dormant, 100 MiB large.
func DefaultRules() Rules {
	return Rules{
		TempExtensions: []string{".tmp", ".log", ".bak", ".old", ".cache"},
		StaleAfter:     365 * Day,
		DormantAfter:   180 * Day,
		LargeFileBytes: 100 * 1024 * 1024,
	}
}

// Validate checks that thresholds are usable.
func (r Rules) Validate() error {
	if r.StaleAfter <= 0 {
		return fmt.Errorf("stale threshold must be > 0, got %v", r.StaleAfter)
	}
	if r.DormantAfter <= 0 {
		return fmt.Errorf("dormant threshold must be > 0, got %v", r.DormantAfter)
	}
	if r.DormantAfter > r.StaleAfter {
		return fmt.Errorf("dormant threshold (%v) must not exceed stale threshold (%v)", r.DormantAfter, r.StaleAfter)
	}
	if r.LargeFileBytes < 0 {
		return fmt.Errorf("large file threshold must be >= 0, got %d", r.LargeFileBytes)
	}
	for _, ext := range r.TempExtensions {
		if strings.TrimSpace(ext) == "" {
			return fmt.Errorf("temp extensions must not contain blank entries")
		}
	}
	return nil
}

// Classifier applies a fixed rule set. It is safe for concurrent use.
type Classifier struct {
	rules      Rules
	extensions map[string]bool
}

// New builds a Classifier from rules. Extensions are normalized to lowercase
// with a leading dot, so "TMP" and ".tmp" are equivalent.
func New(rules Rules) (*Classifier, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}

	exts := make(map[string]bool, len(rules.TempExtensions))
	normalized := make([]string, 0, len(rules.TempExtensions))
	for _, ext := range rules.TempExtensions {
		ext = NormalizeExtension(ext)
		if !exts[ext] {
			normalized = append(normalized, ext)
		}
		exts[ext] = true
	}
	rules.TempExtensions = normalized

	return &Classifier{rules: rules, extensions: exts}, nil
}

// Default returns a Classifier using DefaultRules.
func Default() *Classifier {
	c, err := New(DefaultRules())
	if err != nil {
		panic(err)
	}
	return c
}

// Rules returns a copy of the normalized rule set.
func (c *Classifier) Rules() Rules {
	r := c.rules
	r.TempExtensions = append([]string(nil), c.rules.TempExtensions...)
	return r
}

// IsTemporary reports whether ext is in the temporary extension set.
func (c *Classifier) IsTemporary(ext string) bool {
	if ext == "" {
		return false
	}
	return c.extensions[strings.ToLower(ext)]
}

// Classify returns the judgment for meta as of now.
func (c *Classifier) Classify(meta models.Metadata, now time.Time) models.Judgment {
	if c.IsTemporary(meta.Extension) {
		return models.Judgment{Category: models.LikelySafe, Reason: ReasonTemporary}
	}

	age := now.Sub(meta.EffectiveLastAccess())

	if age >= c.rules.StaleAfter {
		return models.Judgment{Category: models.LikelySafe, Reason: ReasonStale}
	}

	if age >= c.rules.DormantAfter && meta.SizeBytes >= c.rules.LargeFileBytes {
		return models.Judgment{Category: models.BeCareful, Reason: ReasonLargeDormant}
	}

	return models.Judgment{Category: models.DoNotDelete, Reason: ReasonRecent}
}

// NormalizeExtension lowercases ext and ensures a leading dot.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
