// Package analyzer runs a complete read-only analysis of a directory tree.
//
// Analyze walks the tree, reads metadata for each file, classifies it, and
// finally runs the duplicate pass over everything collected. The whole run is
// one sequential unit of work. Failures on individual directories or files are
// skipped silently; cancellation yields whatever was collected so far.
package analyzer

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/harrison/sweepsafe/internal/classifier"
	"github.com/harrison/sweepsafe/internal/duplicates"
	"github.com/harrison/sweepsafe/internal/fileutil"
	"github.com/harrison/sweepsafe/internal/models"
)

// Engine analyzes directory trees with a fixed classifier.
type Engine struct {
	fs         afero.Fs
	classifier *classifier.Classifier
	clock      func() time.Time
	runID      func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the wall clock used as "now" for classification.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithRunID makes every run of the engine report id as its run id, so callers
// can log the id before the scan starts.
func WithRunID(id string) Option {
	return func(e *Engine) {
		if id != "" {
			e.runID = func() string { return id }
		}
	}
}

// NewEngine creates an Engine. A nil fs means the host filesystem, and a nil
// classifier means the default rules.
func NewEngine(fs afero.Fs, cls *classifier.Classifier, opts ...Option) *Engine {
	if fs == nil {
		fs = afero.NewReadOnlyFs(afero.NewOsFs())
	}
	if cls == nil {
		cls = classifier.Default()
	}

	e := &Engine{
		fs:         fs,
		classifier: cls,
		clock:      time.Now,
		runID:      func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Classifier returns the classifier the engine applies.
func (e *Engine) Classifier() *classifier.Classifier {
	return e.classifier
}

// Analyze inspects every file reachable from root.
//
// The only error is a *ValidationError when root is empty or blank. A
// cancelled context is not an error: the partial result is returned with
// Cancelled set. The returned entries are never modified afterwards.
func (e *Engine) Analyze(ctx context.Context, root string) (*Result, error) {
	if strings.TrimSpace(root) == "" {
		return nil, &ValidationError{Field: "root", Message: "root folder is required"}
	}

	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	begin := time.Now()
	started := e.clock()
	result := &Result{
		RunID:     e.runID(),
		Root:      root,
		StartedAt: started,
	}

	var entries []models.FileEntry
	err := fileutil.Walk(ctx, e.fs, root, func(path string) {
		meta, err := fileutil.ReadMetadata(e.fs, path)
		if err != nil {
			return
		}
		entries = append(entries, models.NewFileEntry(meta, e.classifier.Classify(meta, started)))
	})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		result.Cancelled = true
	}

	result.Entries = duplicates.Detect(entries)
	result.Duration = time.Since(begin)

	return result, nil
}

// AnalyzeAsync runs Analyze on its own goroutine and delivers the outcome once
// on the returned channel.
func (e *Engine) AnalyzeAsync(ctx context.Context, root string) <-chan Outcome {
	ch := make(chan Outcome, 1)
	if strings.TrimSpace(root) == "" {
		_, err := e.Analyze(ctx, root)
		ch <- Outcome{Err: err}
		close(ch)
		return ch
	}

	go func() {
		defer close(ch)
		result, err := e.Analyze(ctx, root)
		ch <- Outcome{Result: result, Err: err}
	}()
	return ch
}

// Outcome carries the result of an asynchronous analysis.
type Outcome struct {
	Result *Result
	Err    error
}
