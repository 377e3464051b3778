package integration

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/harrison/sweepsafe/internal/analyzer"
	"github.com/harrison/sweepsafe/internal/classifier"
	"github.com/harrison/sweepsafe/internal/config"
	"github.com/harrison/sweepsafe/internal/metrics"
	"github.com/harrison/sweepsafe/internal/models"
	"github.com/harrison/sweepsafe/internal/report"
)

const configYAML = `
log_level: debug
format: csv
rules:
  large_file_mb: 1
`

// buildTree lays out a small tree on disk with controlled timestamps
func buildTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	now := time.Now()

	mk := func(rel string, size int64, age time.Duration) {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		f, err := os.Create(path)
		if err != nil {
			t.Fatalf("create %s: %v", rel, err)
		}
		if err := f.Truncate(size); err != nil {
			t.Fatalf("truncate %s: %v", rel, err)
		}
		f.Close()
		if age > 0 {
			stamp := now.Add(-age)
			if err := os.Chtimes(path, stamp, stamp); err != nil {
				t.Fatalf("chtimes %s: %v", rel, err)
			}
		}
	}

	day := classifier.Day
	mk("old.dat", 10, 400*day)
	mk("media/video.mkv", 2*1024*1024, 200*day)
	mk("media/small.mkv", 10, 200*day)
	mk("cache.TMP", 5, 0)
	mk("a/report.pdf", 20, 0)
	mk("b/REPORT.pdf", 30, 10*day)
	return root
}

// snapshot records path, modification time and mode for every entry under root
func snapshot(t *testing.T, root string) []string {
	t.Helper()
	var out []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		out = append(out, path+"|"+info.ModTime().String()+"|"+info.Mode().String())
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	sort.Strings(out)
	return out
}

func TestEndToEndPipeline(t *testing.T) {
	root := buildTree(t)
	before := snapshot(t, root)

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(configYAML), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate config: %v", err)
	}
	cls, err := classifier.New(cfg.ClassifierRules())
	if err != nil {
		t.Fatalf("classifier: %v", err)
	}

	result, err := analyzer.NewEngine(nil, cls).Analyze(context.Background(), root)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if result.Cancelled {
		t.Fatal("result should not be cancelled")
	}

	got := make(map[string]models.FileEntry)
	for _, e := range result.Entries {
		rel, _ := filepath.Rel(root, e.FullPath)
		got[filepath.ToSlash(rel)] = e
	}
	if len(got) != 6 {
		t.Fatalf("expected 6 entries, got %d: %v", len(got), got)
	}

	want := map[string]struct {
		category models.Category
		reason   string
	}{
		"old.dat":         {models.LikelySafe, classifier.ReasonStale},
		"media/video.mkv": {models.BeCareful, classifier.ReasonLargeDormant},
		"media/small.mkv": {models.DoNotDelete, classifier.ReasonRecent},
		"cache.TMP":       {models.LikelySafe, classifier.ReasonTemporary},
		"a/report.pdf":    {models.DoNotDelete, classifier.ReasonRecent},
		"b/REPORT.pdf":    {models.BeCareful, classifier.ReasonRecent + " Older copy of a duplicate file name."},
	}
	for rel, w := range want {
		e, ok := got[rel]
		if !ok {
			t.Errorf("missing entry %s", rel)
			continue
		}
		if e.Category != w.category {
			t.Errorf("%s: category = %s, want %s", rel, e.Category, w.category)
		}
		if e.Reason != w.reason {
			t.Errorf("%s: reason = %q, want %q", rel, e.Reason, w.reason)
		}
	}

	// Nothing under root was touched.
	after := snapshot(t, root)
	if strings.Join(before, "\n") != strings.Join(after, "\n") {
		t.Errorf("tree changed during analysis:\nbefore=%v\nafter=%v", before, after)
	}

	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		t.Fatalf("parse format: %v", err)
	}
	var buf bytes.Buffer
	if err := report.Write(&buf, result, report.SortBySizeDesc(result.Entries), report.Options{Format: format}); err != nil {
		t.Fatalf("write report: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 7 {
		t.Fatalf("expected header + 6 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], `"video.mkv",2097152,`) {
		t.Errorf("largest file should be listed first, got %s", lines[1])
	}

	if line := report.SummaryLine(result.Summary()); line != "2 files likely safe to delete, 2 need caution, 2 should be preserved." {
		t.Errorf("unexpected summary line: %s", line)
	}

	promPath := filepath.Join(t.TempDir(), "sweepsafe.prom")
	if err := metrics.WriteTextfile(promPath, result); err != nil {
		t.Fatalf("write metrics: %v", err)
	}
	prom, err := os.ReadFile(promPath)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(prom), "sweepsafe_duplicate_older_copies 1") {
		t.Errorf("metrics should count one older copy:\n%s", prom)
	}
}

func TestUnreadableDirectoryIsSkipped(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	root := buildTree(t)
	locked := filepath.Join(root, "media")
	if err := os.Chmod(locked, 0000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	result, err := analyzer.NewEngine(nil, nil).Analyze(context.Background(), root)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(result.Entries) != 4 {
		t.Errorf("expected 4 entries outside the locked directory, got %d", len(result.Entries))
	}
	for _, e := range result.Entries {
		if strings.HasPrefix(e.FullPath, locked) {
			t.Errorf("entry from unreadable directory reported: %s", e.FullPath)
		}
	}
}

func TestSymlinkedDirectoriesAreNotFollowed(t *testing.T) {
	root := buildTree(t)
	if err := os.Symlink(filepath.Join(root, "media"), filepath.Join(root, "loop")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	result, err := analyzer.NewEngine(nil, nil).Analyze(context.Background(), root)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(result.Entries) != 6 {
		t.Errorf("expected 6 entries, got %d", len(result.Entries))
	}
}
