package duplicates

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/sweepsafe/internal/models"
)

var now = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func entry(path string, modified time.Time, cat models.Category, reason string) models.FileEntry {
	name := path[strings.LastIndex(path, "/")+1:]
	return models.NewFileEntry(
		models.Metadata{Name: name, FullPath: path, SizeBytes: 2048, LastModified: modified},
		models.Judgment{Category: cat, Reason: reason},
	)
}

func byPath(entries []models.FileEntry) map[string]models.FileEntry {
	m := make(map[string]models.FileEntry, len(entries))
	for _, e := range entries {
		m[e.FullPath] = e
	}
	return m
}

func TestDetect_NewestKept(t *testing.T) {
	input := []models.FileEntry{
		entry("/r/old/data.csv", now.AddDate(0, 0, -10), models.DoNotDelete, "Recent activity or insufficient data."),
		entry("/r/new/data.csv", now.AddDate(0, 0, -1), models.DoNotDelete, "Recent activity or insufficient data."),
		entry("/r/solo.txt", now, models.DoNotDelete, "Recent activity or insufficient data."),
	}

	out := Detect(input)
	require.Len(t, out, 3)
	got := byPath(out)

	assert.Equal(t, models.DoNotDelete, got["/r/new/data.csv"].Category)
	assert.Equal(t, "Recent activity or insufficient data.", got["/r/new/data.csv"].Reason)

	older := got["/r/old/data.csv"]
	assert.Equal(t, models.BeCareful, older.Category)
	assert.Equal(t, "Recent activity or insufficient data. Older copy of a duplicate file name.", older.Reason)
	assert.True(t, strings.HasSuffix(older.Reason, OlderCopyNote))

	assert.Equal(t, models.DoNotDelete, got["/r/solo.txt"].Category)
}

func TestDetect_DoesNotMutateInput(t *testing.T) {
	input := []models.FileEntry{
		entry("/a/x.bin", now.AddDate(0, 0, -5), models.LikelySafe, "Not accessed for over a year."),
		entry("/b/x.bin", now, models.LikelySafe, "Not accessed for over a year."),
	}

	out := Detect(input)

	assert.Equal(t, models.LikelySafe, input[0].Category)
	assert.Equal(t, "Not accessed for over a year.", input[0].Reason)
	assert.Equal(t, models.BeCareful, out[0].Category)
	assert.Equal(t, "/a/x.bin", out[0].FullPath, "order preserved")
	assert.Equal(t, "/b/x.bin", out[1].FullPath)
}

func TestDetect_CaseInsensitiveNames(t *testing.T) {
	input := []models.FileEntry{
		entry("/a/Photo.JPG", now, models.DoNotDelete, "r"),
		entry("/b/photo.jpg", now.Add(-time.Hour), models.DoNotDelete, "r"),
		entry("/c/PHOTO.jpg", now.Add(-2*time.Hour), models.LikelySafe, "r"),
	}

	got := byPath(Detect(input))
	assert.Equal(t, models.DoNotDelete, got["/a/Photo.JPG"].Category)
	assert.Equal(t, models.BeCareful, got["/b/photo.jpg"].Category)
	assert.Equal(t, models.BeCareful, got["/c/PHOTO.jpg"].Category)
}

func TestDetect_KeptMemberRetainsAnyCategory(t *testing.T) {
	input := []models.FileEntry{
		entry("/a/cache.tmp", now, models.LikelySafe, "Temporary or cache-style extension."),
		entry("/b/cache.tmp", now.Add(-time.Minute), models.LikelySafe, "Temporary or cache-style extension."),
	}

	got := byPath(Detect(input))
	assert.Equal(t, models.LikelySafe, got["/a/cache.tmp"].Category)
	assert.Equal(t, models.BeCareful, got["/b/cache.tmp"].Category)
}

func TestDetect_EmptyReason(t *testing.T) {
	input := []models.FileEntry{
		entry("/a/f", now, models.DoNotDelete, ""),
		entry("/b/f", now.Add(-time.Second), models.DoNotDelete, "  "),
	}

	got := byPath(Detect(input))
	assert.Equal(t, OlderCopyNote, got["/b/f"].Reason)
}

func TestDetect_TieBreakByPath(t *testing.T) {
	same := now.AddDate(0, -1, 0)
	first := []models.FileEntry{
		entry("/z/dup.txt", same, models.DoNotDelete, "r"),
		entry("/a/dup.txt", same, models.DoNotDelete, "r"),
	}
	second := []models.FileEntry{first[1], first[0]}

	for _, input := range [][]models.FileEntry{first, second} {
		got := byPath(Detect(input))
		assert.Equal(t, models.DoNotDelete, got["/a/dup.txt"].Category)
		assert.Equal(t, models.BeCareful, got["/z/dup.txt"].Category)
	}
}

func TestDetect_ExactlyOneKeptPerGroup(t *testing.T) {
	var input []models.FileEntry
	for i, dir := range []string{"a", "b", "c", "d", "e"} {
		input = append(input, entry("/"+dir+"/same.dat", now.Add(-time.Duration(i)*time.Hour), models.DoNotDelete, "r"))
	}

	out := Detect(input)
	kept := 0
	for _, e := range out {
		if e.Category == models.DoNotDelete {
			kept++
			assert.Equal(t, "/a/same.dat", e.FullPath)
		} else {
			assert.Contains(t, e.Reason, "duplicate file name")
		}
	}
	assert.Equal(t, 1, kept)
}

func TestDetect_Empty(t *testing.T) {
	assert.Empty(t, Detect(nil))
}

func TestGroups(t *testing.T) {
	input := []models.FileEntry{
		entry("/1/b.txt", now.Add(-time.Hour), models.DoNotDelete, "r"),
		entry("/2/B.txt", now, models.DoNotDelete, "r"),
		entry("/1/a.txt", now, models.DoNotDelete, "r"),
		entry("/2/a.txt", now, models.DoNotDelete, "r"),
		entry("/1/unique", now, models.DoNotDelete, "r"),
	}

	groups := Groups(input)
	require.Len(t, groups, 2)

	assert.Equal(t, "a.txt", groups[0].Key)
	assert.Equal(t, "/1/a.txt", groups[0].Kept().FullPath)
	assert.Len(t, groups[0].Older(), 1)

	assert.Equal(t, "b.txt", groups[1].Key)
	assert.Equal(t, "/2/B.txt", groups[1].Kept().FullPath)
	assert.Equal(t, "/1/b.txt", groups[1].Older()[0].FullPath)
}
