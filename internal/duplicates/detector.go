// Package duplicates flags older copies of files that share a name.
package duplicates

import (
	"sort"
	"strings"

	"github.com/harrison/sweepsafe/internal/models"
)

// OlderCopyNote is appended to the reason of every non-newest group member.
const OlderCopyNote = "Older copy of a duplicate file name."

// Group is a set of entries sharing a case-insensitive base name.
// Members are ordered newest first; Members[0] is the kept copy.
type Group struct {
	Key     string
	Members []models.FileEntry
}

// Kept returns the member left untouched by Detect.
func (g Group) Kept() models.FileEntry {
	return g.Members[0]
}

// Older returns the members Detect downgrades.
func (g Group) Older() []models.FileEntry {
	return g.Members[1:]
}

// Groups returns every name shared by more than one entry, sorted by key.
//
// Within a group members are ordered by modification time, newest first.
// Equal modification times fall back to lexical full path order, so the
// result does not depend on traversal order.
func Groups(entries []models.FileEntry) []Group {
	byName := make(map[string][]models.FileEntry)
	for _, e := range entries {
		key := strings.ToLower(e.Name)
		byName[key] = append(byName[key], e)
	}

	var groups []Group
	for key, members := range byName {
		if len(members) < 2 {
			continue
		}
		sort.SliceStable(members, func(i, j int) bool {
			return newer(members[i], members[j])
		})
		groups = append(groups, Group{Key: key, Members: members})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// Detect returns a copy of entries where every older member of a duplicate
// group is set to BeCareful with OlderCopyNote added to its reason. The
// newest member keeps its judgment whatever it was. entries is not modified
// and the returned slice keeps its order.
func Detect(entries []models.FileEntry) []models.FileEntry {
	out := make([]models.FileEntry, len(entries))
	copy(out, entries)

	index := make(map[string]int, len(out))
	for i, e := range out {
		index[e.FullPath] = i
	}

	for _, g := range Groups(entries) {
		for _, older := range g.Older() {
			i := index[older.FullPath]
			out[i] = out[i].WithJudgment(downgrade(out[i].Judgment))
		}
	}

	return out
}

func downgrade(j models.Judgment) models.Judgment {
	reason := OlderCopyNote
	if strings.TrimSpace(j.Reason) != "" {
		reason = j.Reason + " " + OlderCopyNote
	}
	return models.Judgment{Category: models.BeCareful, Reason: reason}
}

// newer orders a before b when a was modified later, or at the same instant
// with a lexically smaller path.
func newer(a, b models.FileEntry) bool {
	if !a.LastModified.Equal(b.LastModified) {
		return a.LastModified.After(b.LastModified)
	}
	return a.FullPath < b.FullPath
}
