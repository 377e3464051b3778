package models

// CategoryTotals aggregates the entries of a single category.
type CategoryTotals struct {
	Files int
	Bytes int64
}

// Summary aggregates a result set per category.
type Summary struct {
	Total      CategoryTotals
	ByCategory map[Category]CategoryTotals
}

// Summarize counts files and bytes per category.
func Summarize(entries []FileEntry) Summary {
	s := Summary{ByCategory: make(map[Category]CategoryTotals, len(AllCategories))}
	for _, c := range AllCategories {
		s.ByCategory[c] = CategoryTotals{}
	}

	for _, e := range entries {
		totals := s.ByCategory[e.Category]
		totals.Files++
		totals.Bytes += e.SizeBytes
		s.ByCategory[e.Category] = totals

		s.Total.Files++
		s.Total.Bytes += e.SizeBytes
	}

	return s
}

// Count returns the number of files in a category.
func (s Summary) Count(c Category) int {
	return s.ByCategory[c].Files
}

// Bytes returns the total size of the files in a category.
func (s Summary) Bytes(c Category) int64 {
	return s.ByCategory[c].Bytes
}
