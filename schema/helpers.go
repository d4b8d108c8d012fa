package schema

import (
	"fmt"
	"slices"
	"strings"
)

// ComparePaths orders slash-separated relative paths so that a path nested in a
// directory sorts before a top-level file, falling back to plain string order.
// A leading slash does not count as nesting.
func ComparePaths(a, b string) int {
	aNested := strings.Index(a, "/") > 0
	bNested := strings.Index(b, "/") > 0
	switch {
	case aNested && !bNested:
		return -1
	case !aNested && bNested:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// SortFileResults sorts results in display order by relative path.
func SortFileResults(files []FileResult) {
	slices.SortStableFunc(files, func(a, b FileResult) int {
		return ComparePaths(a.RelativePath, b.RelativePath)
	})
}

// SortFileRecords sorts records in display order by relative path.
func SortFileRecords(records []FileRecord) {
	slices.SortStableFunc(records, func(a, b FileRecord) int {
		return ComparePaths(a.RelativePath, b.RelativePath)
	})
}

// PadCenter centers s within width columns, putting the extra space on the left.
// Strings at least width long are returned unchanged.
func PadCenter(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	left := (width - n + 1) / 2
	right := width - n - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// CheckMeasured returns an error naming the first file that has no complexity report.
func (r *ComplexityResult) CheckMeasured() error {
	for _, f := range r.Files {
		if _, ok := f.Maintainability(); !ok {
			return fmt.Errorf("file %s has no complexity report", f.RelativePath)
		}
	}
	return nil
}
