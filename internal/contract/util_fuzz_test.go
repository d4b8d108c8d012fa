package contract

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// FuzzTruncatePath fuzzes TruncatePath with random paths and widths.
func FuzzTruncatePath(f *testing.F) {
	seeds := []struct {
		path  string
		width int
	}{
		{"src/a.js", 4},
		{"src/components/deep/file.js", 10},
		{"", 0},
		{"日本語/ファイル.js", 5},
	}
	for _, seed := range seeds {
		f.Add(seed.path, seed.width)
	}

	f.Fuzz(func(t *testing.T, path string, width int) {
		if !utf8.ValidString(path) || width > 1<<16 {
			return
		}
		out := TruncatePath(path, width)
		if out == path {
			return
		}
		if !strings.HasPrefix(out, "...") {
			t.Fatalf("truncated path %q lacks ellipsis", out)
		}
		if n := utf8.RuneCountInString(out); n != width {
			t.Fatalf("truncated path %q has %d runes, want %d", out, n, width)
		}
	})
}
