package core

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/huangsam/codeinsights/internal/contract"
	"github.com/huangsam/codeinsights/schema"
)

// SelectFiles returns the absolute, symlink-resolved paths of every regular file
// under cfg.Root that matches cfg.Glob and survives the exclusion and grep filters.
// The order of the result is not meaningful.
//
// When cfg.DebugFile is set, globbing is bypassed and exactly that file is returned.
func SelectFiles(cfg *contract.Config) ([]string, error) {
	root, err := resolveRoot(cfg.Root)
	if err != nil {
		return nil, contract.SelectionError(cfg.Root, err)
	}

	if cfg.DebugFile != "" {
		p := cfg.DebugFile
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, p)
		}
		resolved, err := filepath.EvalSymlinks(p)
		if err != nil {
			return nil, contract.SelectionError(p, err)
		}
		contract.Debug().Debug("debug file override", "path", resolved)
		return []string{resolved}, nil
	}

	// doublestar skips unreadable directories, so the base has to be checked up front
	if _, err := os.ReadDir(root); err != nil {
		return nil, contract.SelectionError(root, err)
	}

	matches, err := doublestar.Glob(os.DirFS(root), cfg.Glob, doublestar.WithFilesOnly())
	if err != nil {
		return nil, contract.SelectionError(root, err)
	}

	seen := make(map[string]struct{}, len(matches))
	paths := make([]string, 0, len(matches))
	for _, rel := range matches {
		if !keepRelativePath(cfg, rel) {
			continue
		}
		resolved, err := filepath.EvalSymlinks(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			// dangling symlink
			continue
		}
		info, err := os.Stat(resolved)
		if err != nil || info.IsDir() {
			continue
		}
		if _, dup := seen[resolved]; dup {
			continue
		}
		seen[resolved] = struct{}{}
		paths = append(paths, resolved)
	}

	contract.Debug().Debug("selected files", "root", root, "glob", cfg.Glob, "matches", len(matches), "kept", len(paths))
	return paths, nil
}

// keepRelativePath applies the hidden-path, exclusion, grep and js-only filters to a
// slash-separated relative path.
func keepRelativePath(cfg *contract.Config, rel string) bool {
	if hasDotSegment(rel) && !hasDotSegment(cfg.Glob) {
		return false
	}
	if cfg.Exclude != nil && cfg.Exclude.MatchString(rel) {
		return false
	}
	if cfg.Grep != nil && cfg.Grep.MatchString(rel) == cfg.Invert {
		return false
	}
	if cfg.JSOnly && !slices.Contains(contract.JSExtensions, strings.ToLower(path.Ext(rel))) {
		return false
	}
	return true
}

// hasDotSegment reports whether any segment of a slash-separated path or glob starts with a dot.
func hasDotSegment(p string) bool {
	for seg := range strings.SplitSeq(p, "/") {
		if strings.HasPrefix(seg, ".") && seg != "." && seg != ".." {
			return true
		}
	}
	return false
}

// resolveRoot resolves symlinks in root and checks that it is a directory.
func resolveRoot(root string) (string, error) {
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", &fs.PathError{Op: "select", Path: resolved, Err: errors.New("not a directory")}
	}
	return resolved, nil
}

// NewFileRecords pairs every path with its slash-separated path relative to root
// and returns the records in display order.
func NewFileRecords(root string, paths []string) []schema.FileRecord {
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	records := make([]schema.FileRecord, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			rel = p
		}
		records = append(records, schema.FileRecord{Path: p, RelativePath: filepath.ToSlash(rel)})
	}
	schema.SortFileRecords(records)
	return records
}
