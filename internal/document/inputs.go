package document

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandInputs resolves file arguments and doublestar patterns into a sorted,
// de-duplicated list of document paths. Plain paths must exist; patterns may
// match nothing.
func ExpandInputs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		clean := filepath.Clean(path)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	for _, pattern := range patterns {
		if !hasMeta(pattern) {
			info, err := os.Stat(pattern)
			if err != nil {
				return nil, fmt.Errorf("input not found: %s", pattern)
			}
			if info.IsDir() {
				return nil, fmt.Errorf("input is a directory: %s", pattern)
			}
			add(pattern)
			continue
		}

		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return nil, fmt.Errorf("invalid input pattern: %s", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to expand %s: %w", pattern, err)
		}
		for _, m := range matches {
			if _, err := FormatFor(m); err == nil {
				add(m)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

func hasMeta(pattern string) bool {
	for _, c := range pattern {
		switch c {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
