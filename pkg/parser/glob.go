package parser

import (
	"fmt"
	"path/filepath"
	"sort"
)

// ExpandGlobs expands log source patterns into a deduplicated, sorted
// list of file paths. A pattern that matches nothing is kept as a
// literal path so the caller can report file-not-found with the
// original spelling.
func ExpandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		if seen[path] {
			return
		}
		seen[path] = true
		files = append(files, path)
	}

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}

		if len(matches) == 0 {
			add(pattern)
			continue
		}
		for _, match := range matches {
			add(match)
		}
	}

	sort.Strings(files)

	return files, nil
}
