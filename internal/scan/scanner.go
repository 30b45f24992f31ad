// Package scan discovers stylesheets for batch operations and applies
// transforms to them on disk.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// Stats tracks file discovery statistics.
type Stats struct {
	FilesDiscovered int // Total files matched by the patterns
	FilesScanned    int // Files kept after filtering
	FilesSkipped    int // Files dropped by filtering
}

// DefaultIncludes is the glob set applied when a directory argument is
// given without explicit include patterns.
var DefaultIncludes = []string{"**/*.css"}

// Cache for gitignore to avoid re-reading on every file check
var (
	gitIgnoreCache *ignore.GitIgnore
	gitIgnoreOnce  sync.Once
)

// isMinified checks if a file is an already-minified stylesheet.
// Handles both .min.css and -min.css naming conventions.
func isMinified(path string) bool {
	return strings.HasSuffix(path, ".min.css") || strings.HasSuffix(path, "-min.css")
}

// loadGitIgnore loads the .gitignore file once (thread-safe).
// Gracefully degrades if .gitignore doesn't exist.
func loadGitIgnore() *ignore.GitIgnore {
	gitIgnoreOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(".gitignore")
		if err != nil {
			// No .gitignore or unreadable - just skip gitignore filtering
			gitIgnoreCache = nil
			return
		}
		gitIgnoreCache = gi
	})
	return gitIgnoreCache
}

// shouldSkipFile determines if a discovered file should be excluded.
//
// Two-layer filtering:
// 1. Suffix check (fast): skip already-minified stylesheets
// 2. Gitignore check: skip files matching .gitignore patterns
func shouldSkipFile(path string) bool {
	if isMinified(path) {
		return true
	}

	// Check gitignore patterns (only for relative paths)
	if !filepath.IsAbs(path) {
		gi := loadGitIgnore()
		if gi != nil && gi.MatchesPath(path) {
			return true
		}
	}

	return false
}

// Discover expands the given arguments into the stylesheet files to
// operate on. A file named directly is taken as-is, bypassing the skip
// filters. A directory is searched with the include globs. Anything else
// is treated as a glob pattern (doublestar ** supported). Matches are
// deduplicated in order, directories dropped, and minified or gitignored
// files skipped.
func Discover(args, includes []string) ([]string, Stats, error) {
	if len(includes) == 0 {
		includes = DefaultIncludes
	}

	var files []string
	seen := make(map[string]bool)
	var stats Stats

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err == nil && !info.IsDir() {
			// Explicitly named files are never filtered out
			if !seen[arg] {
				seen[arg] = true
				stats.FilesDiscovered++
				stats.FilesScanned++
				files = append(files, arg)
			}
			continue
		}

		patterns := []string{arg}
		if err == nil && info.IsDir() {
			patterns = patterns[:0]
			for _, inc := range includes {
				patterns = append(patterns, filepath.Join(arg, inc))
			}
		}

		for _, pattern := range patterns {
			matches, err := doublestar.FilepathGlob(pattern)
			if err != nil {
				return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
			}

			for _, match := range matches {
				if seen[match] {
					continue
				}
				minfo, err := os.Stat(match)
				if err != nil || minfo.IsDir() {
					continue
				}
				seen[match] = true
				stats.FilesDiscovered++

				if shouldSkipFile(match) {
					stats.FilesSkipped++
					continue
				}

				files = append(files, match)
				stats.FilesScanned++
			}
		}
	}

	return files, stats, nil
}

// RelativePath converts an absolute path to a path relative to the
// working directory for friendlier display.
func RelativePath(absPath string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return absPath
	}

	rel, err := filepath.Rel(cwd, absPath)
	if err != nil {
		return absPath
	}

	return rel
}
