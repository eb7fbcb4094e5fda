// Package library locates the Photos library database on disk.
//
// Candidate generation is a pure function of the home directory so the search
// order is testable without a real library present; filesystem probing is a
// separate injectable step. A missing library is reported as not-found, never
// as an error: the caller owns the user-facing remediation text.
package library

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	bundleSuffix  = ".photoslibrary"
	primaryBundle = "Photos Library.photoslibrary"
)

// databasePath returns the database file inside a library bundle.
func databasePath(bundle string) string {
	return filepath.Join(bundle, "database", "Photos.sqlite")
}

// Candidates returns the ordered database locations to probe: the primary
// user library, any sibling .photoslibrary bundles under ~/Pictures (sorted,
// primary deduplicated), then the sandboxed-container fallback. listDir
// supplies directory entry names and may be nil.
func Candidates(home string, listDir func(dir string) []string) []string {
	pictures := filepath.Join(home, "Pictures")
	primary := databasePath(filepath.Join(pictures, primaryBundle))

	candidates := []string{primary}
	seen := map[string]struct{}{primary: {}}

	if listDir != nil {
		names := listDir(pictures)
		sort.Strings(names)
		for _, name := range names {
			if !strings.HasSuffix(name, bundleSuffix) {
				continue
			}
			candidate := databasePath(filepath.Join(pictures, name))
			if _, ok := seen[candidate]; ok {
				continue
			}
			seen[candidate] = struct{}{}
			candidates = append(candidates, candidate)
		}
	}

	container := databasePath(filepath.Join(
		home, "Library", "Containers", "com.apple.Photos", "Data", "Library", primaryBundle,
	))
	if _, ok := seen[container]; !ok {
		candidates = append(candidates, container)
	}
	return candidates
}

// Locate returns the first candidate that exists. The false return means no
// library was found, which is a user-actionable condition rather than an
// error.
func Locate(home string, listDir func(dir string) []string, exists func(path string) bool) (string, bool) {
	for _, candidate := range Candidates(home, listDir) {
		if exists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// Find runs Locate against the real filesystem rooted at the user's home.
func Find() (string, bool) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	return Locate(home, listBundleDirs, fileExists)
}

// Root returns the library bundle directory for a database path (two levels
// up from database/Photos.sqlite). It anchors relative asset path fragments.
func Root(dbPath string) string {
	return filepath.Dir(filepath.Dir(dbPath))
}

func listBundleDirs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
