package photodb

import (
	"os"
	"path/filepath"
)

// layoutDirs are the on-disk layout conventions tried in order: current
// libraries keep files under originals/, migrated ones under masters/.
var layoutDirs = [...]string{"originals", "masters"}

// PathCandidates returns the candidate file paths for an asset across every
// layout convention, primary first. Pure; no filesystem access.
func PathCandidates(root, directory, filename string) []string {
	if filename == "" {
		return nil
	}
	candidates := make([]string, 0, len(layoutDirs))
	for _, layout := range layoutDirs {
		candidates = append(candidates, filepath.Join(root, layout, directory, filename))
	}
	return candidates
}

// ResolvePath picks the first candidate that exists on disk. When none does,
// the primary-layout candidate is returned unverified so callers can still
// report where the file was expected. An empty filename resolves to nothing.
func ResolvePath(root, directory, filename string, exists func(string) bool) (Resolution, bool) {
	candidates := PathCandidates(root, directory, filename)
	if len(candidates) == 0 {
		return Resolution{}, false
	}
	if exists == nil {
		exists = fileExists
	}
	for _, candidate := range candidates {
		if exists(candidate) {
			return Resolution{Path: candidate, Verified: true}, true
		}
	}
	return Resolution{Path: candidates[0]}, true
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
