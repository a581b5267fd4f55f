package web2pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// auxExtensions lists the byproduct suffixes a XeLaTeX pass can leave
// behind, matched against the source document's base name.
var auxExtensions = []string{
	".aux", ".log", ".out", ".toc", ".lof", ".lot",
	".nav", ".snm", ".fls", ".fdb_latexmk", ".xdv",
}

// auxFilePaths returns the candidate auxiliary file paths for a source
// document. Computed on demand; the set itself is never mutated.
func auxFilePaths(sourcePath string) []string {
	dir := filepath.Dir(sourcePath)
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))

	paths := make([]string, 0, len(auxExtensions))
	for _, ext := range auxExtensions {
		paths = append(paths, filepath.Join(dir, base+ext))
	}
	return paths
}

// cleanWorkspace removes auxiliary files for the given source document and
// returns the removed paths. Missing files are skipped (idempotent).
// Files that exist but cannot be deleted are reported as warnings, not
// errors: a cleanup problem never changes the compilation outcome.
func cleanWorkspace(sourcePath string) (removed, warnings []string) {
	for _, path := range auxFilePaths(sourcePath) {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := os.Remove(path); err != nil {
			warnings = append(warnings, fmt.Sprintf("could not remove %s: %v", filepath.Base(path), err))
			continue
		}
		removed = append(removed, path)
	}
	return removed, warnings
}
