package web2pdf

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// artifactSize returns the size of the produced artifact in bytes.
// Wraps ErrArtifactMissing when the path does not exist at call time: the
// orchestrator only asks after a successful compile, so absence means the
// compiler claimed success without producing a file.
func artifactSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("%w: %s", ErrArtifactMissing, path)
		}
		return 0, fmt.Errorf("inspecting artifact: %w", err)
	}
	return info.Size(), nil
}

// pageCount returns the PDF page count, or 0 if the file cannot be parsed.
// Best-effort: a malformed-but-present artifact still reports its size.
func pageCount(path string) int {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0
	}
	return n
}

// HumanSize formats a byte count with one decimal, starting at KB so that
// small artifacts read naturally: 128000 -> "125.0 KB", 0 -> "0.0 KB".
func HumanSize(bytes int64) string {
	size := float64(bytes) / 1024.0
	unit := "KB"
	for _, u := range []string{"MB", "GB", "TB"} {
		if size < 1024.0 {
			break
		}
		size /= 1024.0
		unit = u
	}
	return fmt.Sprintf("%.1f %s", size, unit)
}
