package utils

import (
	"path/filepath"

	"github.com/aquilax/truncate"
)

func TruncateFilename(path string) string {
	return TruncateMiddle(filepath.ToSlash(path), 50)
}

// TruncateMiddle keeps the start and the end of s, which for paths are the most
// useful parts.
func TruncateMiddle(s string, length int) string {
	return truncate.Truncate(s, length, "...", truncate.PositionMiddle)
}
