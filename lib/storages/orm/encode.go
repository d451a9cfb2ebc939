package orm

import (
	"strings"
)

// Hashes never contain line breaks, so each one is stored followed by a line
// break. This keeps "no lines" and "one blank line" apart.
func encodeLineHashes(v []string) string {
	var sb strings.Builder

	for _, h := range v {
		sb.WriteString(h)
		sb.WriteString("\n")
	}

	return sb.String()
}

func decodeLineHashes(v string, hasContent bool) []string {
	if !hasContent {
		return nil
	}
	if v == "" {
		return []string{}
	}

	return strings.Split(strings.TrimSuffix(v, "\n"), "\n")
}
