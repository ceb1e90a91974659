package helpers

import (
	"strings"
)

// NormalizeRelPath converts an upload-provided relative path to the
// canonical slash-separated form used across the workspace tree.
// Windows clients send backslash separators.
func NormalizeRelPath(relPath string) string {
	p := strings.ReplaceAll(relPath, "\\", "/")
	p = strings.Trim(p, "/")
	return p
}

// SplitPath breaks a normalized relative path into its segments.
// Empty and "." segments carry no structure and are dropped.
func SplitPath(relPath string) []string {
	parts := strings.Split(NormalizeRelPath(relPath), "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		segments = append(segments, part)
	}
	return segments
}

// BaseName returns the final segment of a relative path, or "" when the
// path has no segments.
func BaseName(relPath string) string {
	segments := SplitPath(relPath)
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}
