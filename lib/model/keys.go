package model

import (
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// FileKey builds the key of a file inside a project. Paths are normalized to
// forward slashes and NFC, so the same file gets the same key whatever the
// platform that produced the path.
func FileKey(projectKey string, relativePath string) string {
	return projectKey + ":" + NormalizePath(relativePath)
}

func NormalizePath(p string) string {
	p = filepath.ToSlash(p)
	p = norm.NFC.String(p)
	p = path.Clean("/" + p)
	return strings.TrimPrefix(p, "/")
}

// RelativePath is the inverse of FileKey.
func RelativePath(projectKey string, key string) string {
	return strings.TrimPrefix(key, projectKey+":")
}
