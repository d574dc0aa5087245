package stringutil

import (
	"strings"
)

// MakePathPrefixer returns a function that prefixes absolute URL paths with basePath. An empty
// basePath returns paths unchanged, extra slashes around basePath are ignored.
func MakePathPrefixer(basePath string) func(string) string {
	basePath = strings.Trim(basePath, "/")
	if basePath == "" {
		return func(path string) string { return path }
	}
	basePath = "/" + basePath
	return func(path string) string {
		return basePath + path
	}
}

// Truncate returns s cut to at most n runes, with an ellipsis appended when shortened.
func Truncate(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i] + "…"
		}
		count++
	}
	return s
}
