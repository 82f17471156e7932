// Package shared provides common utility functions used across multiple
// packages in the project-updater codebase.
package shared

import (
	"fmt"
	"path/filepath"
	"strings"
)

// NormalizePackageName lowercases and trims a vendor/name package name.
func NormalizePackageName(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// HTTPStatusError creates a formatted error for non-2xx HTTP responses.
func HTTPStatusError(status int, url string) error {
	return fmt.Errorf("status=%d url=%s", status, url)
}

// HTTPStatusErrorWithBody creates a formatted error that includes the
// response body for non-2xx HTTP responses.
func HTTPStatusErrorWithBody(status int, url string, body string) error {
	return fmt.Errorf("status=%d url=%s response=%s", status, url, body)
}

// LocalPath strips a file:// scheme from a location. The boolean is
// false for remote URLs.
func LocalPath(location string) (string, bool) {
	trimmed := strings.TrimSpace(location)
	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(lower, "file://"):
		return trimmed[len("file://"):], true
	case strings.Contains(lower, "://"):
		return "", false
	default:
		return trimmed, true
	}
}

// ResolveRelative joins a relative local path onto baseDir. Absolute
// paths and URLs are returned unchanged.
func ResolveRelative(baseDir string, location string) string {
	path, local := LocalPath(location)
	if !local || filepath.IsAbs(path) || baseDir == "" {
		return location
	}
	return filepath.Join(baseDir, path)
}
