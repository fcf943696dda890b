package middleware

import (
	"path/filepath"
	"strings"
	"unicode"
)

// SanitizeFilename sanitizes a filename by:
// - Removing path traversal attempts
// - Removing dangerous characters
func SanitizeFilename(filename string) string {
	// separadores do Windows não são tratados por filepath.Base no Linux
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)

	filename = strings.ReplaceAll(filename, "\x00", "")
	filename = strings.ReplaceAll(filename, "/", "")

	filename = removeControlChars(filename)
	filename = strings.TrimSpace(filename)

	if filename == "" || filename == "." || filename == ".." {
		return "unnamed_file"
	}
	return filename
}

// removeControlChars removes control characters from a string
func removeControlChars(s string) string {
	var result strings.Builder
	for _, r := range s {
		if !unicode.IsControl(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}
