package constants

import "strings"

// FileTypes holds the allowed source document types.
var FileTypes = []string{"PDF", "TXT"}

// AllowedExtensions holds the file extensions the loader accepts.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
	"txt": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
