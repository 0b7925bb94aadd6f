package resolve

import (
	"path/filepath"
	"strings"
	"unicode"
)

// Normalize cleans raw path text as typed, pasted or dropped by a user:
// surrounding whitespace and quotes are trimmed, backslashes become
// forward slashes, doubled separators collapse and a single trailing
// separator is dropped. The result uses the OS separator.
func Normalize(raw string) string {
	s := strings.TrimFunc(raw, func(r rune) bool {
		return unicode.IsSpace(r) || r == '"' || r == '\''
	})

	s = strings.ReplaceAll(s, `\`, "/")
	for strings.Contains(s, "//") {
		s = strings.ReplaceAll(s, "//", "/")
	}

	if len(s) > 1 && strings.HasSuffix(s, "/") && !isVolumeRoot(s) {
		s = s[:len(s)-1]
	}

	return filepath.FromSlash(s)
}

// isVolumeRoot reports whether s is a bare volume root such as "C:/".
func isVolumeRoot(s string) bool {
	vol := filepath.VolumeName(filepath.FromSlash(s))
	return vol != "" && s == filepath.ToSlash(vol)+"/"
}
