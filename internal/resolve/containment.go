package resolve

import (
	"path/filepath"
	"strings"
)

// Containment describes an ancestor relationship between the two entries.
type Containment int

const (
	// ContainmentNone means neither entry contains the other.
	ContainmentNone Containment = iota

	// FirstContainsSecond means the first entry is an ancestor of the second.
	FirstContainsSecond

	// SecondContainsFirst means the second entry is an ancestor of the first.
	SecondContainsFirst
)

// String returns the containment name.
func (c Containment) String() string {
	switch c {
	case FirstContainsSecond:
		return "first_contains_second"
	case SecondContainsFirst:
		return "second_contains_first"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Containment) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ContainmentOf compares two absolute paths by path components.
func ContainmentOf(path1, path2 string) Containment {
	switch {
	case IsAncestor(path1, path2):
		return FirstContainsSecond
	case IsAncestor(path2, path1):
		return SecondContainsFirst
	default:
		return ContainmentNone
	}
}

// IsAncestor reports whether ancestor is a strict ancestor of path.
// "/a/b" is not an ancestor of "/a/bc".
func IsAncestor(ancestor, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(ancestor), filepath.Clean(path))
	if err != nil {
		return false
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return !filepath.IsAbs(rel)
}
