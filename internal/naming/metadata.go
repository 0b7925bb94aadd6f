// Package naming splits entry names into the parts an exchange trades.
//
// A file name is split into a stem and a final extension; a directory name
// is all stem. The exchange gives each entry its partner's stem while it
// keeps its own extension and parent directory.
package naming

import (
	"path/filepath"
	"strings"
)

// Metadata holds the name parts of one entry.
type Metadata struct {
	// Stem is the name without its final extension
	Stem string `json:"stem"`

	// Ext is the final extension including its leading dot, empty for directories
	Ext string `json:"ext"`

	// Parent is the directory containing the entry, empty for root paths
	Parent string `json:"parent"`
}

// Name returns the full entry name.
func (m Metadata) Name() string {
	return m.Stem + m.Ext
}

// Extract returns the name parts of path. Directories never carry an
// extension, so a directory named "a.b" has stem "a.b".
func Extract(path string, isFile bool) Metadata {
	meta := Metadata{Parent: Parent(path)}

	name := baseName(path)
	if name == "" {
		return meta
	}

	if !isFile {
		meta.Stem = name
		return meta
	}

	meta.Stem, meta.Ext = SplitExt(name)
	return meta
}

// SplitExt splits a file name at its final dot. A leading dot does not start
// an extension, so ".bashrc" is all stem.
func SplitExt(name string) (stem, ext string) {
	if name == "." || name == ".." {
		return name, ""
	}
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return name, ""
	}
	return name[:i], name[i:]
}

// Parent returns the directory containing path, or "" when path has none.
func Parent(path string) string {
	if path == "" {
		return ""
	}
	cleaned := filepath.Clean(path)
	dir := filepath.Dir(cleaned)
	if dir == cleaned {
		return ""
	}
	if dir == "." && !strings.ContainsRune(cleaned, filepath.Separator) {
		return ""
	}
	return dir
}

// baseName returns the final element of path, or "" for roots and
// undecomposable paths.
func baseName(path string) string {
	if path == "" {
		return ""
	}
	cleaned := filepath.Clean(path)
	if filepath.Dir(cleaned) == cleaned {
		return ""
	}
	name := filepath.Base(cleaned)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return ""
	}
	return name
}
