// Package resolve turns raw path text into resolved, classified entries.
//
// Raw input may be quoted, carry mixed separators or be relative. The
// resolver normalizes it, anchors relative input at a base directory,
// canonicalizes the result and then checks the pair for existence, identity,
// containment and a shared parent directory.
package resolve

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/danieljhkim/nameswap/internal/fsops"
	"github.com/danieljhkim/nameswap/internal/naming"
)

// RelativeMode selects how relative input is anchored at the base directory.
type RelativeMode string

const (
	// RelativeBasename joins only the final path component onto the base
	// directory, discarding any relative directory structure.
	RelativeBasename RelativeMode = "basename"

	// RelativeJoin joins the whole relative path onto the base directory.
	RelativeJoin RelativeMode = "join"

	// RelativeReject refuses relative input.
	RelativeReject RelativeMode = "reject"
)

// ParseRelativeMode validates a relative mode name. Empty means basename.
func ParseRelativeMode(s string) (RelativeMode, error) {
	switch RelativeMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", RelativeBasename:
		return RelativeBasename, nil
	case RelativeJoin:
		return RelativeJoin, nil
	case RelativeReject:
		return RelativeReject, nil
	default:
		return "", fmt.Errorf("invalid relative mode %q: must be basename, join or reject", s)
	}
}

// Entry is one resolved input path.
type Entry struct {
	// Path is the absolute, canonical path of the entry
	Path string `json:"path"`

	// Exists reports whether the entry was found
	Exists bool `json:"exists"`

	// IsFile is false only for directories, including links to directories
	IsFile bool `json:"is_file"`
}

// Kind returns "file" or "directory".
func (e Entry) Kind() string {
	if e.IsFile {
		return "file"
	}
	return "directory"
}

// Pair is the resolved and classified input of one exchange.
type Pair struct {
	First       Entry       `json:"first"`
	Second      Entry       `json:"second"`
	Containment Containment `json:"containment"`
	SameParent  bool        `json:"same_parent"`
}

// Resolver resolves raw path text against a base directory.
type Resolver struct {
	fs       fsops.FS
	baseDir  string
	relative RelativeMode
}

// New creates a Resolver. baseDir anchors relative input; when empty the
// current working directory is used.
func New(fs fsops.FS, baseDir string, relative RelativeMode) *Resolver {
	if relative == "" {
		relative = RelativeBasename
	}
	return &Resolver{
		fs:       fs,
		baseDir:  baseDir,
		relative: relative,
	}
}

// Resolve resolves and classifies both inputs. Checks run in order:
// existence, identity, parent, kind, containment.
func (r *Resolver) Resolve(raw1, raw2 string) (*Pair, error) {
	path1, err := r.ResolvePath(raw1)
	if err != nil {
		return nil, err
	}
	path2, err := r.ResolvePath(raw2)
	if err != nil {
		return nil, err
	}

	first, err := r.classify(path1)
	if err != nil {
		return nil, err
	}
	second, err := r.classify(path2)
	if err != nil {
		return nil, err
	}

	if !first.Exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, first.Path)
	}
	if !second.Exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, second.Path)
	}

	if first.Path == second.Path {
		return nil, fmt.Errorf("%w: %s", ErrSamePath, first.Path)
	}

	for _, e := range []Entry{first, second} {
		if naming.Parent(e.Path) == "" {
			return nil, fmt.Errorf("%w: %s", ErrNoParent, e.Path)
		}
	}

	return &Pair{
		First:       first,
		Second:      second,
		Containment: ContainmentOf(first.Path, second.Path),
		SameParent:  SameParent(first.Path, second.Path),
	}, nil
}

// ResolvePath normalizes raw, anchors it if relative and canonicalizes it.
func (r *Resolver) ResolvePath(raw string) (string, error) {
	path := Normalize(raw)
	if path == "" {
		return "", fmt.Errorf("%w: empty path", ErrNotFound)
	}

	if !filepath.IsAbs(path) {
		anchored, err := r.anchor(path)
		if err != nil {
			return "", err
		}
		path = anchored
	}

	return r.canonicalize(path), nil
}

// anchor makes a relative path absolute according to the relative mode.
func (r *Resolver) anchor(path string) (string, error) {
	base := r.baseDir
	if base == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		base = cwd
	}

	switch r.relative {
	case RelativeReject:
		return "", fmt.Errorf("%w: %s", ErrRelativePath, path)
	case RelativeJoin:
		return filepath.Join(base, path), nil
	default:
		name := filepath.Base(path)
		if name == "." || name == ".." {
			name = ""
		}
		return filepath.Join(base, name), nil
	}
}

// canonicalize resolves every symlink in path, including the final
// component, so a link and its target compare equal. On failure the cleaned
// absolute path is returned.
func (r *Resolver) canonicalize(path string) string {
	cleaned := filepath.Clean(path)
	if abs, err := filepath.Abs(cleaned); err == nil {
		cleaned = abs
	}

	resolved, err := r.fs.EvalSymlinks(cleaned)
	if err != nil {
		return cleaned
	}
	if abs, err := filepath.Abs(resolved); err == nil {
		return abs
	}
	return resolved
}

// classify queries the filesystem for existence and kind. Links are
// followed, so a dangling link does not exist.
func (r *Resolver) classify(path string) (Entry, error) {
	entry := Entry{Path: path}

	info, err := r.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return entry, nil
		}
		return entry, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	entry.Exists = true
	entry.IsFile = !info.IsDir()
	return entry, nil
}

// SameParent reports whether both paths have the same parent directory.
func SameParent(path1, path2 string) bool {
	return filepath.Dir(filepath.Clean(path1)) == filepath.Dir(filepath.Clean(path2))
}
