package integration

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/danieljhkim/nameswap/internal/clock"
	"github.com/danieljhkim/nameswap/internal/config"
	"github.com/danieljhkim/nameswap/internal/engine"
	"github.com/danieljhkim/nameswap/internal/journal"
	"github.com/danieljhkim/nameswap/internal/logging"
)

// dataRoot holds the journal inside the in-memory tree.
const dataRoot = "/.nameswap"

// testFS is a filesystem implementation that keeps the tree in memory.
// Rename moves whole subtrees and refuses existing destinations, like the
// real no-replace rename.
type testFS struct {
	nodes map[string]*testNode

	// failAt makes the failAt-th rename (1-based) fail with failErr
	failAt  int
	failErr error
	renames int
}

type testNode struct {
	isDir bool
	data  []byte
}

func newTestFS() *testFS {
	return &testFS{
		nodes: map[string]*testNode{"/": {isDir: true}},
	}
}

// add creates entries. Names ending in "/" are directories; files hold
// their own path as content.
func (fs *testFS) add(entries ...string) {
	for _, entry := range entries {
		if strings.HasSuffix(entry, "/") {
			_ = fs.mkdirAll(filepath.Clean(entry), 0755)
			continue
		}
		_ = fs.mkdirAll(filepath.Dir(entry), 0755)
		fs.nodes[entry] = &testNode{data: []byte(entry)}
	}
}

// snapshot returns every user-visible entry and what it holds.
func (fs *testFS) snapshot() map[string]string {
	snap := make(map[string]string)
	for path, node := range fs.nodes {
		if path == "/" || path == dataRoot || strings.HasPrefix(path, dataRoot+"/") {
			continue
		}
		if node.isDir {
			snap[path] = "dir"
		} else {
			snap[path] = "file:" + string(node.data)
		}
	}
	return snap
}

func (fs *testFS) Stat(path string) (os.FileInfo, error) {
	node, ok := fs.nodes[filepath.Clean(path)]
	if !ok {
		return nil, &os.PathError{Op: "stat", Path: path, Err: os.ErrNotExist}
	}
	return &mockFileInfo{name: filepath.Base(path), size: int64(len(node.data)), isDir: node.isDir}, nil
}

func (fs *testFS) Exists(path string) (bool, error) {
	_, ok := fs.nodes[filepath.Clean(path)]
	return ok, nil
}

func (fs *testFS) EvalSymlinks(path string) (string, error) {
	path = filepath.Clean(path)
	if _, ok := fs.nodes[path]; !ok {
		return "", &os.PathError{Op: "lstat", Path: path, Err: os.ErrNotExist}
	}
	return path, nil
}

func (fs *testFS) Rename(oldpath, newpath string) error {
	fs.renames++
	if fs.renames == fs.failAt {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: fs.failErr}
	}

	oldpath, newpath = filepath.Clean(oldpath), filepath.Clean(newpath)
	if _, ok := fs.nodes[oldpath]; !ok {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: os.ErrNotExist}
	}
	if _, ok := fs.nodes[newpath]; ok {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: os.ErrExist}
	}
	if parent, ok := fs.nodes[filepath.Dir(newpath)]; !ok || !parent.isDir {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: os.ErrNotExist}
	}
	if strings.HasPrefix(newpath, oldpath+"/") {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: os.ErrInvalid}
	}

	moved := make(map[string]*testNode)
	for path, node := range fs.nodes {
		if path == oldpath {
			moved[newpath] = node
			delete(fs.nodes, path)
		} else if strings.HasPrefix(path, oldpath+"/") {
			moved[newpath+strings.TrimPrefix(path, oldpath)] = node
			delete(fs.nodes, path)
		}
	}
	for path, node := range moved {
		fs.nodes[path] = node
	}
	return nil
}

// mkdirAll creates path and its missing ancestors.
func (fs *testFS) mkdirAll(path string, perm os.FileMode) error {
	for p := filepath.Clean(path); ; p = filepath.Dir(p) {
		if _, ok := fs.nodes[p]; !ok {
			fs.nodes[p] = &testNode{isDir: true}
		}
		if p == filepath.Dir(p) {
			return nil
		}
	}
}

func (fs *testFS) ReadDir(dir string) ([]string, error) {
	dir = filepath.Clean(dir)
	if node, ok := fs.nodes[dir]; !ok || !node.isDir {
		return nil, &os.PathError{Op: "open", Path: dir, Err: os.ErrNotExist}
	}
	var names []string
	for path := range fs.nodes {
		if path != dir && filepath.Dir(path) == dir {
			names = append(names, filepath.Base(path))
		}
	}
	sort.Strings(names)
	return names, nil
}

func (fs *testFS) AtomicWrite(path string, data []byte, perm os.FileMode) error {
	_ = fs.mkdirAll(filepath.Dir(path), 0755)
	fs.nodes[filepath.Clean(path)] = &testNode{data: append([]byte(nil), data...)}
	return nil
}

func (fs *testFS) ReadFile(path string) ([]byte, error) {
	node, ok := fs.nodes[filepath.Clean(path)]
	if !ok || node.isDir {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return append([]byte(nil), node.data...), nil
}

func (fs *testFS) Lock(ctx context.Context, path string) (func() error, error) {
	return func() error { return nil }, nil
}

// mockFileInfo implements os.FileInfo
type mockFileInfo struct {
	name  string
	size  int64
	isDir bool
}

func (m *mockFileInfo) Name() string { return m.name }
func (m *mockFileInfo) Size() int64  { return m.size }
func (m *mockFileInfo) Mode() os.FileMode {
	if m.isDir {
		return os.ModeDir | 0755
	}
	return 0644
}
func (m *mockFileInfo) ModTime() time.Time { return time.Time{} }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }

func setupTestEngine(t *testing.T, mutate func(*config.Settings)) (*engine.Engine, *testFS, *journal.FileStore) {
	t.Helper()

	fs := newTestFS()
	clk := clock.NewStepClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), time.Second)

	settings := config.DefaultSettings()
	settings.BaseDir = "/"
	if mutate != nil {
		mutate(settings)
	}
	paths := config.PathsAt(dataRoot)
	store := journal.NewFileStore(fs, paths.Journal)

	eng := engine.New(fs, store, clk, logging.Discard(), *settings, *paths)
	return eng, fs, store
}
