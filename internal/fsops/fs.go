// Package fsops provides the filesystem operations nameswap relies on.
//
// Every filesystem read and mutation made by nameswap goes through the FS
// interface so that the resolver, planner and engine can be exercised
// against fakes. RealFS backs the interface with the os package.
//
// Key features:
//   - Rename without replacing an existing destination where supported
//   - Atomic writes using temp file + rename (used by the journal)
//   - Advisory process locks used to serialize exchanges
//   - Testable via the FS interface
package fsops

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// FS provides an abstraction for filesystem operations.
type FS interface {
	// Stat returns file info, following symlinks.
	Stat(path string) (os.FileInfo, error)

	// Exists checks if a path exists. A dangling symlink exists.
	Exists(path string) (bool, error)

	// EvalSymlinks returns the path with all symlinks resolved.
	EvalSymlinks(path string) (string, error)

	// Rename renames oldpath to newpath.
	Rename(oldpath, newpath string) error

	// ReadDir lists the names of the entries in dir.
	ReadDir(dir string) ([]string, error)

	// AtomicWrite writes data to path atomically using temp file + rename.
	AtomicWrite(path string, data []byte, perm os.FileMode) error

	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// Lock takes an exclusive advisory lock on path, waiting until ctx is done.
	// The returned function releases the lock.
	Lock(ctx context.Context, path string) (func() error, error)
}

// RealFS implements FS using actual OS operations.
type RealFS struct {
	// NoReplace makes Rename fail with fs.ErrExist instead of replacing an
	// existing destination, on platforms that support it.
	NoReplace bool

	// LockRetry is the polling interval used while waiting for a lock.
	LockRetry time.Duration
}

// NewRealFS creates a new RealFS.
func NewRealFS() *RealFS {
	return &RealFS{NoReplace: true, LockRetry: 50 * time.Millisecond}
}

// Stat returns file info, following symlinks.
func (fs *RealFS) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Exists checks if a path exists. A dangling symlink exists, since a
// rename onto it would still be refused.
func (fs *RealFS) Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// EvalSymlinks returns the path with all symlinks resolved.
func (fs *RealFS) EvalSymlinks(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}

// Rename renames oldpath to newpath. With NoReplace set, an existing
// newpath is reported as an error wrapping fs.ErrExist.
func (fs *RealFS) Rename(oldpath, newpath string) error {
	if fs.NoReplace {
		return renameNoReplace(oldpath, newpath)
	}
	return os.Rename(oldpath, newpath)
}

// ReadDir lists the names of the entries in dir.
func (fs *RealFS) ReadDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

// AtomicWrite writes data to path atomically using temp file + rename.
func (fs *RealFS) AtomicWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	// Create temp file in the same directory as target
	tmpFile, err := os.CreateTemp(dir, ".nameswap-tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	// The journal file is ours to replace, so this rename is allowed to clobber.
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	tmpFile = nil
	return nil
}

// ReadFile reads the entire contents of a file.
func (fs *RealFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Lock takes an exclusive advisory lock on path.
func (fs *RealFS) Lock(ctx context.Context, path string) (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	retry := fs.LockRetry
	if retry <= 0 {
		retry = 50 * time.Millisecond
	}

	fileLock := flock.New(path)
	locked, err := fileLock.TryLockContext(ctx, retry)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("could not acquire lock %s", path)
	}
	return fileLock.Unlock, nil
}
