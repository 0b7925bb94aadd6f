package fsops

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"
)

func TestRealFS_Exists(t *testing.T) {
	tmpDir := t.TempDir()
	realFS := NewRealFS()

	file := filepath.Join(tmpDir, "present.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	dangling := filepath.Join(tmpDir, "dangling")
	if err := os.Symlink(filepath.Join(tmpDir, "nowhere"), dangling); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "existing file", path: file, want: true},
		{name: "existing directory", path: tmpDir, want: true},
		{name: "missing path", path: filepath.Join(tmpDir, "missing"), want: false},
		{name: "dangling symlink", path: dangling, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := realFS.Exists(tt.path)
			if err != nil {
				t.Fatalf("Exists(%q) error = %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("Exists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestRealFS_Rename(t *testing.T) {
	tmpDir := t.TempDir()
	realFS := NewRealFS()

	src := filepath.Join(tmpDir, "a.txt")
	dst := filepath.Join(tmpDir, "b.txt")
	if err := os.WriteFile(src, []byte("a"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if err := realFS.Rename(src, dst); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Errorf("expected source to be gone, got err = %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("failed to read destination: %v", err)
	}
	if string(data) != "a" {
		t.Errorf("destination content = %q, want %q", data, "a")
	}
}

func TestRealFS_Rename_NoReplace(t *testing.T) {
	tmpDir := t.TempDir()
	realFS := NewRealFS()

	src := filepath.Join(tmpDir, "a.txt")
	dst := filepath.Join(tmpDir, "b.txt")
	if err := os.WriteFile(src, []byte("a"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := os.WriteFile(dst, []byte("b"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	err := realFS.Rename(src, dst)
	if !errors.Is(err, fs.ErrExist) {
		t.Fatalf("Rename() error = %v, want fs.ErrExist", err)
	}

	// Both files must be untouched
	data, _ := os.ReadFile(dst)
	if string(data) != "b" {
		t.Errorf("destination was overwritten: %q", data)
	}
	if _, err := os.Stat(src); err != nil {
		t.Errorf("source should still exist: %v", err)
	}
}

func TestRealFS_Rename_ReplaceAllowed(t *testing.T) {
	tmpDir := t.TempDir()
	realFS := &RealFS{NoReplace: false}

	src := filepath.Join(tmpDir, "a.txt")
	dst := filepath.Join(tmpDir, "b.txt")
	_ = os.WriteFile(src, []byte("a"), 0644)
	_ = os.WriteFile(dst, []byte("b"), 0644)

	if err := realFS.Rename(src, dst); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	data, _ := os.ReadFile(dst)
	if string(data) != "a" {
		t.Errorf("destination content = %q, want %q", data, "a")
	}
}

func TestRealFS_AtomicWrite(t *testing.T) {
	tmpDir := t.TempDir()
	realFS := NewRealFS()

	path := filepath.Join(tmpDir, "nested", "dir", "record.json")
	if err := realFS.AtomicWrite(path, []byte(`{"id":"1"}`), 0644); err != nil {
		t.Fatalf("AtomicWrite() error = %v", err)
	}

	data, err := realFS.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != `{"id":"1"}` {
		t.Errorf("content = %q", data)
	}

	// Overwrite
	if err := realFS.AtomicWrite(path, []byte(`{"id":"2"}`), 0644); err != nil {
		t.Fatalf("AtomicWrite() overwrite error = %v", err)
	}
	data, _ = realFS.ReadFile(path)
	if string(data) != `{"id":"2"}` {
		t.Errorf("content after overwrite = %q", data)
	}

	// No temp files left behind
	names, err := realFS.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(names) != 1 {
		t.Errorf("expected only the target file, got %v", names)
	}
}

func TestRealFS_ReadDir(t *testing.T) {
	tmpDir := t.TempDir()
	realFS := NewRealFS()

	for _, name := range []string{"b", "a", "c"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), nil, 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}

	names, err := realFS.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	sort.Strings(names)
	if len(names) != 3 || names[0] != "a" || names[2] != "c" {
		t.Errorf("ReadDir() = %v", names)
	}
}

func TestRealFS_Lock(t *testing.T) {
	tmpDir := t.TempDir()
	realFS := NewRealFS()
	lockPath := filepath.Join(tmpDir, "locks", "nameswap.lock")

	unlock, err := realFS.Lock(context.Background(), lockPath)
	if err != nil {
		t.Fatalf("Lock() error = %v", err)
	}

	// A second holder must time out while the first lock is held
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if _, err := realFS.Lock(ctx, lockPath); err == nil {
		t.Fatal("expected second Lock() to fail while held")
	}

	if err := unlock(); err != nil {
		t.Fatalf("unlock() error = %v", err)
	}

	unlock2, err := realFS.Lock(context.Background(), lockPath)
	if err != nil {
		t.Fatalf("Lock() after release error = %v", err)
	}
	_ = unlock2()
}
