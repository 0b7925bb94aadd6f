// Package config manages nameswap configuration and filesystem paths.
//
// nameswap keeps its own data (the exchange journal, the lock file and an
// optional config.yaml) under a root directory, ~/.nameswap by default.
// Settings come from config.yaml, then NAMESWAP_* environment variables,
// then command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the filesystem paths used by nameswap.
type Paths struct {
	// Root is the base directory for all nameswap data (default: ~/.nameswap)
	Root string

	// Journal is the directory containing exchange records
	Journal string

	// Config is the path to the settings file
	Config string

	// Lock is the lock file serializing exchanges
	Lock string
}

// DefaultPaths returns the default paths for nameswap.
// NAMESWAP_ROOT overrides the root directory.
func DefaultPaths() (*Paths, error) {
	root := os.Getenv("NAMESWAP_ROOT")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".nameswap")
	}

	return PathsAt(root), nil
}

// PathsAt returns the paths for a given root directory.
func PathsAt(root string) *Paths {
	return &Paths{
		Root:    root,
		Journal: filepath.Join(root, "journal"),
		Config:  filepath.Join(root, "config.yaml"),
		Lock:    filepath.Join(root, "nameswap.lock"),
	}
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.Root, p.Journal} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ExecutableDir returns the directory of the running binary, the default
// anchor for relative input.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
