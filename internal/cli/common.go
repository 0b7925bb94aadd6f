package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/danieljhkim/nameswap/internal/clock"
	"github.com/danieljhkim/nameswap/internal/config"
	"github.com/danieljhkim/nameswap/internal/engine"
	"github.com/danieljhkim/nameswap/internal/fsops"
	"github.com/danieljhkim/nameswap/internal/journal"
	"github.com/danieljhkim/nameswap/internal/logging"
)

// ExitError carries the process exit status of a failed command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit status for err: the result code for a
// failed exchange, 1 for any other failure.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// loadSettings reads config.yaml and applies NAMESWAP_* overrides.
func loadSettings() (*config.Paths, *config.Settings, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get config paths: %w", err)
	}

	settings, err := config.LoadSettings(paths.Config)
	if err != nil {
		return nil, nil, err
	}
	if err := settings.ApplyEnv(os.Getenv); err != nil {
		return nil, nil, err
	}

	return paths, settings, nil
}

// newLogger creates the stderr logger. --debug and --verbose override the
// configured level.
func newLogger(settings *config.Settings) (*logrus.Logger, error) {
	level := settings.LogLevel
	switch {
	case debugFlag:
		level = "debug"
	case verboseFlag:
		level = "info"
	}
	return logging.New(logging.Options{Level: level, Output: os.Stderr, JSON: settings.JSONLogs()})
}

// newEngine creates a new engine with real implementations of all
// dependencies. override, if non-nil, applies command-line flags on top of
// the loaded settings.
func newEngine(override func(*config.Settings)) (*engine.Engine, error) {
	paths, settings, err := loadSettings()
	if err != nil {
		return nil, err
	}
	if override != nil {
		override(settings)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	// Ensure directories exist
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	logger, err := newLogger(settings)
	if err != nil {
		return nil, err
	}

	// Create real implementations
	fs := fsops.NewRealFS()
	fs.NoReplace = settings.NoReplace
	store := journal.NewFileStore(fs, paths.Journal)
	clk := &clock.RealClock{}

	// Create engine
	return engine.New(fs, store, clk, logger, *settings, *paths), nil
}

// formatJSON formats a value as JSON.
func formatJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
