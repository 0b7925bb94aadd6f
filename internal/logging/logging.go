// Package logging configures the logrus logger shared by the engine and CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options configures New.
type Options struct {
	// Level is a logrus level name; empty means warn
	Level string

	// Output receives log lines; nil means stderr
	Output io.Writer

	// JSON switches to the JSON formatter
	JSON bool
}

// New creates a logger. Log lines never go to stdout, which is reserved for
// command output.
func New(opts Options) (*logrus.Logger, error) {
	logger := logrus.New()

	levelName := strings.TrimSpace(opts.Level)
	if levelName == "" {
		levelName = "warn"
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}
	logger.SetLevel(level)

	if opts.Output != nil {
		logger.SetOutput(opts.Output)
	} else {
		logger.SetOutput(os.Stderr)
	}

	if opts.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
		})
	}

	return logger, nil
}

// Discard returns a logger that drops everything, for tests and quiet callers.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.PanicLevel)
	return logger
}
