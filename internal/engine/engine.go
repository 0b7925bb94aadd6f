// Package engine provides the core logic for nameswap operations.
//
// The engine package acts as the orchestration layer between CLI commands and
// lower-level operations. It coordinates path resolution, name extraction,
// planning, execution and the exchange journal.
//
// Key components:
//   - Engine: Main orchestrator that coordinates all operations
//   - Exchange: Resolves, plans and executes one name exchange
//   - Recover/History: Inspects and repairs journaled exchanges
//   - Codes: Maps failures onto the stable integer result codes
package engine

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/danieljhkim/nameswap/internal/clock"
	"github.com/danieljhkim/nameswap/internal/config"
	"github.com/danieljhkim/nameswap/internal/fsops"
	"github.com/danieljhkim/nameswap/internal/journal"
	"github.com/danieljhkim/nameswap/internal/planner"
)

// Engine orchestrates all nameswap operations.
// It is the main API surface called by the CLI.
type Engine struct {
	fs       fsops.FS
	journal  journal.Store
	clock    clock.Clock
	logger   *logrus.Logger
	settings config.Settings
	paths    config.Paths
	stager   planner.Stager
}

// New creates a new Engine with the given dependencies. store may be nil,
// which disables the journal.
func New(
	fs fsops.FS,
	store journal.Store,
	clk clock.Clock,
	logger *logrus.Logger,
	settings config.Settings,
	paths config.Paths,
) *Engine {
	var stager planner.Stager = planner.NewRandomStager(fs)
	if settings.FixedStaging() {
		stager = planner.FixedStager{}
	}

	return &Engine{
		fs:       fs,
		journal:  store,
		clock:    clk,
		logger:   logger,
		settings: settings,
		paths:    paths,
		stager:   stager,
	}
}

// Settings returns the settings the engine runs with.
func (e *Engine) Settings() config.Settings {
	return e.settings
}

// baseDir returns the directory relative input is anchored to. An empty
// result makes the resolver fall back to the working directory.
func (e *Engine) baseDir() string {
	if e.settings.BaseDir != "" {
		return e.settings.BaseDir
	}
	dir, err := config.ExecutableDir()
	if err != nil {
		e.logger.WithError(err).Warn("falling back to working directory for relative paths")
		return ""
	}
	return dir
}

// acquireLock serializes exchanges across processes. The context bounds the
// wait only.
func (e *Engine) acquireLock(ctx context.Context) (func(), error) {
	if !e.settings.Lock {
		return func() {}, nil
	}

	if e.settings.LockTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.settings.LockTimeout)
		defer cancel()
	}

	unlock, err := e.fs.Lock(ctx, e.paths.Lock)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBusy, err)
	}

	return func() {
		if err := unlock(); err != nil {
			e.logger.WithError(err).Warn("failed to release lock")
		}
	}, nil
}

// code maps err to a result code, folding codes when legacy codes are on.
func (e *Engine) code(err error) Code {
	c := CodeFor(err)
	if e.settings.LegacyCodes {
		c = c.Legacy()
	}
	return c
}

func (e *Engine) journalEnabled() bool {
	return e.journal != nil && e.settings.Journal
}

// saveRecord writes record to the journal. Journal writes never change the
// outcome of an exchange.
func (e *Engine) saveRecord(record *journal.Record) {
	if record == nil {
		return
	}
	if err := e.journal.Save(record); err != nil {
		e.logger.WithError(err).WithField("id", record.ID).Warn("failed to write journal record")
	}
}
