package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/sirupsen/logrus"

	"github.com/danieljhkim/nameswap/internal/journal"
)

// Recover undoes the applied steps of an exchange that failed without
// rollback or was interrupted, restoring the original names.
func (e *Engine) Recover(ctx context.Context, req *RecoverRequest) (*RecoverResult, error) {
	if e.journal == nil {
		return nil, ErrJournalDisabled
	}

	unlock, err := e.acquireLock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	record, err := e.journal.Load(req.ID)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: journal record %s", ErrNotFound, req.ID)
		}
		return nil, fmt.Errorf("failed to load journal record: %w", err)
	}

	if !record.Incomplete() {
		return nil, fmt.Errorf("%w: record %s is %s", ErrNotRecoverable, record.ID, record.Status)
	}

	result := &RecoverResult{Record: record}
	applied := record.AppliedSteps()
	for k := len(applied) - 1; k >= 0; k-- {
		i := applied[k]
		step := record.Steps[i]

		if err := e.fs.Rename(step.To, step.From); err != nil {
			record.Finish(record.Status, record.Code, err, e.clock.Now())
			e.saveRecord(record)
			return result, fmt.Errorf("failed to undo step %d: %w", i+1, Classify(err))
		}
		e.logger.WithFields(logrus.Fields{
			"id":   record.ID,
			"step": i + 1,
			"from": step.To,
			"to":   step.From,
		}).Info("rename undone")

		record.SetStep(i, journal.StepUndone, nil, e.clock.Now())
		result.Undone = append(result.Undone, record.Steps[i])
		e.saveRecord(record)
	}

	record.Finish(journal.StatusRecovered, record.Code, nil, e.clock.Now())
	if err := e.journal.Save(record); err != nil {
		return result, fmt.Errorf("failed to save journal record: %w", err)
	}
	return result, nil
}

// History lists journaled exchanges, newest first.
func (e *Engine) History(req *HistoryRequest) ([]*journal.Record, error) {
	if e.journal == nil {
		return nil, ErrJournalDisabled
	}

	records, err := e.journal.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list journal records: %w", err)
	}
	if req.Limit > 0 && len(records) > req.Limit {
		records = records[:req.Limit]
	}
	return records, nil
}
