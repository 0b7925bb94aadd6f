package engine

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/danieljhkim/nameswap/internal/journal"
	"github.com/danieljhkim/nameswap/internal/planner"
	"github.com/danieljhkim/nameswap/internal/resolve"
)

// execute runs the planned steps in order and stops at the first failure.
// Outcomes are appended to result one per attempted step, so outcome i
// belongs to step i.
func (e *Engine) execute(result *ExchangeResult) error {
	record := e.beginRecord(result)
	if record != nil {
		result.JournalID = record.ID
	}

	var done []planner.Step
	for i, step := range result.Steps {
		for _, prev := range done {
			step = rebase(step, prev)
		}
		if record != nil {
			record.Steps[i].From = step.From
			record.Steps[i].To = step.To
		}

		log := e.logger.WithFields(logrus.Fields{
			"step":  i + 1,
			"kind":  step.Kind,
			"entry": step.Entry,
			"from":  step.From,
			"to":    step.To,
		})

		if step.IsNoop() {
			log.Info("rename skipped, name unchanged")
			result.Outcomes = append(result.Outcomes, StepOutcome{Step: step, Status: journal.StepSkipped})
			e.recordStep(record, i, journal.StepSkipped, nil)
			continue
		}

		if err := e.fs.Rename(step.From, step.To); err != nil {
			log.WithError(err).Error("rename failed")
			result.Outcomes = append(result.Outcomes, StepOutcome{
				Step:   step,
				Status: journal.StepFailed,
				Error:  err.Error(),
			})
			e.recordStep(record, i, journal.StepFailed, err)

			failure := fmt.Errorf("step %d (%s) failed: %w", i+1, step.Kind, Classify(err))
			result.Code = e.code(failure)
			e.abort(result, record, failure)
			return failure
		}

		log.Info("renamed")
		done = append(done, step)
		result.Outcomes = append(result.Outcomes, StepOutcome{Step: step, Status: journal.StepApplied})
		e.recordStep(record, i, journal.StepApplied, nil)
	}

	result.Code = CodeOK
	if record != nil {
		record.Finish(journal.StatusCompleted, int(CodeOK), nil, e.clock.Now())
		e.saveRecord(record)
	}
	return nil
}

// abort finishes a failed exchange, undoing applied steps first when
// rollback is enabled.
func (e *Engine) abort(result *ExchangeResult, record *journal.Record, failure error) {
	status := journal.StatusFailed
	if e.settings.Rollback {
		if err := e.rollback(result, record); err != nil {
			e.logger.WithError(err).Error("rollback incomplete")
		} else {
			status = journal.StatusRolledBack
			result.RolledBack = true
		}
	}

	if record != nil {
		record.Finish(status, int(result.Code), failure, e.clock.Now())
		e.saveRecord(record)
	}
}

// rollback reverts applied steps in reverse order.
func (e *Engine) rollback(result *ExchangeResult, record *journal.Record) error {
	for i := len(result.Outcomes) - 1; i >= 0; i-- {
		outcome := &result.Outcomes[i]
		if outcome.Status != journal.StepApplied {
			continue
		}

		step := outcome.Step
		if err := e.fs.Rename(step.To, step.From); err != nil {
			return fmt.Errorf("failed to undo step %d: %w", i+1, Classify(err))
		}
		e.logger.WithFields(logrus.Fields{
			"step": i + 1,
			"from": step.To,
			"to":   step.From,
		}).Info("rename undone")

		outcome.Status = journal.StepUndone
		e.recordStep(record, i, journal.StepUndone, nil)
	}
	return nil
}

// beginRecord writes the pending journal record of an exchange, or returns
// nil when the journal is disabled.
func (e *Engine) beginRecord(result *ExchangeResult) *journal.Record {
	if !e.journalEnabled() {
		return nil
	}

	steps := make([]journal.StepRecord, len(result.Steps))
	for i, step := range result.Steps {
		steps[i] = journal.StepRecord{
			Kind:  string(step.Kind),
			Entry: step.Entry,
			From:  step.From,
			To:    step.To,
		}
	}

	record := journal.NewRecord(
		journal.NewID(),
		result.Pair.First.Path,
		result.Pair.Second.Path,
		string(result.Strategy.Kind),
		steps,
		e.clock.Now(),
	)
	e.saveRecord(record)
	return record
}

func (e *Engine) recordStep(record *journal.Record, i int, status journal.StepStatus, err error) {
	if record == nil {
		return
	}
	record.SetStep(i, status, err, e.clock.Now())
	e.saveRecord(record)
}

// rebase moves the paths of step under the new location of an ancestor that
// an earlier step renamed.
func rebase(step, prev planner.Step) planner.Step {
	step.From = rebasePath(step.From, prev)
	step.To = rebasePath(step.To, prev)
	return step
}

func rebasePath(path string, prev planner.Step) string {
	if !resolve.IsAncestor(prev.From, path) {
		return path
	}
	rel, err := filepath.Rel(prev.From, path)
	if err != nil {
		return path
	}
	return filepath.Join(prev.To, rel)
}
