// Package journal persists a record of every exchange so that a swap
// interrupted between renames can be inspected and undone.
//
// A record is written before the first rename and rewritten after every
// step. Records are plain JSON files, one per exchange, written atomically.
package journal

import (
	"time"
)

// Status is the outcome of a recorded exchange.
type Status string

// Status constants
const (
	StatusPending    Status = "pending"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusRolledBack Status = "rolled_back"
	StatusRecovered  Status = "recovered"
)

// StepStatus is the state of a single recorded rename.
type StepStatus string

// Step status constants
const (
	StepPlanned StepStatus = "planned"
	StepApplied StepStatus = "applied"
	StepSkipped StepStatus = "skipped"
	StepFailed  StepStatus = "failed"
	StepUndone  StepStatus = "undone"
)

// StepRecord is one rename of an exchange.
type StepRecord struct {
	Kind   string     `json:"kind"`
	Entry  int        `json:"entry"`
	From   string     `json:"from"`
	To     string     `json:"to"`
	Status StepStatus `json:"status"`
	Error  string     `json:"error,omitempty"`
}

// Record is the journal entry of one exchange.
type Record struct {
	// ID is a UUID identifying the exchange
	ID string `json:"id"`

	// First and Second are the resolved input paths
	First  string `json:"first"`
	Second string `json:"second"`

	// Strategy is the execution strategy name
	Strategy string `json:"strategy"`

	// Steps are the renames in execution order
	Steps []StepRecord `json:"steps"`

	Status Status `json:"status"`

	// Code is the result code of the exchange, set once it finishes
	Code int `json:"code"`

	// Error is the failure message, if any
	Error string `json:"error,omitempty"`

	StartedAt time.Time `json:"startedAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewRecord creates a pending record with all steps planned.
func NewRecord(id, first, second, strategy string, steps []StepRecord, now time.Time) *Record {
	recorded := make([]StepRecord, len(steps))
	for i, step := range steps {
		step.Status = StepPlanned
		recorded[i] = step
	}
	return &Record{
		ID:        id,
		First:     first,
		Second:    second,
		Strategy:  strategy,
		Steps:     recorded,
		Status:    StatusPending,
		StartedAt: now,
		UpdatedAt: now,
	}
}

// Incomplete returns true if the record may have left the filesystem
// between the original and the final layout.
func (r *Record) Incomplete() bool {
	if r.Status != StatusPending && r.Status != StatusFailed {
		return false
	}
	return len(r.AppliedSteps()) > 0
}

// AppliedSteps returns the indexes of applied steps in execution order.
func (r *Record) AppliedSteps() []int {
	var applied []int
	for i, step := range r.Steps {
		if step.Status == StepApplied {
			applied = append(applied, i)
		}
	}
	return applied
}

// SetStep updates the status of step i.
func (r *Record) SetStep(i int, status StepStatus, err error, now time.Time) {
	if i < 0 || i >= len(r.Steps) {
		return
	}
	r.Steps[i].Status = status
	if err != nil {
		r.Steps[i].Error = err.Error()
	}
	r.UpdatedAt = now
}

// Finish sets the final status and code of the record.
func (r *Record) Finish(status Status, code int, err error, now time.Time) {
	r.Status = status
	r.Code = code
	if err != nil {
		r.Error = err.Error()
	}
	r.UpdatedAt = now
}
