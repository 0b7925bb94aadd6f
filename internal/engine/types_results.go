package engine

import (
	"github.com/danieljhkim/nameswap/internal/journal"
	"github.com/danieljhkim/nameswap/internal/naming"
	"github.com/danieljhkim/nameswap/internal/planner"
	"github.com/danieljhkim/nameswap/internal/resolve"
)

// StepOutcome is what happened to one step during execution.
type StepOutcome struct {
	// Step is the rename as executed, after any rebasing
	Step planner.Step `json:"step"`

	Status journal.StepStatus `json:"status"`

	// Error is the failure message (empty unless Status is failed)
	Error string `json:"error,omitempty"`
}

// ExchangeResult represents the result of an exchange.
type ExchangeResult struct {
	// Pair is the resolved input (nil if resolution failed)
	Pair *resolve.Pair `json:"pair,omitempty"`

	// First and Second are the extracted name parts
	First  naming.Metadata `json:"first"`
	Second naming.Metadata `json:"second"`

	// Plan is the generated plan (nil if resolution failed)
	Plan *planner.ExchangePlan `json:"plan,omitempty"`

	// Strategy is the selected execution strategy
	Strategy planner.Strategy `json:"strategy"`

	// Steps are the planned renames in execution order
	Steps []planner.Step `json:"steps"`

	// Outcomes lists the attempted steps (empty if DryRun)
	Outcomes []StepOutcome `json:"outcomes"`

	Code Code `json:"code"`

	// JournalID is the ID of the journal record, if one was written
	JournalID string `json:"journal_id,omitempty"`

	// RolledBack is true if a failed exchange was undone
	RolledBack bool `json:"rolled_back"`

	DryRun bool `json:"dry_run"`
}

// RecoverResult represents the result of recovering a journaled exchange.
type RecoverResult struct {
	// Record is the updated journal record
	Record *journal.Record `json:"record"`

	// Undone lists the steps reverted, in the order they were reverted
	Undone []journal.StepRecord `json:"undone"`
}
