package planner

// RenamePlan holds the paths one entry passes through during an exchange.
type RenamePlan struct {
	// OriginalPath is the entry's path before the exchange
	OriginalPath string `json:"original_path"`

	// FinalPath is the partner's stem plus this entry's extension, in this entry's parent
	FinalPath string `json:"final_path"`

	// StagingPath is a reserved transient name in this entry's parent
	StagingPath string `json:"staging_path"`
}

// ExchangePlan represents a plan to exchange the names of two entries.
type ExchangePlan struct {
	// First is the rename plan of the first entry
	First RenamePlan `json:"first"`

	// Second is the rename plan of the second entry
	Second RenamePlan `json:"second"`

	// Conflicts is a list of detected conflicts (empty if no conflicts)
	Conflicts []Conflict `json:"conflicts"`
}

// Conflict represents a destination that cannot be used.
type Conflict struct {
	// Path is the final destination that is taken
	Path string `json:"path"`

	// Entry is 1 or 2, the entry whose destination it is
	Entry int `json:"entry"`

	// Reason is a human-readable explanation of the conflict
	Reason string `json:"reason"`
}

// Entry returns the rename plan of entry 1 or 2.
func (p *ExchangePlan) Entry(n int) RenamePlan {
	if n == 2 {
		return p.Second
	}
	return p.First
}

// HasConflicts returns true if the plan has any conflicts.
func (p *ExchangePlan) HasConflicts() bool {
	return len(p.Conflicts) > 0
}

// AddConflict adds a conflict to the plan.
func (p *ExchangePlan) AddConflict(conflict Conflict) {
	p.Conflicts = append(p.Conflicts, conflict)
}

// StrategyKind names an execution strategy.
type StrategyKind string

// Strategy kind constants
const (
	// StrategyNested renames each entry directly, used when one entry contains the other.
	StrategyNested StrategyKind = "nested"

	// StrategyStaged parks one entry at its staging path while the other is renamed.
	StrategyStaged StrategyKind = "staged"
)

// Strategy is the selected execution strategy.
type Strategy struct {
	Kind StrategyKind `json:"kind"`

	// FirstToExecute is 1 or 2, the entry renamed directly to its final name first
	FirstToExecute int `json:"first_to_execute"`
}

// SecondToExecute returns the other entry number.
func (s Strategy) SecondToExecute() int {
	if s.FirstToExecute == 2 {
		return 1
	}
	return 2
}

// StepKind describes the role of a rename step.
type StepKind string

// Step kind constants
const (
	// StepStage moves an entry to its staging path.
	StepStage StepKind = "stage"

	// StepDirect moves an entry straight to its final path.
	StepDirect StepKind = "direct"

	// StepRestage moves an entry from its staging path to its final path.
	StepRestage StepKind = "restage"
)

// Step is a single rename to execute.
type Step struct {
	Kind StepKind `json:"kind"`

	// Entry is 1 or 2, the entry being renamed
	Entry int `json:"entry"`

	From string `json:"from"`
	To   string `json:"to"`
}

// IsNoop returns true if the step renames a path onto itself.
func (s Step) IsNoop() bool {
	return s.From == s.To
}
