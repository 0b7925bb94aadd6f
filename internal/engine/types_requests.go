package engine

// ExchangeRequest represents a request to exchange the names of two entries.
type ExchangeRequest struct {
	// Path1 and Path2 are the raw user inputs
	Path1 string
	Path2 string

	// DryRun performs planning only without renaming anything
	DryRun bool
}

// RecoverRequest represents a request to undo an incomplete exchange.
type RecoverRequest struct {
	// ID is the journal record ID
	ID string
}

// HistoryRequest represents a request to list journaled exchanges.
type HistoryRequest struct {
	// Limit caps the number of records returned (0 means all)
	Limit int
}
