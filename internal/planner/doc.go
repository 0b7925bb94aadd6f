// Package planner handles the planning phase of a name exchange.
//
// The planner derives each entry's final name from its partner's stem,
// reserves a staging name for the multi-step swap, detects destinations
// that would clobber an unrelated entry and determines the order of
// renames needed to perform the exchange safely.
//
// Key responsibilities:
//   - Build an ExchangePlan with final and staging paths per entry
//   - Detect conflicts (existing destinations that are not part of the exchange)
//   - Select the execution strategy (nested or staged)
//   - Expand a strategy into an ordered list of rename steps
package planner
