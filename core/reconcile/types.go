package reconcile

import "variation-manager/core/matrix"

// Tier identifies which rule produced a match.
type Tier string

const (
	// TierExact matched on an identical combination key.
	TierExact Tier = "exact"
	// TierSubset matched a previous combination whose values are a subset.
	TierSubset Tier = "subset"
	// TierBlank found no source; the row starts empty.
	TierBlank Tier = "blank"
)

// Match records how a single new row was resolved.
type Match struct {
	// Index is the position of the row in the new list.
	Index int `json:"index"`

	// Key is the combination key of the new row.
	Key string `json:"key"`

	// Tier is the rule that resolved the row.
	Tier Tier `json:"tier"`

	// Source is the index of the previous combination the payload was copied
	// from, or -1 for blank rows.
	Source int `json:"source"`

	// SourceKey is the combination key of the source, empty for blank rows.
	SourceKey string `json:"sourceKey,omitempty"`

	// Candidates counts the previous combinations that were subset-compatible.
	// Only set for subset matches; more than one means the tie-break decided.
	Candidates int `json:"candidates,omitempty"`
}

// Ambiguous reports whether a subset match had competing candidates.
func (m Match) Ambiguous() bool {
	return m.Tier == TierSubset && m.Candidates > 1
}

// Plan contains the reconciled combinations and how each one was produced.
type Plan struct {
	// Combinations is the reconciled list, in generation order.
	Combinations []matrix.Combination `json:"combinations"`

	// Matches has one entry per combination, same order.
	Matches []Match `json:"matches"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a reconcile plan.
type PlanSummary struct {
	// Total is the number of new combinations.
	Total int `json:"total"`

	// Previous is the number of combinations reconciled against.
	Previous int `json:"previous"`

	// Exact counts rows resolved by combination key.
	Exact int `json:"exact"`

	// Subset counts rows resolved by value subset.
	Subset int `json:"subset"`

	// Blank counts rows that start empty.
	Blank int `json:"blank"`

	// Ambiguous counts subset rows with more than one candidate.
	Ambiguous int `json:"ambiguous"`

	// Dropped counts previous combinations that carried payload but were not
	// used as a source by any new row. Their data is discarded.
	Dropped int `json:"dropped"`
}
