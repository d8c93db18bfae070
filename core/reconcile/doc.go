// Package reconcile carries user-entered combination data across facet edits.
//
// Combinations have no identifier that survives an edit of the facet set, so a
// regenerated matrix is matched against the previous one heuristically. Every new
// skeleton is matched, in generation order, against an Index built once from the
// previous list. Matchers run in tier order and the first one that succeeds wins:
//
//  1. Exact: a previous combination with the same combination key.
//  2. Subset: the first previous combination (in stored order) whose attribute
//     values are all contained in the skeleton's values. This keeps data when a
//     facet is added.
//  3. Blank: nothing matched, the skeleton keeps its empty payload.
//
// # Limitations
//
// The subset tier is first-match, not best-match: when several previous
// combinations are subset-compatible the earliest one wins even if another shares
// more values. Plan reports those rows as ambiguous so callers can surface it.
//
// A previous combination may be the source for several new rows. Its payload is
// copied, never moved, and company maps are deep-copied so rows never alias.
//
// # Usage
//
//	next := reconcile.Reconcile(matrix.Generate(facets), previous)
//
//	plan := reconcile.NewPlan(matrix.Generate(facets), previous)
//	log.Info("reconciled", zap.Int("exact", plan.Summary.Exact))
package reconcile
