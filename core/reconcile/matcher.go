package reconcile

import "variation-manager/core/matrix"

// Matcher implements one tier of the matching policy.
type Matcher interface {
	// Tier returns the tier reported for matches found by this matcher.
	Tier() Tier

	// Match returns the index of the previous combination to copy from.
	// candidates is the number of acceptable sources that were seen.
	Match(skeleton matrix.Combination, idx *Index) (source int, candidates int, ok bool)
}

// DefaultMatchers returns the tiers in precedence order.
func DefaultMatchers() []Matcher {
	return []Matcher{ExactMatcher{}, SubsetMatcher{}}
}

// ExactMatcher matches on identical combination keys.
type ExactMatcher struct{}

// Tier implements Matcher.
func (ExactMatcher) Tier() Tier { return TierExact }

// Match implements Matcher.
func (ExactMatcher) Match(skeleton matrix.Combination, idx *Index) (int, int, bool) {
	i, ok := idx.ByKey[skeleton.CombinationKey]
	if !ok {
		return -1, 0, false
	}
	return i, 1, true
}

// SubsetMatcher picks the first previous combination whose attribute values,
// ignoring facet labels, are all present among the skeleton's values.
type SubsetMatcher struct {
	// CountCandidates keeps scanning after the first hit to count competing
	// sources. The chosen source is unaffected.
	CountCandidates bool
}

// Tier implements Matcher.
func (SubsetMatcher) Tier() Tier { return TierSubset }

// Match implements Matcher.
func (m SubsetMatcher) Match(skeleton matrix.Combination, idx *Index) (int, int, bool) {
	values := skeleton.Attributes.ValueSet()

	first, count := -1, 0
	for i, prev := range idx.ValueSets {
		if !isSubset(prev, values) {
			continue
		}
		if first < 0 {
			first = i
		}
		count++
		if !m.CountCandidates {
			break
		}
	}
	return first, count, first >= 0
}

// isSubset reports whether every member of sub is in set.
func isSubset(sub, set map[string]struct{}) bool {
	for v := range sub {
		if _, ok := set[v]; !ok {
			return false
		}
	}
	return true
}
