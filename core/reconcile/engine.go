package reconcile

import "variation-manager/core/matrix"

// Reconcile returns skeletons carrying payload matched from previous.
// The result has the same length and order as skeletons.
func Reconcile(skeletons, previous []matrix.Combination) []matrix.Combination {
	return run(skeletons, previous, DefaultMatchers()).Combinations
}

// NewPlan reconciles like Reconcile and also reports how each row was resolved.
func NewPlan(skeletons, previous []matrix.Combination) *Plan {
	return run(skeletons, previous, []Matcher{ExactMatcher{}, SubsetMatcher{CountCandidates: true}})
}

// run matches every skeleton in order against an index built once from previous.
func run(skeletons, previous []matrix.Combination, matchers []Matcher) *Plan {
	idx := BuildIndex(previous)

	plan := &Plan{
		Combinations: make([]matrix.Combination, len(skeletons)),
		Matches:      make([]Match, len(skeletons)),
	}
	used := make([]bool, idx.Len())

	for i, skeleton := range skeletons {
		match := Match{Index: i, Key: skeleton.CombinationKey, Tier: TierBlank, Source: -1}
		out := skeleton.Clone()

		for _, m := range matchers {
			source, candidates, ok := m.Match(skeleton, idx)
			if !ok {
				continue
			}
			src := idx.Previous[source]
			out = skeleton.WithPayloadFrom(src)
			match.Tier = m.Tier()
			match.Source = source
			match.SourceKey = src.CombinationKey
			if match.Tier == TierSubset {
				match.Candidates = candidates
			}
			used[source] = true
			break
		}

		plan.Combinations[i] = out
		plan.Matches[i] = match
	}

	plan.Summary = summarize(plan.Matches, idx, used)
	return plan
}

func summarize(matches []Match, idx *Index, used []bool) PlanSummary {
	s := PlanSummary{Total: len(matches), Previous: idx.Len()}
	for _, m := range matches {
		switch m.Tier {
		case TierExact:
			s.Exact++
		case TierSubset:
			s.Subset++
			if m.Ambiguous() {
				s.Ambiguous++
			}
		default:
			s.Blank++
		}
	}
	for i, prev := range idx.Previous {
		if !used[i] && prev.HasPayload() {
			s.Dropped++
		}
	}
	return s
}
