package search

import (
	"sort"

	"patternscan/shared"
)

// selectNonOverlapping ranks candidates by ascending distance and greedily
// accepts the top ones whose index ranges are mutually separated by at least
// minGapDays. Distance is the sole ranking key; correlation and score are
// informational only.
func selectNonOverlapping(candidates []Candidate, topN int, minGapDays int) []Candidate {
	ranked := make([]Candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance < ranked[j].Distance
	})

	selected := make([]Candidate, 0, topN)
	accepted := make([]shared.Window, 0, topN)
	for idx := range ranked {
		if len(selected) >= topN {
			break
		}

		separated := true
		for k := range accepted {
			if !ranked[idx].Window.SeparatedFrom(accepted[k], minGapDays) {
				separated = false
				break
			}
		}
		if !separated {
			continue
		}

		selected = append(selected, ranked[idx])
		accepted = append(accepted, ranked[idx].Window)
	}

	return selected
}
