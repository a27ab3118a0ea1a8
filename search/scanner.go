package search

import (
	"errors"
	"fmt"
	"sync"

	"patternscan/pattern"
	"patternscan/shared"
)

const (
	// maxWorkers is the maximum number of concurrent candidate evaluations.
	maxWorkers = 8
)

// Candidate represents the comparison of the reference pattern against one
// historical window.
type Candidate struct {
	Window      shared.Window
	Distance    float64
	Correlation float64
	Score       float64
	Pattern     []float64
}

// evaluate compares the historical window ending at the provided index
// against the reference pattern.
func evaluate(closes []float64, refPattern []float64, end int) (Candidate, error) {
	patternLen := len(refPattern)
	start := end - patternLen + 1

	normalized, err := pattern.Normalize(closes[start : end+1])
	if err != nil {
		return Candidate{}, fmt.Errorf("normalizing window [%d, %d]: %w", start, end, err)
	}

	distance, _, err := pattern.Align(refPattern, normalized)
	if err != nil {
		return Candidate{}, fmt.Errorf("aligning window [%d, %d]: %w", start, end, err)
	}

	// A zero variance window has an undefined correlation, substituted with
	// zero so the scan keeps making progress.
	correlation := pattern.Correlation(refPattern, normalized)

	return Candidate{
		Window:      shared.Window{Start: start, End: end},
		Distance:    distance,
		Correlation: correlation,
		Score:       correlation / (1 + distance),
		Pattern:     normalized,
	}, nil
}

// scan slides a pattern-length window across the eligible historical range,
// producing one candidate per position. Candidate end indexes run from
// patternLen-1 up to (but excluding) refWindow.Start - minGapDays, keeping a
// trailing buffer between any candidate and the reference window. Candidates
// are evaluated concurrently; each lands in its own slot of the result
// slice, so no synchronization beyond the wait is needed.
func scan(closes []float64, refPattern []float64, refWindow shared.Window, minGapDays int) ([]Candidate, error) {
	patternLen := len(refPattern)
	searchEnd := refWindow.Start - minGapDays
	first := patternLen - 1

	if searchEnd <= first {
		return nil, fmt.Errorf("%w: no eligible search range before the reference window "+
			"(pattern length %d, reference start %d, minimum gap %d)",
			shared.ErrInsufficientHistory, patternLen, refWindow.Start, minGapDays)
	}

	candidates := make([]Candidate, searchEnd-first)
	errs := make([]error, searchEnd-first)

	var wg sync.WaitGroup
	workers := make(chan struct{}, maxWorkers)
	for end := first; end < searchEnd; end++ {
		wg.Add(1)
		workers <- struct{}{}
		go func(end int) {
			defer wg.Done()
			idx := end - first
			candidates[idx], errs[idx] = evaluate(closes, refPattern, end)
			<-workers
		}(end)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return candidates, nil
}
