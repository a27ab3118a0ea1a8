package search

import (
	"fmt"
	"math"

	"patternscan/shared"
)

const (
	// DefaultTradingHoursPerDay is the approximate number of trading hours
	// in a session, used to convert a requested duration to a day count.
	DefaultTradingHoursPerDay = float64(4)
	// DefaultMinSamples is the minimum number of samples required for a
	// meaningful reference window.
	DefaultMinSamples = 20
)

// ReferenceWindow derives the trailing query window from the requested
// duration and the available history. The duration converts to a day count
// of ceil(hours / tradingHoursPerDay), clamped below by minSamples.
func ReferenceWindow(seriesLen int, hours float64, tradingHoursPerDay float64, minSamples int) (shared.Window, error) {
	if hours <= 0 {
		return shared.Window{}, fmt.Errorf("%w: requested hours must be positive, got %.2f",
			shared.ErrInvalidInput, hours)
	}
	if tradingHoursPerDay <= 0 {
		tradingHoursPerDay = DefaultTradingHoursPerDay
	}

	days := int(math.Ceil(hours / tradingHoursPerDay))
	if days < minSamples {
		days = minSamples
	}

	if seriesLen < days {
		return shared.Window{}, fmt.Errorf("%w: reference window needs %d samples, have %d",
			shared.ErrInsufficientHistory, days, seriesLen)
	}

	end := seriesLen - 1
	start := end - days + 1
	if start < 0 {
		start = 0
	}

	return shared.Window{Start: start, End: end}, nil
}
