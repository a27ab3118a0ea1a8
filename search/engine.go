package search

import (
	"fmt"

	"github.com/rs/zerolog"

	"patternscan/pattern"
	"patternscan/shared"
)

const (
	// DefaultTopN is the default number of matches returned by a search.
	DefaultTopN = 5
	// DefaultMinGapDays is the default minimum index separation enforced
	// between the reference window and any match, and between matches.
	DefaultMinGapDays = 30
)

// EngineConfig represents the configuration for the similarity search engine.
type EngineConfig struct {
	// TradingHoursPerDay converts a requested duration to a day count.
	TradingHoursPerDay float64
	// MinSamples is the minimum reference window size in samples.
	MinSamples int
	// TopN is the maximum number of matches returned.
	TopN int
	// MinGapDays is the minimum separation between matched windows.
	MinGapDays int
	// Logger represents the application logger.
	Logger zerolog.Logger
}

// Engine searches a market's price history for segments most similar to its
// most recent price action, using an elastic distance measure.
type Engine struct {
	cfg *EngineConfig
}

// NewEngine initializes a new similarity search engine.
func NewEngine(cfg *EngineConfig) *Engine {
	if cfg.TradingHoursPerDay <= 0 {
		cfg.TradingHoursPerDay = DefaultTradingHoursPerDay
	}
	if cfg.MinSamples <= 0 {
		cfg.MinSamples = DefaultMinSamples
	}
	if cfg.TopN <= 0 {
		cfg.TopN = DefaultTopN
	}
	if cfg.MinGapDays <= 0 {
		cfg.MinGapDays = DefaultMinGapDays
	}

	return &Engine{
		cfg: cfg,
	}
}

// Search finds the most similar historical segments to the trailing window
// covering the requested number of trading hours. Matches are ordered by
// ascending elastic distance and mutually separated by the configured
// minimum gap. The provided series is read only and must be strictly
// ordered by date.
func (e *Engine) Search(series []shared.PricePoint, hours float64) ([]shared.Match, shared.Window, error) {
	err := shared.ValidateSeries(series)
	if err != nil {
		return nil, shared.Window{}, err
	}

	refWindow, err := ReferenceWindow(len(series), hours, e.cfg.TradingHoursPerDay, e.cfg.MinSamples)
	if err != nil {
		return nil, shared.Window{}, err
	}

	closes := shared.ClosePrices(series)
	refPattern, err := pattern.Normalize(closes[refWindow.Start : refWindow.End+1])
	if err != nil {
		return nil, shared.Window{}, fmt.Errorf("normalizing reference window: %w", err)
	}

	e.cfg.Logger.Info().Msgf("searching for segments similar to the most recent %d samples (%s to %s)",
		refWindow.Length(), series[refWindow.Start].Date.Format(shared.DateLayout),
		series[refWindow.End].Date.Format(shared.DateLayout))

	candidates, err := scan(closes, refPattern, refWindow, e.cfg.MinGapDays)
	if err != nil {
		return nil, shared.Window{}, err
	}

	selected := selectNonOverlapping(candidates, e.cfg.TopN, e.cfg.MinGapDays)

	matches := make([]shared.Match, len(selected))
	for idx := range selected {
		window := selected[idx].Window
		matches[idx] = shared.Match{
			Market:      series[window.Start].Market,
			Window:      window,
			StartDate:   series[window.Start].Date,
			EndDate:     series[window.End].Date,
			Distance:    selected[idx].Distance,
			Correlation: selected[idx].Correlation,
			Score:       selected[idx].Score,
			Pattern:     selected[idx].Pattern,
		}
	}

	e.cfg.Logger.Info().Msgf("scanned %d candidate windows, selected %d matches",
		len(candidates), len(matches))

	return matches, refWindow, nil
}
