package search

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
	"github.com/rs/zerolog/log"

	"patternscan/shared"
)

// generateSeries builds a daily series from the provided closes, starting at
// a fixed date.
func generateSeries(t *testing.T, closes []float64) []shared.PricePoint {
	t.Helper()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make([]shared.PricePoint, len(closes))
	for idx := range closes {
		series[idx] = shared.PricePoint{
			Close:  closes[idx],
			Date:   start.AddDate(0, 0, idx),
			Market: "^GSPC",
		}
	}

	return series
}

func TestEngineSearch(t *testing.T) {
	// Build a 200 sample series: a gently rising baseline with a distinctive
	// zigzag shape planted at [10, 29] and repeated exactly as the trailing
	// reference window [180, 199]. With a 30 day gap only the early copy is
	// an eligible match.
	shape := []float64{
		1, 3, 2, 5, 4, 7, 6, 9, 8, 11,
		10, 13, 12, 15, 14, 17, 16, 19, 18, 21,
	}

	closes := make([]float64, 200)
	for idx := range closes {
		closes[idx] = 30 + 0.05*float64(idx)
	}
	copy(closes[10:30], shape)
	copy(closes[180:200], shape)

	series := generateSeries(t, closes)

	engine := NewEngine(&EngineConfig{
		TopN:       1,
		MinGapDays: 30,
		Logger:     log.Logger,
	})

	matches, refWindow, err := engine.Search(series, 8)
	assert.NoError(t, err)
	assert.Equal(t, refWindow, shared.Window{Start: 180, End: 199})

	// Ensure the single returned match is the planted duplicate with an
	// exact zero distance and perfect correlation.
	assert.Equal(t, len(matches), 1)
	assert.Equal(t, matches[0].Window, shared.Window{Start: 10, End: 29})
	assert.Equal(t, matches[0].Distance, float64(0))
	assert.True(t, math.Abs(matches[0].Correlation-1) < 1e-9)
	assert.True(t, math.Abs(matches[0].Score-1) < 1e-9)

	// Ensure the match carries its dates and normalized pattern.
	assert.Equal(t, matches[0].StartDate, series[10].Date)
	assert.Equal(t, matches[0].EndDate, series[29].Date)
	assert.Equal(t, len(matches[0].Pattern), 20)

	// Ensure the match window stays clear of the reference window by the
	// configured gap.
	assert.True(t, matches[0].Window.SeparatedFrom(refWindow, 30))
}

func TestEngineSearchOrdering(t *testing.T) {
	// Plant the reference shape twice in eligible history, far apart, with
	// one copy lightly perturbed so the exact copy ranks first.
	shape := []float64{
		1, 3, 2, 5, 4, 7, 6, 9, 8, 11,
		10, 13, 12, 15, 14, 17, 16, 19, 18, 21,
	}

	closes := make([]float64, 300)
	for idx := range closes {
		closes[idx] = 30 + 0.05*float64(idx)
	}
	copy(closes[10:30], shape)
	for idx := range shape {
		closes[120+idx] = shape[idx] + 0.3*float64(idx%3)
	}
	copy(closes[280:300], shape)

	series := generateSeries(t, closes)

	engine := NewEngine(&EngineConfig{
		TopN:       2,
		MinGapDays: 30,
		Logger:     log.Logger,
	})

	matches, _, err := engine.Search(series, 8)
	assert.NoError(t, err)
	assert.Equal(t, len(matches), 2)

	// Ensure matches are ordered by ascending distance with the exact copy
	// first.
	assert.Equal(t, matches[0].Window, shared.Window{Start: 10, End: 29})
	assert.True(t, matches[0].Distance <= matches[1].Distance)

	// Ensure accepted matches honour the pairwise gap constraint.
	assert.True(t, matches[0].Window.SeparatedFrom(matches[1].Window, 30))
}

func TestEngineSearchErrors(t *testing.T) {
	engine := NewEngine(&EngineConfig{Logger: log.Logger})

	// Ensure an empty series is rejected as invalid input.
	_, _, err := engine.Search(nil, 8)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	// Ensure a series shorter than the reference window is rejected.
	series := generateSeries(t, []float64{1, 2, 3, 4, 5})
	_, _, err = engine.Search(series, 40)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInsufficientHistory))

	// Ensure a series with no eligible pre-reference history is rejected.
	closes := make([]float64, 60)
	for idx := range closes {
		closes[idx] = float64(idx)
	}
	series = generateSeries(t, closes)
	_, _, err = engine.Search(series, 8)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInsufficientHistory))
}
