package shared

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the date format used for daily price data.
	DateLayout = "2006-01-02"
)

// PricePoint represents a unit daily closing price for a market.
type PricePoint struct {
	Close  float64
	Date   time.Time
	Market string
}

// ValidateSeries asserts the provided series is non-empty and strictly
// ordered by date with no duplicate timestamps.
func ValidateSeries(series []PricePoint) error {
	if len(series) == 0 {
		return fmt.Errorf("%w: price series cannot be empty", ErrInvalidInput)
	}

	for idx := 1; idx < len(series); idx++ {
		if !series[idx].Date.After(series[idx-1].Date) {
			return fmt.Errorf("%w: price series must be strictly ordered by date, "+
				"%s does not follow %s", ErrInvalidInput,
				series[idx].Date.Format(DateLayout), series[idx-1].Date.Format(DateLayout))
		}
	}

	return nil
}

// ClosePrices extracts the closing prices of the provided series.
func ClosePrices(series []PricePoint) []float64 {
	closes := make([]float64, len(series))
	for idx := range series {
		closes[idx] = series[idx].Close
	}

	return closes
}

// ForwardReturn returns the percentage return of the series a number of
// trading days after the provided index. The second return is false when the
// horizon extends past the end of the series.
func ForwardReturn(series []PricePoint, idx int, horizonDays int) (float64, bool) {
	if idx < 0 || idx+horizonDays >= len(series) {
		return 0, false
	}

	entry := series[idx].Close
	if entry == 0 {
		return 0, false
	}

	return (series[idx+horizonDays].Close/entry - 1) * 100, true
}
