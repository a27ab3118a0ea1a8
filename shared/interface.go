package shared

import (
	"context"
	"time"

	"github.com/tidwall/gjson"
)

// SeriesFetcher defines the requirements for fetching a market's daily
// price history.
type SeriesFetcher interface {
	// FetchDailyHistorical fetches daily end-of-day price data for the
	// provided market.
	FetchDailyHistorical(ctx context.Context, market string, start time.Time, end time.Time) ([]gjson.Result, error)
	// ParsePricePoints parses daily price points from the provided json data.
	ParsePricePoints(data []gjson.Result, market string) ([]PricePoint, error)
}
