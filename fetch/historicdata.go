package fetch

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"patternscan/shared"
)

// HistoricDataConfig represents the historic data source configuration.
type HistoricDataConfig struct {
	// FilePath is the filepath to the historic market data.
	FilePath string
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// HistoricData represents a file backed daily price history, used for
// offline analysis runs. The expected format is a json document with a
// market field and a daily array of date and close pairs.
type HistoricData struct {
	cfg    *HistoricDataConfig
	market string
	points []shared.PricePoint
}

// loadHistoricData loads the historic data bytes from the provided file path.
func loadHistoricData(filepath string) (*gjson.Result, error) {
	readb, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading historic data from file with path '%s': %v", filepath, err)
	}

	b := gjson.ParseBytes(readb)

	return &b, nil
}

// NewHistoricData initializes a new historic data source.
func NewHistoricData(cfg *HistoricDataConfig) (*HistoricData, error) {
	b, err := loadHistoricData(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("loading historic data: %v", err)
	}

	market := b.Get("market").String()
	if market == "" {
		return nil, fmt.Errorf("historic data is missing a market")
	}

	data := b.Get("daily").Array()
	points := make([]shared.PricePoint, len(data))
	for idx := range data {
		dt, err := time.Parse(shared.DateLayout, data[idx].Get("date").String())
		if err != nil {
			return nil, fmt.Errorf("parsing historic price point date: %w", err)
		}

		points[idx] = shared.PricePoint{
			Close:  data[idx].Get("close").Float(),
			Date:   dt,
			Market: market,
		}
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	err = shared.ValidateSeries(points)
	if err != nil {
		return nil, fmt.Errorf("validating historic data: %w", err)
	}

	historicData := HistoricData{
		cfg:    cfg,
		market: market,
		points: points,
	}

	cfg.Logger.Info().Msgf("loaded %d daily price points for %s, from %s to %s",
		len(points), market, points[0].Date.Format(shared.DateLayout),
		points[len(points)-1].Date.Format(shared.DateLayout))

	return &historicData, nil
}

// Series returns the loaded daily price series.
func (h *HistoricData) Series() []shared.PricePoint {
	return h.points
}

// Market returns the historic data market.
func (h *HistoricData) Market() string {
	return h.market
}
