package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/tidwall/gjson"

	"patternscan/shared"
)

const (
	// BaseURL is the base url for the FMP API.
	BaseURL = "https://financialmodelingprep.com/stable"
)

// FMPConfig represents the configuration for the FMP client.
type FMPConfig struct {
	// APIKey is the FMP service API Key.
	APIKey string
	// BaseURL is the base url of the FMP service.
	BaseURL string
}

// Validate asserts the config sane inputs.
func (cfg *FMPConfig) Validate() error {
	var errs error

	if cfg.APIKey == "" {
		errs = errors.Join(errs, fmt.Errorf("fmp api key cannot be an empty string"))
	}
	if cfg.BaseURL == "" {
		errs = errors.Join(errs, fmt.Errorf("fmp base url cannot be an empty string"))
	}

	return errs
}

// FMPClient represents the Financial Modeling Preparation (FMP) API client.
type FMPClient struct {
	cfg   *FMPConfig
	httpc http.Client
	buf   *bytes.Buffer
}

// Ensure the FMP client implements the SeriesFetcher interface.
var _ shared.SeriesFetcher = (*FMPClient)(nil)

// NewFMPClient instantiates a new FMP client.
func NewFMPClient(cfg *FMPConfig) (*FMPClient, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating fmp config: %w", err)
	}

	return &FMPClient{
		cfg:   cfg,
		httpc: http.Client{Timeout: time.Second * 5},
		buf:   bytes.NewBuffer(make([]byte, 0, 512)),
	}, nil
}

// formURL creates full urls including parameters for the api.
func (c *FMPClient) formURL(path string, params string) string {
	c.buf.WriteString(c.cfg.BaseURL)
	c.buf.WriteString(path)
	c.buf.WriteString("?")
	c.buf.WriteString(params)
	url := c.buf.String()
	c.buf.Reset()

	return url
}

// ParsePricePoints parses daily price points from the provided json data,
// ordered ascending by date.
func (c *FMPClient) ParsePricePoints(data []gjson.Result, market string) ([]shared.PricePoint, error) {
	points := make([]shared.PricePoint, len(data))

	for idx := range data {
		var point shared.PricePoint

		point.Close = data[idx].Get("close").Float()
		point.Market = market

		dt, err := time.Parse(shared.DateLayout, data[idx].Get("date").String())
		if err != nil {
			return nil, fmt.Errorf("parsing price point date: %w", err)
		}

		point.Date = dt
		points[idx] = point
	}

	// The api returns entries newest first; the search expects the series
	// strictly ascending by date.
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	err := shared.ValidateSeries(points)
	if err != nil {
		return nil, err
	}

	return points, nil
}

// FetchDailyHistorical fetches daily end-of-day price data for the provided market.
func (c *FMPClient) FetchDailyHistorical(ctx context.Context, market string, start time.Time, end time.Time) ([]gjson.Result, error) {
	const dailyHistoricalPath = "/historical-price-eod/full"

	params := url.Values{}
	params.Add("symbol", market)
	params.Add("apikey", c.cfg.APIKey)
	if !start.IsZero() {
		params.Add("from", start.Format(shared.DateLayout))
	}
	if !end.IsZero() {
		params.Add("to", end.Format(shared.DateLayout))
	}

	formedURL := c.formURL(dailyHistoricalPath, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, formedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating daily historical request for %s: %w", market, err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching daily historical data for %s: %w", market, err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	data := gjson.ParseBytes(body).Array()

	return data, nil
}
