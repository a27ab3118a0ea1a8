package fetch

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
	"github.com/tidwall/gjson"
)

func TestFMPClient(t *testing.T) {
	// Ensure an incomplete config is rejected.
	_, err := NewFMPClient(&FMPConfig{})
	assert.Error(t, err)

	// Ensure the fmp client can be created.
	cfg := &FMPConfig{
		APIKey:  "key",
		BaseURL: "http://base",
	}

	fc, err := NewFMPClient(cfg)
	assert.NoError(t, err)

	// Ensure urls can be formed accurately.
	params := url.Values{}
	params.Add("a", "bbb")
	params.Add("b", "ccc")

	path := "/path"
	formedUrl := fc.formURL(path, params.Encode())
	assert.Equal(t, formedUrl, "http://base/path?a=bbb&b=ccc")

	// Ensure fetching daily data fails against an unreachable base url.
	_, err = fc.FetchDailyHistorical(context.Background(), "^GSPC",
		time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), time.Time{})
	assert.Error(t, err)
}

func TestParsePricePoints(t *testing.T) {
	cfg := &FMPConfig{
		APIKey:  "key",
		BaseURL: "http://base",
	}

	fc, err := NewFMPClient(cfg)
	assert.NoError(t, err)

	market := "^GSPC"
	data := `[{"date":"2025-02-06","close":13},
		{"date":"2025-02-05","close":12},
		{"date":"2025-02-04","close":10}]`
	gjd := gjson.Parse(data).Array()

	// Ensure price points are parsed and reordered ascending by date.
	points, err := fc.ParsePricePoints(gjd, market)
	assert.NoError(t, err)
	assert.Equal(t, len(points), 3)
	assert.Equal(t, points[0].Close, float64(10))
	assert.Equal(t, points[0].Date.Day(), 4)
	assert.Equal(t, points[2].Close, float64(13))
	assert.Equal(t, points[2].Date.Day(), 6)
	assert.Equal(t, points[0].Market, market)

	// Ensure duplicate dates are rejected.
	duplicated := `[{"date":"2025-02-04","close":10},{"date":"2025-02-04","close":11}]`
	gjd = gjson.Parse(duplicated).Array()
	_, err = fc.ParsePricePoints(gjd, market)
	assert.Error(t, err)

	// Ensure malformed dates are rejected.
	malformed := `[{"date":"02/04/2025","close":10}]`
	gjd = gjson.Parse(malformed).Array()
	_, err = fc.ParsePricePoints(gjd, market)
	assert.Error(t, err)
}
