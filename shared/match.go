package shared

import "time"

// Match represents a historical window promoted to the result set of a
// similarity search, ranked by ascending elastic distance.
type Match struct {
	Market    string
	Window    Window
	StartDate time.Time
	EndDate   time.Time
	// Distance is the elastic (warp tolerant) distance between the
	// normalized historical pattern and the normalized reference pattern.
	Distance float64
	// Correlation is the Pearson correlation between the two normalized
	// patterns. A zero variance window yields zero rather than NaN.
	Correlation float64
	// Score weighs the correlation by the inverse distance. It is
	// informational only and does not affect ranking.
	Score float64
	// Pattern is the normalized price sub-sequence of the matched window.
	Pattern []float64
}

// AnalysisRun represents a completed similarity search over a market's
// price history.
type AnalysisRun struct {
	ID              string
	Market          string
	Hours           float64
	ReferenceWindow Window
	ReferenceStart  time.Time
	ReferenceEnd    time.Time
	Matches         []Match
	CreatedOn       time.Time
}
