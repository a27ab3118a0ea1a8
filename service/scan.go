package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"go.uber.org/atomic"

	"patternscan/database"
	"patternscan/fetch"
	"patternscan/report"
	"patternscan/search"
	"patternscan/shared"
)

const (
	// analysisTime is the daily analysis schedule time (in new york time),
	// shortly after the market close.
	analysisTime = "16:30"
	// fetchStartDate is the earliest date daily history is requested from.
	fetchStartDate = "1990-01-01"
)

// ScanConfig represents the configuration struct for the scan service.
type ScanConfig struct {
	// Market represents the analyzed market.
	Market string
	// FMPAPIKey is the FMP service API Key.
	FMPAPIKey string
	// Hours is the duration of the reference window in trading hours.
	Hours float64
	// TopN is the maximum number of matches returned per analysis.
	TopN int
	// MinGapDays is the minimum separation between matched windows.
	MinGapDays int
	// HistoricDataFilepath is the filepath to file backed market data,
	// used instead of the FMP service when set.
	HistoricDataFilepath string
	// CSVFilepath is the filepath matches are exported to when set.
	CSVFilepath string
	// DatabaseEndpoint is the analysis database endpoint, persistence is
	// skipped when unset.
	DatabaseEndpoint string
	// DatabaseUser is the database user.
	DatabaseUser string
	// DatabasePass is the database user pass.
	DatabasePass string
	// Once runs a single analysis and terminates instead of scheduling a
	// recurring daily analysis.
	Once bool
	// Cancel is the context cancellation function.
	Cancel context.CancelFunc
}

// Validate asserts the config sane inputs.
func (cfg *ScanConfig) Validate() error {
	var errs error

	if cfg.Hours <= 0 {
		errs = errors.Join(errs, fmt.Errorf("requested hours must be positive"))
	}
	if cfg.Cancel == nil {
		errs = errors.Join(errs, fmt.Errorf("context cancellation function cannot be nil"))
	}
	if cfg.HistoricDataFilepath == "" {
		if cfg.Market == "" {
			errs = errors.Join(errs, fmt.Errorf("no market provided for scan service"))
		}
		if cfg.FMPAPIKey == "" {
			errs = errors.Join(errs, fmt.Errorf("fmp api key cannot be an empty string"))
		}
	}

	return errs
}

// Scan represents a pattern similarity scanning service.
type Scan struct {
	cfg          *ScanConfig
	fetchClient  *fetch.FMPClient
	historicData *fetch.HistoricData
	engine       *search.Engine
	db           database.AnalysisStorer
	jobScheduler *gocron.Scheduler
	logger       *zerolog.Logger
	busy         atomic.Bool
}

// NewScan initializes a new scan service.
func NewScan(ctx context.Context, cfg *ScanConfig) (*Scan, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating scan config: %w", err)
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	logger := log.With().Str("service", "patternscan").Logger()

	service := &Scan{
		cfg:    cfg,
		logger: &logger,
	}

	switch {
	case cfg.HistoricDataFilepath != "":
		historicDataLogger := logger.With().Str("component", "historicdata").Logger()
		service.historicData, err = fetch.NewHistoricData(&fetch.HistoricDataConfig{
			FilePath: cfg.HistoricDataFilepath,
			Logger:   &historicDataLogger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating historic data: %v", err)
		}
	default:
		service.fetchClient, err = fetch.NewFMPClient(&fetch.FMPConfig{
			APIKey:  cfg.FMPAPIKey,
			BaseURL: fetch.BaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("creating fmp client: %v", err)
		}
	}

	engineLogger := logger.With().Str("component", "engine").Logger()
	service.engine = search.NewEngine(&search.EngineConfig{
		TopN:       cfg.TopN,
		MinGapDays: cfg.MinGapDays,
		Logger:     engineLogger,
	})

	if cfg.DatabaseEndpoint != "" {
		dbLogger := logger.With().Str("component", "database").Logger()
		service.db, err = database.NewDatabase(ctx, &database.DatabaseConfig{
			Endpoint: cfg.DatabaseEndpoint,
			User:     cfg.DatabaseUser,
			Pass:     cfg.DatabasePass,
			Logger:   &dbLogger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating database: %v", err)
		}
	}

	_, loc, err := shared.NewYorkTime()
	if err != nil {
		return nil, fmt.Errorf("fetching new york time: %v", err)
	}

	service.jobScheduler = gocron.NewScheduler(loc)

	return service, nil
}

// fetchSeries fetches the daily price series for the configured market.
func (s *Scan) fetchSeries(ctx context.Context) ([]shared.PricePoint, error) {
	if s.historicData != nil {
		return s.historicData.Series(), nil
	}

	start, err := time.Parse(shared.DateLayout, fetchStartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing fetch start date: %v", err)
	}

	data, err := s.fetchClient.FetchDailyHistorical(ctx, s.cfg.Market, start, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("fetching daily historical data: %v", err)
	}

	points, err := s.fetchClient.ParsePricePoints(data, s.cfg.Market)
	if err != nil {
		return nil, fmt.Errorf("parsing price points: %v", err)
	}

	return points, nil
}

// runAnalysis performs a full similarity analysis: fetch the series, search
// it for matches, render the report and persist the results.
func (s *Scan) runAnalysis(ctx context.Context) error {
	if !s.busy.CompareAndSwap(false, true) {
		s.logger.Warn().Msg("skipping analysis, a previous run is still in progress")
		return nil
	}
	defer s.busy.Store(false)

	series, err := s.fetchSeries(ctx)
	if err != nil {
		return err
	}

	matches, refWindow, err := s.engine.Search(series, s.cfg.Hours)
	if err != nil {
		return err
	}

	market := s.cfg.Market
	if s.historicData != nil {
		market = s.historicData.Market()
	}

	now, _, err := shared.NewYorkTime()
	if err != nil {
		return err
	}

	run := &shared.AnalysisRun{
		ID:              uuid.NewString(),
		Market:          market,
		Hours:           s.cfg.Hours,
		ReferenceWindow: refWindow,
		ReferenceStart:  series[refWindow.Start].Date,
		ReferenceEnd:    series[refWindow.End].Date,
		Matches:         matches,
		CreatedOn:       now,
	}

	fmt.Fprint(os.Stdout, report.BuildReport(series, run))

	if s.cfg.CSVFilepath != "" {
		err = report.WriteCSV(s.cfg.CSVFilepath, run)
		if err != nil {
			return fmt.Errorf("exporting matches: %v", err)
		}
	}

	if s.db != nil {
		err = s.db.PersistAnalysis(ctx, run)
		if err != nil {
			return fmt.Errorf("persisting analysis: %v", err)
		}
	}

	return nil
}

// Run manages the lifecycle processes of the scan service.
func (s *Scan) Run(ctx context.Context) {
	if s.cfg.Once {
		err := s.runAnalysis(ctx)
		if err != nil {
			s.logger.Error().Msgf("running analysis: %v", err)
		}

		s.cfg.Cancel()
		return
	}

	// Re-run the analysis daily after the market close.
	_, err := s.jobScheduler.Every(1).Day().At(analysisTime).Do(func() {
		err := s.runAnalysis(ctx)
		if err != nil {
			s.logger.Error().Msgf("running scheduled analysis: %v", err)
		}
	})
	if err != nil {
		s.logger.Error().Msgf("scheduling daily analysis: %v", err)
		s.cfg.Cancel()
		return
	}

	s.jobScheduler.StartAsync()
	<-ctx.Done()
	s.jobScheduler.Stop()
}
