package database

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	rqlitehttp "github.com/rqlite/rqlite-go-http"
	"github.com/rs/zerolog"

	"patternscan/shared"
)

const (
	// SQL statements.
	createAnalysisTableSQL = "CREATE TABLE IF NOT EXISTS analysis (id TEXT PRIMARY KEY, market TEXT, hours REAL, refstart TEXT, refend TEXT, matches INTEGER, createdon INTEGER)"
	createMatchTableSQL    = "CREATE TABLE IF NOT EXISTS match (id TEXT PRIMARY KEY, analysisid TEXT, rank INTEGER, startdate TEXT, enddate TEXT, distance REAL, correlation REAL, score REAL)"
	persistAnalysisSQL     = "INSERT INTO analysis(id, market, hours, refstart, refend, matches, createdon) VALUES(?,?,?,?,?,?,?)"
	persistMatchSQL        = "INSERT INTO match(id, analysisid, rank, startdate, enddate, distance, correlation, score) VALUES(?,?,?,?,?,?,?,?)"
)

// AnalysisStorer defines the requirements for storing analysis runs.
type AnalysisStorer interface {
	// PersistAnalysis stores the provided analysis run and its matches to
	// the database.
	PersistAnalysis(ctx context.Context, run *shared.AnalysisRun) error
}

// DatabaseConfig is the configuration for the database.
type DatabaseConfig struct {
	// Endpoint represents the database connection endpoint.
	Endpoint string
	// User is the database user.
	User string
	// Pass is the database user pass.
	Pass string
	// Logger is the database logger.
	Logger *zerolog.Logger
}

// Database represents the database connection.
type Database struct {
	cfg    *DatabaseConfig
	client *rqlitehttp.Client
}

// Ensure the database implements the AnalysisStorer interface.
var _ AnalysisStorer = (*Database)(nil)

// NewDatabase initializes a new database connection.
func NewDatabase(ctx context.Context, cfg *DatabaseConfig) (*Database, error) {
	httpc := &http.Client{Timeout: time.Second * 5}
	client, err := rqlitehttp.NewClient(cfg.Endpoint, httpc)
	if err != nil {
		return nil, fmt.Errorf("creating database client: %w", err)
	}

	client.SetBasicAuth(cfg.User, cfg.Pass)

	db := &Database{
		cfg:    cfg,
		client: client,
	}

	err = db.bootstrap(ctx)
	if err != nil {
		return nil, fmt.Errorf("bootstrapping database: %w", err)
	}

	return db, nil
}

// bootstrap initializes the database.
func (db *Database) bootstrap(ctx context.Context) error {
	_, err := db.client.Execute(ctx, rqlitehttp.SQLStatements{
		{SQL: createAnalysisTableSQL},
		{SQL: createMatchTableSQL},
	}, &rqlitehttp.ExecuteOptions{
		Transaction: true,
		Timings:     true,
	})
	if err != nil {
		return err
	}

	return nil
}

// PersistAnalysis stores the provided analysis run and its matches to the database.
func (db *Database) PersistAnalysis(ctx context.Context, run *shared.AnalysisRun) error {
	statements := make(rqlitehttp.SQLStatements, 0, len(run.Matches)+1)
	statements = append(statements, &rqlitehttp.SQLStatement{
		SQL: persistAnalysisSQL,
		PositionalParams: []any{run.ID, run.Market, run.Hours,
			run.ReferenceStart.Format(shared.DateLayout),
			run.ReferenceEnd.Format(shared.DateLayout),
			len(run.Matches), run.CreatedOn.Unix()},
	})

	for idx := range run.Matches {
		match := &run.Matches[idx]
		statements = append(statements, &rqlitehttp.SQLStatement{
			SQL: persistMatchSQL,
			PositionalParams: []any{uuid.NewString(), run.ID, idx + 1,
				match.StartDate.Format(shared.DateLayout),
				match.EndDate.Format(shared.DateLayout),
				match.Distance, match.Correlation, match.Score},
		})
	}

	resp, err := db.client.Execute(ctx, statements,
		&rqlitehttp.ExecuteOptions{Transaction: true, Timings: true})
	if err != nil {
		return err
	}

	has, idx, errStr := resp.HasError()
	if has {
		db.cfg.Logger.Error().Msgf("unexpected analysis run state for persistence: %s", spew.Sdump(run))
		return fmt.Errorf("persisting analysis %s: %d -> %s", run.ID, idx, errStr)
	}

	return nil
}
