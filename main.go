package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"patternscan/service"
)

// handleTermination processes context cancellation signals or interrupt signals from the OS.
func handleTermination(ctx context.Context, cancel context.CancelFunc) {
	// Listen for interrupt signals.
	signals := []os.Signal{os.Interrupt}
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, signals...)

	// Wait for the context to be cancelled or an interrupt signal.
	for {
		select {
		case <-ctx.Done():
			return

		case <-interrupt:
			cancel()
		}
	}
}

func main() {
	var cfg Config
	err := loadConfig(&cfg, "")
	if err != nil {
		log.Printf("loading config: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scanCfg := service.ScanConfig{
		Market:               cfg.Market,
		FMPAPIKey:            cfg.FMPAPIKey,
		Hours:                cfg.Hours,
		TopN:                 cfg.TopN,
		MinGapDays:           cfg.MinGapDays,
		HistoricDataFilepath: cfg.HistoricDataFilepath,
		CSVFilepath:          cfg.CSVFilepath,
		DatabaseEndpoint:     cfg.DatabaseEndpoint,
		DatabaseUser:         cfg.DatabaseUser,
		DatabasePass:         cfg.DatabasePass,
		Once:                 cfg.Once,
		Cancel:               cancel,
	}
	scan, err := service.NewScan(ctx, &scanCfg)
	if err != nil {
		log.Printf("creating scan service: %v", err)
		return
	}

	go handleTermination(ctx, cancel)
	scan.Run(ctx)
}
