package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"patternscan/shared"
)

// WriteCSV persists the matches of the provided analysis run as a csv file
// at the provided path.
func WriteCSV(path string, run *shared.AnalysisRun) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv file at '%s': %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"rank", "market", "startdate", "enddate", "distance", "correlation", "score"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for idx := range run.Matches {
		match := &run.Matches[idx]
		record := []string{
			strconv.Itoa(idx + 1),
			run.Market,
			match.StartDate.Format(shared.DateLayout),
			match.EndDate.Format(shared.DateLayout),
			strconv.FormatFloat(match.Distance, 'f', 6, 64),
			strconv.FormatFloat(match.Correlation, 'f', 4, 64),
			strconv.FormatFloat(match.Score, 'f', 6, 64),
		}

		err = writer.Write(record)
		if err != nil {
			return fmt.Errorf("writing csv record: %w", err)
		}
	}

	return nil
}
