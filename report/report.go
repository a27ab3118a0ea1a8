// Package report renders the results of a similarity analysis run for
// consumers: a ranked console report and a csv export.
package report

import (
	"bytes"
	"fmt"

	"patternscan/shared"
)

// returnHorizons are the forward return horizons reported per match, in
// trading days.
var returnHorizons = []int{5, 20}

// BuildReport renders a ranked console report for the provided analysis run,
// including the forward returns following each matched window where the
// series extends far enough.
func BuildReport(series []shared.PricePoint, run *shared.AnalysisRun) string {
	buf := bytes.NewBuffer(make([]byte, 0, 512))

	separator := "================================================================================\n"

	buf.WriteString(separator)
	buf.WriteString(fmt.Sprintf("%s - segments most similar to the most recent %.0f hours (%s to %s)\n",
		run.Market, run.Hours, run.ReferenceStart.Format(shared.DateLayout),
		run.ReferenceEnd.Format(shared.DateLayout)))
	buf.WriteString(separator)

	if len(run.Matches) == 0 {
		buf.WriteString("no sufficiently separated matches found\n")
		return buf.String()
	}

	for idx := range run.Matches {
		match := &run.Matches[idx]

		buf.WriteString(fmt.Sprintf("\n#%d: %s to %s\n", idx+1,
			match.StartDate.Format(shared.DateLayout), match.EndDate.Format(shared.DateLayout)))
		buf.WriteString(fmt.Sprintf("  distance:    %.6f\n", match.Distance))
		buf.WriteString(fmt.Sprintf("  correlation: %.4f\n", match.Correlation))
		buf.WriteString(fmt.Sprintf("  score:       %.6f\n", match.Score))

		for _, horizon := range returnHorizons {
			forwardReturn, ok := shared.ForwardReturn(series, match.Window.End, horizon)
			if !ok {
				continue
			}
			buf.WriteString(fmt.Sprintf("  %dd return:  %+.2f%%\n", horizon, forwardReturn))
		}
	}

	return buf.String()
}
