package standings

import (
	"time"

	"github.com/riskibarqy/matchday/internal/domain/team"
)

// ComputeWithMovement computes the table and fills PreviousPosition from the
// table as it stood before the most recent played date.
func ComputeWithMovement(teams []team.Team, results []Result, opts Options) ([]Row, error) {
	rows, err := Compute(teams, results, opts)
	if err != nil {
		return nil, err
	}

	previous := ResultsBeforeLatestDate(results)
	if len(previous) == 0 {
		return rows, nil
	}
	prevRows, err := Compute(teams, previous, opts)
	if err != nil {
		return nil, err
	}
	return ApplyPreviousPositions(rows, prevRows), nil
}

// ResultsBeforeLatestDate keeps played results from calendar dates before the
// most recent played one.
func ResultsBeforeLatestDate(results []Result) []Result {
	var latest time.Time
	for _, r := range results {
		if r.Played() && r.PlayedAt.After(latest) {
			latest = r.PlayedAt
		}
	}
	if latest.IsZero() {
		return nil
	}

	cutoff := time.Date(latest.Year(), latest.Month(), latest.Day(), 0, 0, 0, 0, latest.Location())
	out := make([]Result, 0, len(results))
	for _, r := range results {
		if r.Played() && r.PlayedAt.Before(cutoff) {
			out = append(out, r)
		}
	}
	return out
}
