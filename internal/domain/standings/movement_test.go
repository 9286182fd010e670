package standings

import (
	"testing"
	"time"
)

func TestComputeWithMovement(t *testing.T) {
	t.Parallel()

	day1 := time.Date(2026, 1, 1, 19, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 7)
	results := []Result{
		result("a", "b", 1, 0, day1),
		result("b", "c", 3, 0, day2),
		{HomeTeamID: "c", AwayTeamID: "a", PlayedAt: day2.AddDate(0, 0, 7)},
	}

	rows, err := ComputeWithMovement(abcTeams(), results, DefaultOptions())
	if err != nil {
		t.Fatalf("ComputeWithMovement error: %v", err)
	}

	want := []struct {
		id       string
		previous int
	}{{"b", 3}, {"a", 1}, {"c", 2}}
	for i, w := range want {
		if rows[i].Team.ID != w.id || rows[i].PreviousPosition != w.previous {
			t.Fatalf("row %d: got team=%s previous=%d want team=%s previous=%d",
				i, rows[i].Team.ID, rows[i].PreviousPosition, w.id, w.previous)
		}
	}
}

func TestComputeWithMovement_SingleDateHasNoPrevious(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 1, 1, 19, 0, 0, 0, time.UTC)
	rows, err := ComputeWithMovement(abcTeams(), []Result{
		result("a", "b", 1, 0, day),
		result("c", "a", 0, 0, day.Add(time.Hour)),
	}, DefaultOptions())
	if err != nil {
		t.Fatalf("ComputeWithMovement error: %v", err)
	}
	for _, row := range rows {
		if row.PreviousPosition != 0 {
			t.Fatalf("expected no previous position on first matchday: %+v", row)
		}
	}
}

func TestResultsBeforeLatestDate(t *testing.T) {
	t.Parallel()

	day1 := time.Date(2026, 1, 1, 19, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 7)
	got := ResultsBeforeLatestDate([]Result{
		result("a", "b", 1, 0, day1),
		result("b", "c", 1, 1, day2),
		result("c", "a", 2, 2, day2.Add(-time.Hour)),
		{HomeTeamID: "a", AwayTeamID: "c", PlayedAt: day1},
	})
	if len(got) != 1 || got[0].HomeTeamID != "a" {
		t.Fatalf("expected only the first matchday result, got %+v", got)
	}

	if got := ResultsBeforeLatestDate(nil); got != nil {
		t.Fatalf("expected nil for no results, got %+v", got)
	}
}
