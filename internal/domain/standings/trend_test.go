package standings

import (
	"testing"
)

func TestClassifyTrend(t *testing.T) {
	t.Parallel()

	W, D, L := OutcomeWin, OutcomeDraw, OutcomeLoss
	tests := []struct {
		name string
		form []Outcome
		want Trend
	}{
		{name: "empty", form: nil, want: TrendStable},
		{name: "no older window", form: []Outcome{W, W, W}, want: TrendStable},
		{name: "improving", form: []Outcome{W, W, W, L, L}, want: TrendImproving},
		{name: "declining", form: []Outcome{L, L, D, W, W}, want: TrendDeclining},
		{name: "flat", form: []Outcome{W, D, L, W, D, L}, want: TrendStable},
		{name: "within threshold", form: []Outcome{W, L, W, D, W, D}, want: TrendStable},
		{name: "single older entry", form: []Outcome{W, W, D, L}, want: TrendImproving},
	}

	for _, tc := range tests {
		if got := ClassifyTrend(tc.form); got != tc.want {
			t.Fatalf("%s: got=%s want=%s", tc.name, got, tc.want)
		}
	}
}

func TestApplyPreviousPositions(t *testing.T) {
	t.Parallel()

	previous := []Row{
		{Position: 1, Team: abcTeams()[2]},
		{Position: 2, Team: abcTeams()[1]},
	}
	current := []Row{
		{Position: 1, Team: abcTeams()[1]},
		{Position: 2, Team: abcTeams()[2]},
		{Position: 3, Team: abcTeams()[0]},
	}

	got := ApplyPreviousPositions(current, previous)
	if got[0].PreviousPosition != 2 || got[0].PositionChange() != 1 {
		t.Fatalf("unexpected climb: %+v", got[0])
	}
	if got[1].PreviousPosition != 1 || got[1].PositionChange() != -1 {
		t.Fatalf("unexpected drop: %+v", got[1])
	}
	if got[2].PreviousPosition != 0 || got[2].PositionChange() != 0 {
		t.Fatalf("expected unknown previous position: %+v", got[2])
	}
	if current[0].PreviousPosition != 0 {
		t.Fatalf("expected input rows untouched")
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	results := []Result{
		result("a", "b", 2, 1, day1),
		result("b", "c", 3, 0, day1.AddDate(0, 0, 1)),
		result("a", "c", 1, 1, day1.AddDate(0, 0, 2)),
	}
	rows, err := Compute(abcTeams(), results, DefaultOptions())
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}

	got := Summarize(rows)
	want := Summary{TotalTeams: 3, TotalMatches: 3, TotalGoals: 8, AverageGoalsPerGame: 2.7}
	if got != want {
		t.Fatalf("unexpected summary: got=%+v want=%+v", got, want)
	}
	if empty := Summarize(nil); empty != (Summary{}) {
		t.Fatalf("expected zero summary, got %+v", empty)
	}
}
