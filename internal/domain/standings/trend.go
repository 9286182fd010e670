package standings

import "math"

const (
	trendWindow    = 3
	trendThreshold = 0.5
)

// ClassifyTrend compares the three most recent outcomes with the three before
// them, weighting W/D/L as 3/1/0 regardless of the configured point system.
func ClassifyTrend(form []Outcome) Trend {
	if len(form) <= trendWindow {
		return TrendStable
	}

	recent := form[:trendWindow]
	older := form[trendWindow:min(len(form), 2*trendWindow)]

	diff := averageFormPoints(recent) - averageFormPoints(older)
	switch {
	case diff > trendThreshold:
		return TrendImproving
	case diff < -trendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func averageFormPoints(form []Outcome) float64 {
	if len(form) == 0 {
		return 0
	}
	total := 0
	for _, o := range form {
		total += DefaultPointSystem().For(o)
	}
	return float64(total) / float64(len(form))
}

// ApplyPreviousPositions copies each team's position in previous onto current.
// Teams missing from previous keep PreviousPosition zero.
func ApplyPreviousPositions(current, previous []Row) []Row {
	if len(previous) == 0 {
		return current
	}
	positions := make(map[string]int, len(previous))
	for _, row := range previous {
		positions[row.Team.ID] = row.Position
	}

	out := make([]Row, len(current))
	for i, row := range current {
		row.PreviousPosition = positions[row.Team.ID]
		out[i] = row
	}
	return out
}

type Summary struct {
	TotalTeams          int
	TotalMatches        int
	TotalGoals          int
	AverageGoalsPerGame float64
}

func Summarize(rows []Row) Summary {
	played, goals := 0, 0
	for _, row := range rows {
		played += row.Played
		goals += row.GoalsFor
	}

	matches := played / 2
	summary := Summary{
		TotalTeams:   len(rows),
		TotalMatches: matches,
		TotalGoals:   goals,
	}
	if played > 0 {
		summary.AverageGoalsPerGame = math.Round(float64(goals)/(float64(played)/2)*10) / 10
	}
	return summary
}
