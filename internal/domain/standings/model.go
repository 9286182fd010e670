package standings

import (
	"time"

	"github.com/riskibarqy/matchday/internal/domain/team"
)

type TieBreaker string

const (
	TieBreakGoalDifference TieBreaker = "goal_difference"
	TieBreakGoalsFor       TieBreaker = "goals_for"
	TieBreakGoalsAgainst   TieBreaker = "goals_against"
	TieBreakHeadToHead     TieBreaker = "head_to_head"
)

const DefaultFormWindow = 5

type Outcome string

const (
	OutcomeWin  Outcome = "W"
	OutcomeDraw Outcome = "D"
	OutcomeLoss Outcome = "L"
)

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// PointSystem is the points awarded per outcome.
type PointSystem struct {
	Win  int `validate:"gte=0"`
	Draw int `validate:"gte=0"`
	Loss int `validate:"gte=0"`
}

func DefaultPointSystem() PointSystem {
	return PointSystem{Win: 3, Draw: 1, Loss: 0}
}

func (p PointSystem) For(outcome Outcome) int {
	switch outcome {
	case OutcomeWin:
		return p.Win
	case OutcomeDraw:
		return p.Draw
	default:
		return p.Loss
	}
}

func DefaultTieBreakers() []TieBreaker {
	return []TieBreaker{TieBreakGoalDifference, TieBreakGoalsFor}
}

type Options struct {
	Points      PointSystem
	TieBreakers []TieBreaker `validate:"dive,oneof=goal_difference goals_for goals_against head_to_head"`
	FormWindow  int          `validate:"gte=1"`
}

func DefaultOptions() Options {
	return Options{
		Points:      DefaultPointSystem(),
		TieBreakers: DefaultTieBreakers(),
		FormWindow:  DefaultFormWindow,
	}
}

// Result is a match as seen by the table. A nil score means not played yet.
type Result struct {
	FixtureID  string
	HomeTeamID string
	AwayTeamID string
	HomeScore  *int
	AwayScore  *int
	PlayedAt   time.Time
}

func (r Result) Played() bool {
	return r.HomeScore != nil && r.AwayScore != nil
}

type Row struct {
	Position         int
	PreviousPosition int
	Team             team.Team
	Played           int
	Won              int
	Drawn            int
	Lost             int
	GoalsFor         int
	GoalsAgainst     int
	GoalDifference   int
	Points           int
	// RecentForm is most recent first.
	RecentForm []Outcome
	FormTrend  Trend
}

// PositionChange is positive when a team climbed. Zero when no previous
// position is known.
func (r Row) PositionChange() int {
	if r.PreviousPosition == 0 {
		return 0
	}
	return r.PreviousPosition - r.Position
}
