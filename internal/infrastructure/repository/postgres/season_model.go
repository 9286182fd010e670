package postgres

import (
	"database/sql"
	"time"
)

type seasonInsertModel struct {
	PublicID            string         `db:"public_id"`
	LeagueID            string         `db:"league_public_id"`
	Name                string         `db:"name"`
	StartDate           time.Time      `db:"start_date"`
	EndDate             time.Time      `db:"end_date"`
	MatchDay            int            `db:"match_day"`
	StartTime           sql.NullString `db:"start_time"`
	EndTime             sql.NullString `db:"end_time"`
	VenuesAvailable     int            `db:"venues_available"`
	SlotsPerVenue       int            `db:"slots_per_venue"`
	RestWeeks           int            `db:"rest_weeks_between_matches"`
	PointsWin           int            `db:"points_win"`
	PointsDraw          int            `db:"points_draw"`
	PointsLoss          int            `db:"points_loss"`
	TieBreakers         string         `db:"tie_breakers"`
	FormWindow          int            `db:"form_window"`
	FixturesStatus      string         `db:"fixtures_status"`
	FixturesGeneratedAt sql.NullTime   `db:"fixtures_generated_at"`
	TotalMatchesPlanned int            `db:"total_matches_planned"`
}

type seasonTableModel struct {
	ID                  int64          `db:"id"`
	PublicID            string         `db:"public_id"`
	LeagueID            string         `db:"league_public_id"`
	Name                string         `db:"name"`
	StartDate           time.Time      `db:"start_date"`
	EndDate             time.Time      `db:"end_date"`
	MatchDay            int            `db:"match_day"`
	StartTime           sql.NullString `db:"start_time"`
	EndTime             sql.NullString `db:"end_time"`
	VenuesAvailable     int            `db:"venues_available"`
	SlotsPerVenue       int            `db:"slots_per_venue"`
	RestWeeks           int            `db:"rest_weeks_between_matches"`
	PointsWin           int            `db:"points_win"`
	PointsDraw          int            `db:"points_draw"`
	PointsLoss          int            `db:"points_loss"`
	TieBreakers         string         `db:"tie_breakers"`
	FormWindow          int            `db:"form_window"`
	FixturesStatus      string         `db:"fixtures_status"`
	FixturesGeneratedAt sql.NullTime   `db:"fixtures_generated_at"`
	TotalMatchesPlanned int            `db:"total_matches_planned"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
	DeletedAt           *time.Time     `db:"deleted_at"`
}
