package postgres

import (
	"database/sql"
	"time"
)

type fixtureInsertModel struct {
	PublicID   string    `db:"public_id"`
	SeasonID   string    `db:"season_public_id"`
	Matchday   int       `db:"matchday"`
	Round      int       `db:"round"`
	MatchDate  time.Time `db:"match_date"`
	KickoffAt  time.Time `db:"kickoff_at"`
	VenueSlot  int       `db:"venue_slot"`
	Venue      int       `db:"venue"`
	HomeTeamID string    `db:"home_team_public_id"`
	AwayTeamID string    `db:"away_team_public_id"`
	Status     string    `db:"status"`
}

type fixtureTableModel struct {
	ID          int64         `db:"id"`
	PublicID    string        `db:"public_id"`
	SeasonID    string        `db:"season_public_id"`
	Matchday    int           `db:"matchday"`
	Round       int           `db:"round"`
	MatchDate   time.Time     `db:"match_date"`
	KickoffAt   time.Time     `db:"kickoff_at"`
	VenueSlot   int           `db:"venue_slot"`
	Venue       int           `db:"venue"`
	HomeTeamID  string        `db:"home_team_public_id"`
	AwayTeamID  string        `db:"away_team_public_id"`
	HomeScore   sql.NullInt64 `db:"home_score"`
	AwayScore   sql.NullInt64 `db:"away_score"`
	Status      string        `db:"status"`
	CompletedAt sql.NullTime  `db:"completed_at"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
}
