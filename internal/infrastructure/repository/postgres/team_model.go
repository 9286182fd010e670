package postgres

import (
	"database/sql"
	"time"
)

type teamInsertModel struct {
	PublicID string         `db:"public_id"`
	Name     string         `db:"name"`
	Color    sql.NullString `db:"color"`
}

type teamTableModel struct {
	ID        int64          `db:"id"`
	PublicID  string         `db:"public_id"`
	Name      string         `db:"name"`
	Color     sql.NullString `db:"color"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
	DeletedAt *time.Time     `db:"deleted_at"`
}

type seasonTeamInsertModel struct {
	SeasonID     string    `db:"season_public_id"`
	TeamID       string    `db:"team_public_id"`
	Status       string    `db:"status"`
	RegisteredAt time.Time `db:"registered_at"`
}

type seasonTeamRowModel struct {
	TeamID       string         `db:"team_public_id"`
	Name         string         `db:"name"`
	Color        sql.NullString `db:"color"`
	Status       string         `db:"status"`
	RegisteredAt time.Time      `db:"registered_at"`
}
