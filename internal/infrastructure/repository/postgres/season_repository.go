package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/matchday/internal/domain/schedule"
	"github.com/riskibarqy/matchday/internal/domain/season"
	"github.com/riskibarqy/matchday/internal/domain/standings"
	qb "github.com/riskibarqy/matchday/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) Create(ctx context.Context, item season.Season) error {
	query, args, err := qb.InsertModel("seasons", seasonInsertModel{
		PublicID:            item.ID,
		LeagueID:            item.LeagueID,
		Name:                item.Name,
		StartDate:           item.Window.StartDate,
		EndDate:             item.Window.EndDate,
		MatchDay:            int(item.Scheduling.MatchDay),
		StartTime:           nullString(item.Scheduling.StartTime.String()),
		EndTime:             nullString(item.Scheduling.EndTime.String()),
		VenuesAvailable:     item.Scheduling.VenuesAvailable,
		SlotsPerVenue:       item.Scheduling.SlotsPerVenue,
		RestWeeks:           item.Scheduling.RestWeeksBetweenMatches,
		PointsWin:           item.Points.Win,
		PointsDraw:          item.Points.Draw,
		PointsLoss:          item.Points.Loss,
		TieBreakers:         joinTieBreakers(item.TieBreakers),
		FormWindow:          item.FormWindow,
		FixturesStatus:      season.NormalizeFixturesStatus(item.FixturesStatus),
		FixturesGeneratedAt: timePtrToNull(item.FixturesGeneratedAt),
		TotalMatchesPlanned: item.TotalMatchesPlanned,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert season query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert season: %w", err)
	}
	return nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(
			qb.Eq("public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build select season by id query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("select season by id: %w", err)
	}

	item, err := seasonFromRow(row)
	if err != nil {
		return season.Season{}, false, err
	}
	return item, true, nil
}

func (r *SeasonRepository) ListByLeague(ctx context.Context, leagueID string) ([]season.Season, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("start_date", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select seasons by league query: %w", err)
	}

	var rows []seasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select seasons by league: %w", err)
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		item, err := seasonFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *SeasonRepository) UpdateScheduling(ctx context.Context, seasonID string, cfg schedule.Config) error {
	query, args, err := qb.Update("seasons").
		Set("match_day", int(cfg.MatchDay)).
		Set("start_time", nullString(cfg.StartTime.String())).
		Set("end_time", nullString(cfg.EndTime.String())).
		Set("venues_available", cfg.VenuesAvailable).
		Set("slots_per_venue", cfg.SlotsPerVenue).
		Set("rest_weeks_between_matches", cfg.RestWeeksBetweenMatches).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update season scheduling query: %w", err)
	}

	return r.execOne(ctx, "update season scheduling", seasonID, query, args)
}

func (r *SeasonRepository) UpdateFixturesState(ctx context.Context, seasonID string, state season.FixturesState) error {
	query, args, err := qb.Update("seasons").
		Set("fixtures_status", season.NormalizeFixturesStatus(state.Status)).
		Set("fixtures_generated_at", timePtrToNull(state.GeneratedAt)).
		Set("total_matches_planned", state.TotalMatchesPlanned).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update season fixtures state query: %w", err)
	}

	return r.execOne(ctx, "update season fixtures state", seasonID, query, args)
}

func (r *SeasonRepository) BeginFixturesGeneration(ctx context.Context, seasonID string) (bool, error) {
	query, args, err := qb.Update("seasons").
		Set("fixtures_status", season.FixturesGenerating).
		Set("fixtures_generated_at", nil).
		Set("total_matches_planned", 0).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", seasonID),
			qb.IsNull("deleted_at"),
			qb.In("fixtures_status", season.FixturesPending, season.FixturesError),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build begin fixtures generation query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("begin fixtures generation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("begin fixtures generation rows affected: %w", err)
	}
	return affected == 1, nil
}

func (r *SeasonRepository) execOne(ctx context.Context, op, seasonID, query string, args []any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: season %s not found", op, seasonID)
	}
	return nil
}

func seasonFromRow(row seasonTableModel) (season.Season, error) {
	cfg := schedule.Config{
		MatchDay:                schedule.Weekday(row.MatchDay),
		VenuesAvailable:         row.VenuesAvailable,
		SlotsPerVenue:           row.SlotsPerVenue,
		RestWeeksBetweenMatches: row.RestWeeks,
	}
	if row.StartTime.Valid {
		if err := cfg.StartTime.UnmarshalText([]byte(row.StartTime.String)); err != nil {
			return season.Season{}, fmt.Errorf("decode season %s start time: %w", row.PublicID, err)
		}
	}
	if row.EndTime.Valid {
		if err := cfg.EndTime.UnmarshalText([]byte(row.EndTime.String)); err != nil {
			return season.Season{}, fmt.Errorf("decode season %s end time: %w", row.PublicID, err)
		}
	}

	return season.Season{
		ID:       row.PublicID,
		LeagueID: row.LeagueID,
		Name:     row.Name,
		Window: schedule.Window{
			StartDate: row.StartDate,
			EndDate:   row.EndDate,
		},
		Scheduling: cfg,
		Points: standings.PointSystem{
			Win:  row.PointsWin,
			Draw: row.PointsDraw,
			Loss: row.PointsLoss,
		},
		TieBreakers:         splitTieBreakers(row.TieBreakers),
		FormWindow:          row.FormWindow,
		FixturesStatus:      row.FixturesStatus,
		FixturesGeneratedAt: nullTimePtr(row.FixturesGeneratedAt),
		TotalMatchesPlanned: row.TotalMatchesPlanned,
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
	}, nil
}
