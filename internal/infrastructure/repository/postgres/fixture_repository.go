package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/matchday/internal/domain/fixture"
	qb "github.com/riskibarqy/matchday/internal/platform/querybuilder"
)

// insertChunkSize keeps a multi-row insert below the postgres bind limit.
const insertChunkSize = 500

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) ListBySeason(ctx context.Context, seasonID string) ([]fixture.Fixture, error) {
	query, args, err := qb.Select("*").From("fixtures").
		Where(qb.Eq("season_public_id", seasonID)).
		OrderBy("matchday", "venue_slot", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixtures by season query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fixtures by season: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixtureFromRow(row))
	}
	return out, nil
}

func (r *FixtureRepository) CountBySeason(ctx context.Context, seasonID string) (int, error) {
	return countFixtures(ctx, r.db, seasonID)
}

func (r *FixtureRepository) GetByID(ctx context.Context, seasonID, fixtureID string) (fixture.Fixture, bool, error) {
	query, args, err := qb.Select("*").From("fixtures").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Eq("public_id", fixtureID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("build select fixture by id query: %w", err)
	}

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, fmt.Errorf("select fixture by id: %w", err)
	}
	return fixtureFromRow(row), true, nil
}

// CreateBatch locks the season row so concurrent commits for the same season
// serialize on it, then re-checks that the season still has no fixtures.
func (r *FixtureRepository) CreateBatch(ctx context.Context, seasonID string, items []fixture.Fixture) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for fixture batch insert: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	lockQuery, lockArgs, err := qb.Select("id").From("seasons").
		Where(
			qb.Eq("public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		ForUpdate().
		ToSQL()
	if err != nil {
		return fmt.Errorf("build lock season query: %w", err)
	}
	var seasonRowID int64
	if err := tx.GetContext(ctx, &seasonRowID, tx.Rebind(lockQuery), lockArgs...); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("lock season %s: not found", seasonID)
		}
		return fmt.Errorf("lock season: %w", err)
	}

	existing, err := countFixtures(ctx, tx, seasonID)
	if err != nil {
		return err
	}
	if existing > 0 {
		return fixture.ErrAlreadyExists
	}

	rows := make([]fixtureInsertModel, 0, len(items))
	for _, item := range items {
		if item.SeasonID != seasonID {
			return fmt.Errorf("fixture %s belongs to season %s, not %s", item.ID, item.SeasonID, seasonID)
		}
		rows = append(rows, fixtureInsertModel{
			PublicID:   item.ID,
			SeasonID:   item.SeasonID,
			Matchday:   item.Matchday,
			Round:      item.Round,
			MatchDate:  item.MatchDate,
			KickoffAt:  item.KickoffAt,
			VenueSlot:  item.VenueSlot,
			Venue:      item.Venue,
			HomeTeamID: item.HomeTeamID,
			AwayTeamID: item.AwayTeamID,
			Status:     fixture.NormalizeStatus(item.Status),
		})
	}

	for start := 0; start < len(rows); start += insertChunkSize {
		end := min(start+insertChunkSize, len(rows))
		query, args, err := qb.InsertModels("fixtures", rows[start:end], "")
		if err != nil {
			return fmt.Errorf("build insert fixtures query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			if isUniqueViolation(err) {
				return fixture.ErrAlreadyExists
			}
			return fmt.Errorf("insert fixtures: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit fixture batch insert: %w", err)
	}
	return nil
}

func (r *FixtureRepository) DeleteBySeason(ctx context.Context, seasonID string) (int, error) {
	query, args, err := qb.DeleteFrom("fixtures").
		Where(qb.Eq("season_public_id", seasonID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete fixtures by season query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete fixtures by season: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete fixtures rows affected: %w", err)
	}
	return int(affected), nil
}

func (r *FixtureRepository) RecordResult(ctx context.Context, seasonID, fixtureID string, score fixture.Score) error {
	query, args, err := qb.Update("fixtures").
		Set("home_score", score.HomeScore).
		Set("away_score", score.AwayScore).
		Set("completed_at", score.CompletedAt).
		Set("status", fixture.StatusCompleted).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Eq("public_id", fixtureID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update fixture result query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update fixture result: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update fixture result rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update fixture result: fixture %s not found in season %s", fixtureID, seasonID)
	}
	return nil
}

func countFixtures(ctx context.Context, q sqlx.QueryerContext, seasonID string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("fixtures").
		Where(qb.Eq("season_public_id", seasonID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count fixtures query: %w", err)
	}

	var count int
	if err := sqlx.GetContext(ctx, q, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count fixtures by season: %w", err)
	}
	return count, nil
}

func fixtureFromRow(row fixtureTableModel) fixture.Fixture {
	return fixture.Fixture{
		ID:          row.PublicID,
		SeasonID:    row.SeasonID,
		Matchday:    row.Matchday,
		Round:       row.Round,
		MatchDate:   row.MatchDate,
		KickoffAt:   row.KickoffAt,
		VenueSlot:   row.VenueSlot,
		Venue:       row.Venue,
		HomeTeamID:  row.HomeTeamID,
		AwayTeamID:  row.AwayTeamID,
		HomeScore:   nullInt64Ptr(row.HomeScore),
		AwayScore:   nullInt64Ptr(row.AwayScore),
		Status:      row.Status,
		CompletedAt: nullTimePtr(row.CompletedAt),
	}
}
