package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/matchday/internal/domain/team"
	qb "github.com/riskibarqy/matchday/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	query, args, err := qb.InsertModel("teams", teamInsertModel{
		PublicID: item.ID,
		Name:     item.Name,
		Color:    nullString(item.Color),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.Eq("public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team by id: %w", err)
	}

	return team.Team{
		ID:    row.PublicID,
		Name:  row.Name,
		Color: row.Color.String,
	}, true, nil
}

func (r *TeamRepository) Register(ctx context.Context, reg team.Registration) error {
	query, args, err := qb.InsertModel("season_teams", seasonTeamInsertModel{
		SeasonID:     reg.SeasonID,
		TeamID:       reg.TeamID,
		Status:       team.NormalizeStatus(reg.Status),
		RegisteredAt: reg.RegisteredAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert season team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return team.ErrAlreadyRegistered
		}
		return fmt.Errorf("insert season team: %w", err)
	}
	return nil
}

func (r *TeamRepository) ListBySeason(ctx context.Context, seasonID string) ([]team.SeasonTeam, error) {
	query, args, err := qb.Select(
		"st.team_public_id",
		"t.name",
		"t.color",
		"st.status",
		"st.registered_at",
	).From("season_teams st JOIN teams t ON t.public_id = st.team_public_id").
		Where(
			qb.Eq("st.season_public_id", seasonID),
			qb.IsNull("t.deleted_at"),
		).
		OrderBy("st.registered_at", "st.team_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select season teams query: %w", err)
	}

	var rows []seasonTeamRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select season teams: %w", err)
	}

	out := make([]team.SeasonTeam, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.SeasonTeam{
			Team: team.Team{
				ID:    row.TeamID,
				Name:  row.Name,
				Color: row.Color.String,
			},
			Status:       row.Status,
			RegisteredAt: row.RegisteredAt,
		})
	}
	return out, nil
}
