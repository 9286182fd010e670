package memory

import (
	"context"
	"strings"
	"sync"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/matchday/internal/domain/team"
)

type TeamRepository struct {
	mu       sync.RWMutex
	teams    map[string]team.Team
	bySeason map[string][]team.Registration
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	byID := make(map[string]team.Team, len(teams))
	for _, item := range teams {
		byID[item.ID] = item
	}

	return &TeamRepository{
		teams:    byID,
		bySeason: make(map[string][]team.Registration),
	}
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.teams[item.ID]; exists {
		return crerr.Newf("team %s already exists", item.ID)
	}
	r.teams[item.ID] = item
	return nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teams[strings.TrimSpace(teamID)]
	return item, ok, nil
}

func (r *TeamRepository) Register(_ context.Context, reg team.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.teams[reg.TeamID]; !ok {
		return crerr.Newf("team %s does not exist", reg.TeamID)
	}

	rows := r.bySeason[reg.SeasonID]
	for _, existing := range rows {
		if existing.TeamID == reg.TeamID {
			return team.ErrAlreadyRegistered
		}
	}
	reg.Status = team.NormalizeStatus(reg.Status)
	r.bySeason[reg.SeasonID] = append(rows, reg)
	return nil
}

// ListBySeason returns registrations in insertion order.
func (r *TeamRepository) ListBySeason(_ context.Context, seasonID string) ([]team.SeasonTeam, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.bySeason[seasonID]
	out := make([]team.SeasonTeam, 0, len(rows))
	for _, reg := range rows {
		out = append(out, team.SeasonTeam{
			Team:         r.teams[reg.TeamID],
			Status:       reg.Status,
			RegisteredAt: reg.RegisteredAt,
		})
	}
	return out, nil
}
