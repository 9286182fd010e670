package season

import (
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/matchday/internal/domain/schedule"
	"github.com/riskibarqy/matchday/internal/domain/standings"
)

const (
	FixturesPending    = "pending"
	FixturesGenerating = "generating"
	FixturesCompleted  = "completed"
	FixturesError      = "error"
)

// Season is one edition of a league with its own schedule and table settings.
type Season struct {
	ID                  string
	LeagueID            string
	Name                string
	Window              schedule.Window
	Scheduling          schedule.Config
	Points              standings.PointSystem
	TieBreakers         []standings.TieBreaker
	FormWindow          int
	FixturesStatus      string
	FixturesGeneratedAt *time.Time
	TotalMatchesPlanned int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (s Season) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return crerr.New("season id is required")
	}
	if strings.TrimSpace(s.LeagueID) == "" {
		return crerr.New("league id is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		return crerr.New("season name is required")
	}
	if err := s.Window.Validate(); err != nil {
		return err
	}
	if err := s.StandingsOptions().Validate(); err != nil {
		return err
	}
	if !IsValidFixturesStatus(s.FixturesStatus) {
		return crerr.Newf("invalid fixtures status %q", s.FixturesStatus)
	}

	return nil
}

func (s Season) StandingsOptions() standings.Options {
	return standings.Options{
		Points:      s.Points,
		TieBreakers: append([]standings.TieBreaker(nil), s.TieBreakers...),
		FormWindow:  s.FormWindow,
	}
}

// HasSchedulingConfig reports whether any scheduling field was supplied. It
// does not mean the config is valid.
func (s Season) HasSchedulingConfig() bool {
	return s.Scheduling != schedule.Config{}
}

func NormalizeFixturesStatus(value string) string {
	status := strings.ToLower(strings.TrimSpace(value))
	if status == "" {
		return FixturesPending
	}
	return status
}

func IsValidFixturesStatus(status string) bool {
	switch NormalizeFixturesStatus(status) {
	case FixturesPending, FixturesGenerating, FixturesCompleted, FixturesError:
		return true
	default:
		return false
	}
}

// CanBeginGeneration reports whether a commit may claim a season in status.
func CanBeginGeneration(status string) bool {
	switch NormalizeFixturesStatus(status) {
	case FixturesPending, FixturesError:
		return true
	default:
		return false
	}
}
