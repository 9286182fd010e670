package fixture

import (
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/matchday/internal/domain/schedule"
	"github.com/riskibarqy/matchday/internal/domain/standings"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

var ErrAlreadyExists = crerr.New("fixtures already exist for season")

// Fixture represents one persisted match of a season.
type Fixture struct {
	ID          string
	SeasonID    string
	Matchday    int
	Round       int
	MatchDate   time.Time
	KickoffAt   time.Time
	VenueSlot   int
	Venue       int
	HomeTeamID  string
	AwayTeamID  string
	HomeScore   *int
	AwayScore   *int
	Status      string
	CompletedAt *time.Time
}

// FromScheduled converts scheduler output into a record ready to be stored.
func FromScheduled(id, seasonID string, item schedule.Fixture) Fixture {
	return Fixture{
		ID:         id,
		SeasonID:   seasonID,
		Matchday:   item.Matchday,
		Round:      item.Round,
		MatchDate:  item.Date,
		KickoffAt:  item.KickoffAt,
		VenueSlot:  item.VenueSlot,
		Venue:      item.Venue,
		HomeTeamID: item.Home.ID,
		AwayTeamID: item.Away.ID,
		Status:     StatusScheduled,
	}
}

// Result returns the standings input for this fixture. Fixtures that are not
// completed carry no score.
func (f Fixture) Result() standings.Result {
	out := standings.Result{
		FixtureID:  f.ID,
		HomeTeamID: f.HomeTeamID,
		AwayTeamID: f.AwayTeamID,
		PlayedAt:   f.KickoffAt,
	}
	if IsCompletedStatus(f.Status) {
		out.HomeScore = f.HomeScore
		out.AwayScore = f.AwayScore
	}
	return out
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsCompletedStatus(status string) bool {
	return NormalizeStatus(status) == StatusCompleted
}

func IsCancelledStatus(status string) bool {
	return NormalizeStatus(status) == StatusCancelled
}
