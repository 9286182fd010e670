package team

import (
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
)

const (
	StatusRegistered = "registered"
	StatusConfirmed  = "confirmed"
	StatusWithdrawn  = "withdrawn"
)

var ErrAlreadyRegistered = crerr.New("team is already registered for this season")

// Team is a club that can be entered into seasons.
type Team struct {
	ID    string
	Name  string
	Color string
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return crerr.New("team id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return crerr.New("team name is required")
	}

	return nil
}

// Registration links a team to a season.
type Registration struct {
	SeasonID     string
	TeamID       string
	Status       string
	RegisteredAt time.Time
}

// SeasonTeam is a registration joined with its team.
type SeasonTeam struct {
	Team         Team
	Status       string
	RegisteredAt time.Time
}

func NormalizeStatus(value string) string {
	status := strings.ToLower(strings.TrimSpace(value))
	if status == "" {
		return StatusRegistered
	}
	return status
}

func IsValidStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusRegistered, StatusConfirmed, StatusWithdrawn:
		return true
	default:
		return false
	}
}

// IsActive reports whether the registration takes part in scheduling and standings.
func IsActive(status string) bool {
	switch NormalizeStatus(status) {
	case StatusRegistered, StatusConfirmed:
		return true
	default:
		return false
	}
}
