package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/matchday/internal/domain/team"
)

// Fixture is one placed meeting. Matchday is the 1-based index of Date within
// the window's candidate dates, so unused dates still advance it.
type Fixture struct {
	Matchday  int
	Round     int
	Date      time.Time
	KickoffAt time.Time
	VenueSlot int
	Venue     int
	Sitting   int
	Home      team.Team
	Away      team.Team
}

// GenerateFixtures returns the complete double round robin or an error. It
// never returns a partial schedule.
func GenerateFixtures(teams []team.Team, cfg Config, window Window) ([]Fixture, error) {
	if err := mergeConfigErrors(cfg.Validate(), window.Validate()); err != nil {
		return nil, err
	}
	if err := validateTeams(teams); err != nil {
		return nil, err
	}

	dates := window.MatchdayDates(cfg.MatchDay)
	pending := flattenPairings(DoubleRoundRobin(teams))
	required := RequiredMatchdays(len(teams), cfg)
	if len(dates) < required {
		return nil, infeasible(&InfeasibleError{
			Unplaced:           len(pending),
			RequiredMatchdays:  required,
			AvailableMatchdays: len(dates),
			LastDate:           lastDate(dates),
		})
	}

	capacity := cfg.CapacityPerMatchday()
	slotLength := cfg.SlotLength()
	lastPlayed := make(map[string]int, len(teams))
	fixtures := make([]Fixture, 0, len(pending))

	for idx, date := range dates {
		if len(pending) == 0 {
			break
		}

		placed := 0
		remaining := make([]Pairing, 0, len(pending))
		for _, p := range pending {
			if placed < capacity && rested(lastPlayed, p.Home.ID, idx, cfg.RestWeeksBetweenMatches) &&
				rested(lastPlayed, p.Away.ID, idx, cfg.RestWeeksBetweenMatches) {
				sitting := placed / cfg.VenuesAvailable
				fixtures = append(fixtures, Fixture{
					Matchday:  idx + 1,
					Round:     p.Round,
					Date:      date,
					KickoffAt: cfg.StartTime.On(date).Add(time.Duration(sitting) * slotLength),
					VenueSlot: placed,
					Venue:     placed%cfg.VenuesAvailable + 1,
					Sitting:   sitting,
					Home:      p.Home,
					Away:      p.Away,
				})
				lastPlayed[p.Home.ID] = idx
				lastPlayed[p.Away.ID] = idx
				placed++
				continue
			}
			remaining = append(remaining, p)
		}
		pending = remaining
	}

	if len(pending) > 0 {
		return nil, infeasible(&InfeasibleError{
			Unplaced:           len(pending),
			Placed:             len(fixtures),
			RequiredMatchdays:  required,
			AvailableMatchdays: len(dates),
			LastDate:           lastDate(dates),
		})
	}

	return fixtures, nil
}

// ExpectedFixtureCount is N x (N-1), the size of a double round robin.
func ExpectedFixtureCount(teamCount int) int {
	if teamCount < 2 {
		return 0
	}
	return teamCount * (teamCount - 1)
}

// RequiredMatchdays is a lower bound on the candidate dates a schedule needs.
// Fewer dates than this can never succeed.
func RequiredMatchdays(teamCount int, cfg Config) int {
	if teamCount < 2 {
		return 0
	}

	padded := teamCount + teamCount%2
	required := 2 * (padded - 1)

	perMatchday := min(cfg.CapacityPerMatchday(), teamCount/2)
	if perMatchday > 0 {
		total := ExpectedFixtureCount(teamCount)
		required = max(required, (total+perMatchday-1)/perMatchday)
	}

	gamesPerTeam := 2 * (teamCount - 1)
	rest := max(cfg.RestWeeksBetweenMatches, 0)
	required = max(required, (gamesPerTeam-1)*(rest+1)+1)

	return required
}

// Summary describes a generated schedule.
type Summary struct {
	Fixtures  int
	Matchdays int
	FirstDate time.Time
	LastDate  time.Time
}

func Summarize(fixtures []Fixture) Summary {
	if len(fixtures) == 0 {
		return Summary{}
	}
	matchdays := make(map[int]struct{})
	for _, f := range fixtures {
		matchdays[f.Matchday] = struct{}{}
	}
	return Summary{
		Fixtures:  len(fixtures),
		Matchdays: len(matchdays),
		FirstDate: fixtures[0].Date,
		LastDate:  fixtures[len(fixtures)-1].Date,
	}
}

func validateTeams(teams []team.Team) error {
	if len(teams) < 2 {
		return fmt.Errorf("%w: got %d", ErrDegenerateInput, len(teams))
	}
	seen := make(map[string]struct{}, len(teams))
	for _, t := range teams {
		id := strings.TrimSpace(t.ID)
		if id == "" {
			return fmt.Errorf("%w: team id is required", ErrDegenerateInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate team %s", ErrDegenerateInput, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func flattenPairings(rounds []Round) []Pairing {
	var out []Pairing
	for _, r := range rounds {
		out = append(out, r.Pairings...)
	}
	return out
}

func rested(lastPlayed map[string]int, teamID string, idx, rest int) bool {
	last, ok := lastPlayed[teamID]
	if !ok {
		return true
	}
	return idx-last > rest
}

func lastDate(dates []time.Time) time.Time {
	if len(dates) == 0 {
		return time.Time{}
	}
	return dates[len(dates)-1]
}
