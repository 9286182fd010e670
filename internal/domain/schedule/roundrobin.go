package schedule

import "github.com/riskibarqy/matchday/internal/domain/team"

// Pairing is one home/away meeting produced by the round robin, before it is
// placed on a date.
type Pairing struct {
	Round int
	Home  team.Team
	Away  team.Team
}

// Round groups the pairings of one circle-method rotation. Bye is set when the
// team count is odd.
type Round struct {
	Number   int
	Pairings []Pairing
	Bye      *team.Team
}

// DoubleRoundRobin builds the full home-and-away rotation. The second half
// repeats the first with home and away swapped, so round r+N'-1 mirrors round r.
func DoubleRoundRobin(teams []team.Team) []Round {
	first := singleRoundRobin(teams)
	if len(first) == 0 {
		return nil
	}

	rounds := make([]Round, 0, len(first)*2)
	rounds = append(rounds, first...)
	for _, round := range first {
		mirrored := Round{
			Number:   round.Number + len(first),
			Pairings: make([]Pairing, 0, len(round.Pairings)),
			Bye:      round.Bye,
		}
		for _, p := range round.Pairings {
			mirrored.Pairings = append(mirrored.Pairings, Pairing{
				Round: mirrored.Number,
				Home:  p.Away,
				Away:  p.Home,
			})
		}
		rounds = append(rounds, mirrored)
	}
	return rounds
}

func singleRoundRobin(teams []team.Team) []Round {
	if len(teams) < 2 {
		return nil
	}

	working := make([]*team.Team, 0, len(teams)+1)
	for i := range teams {
		working = append(working, &teams[i])
	}
	if len(working)%2 == 1 {
		working = append(working, nil)
	}

	roundCount := len(working) - 1
	half := len(working) / 2
	rounds := make([]Round, 0, roundCount)

	for r := 0; r < roundCount; r++ {
		round := Round{Number: r + 1}
		for i := 0; i < half; i++ {
			home := working[i]
			away := working[len(working)-1-i]
			if home == nil || away == nil {
				if home != nil {
					round.Bye = cloneTeam(home)
				} else if away != nil {
					round.Bye = cloneTeam(away)
				}
				continue
			}
			// The anchored team would otherwise always play at home.
			if i == 0 && r%2 == 1 {
				home, away = away, home
			}
			round.Pairings = append(round.Pairings, Pairing{
				Round: round.Number,
				Home:  *home,
				Away:  *away,
			})
		}
		rounds = append(rounds, round)
		rotate(working)
	}
	return rounds
}

// rotate keeps index 0 fixed and shifts the rest one position clockwise.
func rotate(slots []*team.Team) {
	if len(slots) <= 2 {
		return
	}
	last := slots[len(slots)-1]
	copy(slots[2:], slots[1:len(slots)-1])
	slots[1] = last
}

func cloneTeam(t *team.Team) *team.Team {
	c := *t
	return &c
}
