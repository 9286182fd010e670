package standings

import (
	stderrors "errors"
	"fmt"
	"sort"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/matchday/internal/domain/team"
)

var (
	ErrInvalidOptions = crerr.New("invalid standings options")
	ErrInvalidResult  = crerr.New("invalid match result")
)

var optionsValidator = validator.New(validator.WithRequiredStructEnabled())

func (o Options) Validate() error {
	if err := optionsValidator.Struct(o); err != nil {
		var fieldErrs validator.ValidationErrors
		if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%w: %s failed %s", ErrInvalidOptions, fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return nil
}

type tally struct {
	row           Row
	h2hPoints     map[string]int
	formCollected []Outcome
}

// Compute folds results into a ranked table. Results without both scores or
// naming a team outside teams are ignored.
func Compute(teams []team.Team, results []Result, opts Options) ([]Row, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	tallies := make(map[string]*tally, len(teams))
	order := make([]string, 0, len(teams))
	for _, t := range teams {
		if _, ok := tallies[t.ID]; ok {
			continue
		}
		tallies[t.ID] = &tally{
			row:       Row{Team: t},
			h2hPoints: make(map[string]int),
		}
		order = append(order, t.ID)
	}

	played := make([]Result, 0, len(results))
	for _, r := range results {
		if !r.Played() {
			continue
		}
		if *r.HomeScore < 0 || *r.AwayScore < 0 {
			return nil, fmt.Errorf("%w: negative score for %s vs %s", ErrInvalidResult, r.HomeTeamID, r.AwayTeamID)
		}
		if r.HomeTeamID == r.AwayTeamID {
			continue
		}
		if _, ok := tallies[r.HomeTeamID]; !ok {
			continue
		}
		if _, ok := tallies[r.AwayTeamID]; !ok {
			continue
		}
		played = append(played, r)
	}
	sort.SliceStable(played, func(i, j int) bool {
		return played[i].PlayedAt.Before(played[j].PlayedAt)
	})

	for _, r := range played {
		home := tallies[r.HomeTeamID]
		away := tallies[r.AwayTeamID]
		homeOutcome, awayOutcome := outcomes(*r.HomeScore, *r.AwayScore)

		home.apply(r.AwayTeamID, *r.HomeScore, *r.AwayScore, homeOutcome, opts)
		away.apply(r.HomeTeamID, *r.AwayScore, *r.HomeScore, awayOutcome, opts)
	}

	rows := make([]*tally, 0, len(order))
	for _, id := range order {
		t := tallies[id]
		t.row.GoalDifference = t.row.GoalsFor - t.row.GoalsAgainst
		t.row.RecentForm = t.formCollected
		if t.row.RecentForm == nil {
			t.row.RecentForm = []Outcome{}
		}
		t.row.FormTrend = ClassifyTrend(t.row.RecentForm)
		rows = append(rows, t)
	}

	rank(rows, opts.TieBreakers)

	out := make([]Row, 0, len(rows))
	for i, t := range rows {
		t.row.Position = i + 1
		out = append(out, t.row)
	}
	return out, nil
}

func (t *tally) apply(opponentID string, scored, conceded int, outcome Outcome, opts Options) {
	points := opts.Points.For(outcome)

	t.row.Played++
	t.row.GoalsFor += scored
	t.row.GoalsAgainst += conceded
	t.row.Points += points
	switch outcome {
	case OutcomeWin:
		t.row.Won++
	case OutcomeDraw:
		t.row.Drawn++
	default:
		t.row.Lost++
	}

	t.h2hPoints[opponentID] += points

	t.formCollected = append([]Outcome{outcome}, t.formCollected...)
	if len(t.formCollected) > opts.FormWindow {
		t.formCollected = t.formCollected[:opts.FormWindow]
	}
}

func outcomes(homeScore, awayScore int) (Outcome, Outcome) {
	switch {
	case homeScore > awayScore:
		return OutcomeWin, OutcomeLoss
	case homeScore < awayScore:
		return OutcomeLoss, OutcomeWin
	default:
		return OutcomeDraw, OutcomeDraw
	}
}

type span struct {
	start int
	end   int
}

// rank orders by points, then each tie breaker inside the groups still tied,
// falling back to name.
func rank(rows []*tally, tieBreakers []TieBreaker) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].row.Team.Name != rows[j].row.Team.Name {
			return rows[i].row.Team.Name < rows[j].row.Team.Name
		}
		return rows[i].row.Team.ID < rows[j].row.Team.ID
	})

	groups := []span{{start: 0, end: len(rows)}}
	groups = refine(rows, groups, func(group []*tally) func(*tally) []int {
		return func(t *tally) []int { return []int{t.row.Points} }
	})

	for _, tb := range tieBreakers {
		groups = refine(rows, groups, keyFor(tb))
		if len(groups) == 0 {
			return
		}
	}
}

// refine sorts every tied span by key, descending, and replaces it with the
// sub-spans that remain tied. Spans of one are dropped.
func refine(rows []*tally, groups []span, keyer func(group []*tally) func(*tally) []int) []span {
	var next []span
	for _, g := range groups {
		group := rows[g.start:g.end]
		key := keyer(group)
		keys := make(map[string][]int, len(group))
		for _, t := range group {
			keys[t.row.Team.ID] = key(t)
		}

		sort.SliceStable(group, func(i, j int) bool {
			return compareKeys(keys[group[i].row.Team.ID], keys[group[j].row.Team.ID]) > 0
		})

		start := 0
		for start < len(group) {
			end := start + 1
			for end < len(group) && compareKeys(keys[group[start].row.Team.ID], keys[group[end].row.Team.ID]) == 0 {
				end++
			}
			if end-start > 1 {
				next = append(next, span{start: g.start + start, end: g.start + end})
			}
			start = end
		}
	}
	return next
}

func keyFor(tb TieBreaker) func(group []*tally) func(*tally) []int {
	switch tb {
	case TieBreakGoalDifference:
		return func([]*tally) func(*tally) []int {
			return func(t *tally) []int { return []int{t.row.GoalDifference} }
		}
	case TieBreakGoalsFor:
		return func([]*tally) func(*tally) []int {
			return func(t *tally) []int { return []int{t.row.GoalsFor} }
		}
	case TieBreakGoalsAgainst:
		return func([]*tally) func(*tally) []int {
			return func(t *tally) []int { return []int{-t.row.GoalsAgainst} }
		}
	case TieBreakHeadToHead:
		return headToHeadKey
	default:
		return func([]*tally) func(*tally) []int {
			return func(*tally) []int { return nil }
		}
	}
}

// headToHeadKey ranks a tied group by the points each member earned in the
// matches played between members of that group.
func headToHeadKey(group []*tally) func(*tally) []int {
	groupSet := make(map[string]struct{}, len(group))
	for _, t := range group {
		groupSet[t.row.Team.ID] = struct{}{}
	}
	return func(t *tally) []int {
		points := 0
		for opponentID, p := range t.h2hPoints {
			if _, ok := groupSet[opponentID]; ok {
				points += p
			}
		}
		return []int{points}
	}
}

func compareKeys(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		switch {
		case a[i] > b[i]:
			return 1
		case a[i] < b[i]:
			return -1
		}
	}
	return 0
}
