package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/matchday/internal/platform/logging"
	"github.com/stretchr/testify/require"
)

const testPlan = `
season:
  name: Winter league
  start_date: 2026-01-01
  end_date: 2026-03-05
scheduling:
  match_day: thursday
  start_time: "19:00"
  end_time: "21:00"
  venues_available: 2
  slots_per_venue: 1
teams:
  - {id: a, name: Ants}
  - {id: b, name: Bees}
  - {id: c, name: Crabs}
  - {id: d, name: Ducks}
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(logging.NewNop(), &out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestScheduleCommand_Table(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "schedule", "--file", writeFile(t, "plan.yaml", testPlan))
	require.NoError(t, err)
	require.Contains(t, out, "MATCHDAY")
	require.Contains(t, out, "Winter league: 12 fixtures across 6 matchdays (2026-01-01 to 2026-02-05)")
}

func TestScheduleCommand_JSON(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "schedule", "-f", writeFile(t, "plan.yaml", testPlan), "--format", "json")
	require.NoError(t, err)

	var doc scheduleJSON
	require.NoError(t, sonic.UnmarshalString(out, &doc))
	require.Equal(t, 12, doc.Fixtures)
	require.Len(t, doc.Items, 12)
	require.Equal(t, "2026-01-01", doc.Items[0].Date)
}

func TestScheduleCommand_InfeasibleShowsHint(t *testing.T) {
	t.Parallel()

	plan := strings.Replace(testPlan, "end_date: 2026-03-05", "end_date: 2026-01-29", 1)
	_, err := execute(t, "schedule", "--file", writeFile(t, "plan.yaml", plan))
	require.Error(t, err)
	require.Contains(t, err.Error(), "hint:")
}

func TestScheduleCommand_ListsEveryViolation(t *testing.T) {
	t.Parallel()

	plan := strings.Replace(testPlan, "venues_available: 2", "venues_available: 0", 1)
	plan = strings.Replace(plan, "match_day: thursday", "match_day: someday", 1)
	_, err := execute(t, "schedule", "--file", writeFile(t, "plan.yaml", plan))
	require.Error(t, err)
	require.Contains(t, err.Error(), "- MatchDay:")
	require.Contains(t, err.Error(), "- VenuesAvailable:")
}

func TestScheduleCommand_RejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "schedule", "--file", "plan.yaml", "--format", "xml")
	require.Error(t, err)
}

func TestStandingsCommand(t *testing.T) {
	t.Parallel()

	results := `
teams:
  - {id: a, name: Ants}
  - {id: b, name: Bees}
  - {id: c, name: Crabs}
results:
  - {home: a, away: b, home_score: 1, away_score: 0, played_at: "2026-01-01"}
  - {home: b, away: c, home_score: 3, away_score: 0, played_at: "2026-01-08"}
`
	out, err := execute(t, "standings", "--file", writeFile(t, "results.yaml", results))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	require.Contains(t, lines[1], "Bees")
	require.Contains(t, lines[1], "+2")
	require.Contains(t, out, "3 teams, 2 matches, 4 goals")
}
