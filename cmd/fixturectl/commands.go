package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/matchday/internal/domain/schedule"
	"github.com/riskibarqy/matchday/internal/domain/standings"
	"github.com/riskibarqy/matchday/internal/interfaces/planfile"
	"github.com/riskibarqy/matchday/internal/platform/logging"
	"github.com/spf13/cobra"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

func newRootCmd(logger *logging.Logger, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "fixturectl",
		Short:         "Offline fixture scheduling and standings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.AddCommand(scheduleCmd(logger))
	root.AddCommand(standingsCmd(logger))
	return root
}

func scheduleCmd(logger *logging.Logger) *cobra.Command {
	var file, format string
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate a double round robin from a plan file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if format != formatTable && format != formatJSON {
				return fmt.Errorf("unsupported format %q: use %s or %s", format, formatTable, formatJSON)
			}

			plan, err := planfile.ReadPlanFile(file)
			if err != nil {
				return describe(err)
			}
			fixtures, err := schedule.GenerateFixtures(plan.Teams, plan.Config, plan.Window)
			if err != nil {
				return describe(err)
			}
			summary := schedule.Summarize(fixtures)
			logger.Debug("schedule generated", "file", file, "fixtures", summary.Fixtures, "matchdays", summary.Matchdays)

			if format == formatJSON {
				return writeScheduleJSON(cmd.OutOrStdout(), plan, fixtures, summary)
			}
			return writeScheduleTable(cmd.OutOrStdout(), plan, fixtures, summary)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "plan YAML file")
	cmd.Flags().StringVar(&format, "format", formatTable, "output format: table or json")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func standingsCmd(logger *logging.Logger) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Compute a standings table from a results file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := planfile.ReadResultsFile(file)
			if err != nil {
				return describe(err)
			}
			rows, err := standings.ComputeWithMovement(input.Teams, input.Results, input.Options)
			if err != nil {
				return describe(err)
			}
			logger.Debug("standings computed", "file", file, "teams", len(rows))
			return writeStandingsTable(cmd.OutOrStdout(), rows, standings.Summarize(rows))
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "results YAML file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// describe appends every violation and hint so the terminal shows the whole
// problem at once.
func describe(err error) error {
	var b strings.Builder
	b.WriteString(err.Error())

	var cfgErr *schedule.ConfigError
	if crerr.As(err, &cfgErr) {
		for _, v := range cfgErr.Violations {
			fmt.Fprintf(&b, "\n  - %s: %s", v.Field, v.Message)
		}
	}
	for _, hint := range crerr.GetAllHints(err) {
		fmt.Fprintf(&b, "\n  hint: %s", hint)
	}
	return crerr.WithSecondaryError(crerr.New(b.String()), err)
}

type scheduledFixtureJSON struct {
	Matchday  int    `json:"matchday"`
	Round     int    `json:"round"`
	Date      string `json:"date"`
	KickoffAt string `json:"kickoff_at"`
	Venue     int    `json:"venue"`
	VenueSlot int    `json:"venue_slot"`
	Home      string `json:"home"`
	Away      string `json:"away"`
}

type scheduleJSON struct {
	Season    string                 `json:"season,omitempty"`
	Fixtures  int                    `json:"fixtures"`
	Matchdays int                    `json:"matchdays"`
	FirstDate string                 `json:"first_date,omitempty"`
	LastDate  string                 `json:"last_date,omitempty"`
	Items     []scheduledFixtureJSON `json:"items"`
}

func writeScheduleJSON(w io.Writer, plan planfile.Plan, fixtures []schedule.Fixture, summary schedule.Summary) error {
	doc := scheduleJSON{
		Season:    plan.Name,
		Fixtures:  summary.Fixtures,
		Matchdays: summary.Matchdays,
		FirstDate: dateOnly(summary.FirstDate),
		LastDate:  dateOnly(summary.LastDate),
		Items:     make([]scheduledFixtureJSON, 0, len(fixtures)),
	}
	for _, f := range fixtures {
		doc.Items = append(doc.Items, scheduledFixtureJSON{
			Matchday:  f.Matchday,
			Round:     f.Round,
			Date:      dateOnly(f.Date),
			KickoffAt: f.KickoffAt.Format(time.RFC3339),
			Venue:     f.Venue,
			VenueSlot: f.VenueSlot,
			Home:      f.Home.ID,
			Away:      f.Away.ID,
		})
	}

	encoder := sonic.ConfigDefault.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

func writeScheduleTable(w io.Writer, plan planfile.Plan, fixtures []schedule.Fixture, summary schedule.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MATCHDAY\tDATE\tKICKOFF\tVENUE\tHOME\tAWAY")
	for _, f := range fixtures {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
			f.Matchday,
			dateOnly(f.Date),
			f.KickoffAt.Format("15:04"),
			f.Venue,
			teamLabel(f.Home.Name, f.Home.ID),
			teamLabel(f.Away.Name, f.Away.ID),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	name := plan.Name
	if name == "" {
		name = "schedule"
	}
	_, err := fmt.Fprintf(w, "\n%s: %d fixtures across %d matchdays (%s to %s)\n",
		name, summary.Fixtures, summary.Matchdays, dateOnly(summary.FirstDate), dateOnly(summary.LastDate))
	return err
}

func writeStandingsTable(w io.Writer, rows []standings.Row, summary standings.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "POS\tMOVE\tTEAM\tP\tW\tD\tL\tGF\tGA\tGD\tPTS\tFORM\t")
	for _, row := range rows {
		form := make([]string, 0, len(row.RecentForm))
		for _, o := range row.RecentForm {
			form = append(form, string(o))
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%+d\t%d\t%s\t\n",
			row.Position,
			movement(row),
			teamLabel(row.Team.Name, row.Team.ID),
			row.Played, row.Won, row.Drawn, row.Lost,
			row.GoalsFor, row.GoalsAgainst, row.GoalDifference,
			row.Points,
			strings.Join(form, ""),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d teams, %d matches, %d goals (%.2f per game)\n",
		summary.TotalTeams, summary.TotalMatches, summary.TotalGoals, summary.AverageGoalsPerGame)
	return err
}

func movement(row standings.Row) string {
	switch change := row.PositionChange(); {
	case row.PreviousPosition == 0:
		return "-"
	case change > 0:
		return fmt.Sprintf("+%d", change)
	case change < 0:
		return fmt.Sprintf("%d", change)
	default:
		return "="
	}
}

func teamLabel(name, id string) string {
	if name != "" {
		return name
	}
	return id
}

func dateOnly(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.Format(time.DateOnly)
}
