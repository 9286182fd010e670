package httpapi

import (
	"time"

	"github.com/riskibarqy/matchday/internal/domain/fixture"
	"github.com/riskibarqy/matchday/internal/domain/schedule"
	"github.com/riskibarqy/matchday/internal/domain/season"
	"github.com/riskibarqy/matchday/internal/domain/standings"
	"github.com/riskibarqy/matchday/internal/domain/team"
	"github.com/riskibarqy/matchday/internal/usecase"
)

type createTeamRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Color string `json:"color" validate:"omitempty,max=32"`
}

type registerTeamRequest struct {
	TeamID string `json:"team_id" validate:"required"`
	Status string `json:"status" validate:"omitempty,oneof=registered confirmed withdrawn"`
}

// schedulingConfigRequest carries raw values; the domain reports every
// invalid field at once, so nothing is validated here.
type schedulingConfigRequest struct {
	MatchDay                string `json:"match_day"`
	StartTime               string `json:"start_time"`
	EndTime                 string `json:"end_time"`
	VenuesAvailable         int    `json:"venues_available"`
	SlotsPerVenue           int    `json:"slots_per_venue"`
	RestWeeksBetweenMatches int    `json:"rest_weeks_between_matches"`
}

type pointSystemRequest struct {
	Win  int `json:"win" validate:"gte=0"`
	Draw int `json:"draw" validate:"gte=0"`
	Loss int `json:"loss" validate:"gte=0"`
}

type createSeasonRequest struct {
	Name        string                   `json:"name" validate:"required,max=100"`
	StartDate   string                   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string                   `json:"end_date" validate:"required,datetime=2006-01-02"`
	Scheduling  *schedulingConfigRequest `json:"scheduling"`
	Points      *pointSystemRequest      `json:"points"`
	TieBreakers []string                 `json:"tie_breakers" validate:"omitempty,dive,oneof=goal_difference goals_for goals_against head_to_head"`
	FormWindow  int                      `json:"form_window" validate:"gte=0"`
}

type recordResultRequest struct {
	HomeScore *int `json:"home_score" validate:"required,gte=0"`
	AwayScore *int `json:"away_score" validate:"required,gte=0"`
}

type teamDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type seasonTeamDTO struct {
	TeamID       string `json:"team_id"`
	Name         string `json:"name"`
	Color        string `json:"color,omitempty"`
	Status       string `json:"status"`
	Active       bool   `json:"active"`
	RegisteredAt string `json:"registered_at"`
}

type registrationDTO struct {
	SeasonID     string `json:"season_id"`
	TeamID       string `json:"team_id"`
	Status       string `json:"status"`
	RegisteredAt string `json:"registered_at"`
}

type schedulingConfigDTO struct {
	MatchDay                string `json:"match_day"`
	StartTime               string `json:"start_time"`
	EndTime                 string `json:"end_time"`
	VenuesAvailable         int    `json:"venues_available"`
	SlotsPerVenue           int    `json:"slots_per_venue"`
	RestWeeksBetweenMatches int    `json:"rest_weeks_between_matches"`
	CapacityPerMatchday     int    `json:"capacity_per_matchday"`
}

type schedulingViewDTO struct {
	SeasonID     string               `json:"season_id"`
	Configured   bool                 `json:"configured"`
	Locked       bool                 `json:"locked"`
	FixtureCount int                  `json:"fixture_count"`
	Config       *schedulingConfigDTO `json:"config,omitempty"`
}

type pointSystemDTO struct {
	Win  int `json:"win"`
	Draw int `json:"draw"`
	Loss int `json:"loss"`
}

type seasonDTO struct {
	ID                  string               `json:"id"`
	LeagueID            string               `json:"league_id"`
	Name                string               `json:"name"`
	StartDate           string               `json:"start_date"`
	EndDate             string               `json:"end_date"`
	Scheduling          *schedulingConfigDTO `json:"scheduling,omitempty"`
	Points              pointSystemDTO       `json:"points"`
	TieBreakers         []string             `json:"tie_breakers"`
	FormWindow          int                  `json:"form_window"`
	FixturesStatus      string               `json:"fixtures_status"`
	FixturesGeneratedAt string               `json:"fixtures_generated_at,omitempty"`
	TotalMatchesPlanned int                  `json:"total_matches_planned"`
	CreatedAt           string               `json:"created_at"`
}

type planSummaryDTO struct {
	Fixtures  int    `json:"fixtures"`
	Matchdays int    `json:"matchdays"`
	FirstDate string `json:"first_date,omitempty"`
	LastDate  string `json:"last_date,omitempty"`
}

type plannedFixtureDTO struct {
	Matchday     int    `json:"matchday"`
	Round        int    `json:"round"`
	Date         string `json:"date"`
	KickoffAt    string `json:"kickoff_at"`
	Venue        int    `json:"venue"`
	VenueSlot    int    `json:"venue_slot"`
	Sitting      int    `json:"sitting"`
	HomeTeamID   string `json:"home_team_id"`
	HomeTeamName string `json:"home_team_name"`
	AwayTeamID   string `json:"away_team_id"`
	AwayTeamName string `json:"away_team_name"`
}

type fixturePlanDTO struct {
	SeasonID string              `json:"season_id"`
	Teams    int                 `json:"teams"`
	Message  string              `json:"message"`
	Summary  planSummaryDTO      `json:"summary"`
	Fixtures []plannedFixtureDTO `json:"fixtures"`
}

type fixtureDTO struct {
	ID          string `json:"id"`
	SeasonID    string `json:"season_id"`
	Matchday    int    `json:"matchday"`
	Round       int    `json:"round"`
	MatchDate   string `json:"match_date"`
	KickoffAt   string `json:"kickoff_at"`
	Venue       int    `json:"venue"`
	VenueSlot   int    `json:"venue_slot"`
	HomeTeamID  string `json:"home_team_id"`
	AwayTeamID  string `json:"away_team_id"`
	HomeScore   *int   `json:"home_score,omitempty"`
	AwayScore   *int   `json:"away_score,omitempty"`
	Status      string `json:"status"`
	CompletedAt string `json:"completed_at,omitempty"`
}

type commitResultDTO struct {
	SeasonID string         `json:"season_id"`
	Message  string         `json:"message"`
	Summary  planSummaryDTO `json:"summary"`
	Fixtures []fixtureDTO   `json:"fixtures"`
}

type deleteFixturesDTO struct {
	SeasonID string `json:"season_id"`
	Deleted  int    `json:"deleted"`
}

type standingRowDTO struct {
	Position         int      `json:"position"`
	PreviousPosition int      `json:"previous_position,omitempty"`
	PositionChange   int      `json:"position_change"`
	TeamID           string   `json:"team_id"`
	TeamName         string   `json:"team_name"`
	TeamColor        string   `json:"team_color,omitempty"`
	Played           int      `json:"played"`
	Won              int      `json:"won"`
	Drawn            int      `json:"drawn"`
	Lost             int      `json:"lost"`
	GoalsFor         int      `json:"goals_for"`
	GoalsAgainst     int      `json:"goals_against"`
	GoalDifference   int      `json:"goal_difference"`
	Points           int      `json:"points"`
	RecentForm       []string `json:"recent_form"`
	FormTrend        string   `json:"form_trend"`
}

type standingsSummaryDTO struct {
	TotalTeams          int     `json:"total_teams"`
	TotalMatches        int     `json:"total_matches"`
	TotalGoals          int     `json:"total_goals"`
	AverageGoalsPerGame float64 `json:"average_goals_per_game"`
}

type standingsTableDTO struct {
	SeasonID   string              `json:"season_id"`
	SeasonName string              `json:"season_name"`
	Summary    standingsSummaryDTO `json:"summary"`
	Rows       []standingRowDTO    `json:"rows"`
}

func parseSchedulingConfig(req schedulingConfigRequest) (schedule.Config, error) {
	return schedule.ParseConfig(schedule.RawConfig{
		MatchDay:                req.MatchDay,
		StartTime:               req.StartTime,
		EndTime:                 req.EndTime,
		VenuesAvailable:         req.VenuesAvailable,
		SlotsPerVenue:           req.SlotsPerVenue,
		RestWeeksBetweenMatches: req.RestWeeksBetweenMatches,
	})
}

func (r createSeasonRequest) toInput(leagueID string) (usecase.CreateSeasonInput, error) {
	startDate, err := time.Parse(time.DateOnly, r.StartDate)
	if err != nil {
		return usecase.CreateSeasonInput{}, err
	}
	endDate, err := time.Parse(time.DateOnly, r.EndDate)
	if err != nil {
		return usecase.CreateSeasonInput{}, err
	}

	input := usecase.CreateSeasonInput{
		LeagueID:   leagueID,
		Name:       r.Name,
		StartDate:  startDate,
		EndDate:    endDate,
		FormWindow: r.FormWindow,
	}
	if r.Scheduling != nil {
		cfg, err := parseSchedulingConfig(*r.Scheduling)
		if err != nil {
			return usecase.CreateSeasonInput{}, err
		}
		input.Scheduling = &cfg
	}
	if r.Points != nil {
		input.Points = &standings.PointSystem{Win: r.Points.Win, Draw: r.Points.Draw, Loss: r.Points.Loss}
	}
	if r.TieBreakers != nil {
		input.TieBreakers = make([]standings.TieBreaker, 0, len(r.TieBreakers))
		for _, tb := range r.TieBreakers {
			input.TieBreakers = append(input.TieBreakers, standings.TieBreaker(tb))
		}
	}
	return input, nil
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{ID: v.ID, Name: v.Name, Color: v.Color}
}

func seasonTeamToDTO(v team.SeasonTeam) seasonTeamDTO {
	return seasonTeamDTO{
		TeamID:       v.Team.ID,
		Name:         v.Team.Name,
		Color:        v.Team.Color,
		Status:       v.Status,
		Active:       team.IsActive(v.Status),
		RegisteredAt: formatTime(v.RegisteredAt),
	}
}

func schedulingConfigToDTO(cfg schedule.Config) *schedulingConfigDTO {
	if cfg == (schedule.Config{}) {
		return nil
	}
	return &schedulingConfigDTO{
		MatchDay:                cfg.MatchDay.String(),
		StartTime:               cfg.StartTime.String(),
		EndTime:                 cfg.EndTime.String(),
		VenuesAvailable:         cfg.VenuesAvailable,
		SlotsPerVenue:           cfg.SlotsPerVenue,
		RestWeeksBetweenMatches: cfg.RestWeeksBetweenMatches,
		CapacityPerMatchday:     cfg.CapacityPerMatchday(),
	}
}

func schedulingViewToDTO(v usecase.SchedulingView) schedulingViewDTO {
	return schedulingViewDTO{
		SeasonID:     v.SeasonID,
		Configured:   v.Configured,
		Locked:       v.Locked,
		FixtureCount: v.FixtureCount,
		Config:       schedulingConfigToDTO(v.Config),
	}
}

func seasonToDTO(v season.Season) seasonDTO {
	tieBreakers := make([]string, 0, len(v.TieBreakers))
	for _, tb := range v.TieBreakers {
		tieBreakers = append(tieBreakers, string(tb))
	}
	out := seasonDTO{
		ID:                  v.ID,
		LeagueID:            v.LeagueID,
		Name:                v.Name,
		StartDate:           formatDate(v.Window.StartDate),
		EndDate:             formatDate(v.Window.EndDate),
		Scheduling:          schedulingConfigToDTO(v.Scheduling),
		Points:              pointSystemDTO{Win: v.Points.Win, Draw: v.Points.Draw, Loss: v.Points.Loss},
		TieBreakers:         tieBreakers,
		FormWindow:          v.FormWindow,
		FixturesStatus:      season.NormalizeFixturesStatus(v.FixturesStatus),
		TotalMatchesPlanned: v.TotalMatchesPlanned,
		CreatedAt:           formatTime(v.CreatedAt),
	}
	if v.FixturesGeneratedAt != nil {
		out.FixturesGeneratedAt = formatTime(*v.FixturesGeneratedAt)
	}
	return out
}

func planSummaryToDTO(v schedule.Summary) planSummaryDTO {
	return planSummaryDTO{
		Fixtures:  v.Fixtures,
		Matchdays: v.Matchdays,
		FirstDate: formatDate(v.FirstDate),
		LastDate:  formatDate(v.LastDate),
	}
}

func planToDTO(v usecase.FixturePlan) fixturePlanDTO {
	items := make([]plannedFixtureDTO, 0, len(v.Fixtures))
	for _, f := range v.Fixtures {
		items = append(items, plannedFixtureDTO{
			Matchday:     f.Matchday,
			Round:        f.Round,
			Date:         formatDate(f.Date),
			KickoffAt:    formatTime(f.KickoffAt),
			Venue:        f.Venue,
			VenueSlot:    f.VenueSlot,
			Sitting:      f.Sitting,
			HomeTeamID:   f.Home.ID,
			HomeTeamName: f.Home.Name,
			AwayTeamID:   f.Away.ID,
			AwayTeamName: f.Away.Name,
		})
	}
	return fixturePlanDTO{
		SeasonID: v.SeasonID,
		Teams:    v.Teams,
		Message:  v.Message,
		Summary:  planSummaryToDTO(v.Summary),
		Fixtures: items,
	}
}

func fixtureToDTO(v fixture.Fixture) fixtureDTO {
	out := fixtureDTO{
		ID:         v.ID,
		SeasonID:   v.SeasonID,
		Matchday:   v.Matchday,
		Round:      v.Round,
		MatchDate:  formatDate(v.MatchDate),
		KickoffAt:  formatTime(v.KickoffAt),
		Venue:      v.Venue,
		VenueSlot:  v.VenueSlot,
		HomeTeamID: v.HomeTeamID,
		AwayTeamID: v.AwayTeamID,
		HomeScore:  v.HomeScore,
		AwayScore:  v.AwayScore,
		Status:     fixture.NormalizeStatus(v.Status),
	}
	if v.CompletedAt != nil {
		out.CompletedAt = formatTime(*v.CompletedAt)
	}
	return out
}

func fixturesToDTO(items []fixture.Fixture) []fixtureDTO {
	out := make([]fixtureDTO, 0, len(items))
	for _, item := range items {
		out = append(out, fixtureToDTO(item))
	}
	return out
}

func tableToDTO(v usecase.Table) standingsTableDTO {
	rows := make([]standingRowDTO, 0, len(v.Rows))
	for _, row := range v.Rows {
		form := make([]string, 0, len(row.RecentForm))
		for _, outcome := range row.RecentForm {
			form = append(form, string(outcome))
		}
		rows = append(rows, standingRowDTO{
			Position:         row.Position,
			PreviousPosition: row.PreviousPosition,
			PositionChange:   row.PositionChange(),
			TeamID:           row.Team.ID,
			TeamName:         row.Team.Name,
			TeamColor:        row.Team.Color,
			Played:           row.Played,
			Won:              row.Won,
			Drawn:            row.Drawn,
			Lost:             row.Lost,
			GoalsFor:         row.GoalsFor,
			GoalsAgainst:     row.GoalsAgainst,
			GoalDifference:   row.GoalDifference,
			Points:           row.Points,
			RecentForm:       form,
			FormTrend:        string(row.FormTrend),
		})
	}
	return standingsTableDTO{
		SeasonID:   v.Season.ID,
		SeasonName: v.Season.Name,
		Summary: standingsSummaryDTO{
			TotalTeams:          v.Summary.TotalTeams,
			TotalMatches:        v.Summary.TotalMatches,
			TotalGoals:          v.Summary.TotalGoals,
			AverageGoalsPerGame: v.Summary.AverageGoalsPerGame,
		},
		Rows: rows,
	}
}

func formatDate(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.Format(time.DateOnly)
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
