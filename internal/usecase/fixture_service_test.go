package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/riskibarqy/matchday/internal/domain/fixture"
	"github.com/riskibarqy/matchday/internal/domain/schedule"
	"github.com/riskibarqy/matchday/internal/domain/season"
	"github.com/riskibarqy/matchday/internal/domain/team"
)

type fixtureServiceHarness struct {
	seasons  *fakeSeasonRepository
	teams    *fakeTeamRepository
	fixtures *fakeFixtureRepository
	service  *FixtureService
}

func newFixtureServiceHarness(items ...season.Season) fixtureServiceHarness {
	h := fixtureServiceHarness{
		seasons:  newFakeSeasonRepository(items...),
		teams:    newFakeTeamRepository(),
		fixtures: newFakeFixtureRepository(),
	}
	h.service = NewFixtureService(h.seasons, h.teams, h.fixtures, &sequenceIDGenerator{prefix: "fx-"}, nil)
	return h
}

func TestFixtureService_PreviewFixtures_DoesNotPersist(t *testing.T) {
	t.Parallel()

	h := newFixtureServiceHarness(thursdaySeason("s1", 10))
	h.teams.enroll("s1", team.StatusConfirmed, "A", "B", "C", "D")

	plan, err := h.service.PreviewFixtures(context.Background(), "s1")
	if err != nil {
		t.Fatalf("PreviewFixtures error: %v", err)
	}
	if len(plan.Fixtures) != 12 || plan.Summary.Matchdays != 6 || plan.Teams != 4 {
		t.Fatalf("unexpected plan: fixtures=%d summary=%+v teams=%d", len(plan.Fixtures), plan.Summary, plan.Teams)
	}
	if plan.Message != "Preview: 12 fixtures across 6 matchdays" {
		t.Fatalf("unexpected message: %q", plan.Message)
	}
	if count, _ := h.fixtures.CountBySeason(context.Background(), "s1"); count != 0 {
		t.Fatalf("expected preview to store nothing, got %d fixtures", count)
	}
	if len(h.seasons.states) != 0 {
		t.Fatalf("expected preview to leave season state untouched, got %+v", h.seasons.states)
	}
}

func TestFixtureService_CommitMatchesPreview(t *testing.T) {
	t.Parallel()

	h := newFixtureServiceHarness(thursdaySeason("s1", 20))
	h.teams.enroll("s1", team.StatusRegistered, "A", "B", "C", "D", "E")

	plan, err := h.service.PreviewFixtures(context.Background(), "s1")
	if err != nil {
		t.Fatalf("PreviewFixtures error: %v", err)
	}
	committed, err := h.service.CommitFixtures(context.Background(), "s1")
	if err != nil {
		t.Fatalf("CommitFixtures error: %v", err)
	}
	if !reflect.DeepEqual(plan.Fixtures, committed.Plan.Fixtures) {
		t.Fatalf("expected commit to persist exactly the preview")
	}

	stored, err := h.fixtures.ListBySeason(context.Background(), "s1")
	if err != nil {
		t.Fatalf("ListBySeason error: %v", err)
	}
	if len(stored) != 20 {
		t.Fatalf("expected 20 stored fixtures, got %d", len(stored))
	}
	for i, item := range stored {
		want := plan.Fixtures[i]
		if item.HomeTeamID != want.Home.ID || item.AwayTeamID != want.Away.ID || item.Matchday != want.Matchday || item.VenueSlot != want.VenueSlot {
			t.Fatalf("stored fixture %d differs from preview: %+v vs %+v", i, item, want)
		}
		if item.Status != fixture.StatusScheduled || item.SeasonID != "s1" || item.ID == "" {
			t.Fatalf("unexpected stored fixture: %+v", item)
		}
	}

	got, _, _ := h.seasons.GetByID(context.Background(), "s1")
	if got.FixturesStatus != season.FixturesCompleted || got.TotalMatchesPlanned != 20 || got.FixturesGeneratedAt == nil {
		t.Fatalf("unexpected season state: %+v", got)
	}
	if len(h.seasons.states) != 2 || h.seasons.states[0].Status != season.FixturesGenerating {
		t.Fatalf("expected generating then completed, got %+v", h.seasons.states)
	}
}

func TestFixtureService_CommitFixtures_RefusesWhenFixturesExist(t *testing.T) {
	t.Parallel()

	h := newFixtureServiceHarness(thursdaySeason("s1", 10))
	h.teams.enroll("s1", team.StatusRegistered, "A", "B")

	if _, err := h.service.CommitFixtures(context.Background(), "s1"); err != nil {
		t.Fatalf("first commit error: %v", err)
	}
	_, err := h.service.CommitFixtures(context.Background(), "s1")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

// staleCountFixtureRepository reports no fixtures, like a read taken before a
// concurrent commit stored its batch.
type staleCountFixtureRepository struct {
	*fakeFixtureRepository
}

func (r staleCountFixtureRepository) CountBySeason(context.Context, string) (int, error) {
	return 0, nil
}

func TestFixtureService_CommitFixtures_LosingCommitKeepsWinnerState(t *testing.T) {
	t.Parallel()

	h := newFixtureServiceHarness(thursdaySeason("s1", 10))
	h.teams.enroll("s1", team.StatusRegistered, "A", "B", "C", "D")

	won, err := h.service.CommitFixtures(context.Background(), "s1")
	if err != nil {
		t.Fatalf("first commit error: %v", err)
	}

	loser := NewFixtureService(h.seasons, h.teams, staleCountFixtureRepository{h.fixtures}, &sequenceIDGenerator{prefix: "late-"}, nil)
	_, err = loser.CommitFixtures(context.Background(), "s1")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	got, _, _ := h.seasons.GetByID(context.Background(), "s1")
	if got.FixturesStatus != season.FixturesCompleted {
		t.Fatalf("expected status completed, got %q", got.FixturesStatus)
	}
	if got.TotalMatchesPlanned != len(won.Fixtures) || got.FixturesGeneratedAt == nil {
		t.Fatalf("winner state lost: planned=%d generatedAt=%v", got.TotalMatchesPlanned, got.FixturesGeneratedAt)
	}
	stored, _ := h.fixtures.ListBySeason(context.Background(), "s1")
	if len(stored) != len(won.Fixtures) || stored[0].ID != won.Fixtures[0].ID {
		t.Fatalf("stored fixtures changed: %d stored", len(stored))
	}
}

func TestFixtureService_CommitFixtures_InfeasibleMarksError(t *testing.T) {
	t.Parallel()

	h := newFixtureServiceHarness(thursdaySeason("s1", 5))
	h.teams.enroll("s1", team.StatusRegistered, "A", "B", "C", "D")

	_, err := h.service.CommitFixtures(context.Background(), "s1")
	if !errors.Is(err, schedule.ErrInfeasible) {
		t.Fatalf("expected ErrInfeasible, got %v", err)
	}
	if count, _ := h.fixtures.CountBySeason(context.Background(), "s1"); count != 0 {
		t.Fatalf("expected no stored fixtures, got %d", count)
	}
	if status := h.seasons.statusOf("s1"); status != season.FixturesError {
		t.Fatalf("expected error status, got %s", status)
	}
}

func TestFixtureService_PreviewFixtures_MissingConfigIsRejected(t *testing.T) {
	t.Parallel()

	item := thursdaySeason("s1", 10)
	item.Scheduling = schedule.Config{}
	h := newFixtureServiceHarness(item)
	h.teams.enroll("s1", team.StatusRegistered, "A", "B")

	_, err := h.service.PreviewFixtures(context.Background(), "s1")
	if !errors.Is(err, schedule.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestFixtureService_SkipsWithdrawnTeams(t *testing.T) {
	t.Parallel()

	h := newFixtureServiceHarness(thursdaySeason("s1", 10))
	h.teams.enroll("s1", team.StatusRegistered, "A", "B", "C")
	h.teams.enroll("s1", team.StatusWithdrawn, "D")

	plan, err := h.service.PreviewFixtures(context.Background(), "s1")
	if err != nil {
		t.Fatalf("PreviewFixtures error: %v", err)
	}
	if plan.Teams != 3 || len(plan.Fixtures) != 6 {
		t.Fatalf("expected 3 teams and 6 fixtures, got teams=%d fixtures=%d", plan.Teams, len(plan.Fixtures))
	}
	for _, f := range plan.Fixtures {
		if f.Home.ID == "team-D" || f.Away.ID == "team-D" {
			t.Fatalf("withdrawn team scheduled: %+v", f)
		}
	}
}

func TestFixtureService_DeleteFixtures_ResetsState(t *testing.T) {
	t.Parallel()

	h := newFixtureServiceHarness(thursdaySeason("s1", 10))
	h.teams.enroll("s1", team.StatusRegistered, "A", "B")
	if _, err := h.service.CommitFixtures(context.Background(), "s1"); err != nil {
		t.Fatalf("CommitFixtures error: %v", err)
	}

	deleted, err := h.service.DeleteFixtures(context.Background(), "s1")
	if err != nil {
		t.Fatalf("DeleteFixtures error: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deleted fixtures, got %d", deleted)
	}

	got, _, _ := h.seasons.GetByID(context.Background(), "s1")
	if got.FixturesStatus != season.FixturesPending || got.TotalMatchesPlanned != 0 || got.FixturesGeneratedAt != nil {
		t.Fatalf("expected reset season state, got %+v", got)
	}
	if _, err := h.service.CommitFixtures(context.Background(), "s1"); err != nil {
		t.Fatalf("expected regeneration after delete, got %v", err)
	}
}

func TestFixtureService_RecordResult(t *testing.T) {
	t.Parallel()

	h := newFixtureServiceHarness(thursdaySeason("s1", 10))
	h.teams.enroll("s1", team.StatusRegistered, "A", "B")
	committed, err := h.service.CommitFixtures(context.Background(), "s1")
	if err != nil {
		t.Fatalf("CommitFixtures error: %v", err)
	}
	target := committed.Fixtures[0]

	if _, err := h.service.RecordResult(context.Background(), RecordResultInput{SeasonID: "s1", FixtureID: target.ID, HomeScore: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := h.service.RecordResult(context.Background(), RecordResultInput{SeasonID: "s1", FixtureID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := h.service.RecordResult(context.Background(), RecordResultInput{SeasonID: "nope", FixtureID: target.ID}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for season, got %v", err)
	}

	got, err := h.service.RecordResult(context.Background(), RecordResultInput{SeasonID: "s1", FixtureID: target.ID, HomeScore: 2, AwayScore: 1})
	if err != nil {
		t.Fatalf("RecordResult error: %v", err)
	}
	if got.Status != fixture.StatusCompleted || *got.HomeScore != 2 || *got.AwayScore != 1 || got.CompletedAt == nil {
		t.Fatalf("unexpected fixture: %+v", got)
	}

	stored, _, _ := h.fixtures.GetByID(context.Background(), "s1", target.ID)
	if stored.Status != fixture.StatusCompleted {
		t.Fatalf("expected stored result, got %+v", stored)
	}
}
