package httpapi

import (
	"errors"
	"net/http"

	"github.com/riskibarqy/matchday/internal/domain/schedule"
	"github.com/riskibarqy/matchday/internal/usecase"
)

func (h *Handler) PreviewFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PreviewFixtures")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	plan, err := h.fixtureService.PreviewFixtures(ctx, seasonID)
	if err != nil {
		h.logSchedulingFailure(r, "preview fixtures failed", seasonID, err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, planToDTO(plan))
}

func (h *Handler) CommitFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CommitFixtures")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	result, err := h.fixtureService.CommitFixtures(ctx, seasonID)
	if err != nil {
		h.logSchedulingFailure(r, "commit fixtures failed", seasonID, err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, commitResultDTO{
		SeasonID: result.Plan.SeasonID,
		Message:  result.Plan.Message,
		Summary:  planSummaryToDTO(result.Plan.Summary),
		Fixtures: fixturesToDTO(result.Fixtures),
	})
}

func (h *Handler) DeleteFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteFixtures")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	deleted, err := h.fixtureService.DeleteFixtures(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "delete fixtures failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, deleteFixturesDTO{SeasonID: seasonID, Deleted: deleted})
}

func (h *Handler) ListFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixtures")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	items, err := h.fixtureService.ListFixtures(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list fixtures failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixturesToDTO(items))
}

func (h *Handler) RecordResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordResult")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	fixtureID := r.PathValue("fixtureID")

	var req recordResultRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.fixtureService.RecordResult(ctx, usecase.RecordResultInput{
		SeasonID:  seasonID,
		FixtureID: fixtureID,
		HomeScore: *req.HomeScore,
		AwayScore: *req.AwayScore,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record result failed", "season_id", seasonID, "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixtureToDTO(item))
}

// Infeasible plans are an expected outcome for a bad configuration and are
// logged at info.
func (h *Handler) logSchedulingFailure(r *http.Request, msg, seasonID string, err error) {
	if errors.Is(err, schedule.ErrInfeasible) {
		h.logger.InfoContext(r.Context(), msg, "season_id", seasonID, "error", err)
		return
	}
	h.logger.WarnContext(r.Context(), msg, "season_id", seasonID, "error", err)
}
