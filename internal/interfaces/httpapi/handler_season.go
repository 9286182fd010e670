package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/matchday/internal/usecase"
)

func (h *Handler) CreateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSeason")
	defer span.End()

	leagueID := r.PathValue("leagueID")

	var req createSeasonRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input, err := req.toInput(leagueID)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %w", usecase.ErrInvalidInput, err))
		return
	}

	item, err := h.seasonService.CreateSeason(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "create season failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, seasonToDTO(item))
}

func (h *Handler) GetSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeason")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	item, err := h.seasonService.GetSeason(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get season failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(item))
}

func (h *Handler) ListLeagueSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueSeasons")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	items, err := h.seasonService.ListLeagueSeasons(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list league seasons failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]seasonDTO, 0, len(items))
	for _, item := range items {
		out = append(out, seasonToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetSchedulingConfig(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSchedulingConfig")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	view, err := h.seasonService.GetSchedulingConfig(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get scheduling config failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, schedulingViewToDTO(view))
}

func (h *Handler) UpdateSchedulingConfig(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateSchedulingConfig")
	defer span.End()

	seasonID := r.PathValue("seasonID")

	var req schedulingConfigRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	cfg, err := parseSchedulingConfig(req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.seasonService.UpdateSchedulingConfig(ctx, seasonID, cfg)
	if err != nil {
		h.logger.WarnContext(ctx, "update scheduling config failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(item))
}
