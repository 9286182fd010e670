package httpapi

import (
	"net/http"

	"github.com/riskibarqy/matchday/internal/usecase"
)

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	var req createTeamRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.CreateTeam(ctx, usecase.CreateTeamInput{Name: req.Name, Color: req.Color})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(item))
}

func (h *Handler) RegisterTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegisterTeam")
	defer span.End()

	seasonID := r.PathValue("seasonID")

	var req registerTeamRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	reg, err := h.teamService.RegisterTeam(ctx, usecase.RegisterTeamInput{
		SeasonID: seasonID,
		TeamID:   req.TeamID,
		Status:   req.Status,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "register team failed", "season_id", seasonID, "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, registrationDTO{
		SeasonID:     reg.SeasonID,
		TeamID:       reg.TeamID,
		Status:       reg.Status,
		RegisteredAt: formatTime(reg.RegisteredAt),
	})
}

func (h *Handler) ListSeasonTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonTeams")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	items, err := h.teamService.ListSeasonTeams(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list season teams failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]seasonTeamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, seasonTeamToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
