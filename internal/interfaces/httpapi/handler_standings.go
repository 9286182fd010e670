package httpapi

import "net/http"

func (h *Handler) GetSeasonStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonStandings")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	table, err := h.standingsService.SeasonStandings(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get season standings failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tableToDTO(table))
}

func (h *Handler) ListLeagueStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueStandings")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	tables, err := h.standingsService.LeagueStandings(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list league standings failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]standingsTableDTO, 0, len(tables))
	for _, table := range tables {
		out = append(out, tableToDTO(table))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
