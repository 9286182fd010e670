package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues/{leagueID}/seasons", handler.ListLeagueSeasons)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/standings", handler.ListLeagueStandings)
	mux.HandleFunc("GET /v1/seasons/{seasonID}", handler.GetSeason)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/scheduling", handler.GetSchedulingConfig)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/teams", handler.ListSeasonTeams)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/fixtures", handler.ListFixtures)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/standings", handler.GetSeasonStandings)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string, limiter *RateLimiter) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAdminToken(adminToken, h)
	}
	// Scheduler routes are rate limited per client IP.
	generation := func(h http.HandlerFunc) http.Handler {
		return limiter.Wrap(RequireAdminToken(adminToken, h))
	}

	mux.Handle("POST /v1/teams", admin(handler.CreateTeam))
	mux.Handle("POST /v1/leagues/{leagueID}/seasons", admin(handler.CreateSeason))
	mux.Handle("PUT /v1/seasons/{seasonID}/scheduling", admin(handler.UpdateSchedulingConfig))
	mux.Handle("POST /v1/seasons/{seasonID}/teams", admin(handler.RegisterTeam))
	mux.Handle("POST /v1/seasons/{seasonID}/fixtures/preview", generation(handler.PreviewFixtures))
	mux.Handle("POST /v1/seasons/{seasonID}/fixtures", generation(handler.CommitFixtures))
	mux.Handle("DELETE /v1/seasons/{seasonID}/fixtures", admin(handler.DeleteFixtures))
	mux.Handle("PUT /v1/seasons/{seasonID}/fixtures/{fixtureID}/result", admin(handler.RecordResult))
}
