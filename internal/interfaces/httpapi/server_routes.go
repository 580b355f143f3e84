package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/scheduled", handler.ListScheduledMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("POST /v1/matches", handler.CreateMatch)
	mux.HandleFunc("PUT /v1/matches/{matchID}", handler.UpdateMatch)
	mux.HandleFunc("DELETE /v1/matches/{matchID}", handler.DeleteMatch)
}

func registerStandingRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/seasons", handler.ListSeasons)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/standings", handler.GetSeasonStandings)
	mux.HandleFunc("POST /v1/seasons/{seasonID}/standings/recalculate", handler.RecalculateSeasonStandings)
	mux.HandleFunc("POST /v1/seasons/{seasonID}/standings/refresh", handler.RefreshSeasonStandings)
	// Full recompute of every season, one transaction each.
	mux.HandleFunc("POST /v1/standings/recalculate", handler.RecalculateAllStandings)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/teams/{teamID}/form", handler.GetSeasonTeamForm)
}

func registerTeamRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}/form", handler.GetTeamForm)
	mux.HandleFunc("GET /v1/teams/{teamID}/head-to-head/{opponentID}", handler.GetHeadToHead)
}
