package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-nft/internal/observability"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metrics *observability.Metrics) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metrics == nil {
		return
	}

	mux.Handle("GET /metrics", metrics.Handler())
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /fantasy/team", handler.ListTeams)
	mux.HandleFunc("GET /fantasy/team/{id}", handler.GetTeam)
	mux.HandleFunc("GET /fantasy/athlete", handler.ListAthletes)
	mux.HandleFunc("GET /fantasy/athlete/{id}", handler.GetAthlete)
	mux.HandleFunc("GET /fantasy/game", handler.ListGames)
	mux.HandleFunc("GET /fantasy/game/{id}", handler.GetGame)
	mux.HandleFunc("GET /fantasy/game/{id}/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /fantasy/game/{id}/registered_teams", handler.ListRegisteredTeams)
	mux.HandleFunc("GET /fantasy/game_team/{id}", handler.GetGameTeam)
	mux.HandleFunc("POST /fantasy/game_team", handler.RegisterGameTeam)
	mux.HandleFunc("GET /account/assets/account/{wallet}/collection/{contract}", handler.ListAccountAssets)
	mux.HandleFunc("GET /athlete_tokens/{wallet}/collection/{contract}", handler.ListAthleteTokens)
}

// registerOperationRoutes wires ingestion and scoring triggers. All of them
// require the internal job token.
func registerOperationRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	guard := func(fn http.HandlerFunc) http.Handler {
		return RequireInternalJobToken(internalJobToken, fn)
	}

	mux.Handle("POST /fantasy/athlete/sync", guard(handler.SyncAthletes))
	mux.Handle("POST /fantasy/team/sync", guard(handler.SyncTeams))
	mux.Handle("POST /fantasy/athlete/stats/sync", guard(handler.SyncSeasonStats))
	mux.Handle("POST /fantasy/game/{id}/test_update_scores", guard(handler.TestUpdateScores))
	mux.Handle("POST /fantasy/game", guard(handler.CreateGame))
	mux.Handle("POST /internal/jobs/update-team-scores", guard(handler.RunUpdateTeamScoresJob))
}
