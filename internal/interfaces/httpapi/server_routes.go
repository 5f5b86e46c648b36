package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metricsHandler http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}
}

func registerGameRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/games", RequireAuth(verifier, http.HandlerFunc(handler.ListGames)))
}

func registerLeagueRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/leagues", RequireAuth(verifier, http.HandlerFunc(handler.CreateLeague)))
	mux.Handle("POST /v1/leagues/join", RequireAuth(verifier, http.HandlerFunc(handler.JoinLeague)))
	mux.Handle("GET /v1/leagues/me", RequireAuth(verifier, http.HandlerFunc(handler.ListMyLeagues)))
	mux.Handle("GET /v1/leagues/{leagueID}", RequireAuth(verifier, http.HandlerFunc(handler.GetLeague)))
}

func registerSubmissionRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/leagues/{leagueID}/weeks/{week}/submission", RequireAuth(verifier, http.HandlerFunc(handler.SubmitPicks)))
	mux.Handle("GET /v1/leagues/{leagueID}/weeks/{week}/submission", RequireAuth(verifier, http.HandlerFunc(handler.GetSubmission)))
	mux.Handle("POST /v1/leagues/{leagueID}/weeks/{week}/submission/reconcile", RequireAuth(verifier, http.HandlerFunc(handler.ReconcileSubmission)))
}

func registerStandingsRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/leagues/{leagueID}/weeks/{week}/leaderboard", RequireAuth(verifier, http.HandlerFunc(handler.WeeklyLeaderboard)))
	mux.Handle("POST /v1/leagues/{leagueID}/weeks/{week}/reconcile", RequireAuth(verifier, http.HandlerFunc(handler.ReconcileWeek)))
	mux.Handle("GET /v1/leagues/{leagueID}/season/leaderboard", RequireAuth(verifier, http.HandlerFunc(handler.SeasonLeaderboard)))
	mux.Handle("GET /v1/leagues/{leagueID}/season/me", RequireAuth(verifier, http.HandlerFunc(handler.MySeasonStats)))
	mux.Handle("GET /v1/leagues/{leagueID}/season/winners", RequireAuth(verifier, http.HandlerFunc(handler.SeasonWinners)))
}
