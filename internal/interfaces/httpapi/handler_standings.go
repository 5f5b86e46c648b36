package httpapi

import "net/http"

func (h *Handler) WeeklyLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "WeeklyLeaderboard")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	week, err := pathWeek(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := r.PathValue("leagueID")
	board, err := h.standingsService.WeeklyLeaderboard(ctx, principal.UserID, leagueID, week)
	if err != nil {
		h.logger.WarnContext(ctx, "weekly leaderboard failed", "league_id", leagueID, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]weeklyEntryDTO, 0, len(board))
	for _, row := range board {
		items = append(items, weeklyEntryToDTO(row))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ReconcileWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ReconcileWeek")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	week, err := pathWeek(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := r.PathValue("leagueID")
	result, err := h.standingsService.ReconcileWeek(ctx, principal.UserID, leagueID, week)
	if err != nil {
		h.logger.WarnContext(ctx, "reconcile week failed", "league_id", leagueID, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekReconcileToDTO(result))
}

func (h *Handler) SeasonLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "SeasonLeaderboard")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := r.PathValue("leagueID")
	board, err := h.standingsService.SeasonLeaderboard(ctx, principal.UserID, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "season leaderboard failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]seasonEntryDTO, 0, len(board))
	for _, row := range board {
		items = append(items, seasonEntryToDTO(row.Rank, row.Entry))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) MySeasonStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "MySeasonStats")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := r.PathValue("leagueID")
	record, err := h.standingsService.UserSeasonStats(ctx, principal.UserID, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "season stats failed", "league_id", leagueID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonRecordToDTO(record))
}

func (h *Handler) SeasonWinners(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "SeasonWinners")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := r.PathValue("leagueID")
	winners, err := h.standingsService.Winners(ctx, principal.UserID, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "season winners failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]seasonEntryDTO, 0, len(winners))
	for _, entry := range winners {
		items = append(items, seasonEntryToDTO(1, entry))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
