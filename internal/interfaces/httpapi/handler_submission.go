package httpapi

import (
	"net/http"

	"github.com/riskibarqy/pickem-league/internal/domain/pickem"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

func (h *Handler) SubmitPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "SubmitPicks")
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

	var req submitPicksRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	picks := make([]pickem.Pick, 0, len(req.Picks))
	for _, p := range req.Picks {
		picks = append(picks, pickem.Pick{GameID: p.GameID, Team: p.Team, Confidence: p.Confidence})
	}

	leagueID := r.PathValue("leagueID")
	submission, err := h.submissionService.Submit(ctx, usecase.SubmitInput{
		UserID:         principal.UserID,
		LeagueID:       leagueID,
		Week:           week,
		Picks:          picks,
		TieBreakGameID: req.TieBreakGameID,
		PredictedTotal: req.PredictedTotal,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit picks failed", "user_id", principal.UserID, "league_id", leagueID, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, submissionToDTO(submission))
}

func (h *Handler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetSubmission")
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
	submission, err := h.submissionService.GetSubmission(ctx, principal.UserID, leagueID, week)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, submissionToDTO(submission))
}

func (h *Handler) ReconcileSubmission(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ReconcileSubmission")
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
	result, err := h.submissionService.ReconcileSubmission(ctx, principal.UserID, leagueID, week)
	if err != nil {
		h.logger.WarnContext(ctx, "reconcile submission failed", "user_id", principal.UserID, "league_id", leagueID, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, reconcileResultDTO{
		Submission: submissionToDTO(result.Submission),
		Changed:    result.Changed,
		Degraded:   result.Degraded,
	})
}
