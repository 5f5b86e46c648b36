package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/pickem-league/internal/domain/game"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListGames")
	defer span.End()

	week, err := queryInt(r, "week", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if week < 1 {
		writeError(ctx, w, fmt.Errorf("%w: week query parameter is required", usecase.ErrInvalidInput))
		return
	}
	season, err := queryInt(r, "season", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	seasonType, err := queryInt(r, "season_type", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	games, err := h.gameService.ListWeek(ctx, game.Query{Week: week, Season: season, SeasonType: seasonType})
	if err != nil {
		h.logger.WarnContext(ctx, "list games failed", "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameDTO, 0, len(games))
	for _, g := range games {
		items = append(items, gameToDTO(g))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
