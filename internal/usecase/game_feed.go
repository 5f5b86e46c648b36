package usecase

import (
	"context"
	"errors"

	"github.com/riskibarqy/pickem-league/internal/domain/game"
	"github.com/riskibarqy/pickem-league/internal/metrics"
)

// GameFeed lists the games of one week in feed order.
type GameFeed interface {
	ListGames(ctx context.Context, query game.Query) ([]game.Game, error)
}

// loadGames never fails on feed errors. It returns an empty list and ok=false
// so scoring falls back to undecided picks. Invalid input still surfaces.
func (o serviceOptions) loadGames(ctx context.Context, feed GameFeed, query game.Query) ([]game.Game, bool, error) {
	if feed == nil {
		o.metrics.IncFeedRequests(metrics.FeedOutcomeDegraded)
		return []game.Game{}, false, nil
	}

	games, err := feed.ListGames(ctx, query)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return nil, false, err
		}
		o.metrics.IncFeedRequests(metrics.FeedOutcomeDegraded)
		o.logger.WarnContext(ctx, "game feed unavailable, scoring as undecided",
			"week", query.Week,
			"season", query.Season,
			"error", err,
		)
		return []game.Game{}, false, nil
	}
	return games, true, nil
}
