package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/pickem-league/internal/domain/game"
)

type GameService struct {
	feed GameFeed
	opts serviceOptions
}

func NewGameService(feed GameFeed, opts ...Option) *GameService {
	return &GameService{
		feed: feed,
		opts: newServiceOptions(opts),
	}
}

// ListWeek returns the games of a week for the pick form. An unavailable feed yields an empty list.
func (s *GameService) ListWeek(ctx context.Context, query game.Query) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.ListWeek")
	defer span.End()

	if query.Week < 1 {
		return nil, fmt.Errorf("%w: week must be >= 1", ErrInvalidInput)
	}
	if query.Season < 0 {
		return nil, fmt.Errorf("%w: season must be >= 0", ErrInvalidInput)
	}
	if query.SeasonType < 0 || query.SeasonType > 4 {
		return nil, fmt.Errorf("%w: season type must be between 1 and 4", ErrInvalidInput)
	}

	games, _, err := s.opts.loadGames(ctx, s.feed, query)
	if err != nil {
		return nil, err
	}
	return games, nil
}
