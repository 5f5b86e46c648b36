package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/lib/pq"

	"github.com/riskibarqy/pickem-league/internal/domain/pickem"
	"github.com/riskibarqy/pickem-league/internal/domain/standings"
)

const uniqueViolationCode = "23505"

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isUniqueViolation reports a 23505 error, optionally on a specific constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != uniqueViolationCode {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

func encodePicks(picks []pickem.Pick) (string, error) {
	docs := make([]pickDocument, 0, len(picks))
	for _, p := range picks {
		docs = append(docs, pickDocument{
			GameID:     p.GameID,
			Team:       p.Team,
			Opponent:   p.Opponent,
			IsHome:     p.IsHome,
			Confidence: p.Confidence,
			IsCorrect:  p.IsCorrect,
		})
	}
	raw, err := sonic.MarshalString(docs)
	if err != nil {
		return "", fmt.Errorf("encode picks: %w", err)
	}
	return raw, nil
}

func decodePicks(raw []byte) ([]pickem.Pick, error) {
	if len(raw) == 0 {
		return []pickem.Pick{}, nil
	}
	var docs []pickDocument
	if err := sonic.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("decode picks: %w", err)
	}
	out := make([]pickem.Pick, 0, len(docs))
	for _, d := range docs {
		out = append(out, pickem.Pick{
			GameID:     d.GameID,
			Team:       d.Team,
			Opponent:   d.Opponent,
			IsHome:     d.IsHome,
			Confidence: d.Confidence,
			IsCorrect:  d.IsCorrect,
		})
	}
	return out, nil
}

func encodeWeeklyStats(in map[int]standings.WeeklyStats) (string, error) {
	docs := make(map[string]weeklyStatsDocument, len(in))
	for week, s := range in {
		docs[strconv.Itoa(week)] = weeklyStatsDocument{
			WeeklyPoints: s.WeeklyPoints,
			CorrectPicks: s.CorrectPicks,
			TotalPicks:   s.TotalPicks,
			TFSPoints:    s.TFSPoints,
		}
	}
	raw, err := sonic.MarshalString(docs)
	if err != nil {
		return "", fmt.Errorf("encode weekly stats: %w", err)
	}
	return raw, nil
}

// decodeWeeklyStats rejects keys that are not weeks >= 1.
func decodeWeeklyStats(raw []byte) (map[int]standings.WeeklyStats, error) {
	if len(raw) == 0 {
		return map[int]standings.WeeklyStats{}, nil
	}
	var docs map[string]weeklyStatsDocument
	if err := sonic.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("decode weekly stats: %w", err)
	}
	out := make(map[int]standings.WeeklyStats, len(docs))
	for key, d := range docs {
		week, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("decode weekly stats: week key %q: %w", key, err)
		}
		out[week] = standings.WeeklyStats{
			WeeklyPoints: d.WeeklyPoints,
			CorrectPicks: d.CorrectPicks,
			TotalPicks:   d.TotalPicks,
			TFSPoints:    d.TFSPoints,
		}
	}
	return standings.NewWeeklyStatsMap(out)
}
