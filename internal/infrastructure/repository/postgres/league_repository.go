package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/domain/pickem"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

const (
	leaguesTable             = "leagues"
	leagueMembersTable       = "league_members"
	leagueInviteCodeIndex    = "leagues_invite_code_key"
	leagueMemberUniqueIndex  = "league_members_league_user_key"
	leagueMembershipJoinFrom = "leagues l JOIN league_members m ON m.league_public_id = l.public_id"
)

type LeagueRepository struct {
	db *sqlx.DB
}

var _ league.Repository = (*LeagueRepository)(nil)

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

// Create inserts the league and its creator membership in one transaction.
func (r *LeagueRepository) Create(ctx context.Context, item league.League, creator league.Member) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx create league: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	leagueQuery, leagueArgs, err := qb.InsertModel(leaguesTable, leagueInsertModel{
		PublicID:     item.ID,
		Name:         item.Name,
		Sport:        item.Sport,
		Mode:         string(item.Mode),
		InviteCode:   item.InviteCode,
		PasswordHash: item.PasswordHash,
		CreatorID:    item.CreatorID,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build create league query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, leagueQuery, leagueArgs...); err != nil {
		if isUniqueViolation(err, leagueInviteCodeIndex) {
			return league.ErrDuplicateInviteCode
		}
		return fmt.Errorf("create league: %w", err)
	}

	memberQuery, memberArgs, err := qb.InsertModel(leagueMembersTable, leagueMemberInsertModel{
		LeagueID:    item.ID,
		UserID:      creator.UserID,
		DisplayName: creator.DisplayName,
		JoinedAt:    creator.JoinedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build create league creator query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, memberQuery, memberArgs...); err != nil {
		return fmt.Errorf("create league creator: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create league tx: %w", err)
	}
	return nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	return r.getOne(ctx, qb.Eq("public_id", leagueID))
}

func (r *LeagueRepository) GetByInviteCode(ctx context.Context, inviteCode string) (league.League, bool, error) {
	return r.getOne(ctx, qb.Eq("invite_code", inviteCode))
}

func (r *LeagueRepository) ListByMember(ctx context.Context, userID string) ([]league.League, error) {
	query, args, err := qb.Select("l.*").From(leagueMembershipJoinFrom).
		Where(qb.Eq("m.user_id", userID)).
		OrderBy("m.joined_at ASC", "l.id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list leagues by member query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list leagues by member: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueFromRow(row))
	}
	return out, nil
}

func (r *LeagueRepository) AddMember(ctx context.Context, member league.Member) error {
	query, args, err := qb.InsertModel(leagueMembersTable, leagueMemberInsertModel{
		LeagueID:    member.LeagueID,
		UserID:      member.UserID,
		DisplayName: member.DisplayName,
		JoinedAt:    member.JoinedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build add league member query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, leagueMemberUniqueIndex) {
			return league.ErrAlreadyMember
		}
		return fmt.Errorf("add league member: %w", err)
	}
	return nil
}

func (r *LeagueRepository) IsMember(ctx context.Context, leagueID, userID string) (bool, error) {
	query, args, err := qb.Select("1").From(leagueMembersTable).
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("user_id", userID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build is league member query: %w", err)
	}

	var one int
	if err := r.db.GetContext(ctx, &one, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("check league member: %w", err)
	}
	return true, nil
}

func (r *LeagueRepository) ListMembers(ctx context.Context, leagueID string) ([]league.Member, error) {
	query, args, err := qb.Select("*").From(leagueMembersTable).
		Where(qb.Eq("league_public_id", leagueID)).
		OrderBy("joined_at ASC", "user_id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list league members query: %w", err)
	}

	var rows []leagueMemberTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list league members: %w", err)
	}

	out := make([]league.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, league.Member{
			LeagueID:    row.LeagueID,
			UserID:      row.UserID,
			DisplayName: row.DisplayName,
			JoinedAt:    row.JoinedAt,
		})
	}
	return out, nil
}

func (r *LeagueRepository) getOne(ctx context.Context, condition qb.Condition) (league.League, bool, error) {
	query, args, err := qb.Select("*").From(leaguesTable).
		Where(condition).
		Limit(1).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league: %w", err)
	}
	return leagueFromRow(row), true, nil
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		ID:           row.PublicID,
		Name:         row.Name,
		Sport:        row.Sport,
		Mode:         pickem.Mode(row.Mode),
		InviteCode:   row.InviteCode,
		PasswordHash: row.PasswordHash,
		CreatorID:    row.CreatorID,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
