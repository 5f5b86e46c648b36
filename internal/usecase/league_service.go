package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/domain/pickem"
	idgen "github.com/riskibarqy/pickem-league/internal/platform/id"
	"github.com/riskibarqy/pickem-league/internal/platform/tracing"
)

const (
	inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	inviteCodeLength   = 8
	inviteCodeAttempts = 3
	minPasswordLength  = 4
)

type CreateLeagueInput struct {
	UserID      string
	DisplayName string
	Name        string
	Mode        pickem.Mode
	Password    string
}

type JoinLeagueInput struct {
	UserID      string
	DisplayName string
	InviteCode  string
	Password    string
}

type LeagueService struct {
	leagueRepo league.Repository
	idGen      idgen.Generator
	opts       serviceOptions
}

func NewLeagueService(leagueRepo league.Repository, idGen idgen.Generator, opts ...Option) *LeagueService {
	return &LeagueService{
		leagueRepo: leagueRepo,
		idGen:      idGen,
		opts:       newServiceOptions(opts),
	}
}

// Create stores a new league with the creator as its first member.
func (s *LeagueService) Create(ctx context.Context, input CreateLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Create")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.Name = strings.TrimSpace(input.Name)
	if input.UserID == "" {
		return league.League{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return league.League{}, fmt.Errorf("%w: league name is required", ErrInvalidInput)
	}
	if len(input.Password) < minPasswordLength {
		return league.League{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	if input.Mode == "" {
		input.Mode = pickem.ModeStandard
	}

	leagueID, err := s.idGen.NewID()
	if err != nil {
		return league.League{}, fmt.Errorf("generate league id: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return league.League{}, fmt.Errorf("hash league password: %w", err)
	}

	now := s.opts.now().UTC()
	item := league.League{
		ID:           leagueID,
		Name:         input.Name,
		Sport:        league.SportNFL,
		Mode:         input.Mode,
		PasswordHash: string(hash),
		CreatorID:    input.UserID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := item.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	creator := league.Member{
		LeagueID:    leagueID,
		UserID:      input.UserID,
		DisplayName: strings.TrimSpace(input.DisplayName),
		JoinedAt:    now,
	}

	for attempt := 1; ; attempt++ {
		item.InviteCode, err = generateInviteCode(ctx, inviteCodeLength)
		if err != nil {
			return league.League{}, fmt.Errorf("generate invite code: %w", err)
		}

		storeCtx, cancel := s.opts.withStoreTimeout(ctx)
		err = s.leagueRepo.Create(storeCtx, item, creator)
		cancel()
		if err == nil {
			break
		}
		if errors.Is(err, league.ErrDuplicateInviteCode) && attempt < inviteCodeAttempts {
			continue
		}
		if errors.Is(err, league.ErrDuplicateInviteCode) {
			return league.League{}, fmt.Errorf("%w: could not allocate an invite code", ErrConflict)
		}
		return league.League{}, fmt.Errorf("%w: create league: %w", ErrDependencyUnavailable, err)
	}

	s.opts.logger.InfoContext(ctx, "league created", "league_id", item.ID, "creator_id", item.CreatorID, "mode", item.Mode)
	return item, nil
}

// Join adds the user to the league behind an invite code. A wrong password
// reads the same as an unknown code.
func (s *LeagueService) Join(ctx context.Context, input JoinLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Join")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.InviteCode = strings.ToUpper(strings.TrimSpace(input.InviteCode))
	if input.UserID == "" {
		return league.League{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.InviteCode == "" {
		return league.League{}, fmt.Errorf("%w: invite code is required", ErrInvalidInput)
	}
	if input.Password == "" {
		return league.League{}, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	storeCtx, cancel := s.opts.withStoreTimeout(ctx)
	item, exists, err := s.leagueRepo.GetByInviteCode(storeCtx, input.InviteCode)
	cancel()
	if err != nil {
		return league.League{}, fmt.Errorf("%w: get league by invite code: %w", ErrDependencyUnavailable, err)
	}
	if !exists || bcrypt.CompareHashAndPassword([]byte(item.PasswordHash), []byte(input.Password)) != nil {
		return league.League{}, fmt.Errorf("%w: invalid invite code or password", ErrNotFound)
	}

	storeCtx, cancel = s.opts.withStoreTimeout(ctx)
	err = s.leagueRepo.AddMember(storeCtx, league.Member{
		LeagueID:    item.ID,
		UserID:      input.UserID,
		DisplayName: strings.TrimSpace(input.DisplayName),
		JoinedAt:    s.opts.now().UTC(),
	})
	cancel()
	if err != nil {
		if errors.Is(err, league.ErrAlreadyMember) {
			return league.League{}, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return league.League{}, fmt.Errorf("%w: add league member: %w", ErrDependencyUnavailable, err)
	}

	return item, nil
}

func (s *LeagueService) Get(ctx context.Context, userID, leagueID string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Get", tracing.Scope(leagueID, 0, userID)...)
	defer span.End()

	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	if userID == "" {
		return league.League{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	item, err := s.opts.getLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return league.League{}, err
	}
	if err := s.opts.requireMember(ctx, s.leagueRepo, leagueID, userID); err != nil {
		return league.League{}, err
	}
	return item, nil
}

func (s *LeagueService) ListMine(ctx context.Context, userID string) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListMine")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	storeCtx, cancel := s.opts.withStoreTimeout(ctx)
	defer cancel()
	items, err := s.leagueRepo.ListByMember(storeCtx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list leagues by member: %w", ErrDependencyUnavailable, err)
	}
	return items, nil
}

func (s *LeagueService) ListMembers(ctx context.Context, userID, leagueID string) ([]league.Member, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListMembers", tracing.Scope(leagueID, 0, userID)...)
	defer span.End()

	if _, err := s.Get(ctx, userID, leagueID); err != nil {
		return nil, err
	}
	return s.opts.listMembers(ctx, s.leagueRepo, strings.TrimSpace(leagueID))
}

func (o serviceOptions) getLeague(ctx context.Context, repo league.Repository, leagueID string) (league.League, error) {
	storeCtx, cancel := o.withStoreTimeout(ctx)
	defer cancel()

	item, exists, err := repo.GetByID(storeCtx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("%w: get league: %w", ErrDependencyUnavailable, err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	return item, nil
}

func (o serviceOptions) requireMember(ctx context.Context, repo league.Repository, leagueID, userID string) error {
	storeCtx, cancel := o.withStoreTimeout(ctx)
	defer cancel()

	isMember, err := repo.IsMember(storeCtx, leagueID, userID)
	if err != nil {
		return fmt.Errorf("%w: check league member: %w", ErrDependencyUnavailable, err)
	}
	if !isMember {
		return fmt.Errorf("%w: you are not a member of this league", ErrForbidden)
	}
	return nil
}

func (o serviceOptions) listMembers(ctx context.Context, repo league.Repository, leagueID string) ([]league.Member, error) {
	storeCtx, cancel := o.withStoreTimeout(ctx)
	defer cancel()

	members, err := repo.ListMembers(storeCtx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("%w: list league members: %w", ErrDependencyUnavailable, err)
	}
	return members, nil
}

func generateInviteCode(ctx context.Context, length int) (string, error) {
	_ = ctx
	if length < 6 {
		length = 6
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes for invite code: %w", err)
	}

	out := make([]byte, length)
	for i, b := range buf {
		out[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}
	return string(out), nil
}
