package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/pickem-league/internal/domain/league"
)

type LeagueRepository struct {
	mu      sync.RWMutex
	items   map[string]league.League
	byCode  map[string]string
	members map[string][]league.Member
	orders  []string
}

var _ league.Repository = (*LeagueRepository)(nil)

func NewLeagueRepository() *LeagueRepository {
	return &LeagueRepository{
		items:   make(map[string]league.League),
		byCode:  make(map[string]string),
		members: make(map[string][]league.Member),
	}
}

func (r *LeagueRepository) Create(_ context.Context, item league.League, creator league.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byCode[item.InviteCode]; exists {
		return league.ErrDuplicateInviteCode
	}
	r.items[item.ID] = item
	r.byCode[item.InviteCode] = item.ID
	r.orders = append(r.orders, item.ID)

	creator.LeagueID = item.ID
	r.members[item.ID] = []league.Member{creator}
	return nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.items[leagueID]
	if !ok {
		return league.League{}, false, nil
	}
	return l, true, nil
}

func (r *LeagueRepository) GetByInviteCode(_ context.Context, inviteCode string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byCode[inviteCode]
	if !ok {
		return league.League{}, false, nil
	}
	return r.items[id], true, nil
}

func (r *LeagueRepository) ListByMember(_ context.Context, userID string) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0)
	for _, id := range r.orders {
		if hasMember(r.members[id], userID) {
			out = append(out, r.items[id])
		}
	}
	return out, nil
}

func (r *LeagueRepository) AddMember(_ context.Context, member league.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[member.LeagueID]; !ok {
		return errLeagueNotFound(member.LeagueID)
	}
	if hasMember(r.members[member.LeagueID], member.UserID) {
		return league.ErrAlreadyMember
	}
	r.members[member.LeagueID] = append(r.members[member.LeagueID], member)
	return nil
}

func (r *LeagueRepository) IsMember(_ context.Context, leagueID, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return hasMember(r.members[leagueID], userID), nil
}

// ListMembers returns members by join time, then user id.
func (r *LeagueRepository) ListMembers(_ context.Context, leagueID string) ([]league.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]league.Member(nil), r.members[leagueID]...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].JoinedAt.Before(out[j].JoinedAt)
		}
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

func hasMember(members []league.Member, userID string) bool {
	for _, m := range members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
