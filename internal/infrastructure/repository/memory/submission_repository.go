package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/pickem-league/internal/domain/pickem"
)

type submissionKey struct {
	userID   string
	leagueID string
	week     int
}

// SubmissionRepository keeps submissions in memory with one entry per (user, league, week).
type SubmissionRepository struct {
	mu    sync.RWMutex
	items map[string]pickem.WeeklySubmission
	keys  map[submissionKey]string
}

var _ pickem.SubmissionRepository = (*SubmissionRepository)(nil)

func NewSubmissionRepository() *SubmissionRepository {
	return &SubmissionRepository{
		items: make(map[string]pickem.WeeklySubmission),
		keys:  make(map[submissionKey]string),
	}
}

func (r *SubmissionRepository) FindSubmission(_ context.Context, userID, leagueID string, week int) (pickem.WeeklySubmission, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.keys[submissionKey{userID: userID, leagueID: leagueID, week: week}]
	if !ok {
		return pickem.WeeklySubmission{}, false, nil
	}
	return cloneSubmission(r.items[id]), true, nil
}

func (r *SubmissionRepository) CreateSubmission(_ context.Context, submission pickem.WeeklySubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := submissionKey{userID: submission.UserID, leagueID: submission.LeagueID, week: submission.Week}
	if _, exists := r.keys[key]; exists {
		return pickem.ErrDuplicateSubmission
	}
	if _, exists := r.items[submission.ID]; exists {
		return fmt.Errorf("submission id %s already exists", submission.ID)
	}
	r.items[submission.ID] = cloneSubmission(submission)
	r.keys[key] = submission.ID
	return nil
}

func (r *SubmissionRepository) UpdateSubmission(_ context.Context, submissionID string, patch pickem.SubmissionPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[submissionID]
	if !ok {
		return fmt.Errorf("submission not found: %s", submissionID)
	}
	item.Picks = pickem.ClonePicks(patch.Picks)
	item.WeeklyPoints = patch.WeeklyPoints
	item.CorrectPicks = patch.CorrectPicks
	item.TFSPoints = patch.TFSPoints
	item.UpdatedAt = patch.UpdatedAt
	r.items[submissionID] = item
	return nil
}

func (r *SubmissionRepository) SumSubmissions(_ context.Context, userID, leagueID string) (pickem.Totals, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	totals := pickem.Totals{UserID: userID, LeagueID: leagueID}
	for _, item := range r.items {
		if item.UserID != userID || (leagueID != "" && item.LeagueID != leagueID) {
			continue
		}
		totals.Submissions++
		totals.WeeklyPoints += item.WeeklyPoints
		totals.CorrectPicks += item.CorrectPicks
		totals.TotalPicks += item.PickCount()
		totals.TFSPoints += item.TFSPoints
	}
	return totals, nil
}

// ListByUserAndLeague returns submissions ordered by week.
func (r *SubmissionRepository) ListByUserAndLeague(_ context.Context, userID, leagueID string) ([]pickem.WeeklySubmission, error) {
	return r.list(func(item pickem.WeeklySubmission) bool {
		return item.UserID == userID && item.LeagueID == leagueID
	}), nil
}

// ListByLeagueAndWeek returns submissions ordered by creation time.
func (r *SubmissionRepository) ListByLeagueAndWeek(_ context.Context, leagueID string, week int) ([]pickem.WeeklySubmission, error) {
	return r.list(func(item pickem.WeeklySubmission) bool {
		return item.LeagueID == leagueID && item.Week == week
	}), nil
}

func (r *SubmissionRepository) list(match func(pickem.WeeklySubmission) bool) []pickem.WeeklySubmission {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pickem.WeeklySubmission, 0)
	for _, item := range r.items {
		if match(item) {
			out = append(out, cloneSubmission(item))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Week != out[j].Week {
			return out[i].Week < out[j].Week
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func cloneSubmission(in pickem.WeeklySubmission) pickem.WeeklySubmission {
	in.Picks = pickem.ClonePicks(in.Picks)
	return in
}
