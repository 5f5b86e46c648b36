package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/domain/pickem"
	"github.com/riskibarqy/pickem-league/internal/domain/standings"
)

func boolPtr(v bool) *bool { return &v }

func TestSubmissionRepository_EnforcesOnePerWeek(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewSubmissionRepository()
	sub := pickem.WeeklySubmission{ID: "s1", UserID: "u1", LeagueID: "l1", Week: 1}
	if err := repo.CreateSubmission(ctx, sub); err != nil {
		t.Fatalf("create submission: %v", err)
	}

	sub.ID = "s2"
	if err := repo.CreateSubmission(ctx, sub); !errors.Is(err, pickem.ErrDuplicateSubmission) {
		t.Fatalf("expected ErrDuplicateSubmission, got %v", err)
	}

	sub.Week = 2
	if err := repo.CreateSubmission(ctx, sub); err != nil {
		t.Fatalf("create second week: %v", err)
	}
}

func TestSubmissionRepository_UpdateAndSum(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewSubmissionRepository()
	picks := []pickem.Pick{{GameID: "g1"}, {GameID: "g2"}, {GameID: "g3"}, {GameID: "g4"}, {GameID: "g5"}}
	for i, leagueID := range []string{"l1", "l1", "l2"} {
		err := repo.CreateSubmission(ctx, pickem.WeeklySubmission{
			ID:       string(rune('a' + i)),
			UserID:   "u1",
			LeagueID: leagueID,
			Week:     i + 1,
			Picks:    picks,
		})
		if err != nil {
			t.Fatalf("create submission %d: %v", i, err)
		}
	}

	patched := pickem.ClonePicks(picks)
	patched[0].IsCorrect = boolPtr(true)
	if err := repo.UpdateSubmission(ctx, "a", pickem.SubmissionPatch{
		Picks:        patched,
		WeeklyPoints: 7,
		CorrectPicks: 1,
		TFSPoints:    5,
		UpdatedAt:    time.Unix(10, 0),
	}); err != nil {
		t.Fatalf("update submission: %v", err)
	}
	patched[0].IsCorrect = boolPtr(false)

	got, ok, err := repo.FindSubmission(ctx, "u1", "l1", 1)
	if err != nil || !ok {
		t.Fatalf("find submission: ok=%v err=%v", ok, err)
	}
	if got.WeeklyPoints != 7 || got.Picks[0].IsCorrect == nil || !*got.Picks[0].IsCorrect {
		t.Fatalf("patch not applied or aliased: %+v", got)
	}

	league1, err := repo.SumSubmissions(ctx, "u1", "l1")
	if err != nil {
		t.Fatalf("sum league: %v", err)
	}
	if league1.Submissions != 2 || league1.WeeklyPoints != 7 || league1.TotalPicks != 10 {
		t.Fatalf("unexpected league totals: %+v", league1)
	}

	all, err := repo.SumSubmissions(ctx, "u1", "")
	if err != nil {
		t.Fatalf("sum all: %v", err)
	}
	if all.Submissions != 3 || all.TotalPicks != 15 {
		t.Fatalf("unexpected overall totals: %+v", all)
	}

	if err := repo.UpdateSubmission(ctx, "missing", pickem.SubmissionPatch{}); err == nil {
		t.Fatalf("expected error for unknown submission")
	}
}

func TestLeagueRepository_Membership(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewLeagueRepository()
	base := time.Unix(100, 0)
	item := league.League{ID: "l1", Name: "Sunday Crew", InviteCode: "ABCD2345"}
	if err := repo.Create(ctx, item, league.Member{UserID: "owner", JoinedAt: base}); err != nil {
		t.Fatalf("create league: %v", err)
	}
	if err := repo.Create(ctx, league.League{ID: "l2", InviteCode: "ABCD2345"}, league.Member{UserID: "x"}); !errors.Is(err, league.ErrDuplicateInviteCode) {
		t.Fatalf("expected ErrDuplicateInviteCode, got %v", err)
	}

	if err := repo.AddMember(ctx, league.Member{LeagueID: "l1", UserID: "guest", JoinedAt: base.Add(time.Minute)}); err != nil {
		t.Fatalf("add member: %v", err)
	}
	if err := repo.AddMember(ctx, league.Member{LeagueID: "l1", UserID: "guest"}); !errors.Is(err, league.ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}

	members, err := repo.ListMembers(ctx, "l1")
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(members) != 2 || members[0].UserID != "owner" || members[1].UserID != "guest" {
		t.Fatalf("unexpected members: %+v", members)
	}

	found, ok, err := repo.GetByInviteCode(ctx, "ABCD2345")
	if err != nil || !ok || found.ID != "l1" {
		t.Fatalf("get by invite code: %+v ok=%v err=%v", found, ok, err)
	}

	mine, err := repo.ListByMember(ctx, "guest")
	if err != nil || len(mine) != 1 {
		t.Fatalf("list by member: %+v err=%v", mine, err)
	}
}

func TestSeasonRecordRepository_RejectsInvalidWeek(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewSeasonRecordRepository()
	err := repo.Upsert(ctx, standings.SeasonRecord{
		UserID:      "u1",
		LeagueID:    "l1",
		WeeklyStats: map[int]standings.WeeklyStats{0: {}},
	})
	if !errors.Is(err, standings.ErrInvalidWeek) {
		t.Fatalf("expected ErrInvalidWeek, got %v", err)
	}

	if err := repo.Upsert(ctx, standings.SeasonRecord{UserID: "u1", LeagueID: "l1", TotalPoints: 9}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, ok, err := repo.Get(ctx, "u1", "l1")
	if err != nil || !ok || got.TotalPoints != 9 {
		t.Fatalf("get: %+v ok=%v err=%v", got, ok, err)
	}
	rows, err := repo.ListByLeague(ctx, "l1")
	if err != nil || len(rows) != 1 {
		t.Fatalf("list by league: %+v err=%v", rows, err)
	}
}
