package league

import "context"

// Repository describes league persistence needs from use cases.
// Create returns ErrDuplicateInviteCode on an invite code collision.
// AddMember returns ErrAlreadyMember when the membership exists.
type Repository interface {
	Create(ctx context.Context, league League, creator Member) error
	GetByID(ctx context.Context, leagueID string) (League, bool, error)
	GetByInviteCode(ctx context.Context, inviteCode string) (League, bool, error)
	ListByMember(ctx context.Context, userID string) ([]League, error)
	AddMember(ctx context.Context, member Member) error
	IsMember(ctx context.Context, leagueID, userID string) (bool, error)
	ListMembers(ctx context.Context, leagueID string) ([]Member, error)
}
