package league

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/pickem"
)

const SportNFL = "nfl"

var (
	ErrAlreadyMember       = errors.New("user is already a league member")
	ErrDuplicateInviteCode = errors.New("invite code already in use")
)

// League is a private pick'em group created by one user and joined by invite code.
type League struct {
	ID           string
	Name         string
	Sport        string
	Mode         pickem.Mode
	InviteCode   string
	PasswordHash string
	CreatorID    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Member struct {
	LeagueID    string
	UserID      string
	DisplayName string
	JoinedAt    time.Time
}

func (l League) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return fmt.Errorf("league id is required")
	}
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("league name is required")
	}
	if l.Sport != SportNFL {
		return fmt.Errorf("unsupported sport %q", l.Sport)
	}
	switch l.Mode {
	case pickem.ModeStandard, pickem.ModeConfidence:
	default:
		return fmt.Errorf("unsupported mode %q", l.Mode)
	}
	if strings.TrimSpace(l.CreatorID) == "" {
		return fmt.Errorf("league creator is required")
	}

	return nil
}

// DisplayNameOr returns the member display name, falling back to the user id.
func (m Member) DisplayNameOr() string {
	if name := strings.TrimSpace(m.DisplayName); name != "" {
		return name
	}
	return m.UserID
}
