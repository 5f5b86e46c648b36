package usecase

import (
	"errors"
	"fmt"
	"testing"

	"github.com/riskibarqy/pickem-league/internal/domain/pickem"
)

func TestIsCallerError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "invalid picks", err: fmt.Errorf("%w: %w", ErrInvalidInput, pickem.ErrInvalidPickCount), want: true},
		{name: "unknown league", err: fmt.Errorf("%w: league lg-1", ErrNotFound), want: true},
		{name: "not a member", err: fmt.Errorf("%w: user u-1", ErrForbidden), want: true},
		{name: "duplicate", err: fmt.Errorf("%w: %w", ErrConflict, pickem.ErrDuplicateSubmission), want: true},
		{name: "store down", err: fmt.Errorf("%w: find submission: timeout", ErrDependencyUnavailable), want: false},
		{name: "unclassified", err: errors.New("boom"), want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isCallerError(tc.err); got != tc.want {
				t.Fatalf("isCallerError(%v)=%v want=%v", tc.err, got, tc.want)
			}
		})
	}
}
