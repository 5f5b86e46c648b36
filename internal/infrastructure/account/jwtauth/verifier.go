package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/riskibarqy/pickem-league/internal/domain/user"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

// Claims are the identity provider claims the league service relies on.
type Claims struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Verifier checks HS256 bearer tokens issued by the identity provider.
type Verifier struct {
	secret []byte
	issuer string
	leeway time.Duration
	logger *logging.Logger
	now    func() time.Time
}

type Option func(*Verifier)

func WithLeeway(d time.Duration) Option {
	return func(v *Verifier) {
		if d >= 0 {
			v.leeway = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(v *Verifier) {
		if now != nil {
			v.now = now
		}
	}
}

func NewVerifier(secret, issuer string, logger *logging.Logger, opts ...Option) (*Verifier, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	v := &Verifier{
		secret: []byte(secret),
		issuer: strings.TrimSpace(issuer),
		leeway: 30 * time.Second,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

func (v *Verifier) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		v.logger.DebugContext(ctx, "reject access token", "error", err)
		return user.Principal{}, fmt.Errorf("%w: invalid access token", usecase.ErrUnauthorized)
	}

	if err := v.validateClaims(claims); err != nil {
		return user.Principal{}, fmt.Errorf("%w: %w", usecase.ErrUnauthorized, err)
	}

	return user.Principal{
		UserID:      strings.TrimSpace(claims.Subject),
		DisplayName: strings.TrimSpace(claims.Name),
		Email:       strings.TrimSpace(claims.Email),
	}, nil
}

var errMissingSubject = errors.New("token subject is required")

func (v *Verifier) validateClaims(claims *Claims) error {
	now := v.now()
	if claims.ExpiresAt == nil {
		return fmt.Errorf("token expiry is required")
	}
	if now.After(claims.ExpiresAt.Add(v.leeway)) {
		return fmt.Errorf("token is expired")
	}
	if claims.NotBefore != nil && now.Add(v.leeway).Before(claims.NotBefore.Time) {
		return fmt.Errorf("token is not valid yet")
	}
	if v.issuer != "" && !claims.VerifyIssuer(v.issuer, true) {
		return fmt.Errorf("unexpected token issuer %q", claims.Issuer)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return errMissingSubject
	}
	return nil
}

// Sign issues a token for the given principal. Used by tests and local tooling.
func (v *Verifier) Sign(p user.Principal, ttl time.Duration) (string, error) {
	now := v.now()
	claims := Claims{
		Name:  p.DisplayName,
		Email: p.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}
