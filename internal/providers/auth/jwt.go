package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sandevgo/sejarahbot/internal/config"
	"github.com/sandevgo/sejarahbot/internal/core"
)

var (
	ErrMissingToken = fmt.Errorf("missing token: %w", core.ErrAuth)
	ErrInvalidToken = fmt.Errorf("invalid token: %w", core.ErrAuth)
	ErrExpiredToken = fmt.Errorf("token has expired: %w", core.ErrAuth)
)

// Claims carries the identity inside a session token. The account ID is
// the registered subject.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Authority issues and verifies HS256 session tokens.
type Authority struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthority(cfg *config.AuthConfig) (*Authority, error) {
	if cfg.Secret == "" {
		return nil, errors.New("secret key required for HS256")
	}
	return &Authority{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    cfg.TTL,
		now:    time.Now,
	}, nil
}

func (a *Authority) IssueToken(identity core.Identity) (string, error) {
	if identity.ID == "" {
		return "", errors.New("identity without id")
	}

	now := a.now()
	claims := &Claims{
		Email: identity.Email,
		Name:  identity.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// VerifyToken accepts a raw token or a "Bearer " prefixed one. Every
// failure matches core.ErrAuth.
func (a *Authority) VerifyToken(raw string) (core.Identity, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "Bearer "))
	if raw == "" {
		return core.Identity{}, ErrMissingToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return core.Identity{}, ErrExpiredToken
		}
		return core.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return core.Identity{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return core.Identity{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return core.Identity{
		ID:    claims.Subject,
		Email: claims.Email,
		Name:  claims.Name,
	}, nil
}
