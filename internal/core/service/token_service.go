package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/chojuninengu/amega-ai/internal/core/domain"
	"github.com/chojuninengu/amega-ai/internal/core/ports"
)

// TokenService issues and verifies HS256-signed JWTs. The signature covers
// subject, role and expiry together so none can be tampered with
// independently.
type TokenService struct {
	repo     ports.AuthRepository
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

func NewTokenService(repo ports.AuthRepository, secret string, tokenTTL time.Duration) *TokenService {
	if tokenTTL <= 0 {
		tokenTTL = 30 * time.Minute
	}
	return &TokenService{
		repo:     repo,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

// Issue creates a signed token for the user. The role claim is a snapshot of
// the role at issuance; Verify detects divergence later.
func (s *TokenService) Issue(user *domain.User) (string, error) {
	now := s.now().UTC()
	claims := jwt.MapClaims{
		"sub":  user.Username,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify validates the raw token and re-resolves the subject from the
// credential store. The stored role must still match the embedded claim;
// a demotion after issuance invalidates the token without a revocation list.
// All failure modes collapse to domain.ErrUnauthenticated.
func (s *TokenService) Verify(ctx context.Context, rawToken string) (*domain.User, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !tkn.Valid {
		return nil, domain.ErrUnauthenticated
	}

	subject, _ := claims["sub"].(string)
	if subject == "" {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.repo.FindByUsername(ctx, subject)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	if !user.Active {
		return nil, domain.ErrUnauthenticated
	}

	role, _ := claims["role"].(string)
	if role != user.Role {
		return nil, domain.ErrUnauthenticated
	}

	return user, nil
}
