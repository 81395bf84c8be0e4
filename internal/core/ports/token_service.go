package ports

import (
	"context"

	"github.com/chojuninengu/amega-ai/internal/core/domain"
)

// TokenService issues and verifies signed, time-bound bearer tokens.
type TokenService interface {
	// Issue creates a signed token carrying the user's identity and role.
	// The role is snapshotted at issuance, not re-derived later.
	Issue(user *domain.User) (string, error)

	// Verify checks the signature and expiry, re-resolves the subject from
	// the credential store and confirms the stored role still matches the
	// embedded claim. Every failure mode is reported as
	// domain.ErrUnauthenticated.
	Verify(ctx context.Context, rawToken string) (*domain.User, error)
}
