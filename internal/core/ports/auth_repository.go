package ports

import (
	"context"

	"github.com/chojuninengu/amega-ai/internal/core/domain"
)

// AuthRepository defines the interface for user credential persistence.
// There is intentionally no delete operation; accounts are disabled via the
// Active flag instead.
type AuthRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
