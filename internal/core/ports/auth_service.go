package ports

import (
	"context"

	"github.com/chojuninengu/amega-ai/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password, email, displayName string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}
