package ports

import (
	"context"

	"github.com/chojuninengu/amega-ai/internal/core/domain"
)

type ChatService interface {
	Chat(ctx context.Context, user *domain.User, content string) (*domain.ChatMessage, error)
}
