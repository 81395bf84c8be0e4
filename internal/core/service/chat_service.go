package service

import (
	"context"
	"time"

	"github.com/chojuninengu/amega-ai/internal/core/domain"
	"github.com/chojuninengu/amega-ai/internal/core/ports"
)

// ChatService is a thin wrapper around the pluggable model backend. All
// gatekeeping (auth, role, quota) happens in the middleware chain before a
// request ever reaches it.
type ChatService struct {
	backend ports.ModelBackend
}

func NewChatService(backend ports.ModelBackend) *ChatService {
	return &ChatService{backend: backend}
}

func (s *ChatService) Chat(ctx context.Context, user *domain.User, content string) (*domain.ChatMessage, error) {
	reply, err := s.backend.Generate(ctx, content)
	if err != nil {
		return nil, err
	}

	return &domain.ChatMessage{
		Role:      domain.ChatRoleAssistant,
		Content:   reply,
		UserID:    user.Username,
		Timestamp: time.Now().UTC(),
	}, nil
}
