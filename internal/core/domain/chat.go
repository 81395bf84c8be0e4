package domain

import "time"

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is a single turn in a conversation with the model backend.
type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	UserID    string    `json:"user_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
