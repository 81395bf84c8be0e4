package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/chojuninengu/amega-ai/internal/api/metrics"
	"github.com/chojuninengu/amega-ai/internal/core/ports"
)

type ChatHandler struct {
	chatService ports.ChatService
}

func NewChatHandler(chatService ports.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type chatRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}

// Chat sends a message to the model backend and returns its reply.
//
// @Summary      Chat with the model
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      chatRequest  true  "Message content"
// @Success      200   {object}  domain.ChatMessage
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /api/v1/chat [post]
func (h *ChatHandler) Chat(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	start := time.Now()
	msg, err := h.chatService.Chat(c.Request().Context(), user, req.Content)
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.ChatGenerationDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, msg)
}
