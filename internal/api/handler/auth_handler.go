package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chojuninengu/amega-ai/internal/core/domain"
	"github.com/chojuninengu/amega-ai/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=64"`
	Password    string `json:"password" validate:"required,min=8"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	DisplayName string `json:"display_name,omitempty" validate:"omitempty,max=128"`
}

type tokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register creates a new user account. New accounts always get the `user`
// role; elevation is out-of-band.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password, req.Email, req.DisplayName)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, user)
}

// Token authenticates a user and returns a bearer token.
//
// @Summary      Obtain an access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      tokenRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/auth/token [post]
func (h *AuthHandler) Token(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return domain.ErrInvalidCredentials
	}

	token, _, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}
