package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/chojuninengu/amega-ai/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, username, password, email, displayName string) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, password, email, displayName string) (*domain.User, error) {
	return s.registerFn(ctx, username, password, email, displayName)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) ListUsers(_ context.Context) ([]*domain.User, error) {
	return nil, nil
}

func newJSONContext(t *testing.T, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password, email, displayName string) (*domain.User, error) {
			if username != "alice" || password != "s3cret-pass" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &domain.User{Username: username, Role: domain.RoleUser, Active: true}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newJSONContext(t, "/api/v1/auth/register",
		`{"username":"alice","password":"s3cret-pass","email":"a@example.com"}`)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var user domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("role = %q, want %q", user.Role, domain.RoleUser)
	}
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{
		registerFn: func(context.Context, string, string, string, string) (*domain.User, error) {
			t.Fatalf("service must not be called on validation failure")
			return nil, nil
		},
	})

	c, rec := newJSONContext(t, "/api/v1/auth/register", `{"username":"alice","password":"short"}`)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{
		registerFn: func(context.Context, string, string, string, string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	})

	c, _ := newJSONContext(t, "/api/v1/auth/register", `{"username":"alice","password":"s3cret-pass"}`)

	if err := handler.Register(c); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists to propagate, got %v", err)
	}
}

func TestAuthHandler_Token_Success(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			return "signed-token", &domain.User{Username: username}, nil
		},
	})

	c, rec := newJSONContext(t, "/api/v1/auth/token", `{"username":"alice","password":"s3cret-pass"}`)

	if err := handler.Token(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.AccessToken != "signed-token" || resp.TokenType != "bearer" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Token_BadCredentials(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	})

	c, _ := newJSONContext(t, "/api/v1/auth/token", `{"username":"alice","password":"wrong-pass"}`)

	if err := handler.Token(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}
