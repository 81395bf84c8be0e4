package service

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/chojuninengu/amega-ai/internal/core/domain"
)

type stubAuthRepo struct {
	users map[string]*domain.User
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = user.Username
	}
	r.users[copy.Username] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubAuthRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubAuthRepo) List(_ context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, cloneUser(u))
	}
	return users, nil
}

func newAuthService(repo *stubAuthRepo) *AuthService {
	return NewAuthService(repo, NewTokenService(repo, "secret", time.Hour))
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newAuthService(repo)

	user, err := svc.Register(context.Background(), "alice", "s3cret-pass", "alice@example.com", "Alice")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil {
		t.Fatalf("expected user, got nil")
	}
	if user.PasswordHash == "s3cret-pass" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("new accounts must get role %q, got %q", domain.RoleUser, user.Role)
	}
	if !user.Active {
		t.Fatalf("new accounts must be active")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthService(newStubAuthRepo())

	if _, err := svc.Register(context.Background(), "", "pass", "", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", "", "", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newAuthService(newStubAuthRepo())

	_, _ = svc.Register(context.Background(), "bob", "password1", "bob@example.com", "")
	if _, err := svc.Register(context.Background(), "bob", "password2", "bob@example.com", ""); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newAuthService(repo)

	if _, err := svc.Register(context.Background(), "carol", "s3cret-pass", "carol@example.com", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := newAuthService(newStubAuthRepo())

	_, _ = svc.Register(context.Background(), "dave", "right-password", "", "")
	if _, _, err := svc.Login(context.Background(), "dave", "wrong-password"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUserIsOpaque(t *testing.T) {
	svc := newAuthService(newStubAuthRepo())

	// Unknown usernames must fail the same way as wrong passwords so the
	// endpoint cannot be used to enumerate accounts.
	if _, _, err := svc.Login(context.Background(), "nobody", "whatever"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newAuthService(repo)

	_, _ = svc.Register(context.Background(), "erin", "some-password", "", "")
	repo.users["erin"].Active = false

	if _, _, err := svc.Login(context.Background(), "erin", "some-password"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for disabled account, got %v", err)
	}
}
