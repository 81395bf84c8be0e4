package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/chojuninengu/amega-ai/internal/core/domain"
	"github.com/chojuninengu/amega-ai/internal/core/ports"
)

// AuthService implements registration and login on top of the credential
// store. Password comparison always goes through bcrypt, never plaintext
// equality.
type AuthService struct {
	repo   ports.AuthRepository
	tokens ports.TokenService
}

func NewAuthService(repo ports.AuthRepository, tokens ports.TokenService) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// Register creates a new account. The role is always `user`; elevation only
// happens through an explicit out-of-band update, never at registration.
func (s *AuthService) Register(ctx context.Context, username, password, email, displayName string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Login verifies the credentials and returns a signed bearer token for the
// account. Lookup failures and password mismatches both report
// ErrInvalidCredentials so callers cannot probe for usernames.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !user.Active {
		return "", nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// ListUsers returns every account in the credential store.
func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}
