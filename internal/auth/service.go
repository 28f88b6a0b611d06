package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/reimoyisuki/ToDoList/internal/user"
)

// Common errors. ErrInvalidCredentials covers both an unknown identity and a
// wrong password so responses never reveal which identifier exists.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrIdentityTaken      = errors.New("username or email already in use")
	ErrMissingFields      = errors.New("username, email and password are required")
	ErrInvalidEmail       = errors.New("invalid email address")
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)

// Service handles registration and authentication
type Service struct {
	users  *user.Repository
	tokens *TokenManager
}

// NewService creates a new auth service
func NewService(users *user.Repository, tokens *TokenManager) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register creates a new account and issues a bearer token for it
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (string, *user.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if username == "" || email == "" || req.Password == "" {
		return "", nil, ErrMissingFields
	}
	if !emailPattern.MatchString(email) {
		return "", nil, ErrInvalidEmail
	}

	existing, err := s.users.GetByEmailOrUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if existing == nil {
		existing, err = s.users.GetByEmailOrUsername(ctx, email)
		if err != nil {
			return "", nil, err
		}
	}
	if existing != nil {
		return "", nil, ErrIdentityTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	u, err := s.users.Create(ctx, username, email, string(hash))
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(u.ID, u.Username)
	if err != nil {
		return "", nil, err
	}

	return token, u, nil
}

// Login verifies credentials by email or username and issues a bearer token.
// The user is marked online and their activity timestamp refreshed.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (string, *user.User, error) {
	identifier := strings.TrimSpace(req.Email)
	if identifier == "" {
		identifier = strings.TrimSpace(req.Username)
	}
	if identifier == "" || req.Password == "" {
		return "", nil, ErrInvalidCredentials
	}

	u, err := s.users.GetByEmailOrUsername(ctx, identifier)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Username)
	if err != nil {
		return "", nil, err
	}

	if err := s.users.SetOnline(ctx, u.ID, true); err != nil {
		return "", nil, err
	}
	if err := s.users.TouchActivity(ctx, u.ID); err != nil {
		return "", nil, err
	}

	return token, u, nil
}

// Logout clears the user's online flag
func (s *Service) Logout(ctx context.Context, userID int64) error {
	return s.users.SetOnline(ctx, userID, false)
}
