package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/azizikri/startup-deals/internal/auth"
	"github.com/azizikri/startup-deals/internal/domain"
	"github.com/google/uuid"
)

const minPasswordLength = 6

type TokenIssuer interface {
	Issue(user domain.User) (auth.AccessToken, error)
}

type Session struct {
	User  domain.User      `json:"user"`
	Token auth.AccessToken `json:"token"`
}

type AccountService struct {
	store      AccountStore
	tokens     TokenIssuer
	bcryptCost int
}

func NewAccountService(store AccountStore, tokens TokenIssuer, bcryptCost int) *AccountService {
	return &AccountService{store: store, tokens: tokens, bcryptCost: bcryptCost}
}

// Register creates a standard, unverified user and signs them in.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (*Session, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, domain.InvalidInput("name, email and password are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.InvalidInput("email is malformed")
	}
	if len(password) < minPasswordLength {
		return nil, domain.InvalidInput(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	})
	if err != nil {
		return nil, err
	}
	return s.session(user)
}

func (s *AccountService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.InvalidInput("email and password are required")
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}
	return s.session(user)
}

func (s *AccountService) Me(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AccountService) session(user domain.User) (*Session, error) {
	tok, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: tok}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
