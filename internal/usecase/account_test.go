package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/azizikri/startup-deals/internal/auth"
	"github.com/azizikri/startup-deals/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister_Success(t *testing.T) {
	var stored domain.User
	store := &mockStore{
		createUserFn: func(ctx context.Context, user domain.User) (domain.User, error) {
			user.ID = uuid.New()
			stored = user
			return user, nil
		},
	}

	svc := NewAccountService(store, &mockIssuer{}, bcrypt.MinCost)
	session, err := svc.Register(context.Background(), " Ada ", " Ada@Example.com ", "secret1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if stored.Email != "ada@example.com" || stored.Name != "Ada" {
		t.Fatalf("expected normalized user, got %+v", stored)
	}
	if stored.Role != domain.RoleUser || stored.IsVerified {
		t.Fatalf("new accounts must be unverified standard users, got %+v", stored)
	}
	if !auth.VerifyPassword(stored.PasswordHash, "secret1") {
		t.Fatal("stored hash does not match password")
	}
	if !strings.HasPrefix(session.Token.Token, "token-") {
		t.Fatalf("unexpected token %q", session.Token.Token)
	}
}

func TestRegister_InvalidInput(t *testing.T) {
	tests := []struct {
		name, userName, email, password string
	}{
		{name: "missing name", email: "a@b.co", password: "secret1"},
		{name: "missing email", userName: "A", password: "secret1"},
		{name: "malformed email", userName: "A", email: "not-an-email", password: "secret1"},
		{name: "short password", userName: "A", email: "a@b.co", password: "123"},
	}

	store := &mockStore{
		createUserFn: func(ctx context.Context, user domain.User) (domain.User, error) {
			t.Fatal("invalid registration reached the store")
			return domain.User{}, nil
		},
	}
	svc := NewAccountService(store, &mockIssuer{}, bcrypt.MinCost)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	store := &mockStore{
		createUserFn: func(ctx context.Context, user domain.User) (domain.User, error) {
			return domain.User{}, domain.ErrEmailTaken
		},
	}

	svc := NewAccountService(store, &mockIssuer{}, bcrypt.MinCost)
	_, err := svc.Register(context.Background(), "A", "a@b.co", "secret1")
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("secret1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := domain.User{ID: uuid.New(), Email: "ada@example.com", PasswordHash: hash}
	store := &mockStore{
		getUserByEmailFn: func(ctx context.Context, email string) (domain.User, error) {
			if email != user.Email {
				return domain.User{}, domain.ErrUserNotFound
			}
			return user, nil
		},
	}
	svc := NewAccountService(store, &mockIssuer{}, bcrypt.MinCost)

	session, err := svc.Login(context.Background(), "ADA@example.com", "secret1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if session.User.ID != user.ID {
		t.Fatalf("unexpected user %s", session.User.ID)
	}

	if _, err := svc.Login(context.Background(), user.Email, "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "ghost@example.com", "secret1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMe(t *testing.T) {
	svc := NewAccountService(&mockStore{}, &mockIssuer{}, bcrypt.MinCost)

	if _, err := svc.Me(context.Background(), uuid.Nil); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	id := uuid.New()
	user, err := svc.Me(context.Background(), id)
	if err != nil || user.ID != id {
		t.Fatalf("unexpected result %+v, %v", user, err)
	}
}

func TestNewClaimCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := NewClaimCode()
		if len(code) != claimCodeLength {
			t.Fatalf("expected length %d, got %q", claimCodeLength, code)
		}
		for _, r := range code {
			if !strings.ContainsRune(claimCodeAlphabet, r) {
				t.Fatalf("unexpected rune %q in %q", r, code)
			}
		}
	}
}
