package repository

import (
	"context"
	"errors"
	"fmt"

	db "github.com/azizikri/startup-deals/db/gen"
	"github.com/azizikri/startup-deals/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (s *store) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	row, err := s.queries.CreateUser(ctx, createUserParams(user))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return toUser(row), nil
}

func (s *store) GetUserByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	row, err := s.queries.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return toUser(row), nil
}

func (s *store) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user by email: %w", err)
	}
	return toUser(row), nil
}

func createUserParams(user domain.User) db.CreateUserParams {
	role := user.Role
	if role == "" {
		role = domain.RoleUser
	}
	return db.CreateUserParams{
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         string(role),
		IsVerified:   user.IsVerified,
	}
}

func toUser(row db.User) domain.User {
	return domain.User{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Role:         domain.Role(row.Role),
		IsVerified:   row.IsVerified,
		CreatedAt:    row.CreatedAt.Time,
	}
}
