package repository

import (
	"context"
	"fmt"

	db "github.com/azizikri/startup-deals/db/gen"
	"github.com/azizikri/startup-deals/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	ExecTx(ctx context.Context, fn func(Querier) error) error

	CreateUser(ctx context.Context, user domain.User) (domain.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	CreateDeal(ctx context.Context, deal domain.NewDeal) (domain.Deal, error)
	GetDealByID(ctx context.Context, id uuid.UUID) (domain.Deal, error)
	ListDeals(ctx context.Context, filter domain.DealFilter) ([]domain.Deal, error)
	CountDeals(ctx context.Context) (int64, error)

	InsertClaim(ctx context.Context, userID, dealID uuid.UUID, code string) (domain.Claim, error)
	FindClaim(ctx context.Context, userID, dealID uuid.UUID) (domain.Claim, error)
	ListClaimsForUser(ctx context.Context, userID uuid.UUID) ([]domain.ClaimDetails, error)
	ListAllClaims(ctx context.Context) ([]domain.ClaimDetails, error)
}

// Querier is the subset of generated queries usable inside ExecTx.
type Querier interface {
	CreateDeal(ctx context.Context, arg db.CreateDealParams) (db.Deal, error)
	DeleteUnclaimedDeals(ctx context.Context) (int64, error)
	CreateUser(ctx context.Context, arg db.CreateUserParams) (db.User, error)
}

type store struct {
	pool    *pgxpool.Pool
	queries *db.Queries
}

func New(pool *pgxpool.Pool) Store {
	return &store{
		pool:    pool,
		queries: db.New(pool),
	}
}

func (s *store) ExecTx(ctx context.Context, fn func(Querier) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	q := s.queries.WithTx(tx)
	if err := fn(q); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("tx err: %v, rollback err: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
