package usecase

import (
	"context"

	"github.com/azizikri/startup-deals/internal/domain"
	"github.com/google/uuid"
)

// UserLookup is the identity store as seen by the claim workflow.
type UserLookup interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

// DealLookup is the offer catalog as seen by the claim workflow.
type DealLookup interface {
	GetDealByID(ctx context.Context, id uuid.UUID) (domain.Deal, error)
}

type ClaimLedger interface {
	InsertClaim(ctx context.Context, userID, dealID uuid.UUID, code string) (domain.Claim, error)
	FindClaim(ctx context.Context, userID, dealID uuid.UUID) (domain.Claim, error)
	ListClaimsForUser(ctx context.Context, userID uuid.UUID) ([]domain.ClaimDetails, error)
	ListAllClaims(ctx context.Context) ([]domain.ClaimDetails, error)
}

type DealCatalog interface {
	DealLookup
	ListDeals(ctx context.Context, filter domain.DealFilter) ([]domain.Deal, error)
	CreateDeal(ctx context.Context, deal domain.NewDeal) (domain.Deal, error)
}

type AccountStore interface {
	UserLookup
	CreateUser(ctx context.Context, user domain.User) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
}

// MarketplaceGateway is what the HTTP layer talks to. It is served either in
// process or over Kafka request/reply.
type MarketplaceGateway interface {
	ClaimDeal(ctx context.Context, userID, dealID string) (*domain.Claim, error)
	ListMyClaims(ctx context.Context, userID string) ([]domain.ClaimDetails, error)
	ListAllClaims(ctx context.Context) ([]domain.ClaimDetails, error)
	ListDeals(ctx context.Context, filter domain.DealFilter) ([]domain.Deal, error)
	GetDeal(ctx context.Context, id string) (*domain.Deal, error)
	CreateDeal(ctx context.Context, deal domain.NewDeal) (*domain.Deal, error)
}
