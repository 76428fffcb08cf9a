package kafka

import (
	"context"

	"github.com/azizikri/startup-deals/internal/domain"
	"github.com/azizikri/startup-deals/internal/usecase"
)

type DirectGateway struct {
	claims *usecase.ClaimService
	deals  *usecase.DealService
}

func NewDirectGateway(claims *usecase.ClaimService, deals *usecase.DealService) usecase.MarketplaceGateway {
	return &DirectGateway{claims: claims, deals: deals}
}

func (g *DirectGateway) ClaimDeal(ctx context.Context, userID, dealID string) (*domain.Claim, error) {
	return g.claims.ClaimDeal(ctx, userID, dealID)
}

func (g *DirectGateway) ListMyClaims(ctx context.Context, userID string) ([]domain.ClaimDetails, error) {
	return g.claims.ListMyClaims(ctx, userID)
}

func (g *DirectGateway) ListAllClaims(ctx context.Context) ([]domain.ClaimDetails, error) {
	return g.claims.ListAllClaims(ctx)
}

func (g *DirectGateway) ListDeals(ctx context.Context, filter domain.DealFilter) ([]domain.Deal, error) {
	return g.deals.ListDeals(ctx, filter)
}

func (g *DirectGateway) GetDeal(ctx context.Context, id string) (*domain.Deal, error) {
	return g.deals.GetDeal(ctx, id)
}

func (g *DirectGateway) CreateDeal(ctx context.Context, deal domain.NewDeal) (*domain.Deal, error) {
	return g.deals.CreateDeal(ctx, deal)
}
