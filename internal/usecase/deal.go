package usecase

import (
	"context"
	"strings"

	"github.com/azizikri/startup-deals/internal/domain"
	"github.com/google/uuid"
)

type DealService struct {
	catalog DealCatalog
}

func NewDealService(catalog DealCatalog) *DealService {
	return &DealService{catalog: catalog}
}

func (s *DealService) ListDeals(ctx context.Context, filter domain.DealFilter) ([]domain.Deal, error) {
	if strings.EqualFold(string(filter.Category), "all") {
		filter.Category = ""
	}
	filter.Search = strings.TrimSpace(filter.Search)
	filter.AccessLevel = domain.ParseAccessLevel(string(filter.AccessLevel))
	return s.catalog.ListDeals(ctx, filter)
}

// GetDeal reports a malformed id the same way as a missing deal.
func (s *DealService) GetDeal(ctx context.Context, id string) (*domain.Deal, error) {
	dID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrDealNotFound
	}
	deal, err := s.catalog.GetDealByID(ctx, dID)
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

func (s *DealService) CreateDeal(ctx context.Context, input domain.NewDeal) (*domain.Deal, error) {
	input = input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}
	deal, err := s.catalog.CreateDeal(ctx, input)
	if err != nil {
		return nil, err
	}
	return &deal, nil
}
