package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/azizikri/startup-deals/internal/domain"
	"github.com/google/uuid"
)

type ClaimService struct {
	users   UserLookup
	deals   DealLookup
	ledger  ClaimLedger
	newCode func() string
}

func NewClaimService(users UserLookup, deals DealLookup, ledger ClaimLedger) *ClaimService {
	return &ClaimService{
		users:   users,
		deals:   deals,
		ledger:  ledger,
		newCode: NewClaimCode,
	}
}

// ClaimDeal issues a pending claim for userID on dealID.
//
// Checks run in a fixed order so the reported error is stable: deal id
// shape, caller identity, deal existence, user existence, verification for
// locked deals, and finally the ledger insert. The FindClaim lookup only
// gives a friendlier answer in the common case; concurrent duplicates are
// rejected by the ledger's unique constraint.
func (s *ClaimService) ClaimDeal(ctx context.Context, userID, dealID string) (*domain.Claim, error) {
	dealID = strings.TrimSpace(dealID)
	if dealID == "" {
		return nil, domain.InvalidInput("deal ID is required")
	}
	dID, err := uuid.Parse(dealID)
	if err != nil {
		return nil, domain.InvalidInput("deal ID is malformed")
	}

	uID, err := uuid.Parse(strings.TrimSpace(userID))
	if err != nil || uID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}

	deal, err := s.deals.GetDealByID(ctx, dID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, uID)
	if err != nil {
		return nil, err
	}

	if deal.IsLocked && !user.IsVerified {
		return nil, domain.ErrForbidden
	}

	if _, err := s.ledger.FindClaim(ctx, uID, dID); err == nil {
		return nil, domain.ErrAlreadyClaimed
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	claim, err := s.ledger.InsertClaim(ctx, uID, dID, s.newCode())
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

func (s *ClaimService) ListMyClaims(ctx context.Context, userID string) ([]domain.ClaimDetails, error) {
	uID, err := uuid.Parse(strings.TrimSpace(userID))
	if err != nil || uID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.ledger.ListClaimsForUser(ctx, uID)
}

func (s *ClaimService) ListAllClaims(ctx context.Context) ([]domain.ClaimDetails, error) {
	return s.ledger.ListAllClaims(ctx)
}
