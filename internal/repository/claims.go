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

// InsertClaim relies on the (user_id, deal_id) unique constraint: a conflict
// returns no row, which is reported as domain.ErrAlreadyClaimed.
func (s *store) InsertClaim(ctx context.Context, userID, dealID uuid.UUID, code string) (domain.Claim, error) {
	row, err := s.queries.InsertClaim(ctx, db.InsertClaimParams{
		UserID:    userID,
		DealID:    dealID,
		ClaimCode: code,
	})
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows), isUniqueViolation(err):
			return domain.Claim{}, domain.ErrAlreadyClaimed
		case isForeignKeyViolation(err):
			return domain.Claim{}, fmt.Errorf("insert claim: %w", domain.ErrNotFound)
		}
		return domain.Claim{}, fmt.Errorf("insert claim: %w", err)
	}
	return toClaim(row), nil
}

func (s *store) FindClaim(ctx context.Context, userID, dealID uuid.UUID) (domain.Claim, error) {
	row, err := s.queries.FindClaim(ctx, db.FindClaimParams{UserID: userID, DealID: dealID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Claim{}, domain.ErrClaimNotFound
		}
		return domain.Claim{}, fmt.Errorf("find claim: %w", err)
	}
	return toClaim(row), nil
}

func (s *store) ListClaimsForUser(ctx context.Context, userID uuid.UUID) ([]domain.ClaimDetails, error) {
	rows, err := s.queries.ListClaimsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list claims for user: %w", err)
	}

	claims := make([]domain.ClaimDetails, 0, len(rows))
	for _, row := range rows {
		claims = append(claims, domain.ClaimDetails{
			Claim: domain.Claim{
				ID:        row.ID,
				UserID:    row.UserID,
				DealID:    row.DealID,
				Status:    domain.ClaimStatus(row.Status),
				ClaimCode: row.ClaimCode,
				CreatedAt: row.CreatedAt.Time,
			},
			Deal: domain.DealSummary{
				ID:          row.DealID,
				Title:       row.DealTitle,
				PartnerName: row.DealPartnerName,
				LogoURL:     row.DealLogoUrl,
				Category:    domain.Category(row.DealCategory),
			},
		})
	}
	return claims, nil
}

func (s *store) ListAllClaims(ctx context.Context) ([]domain.ClaimDetails, error) {
	rows, err := s.queries.ListAllClaims(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all claims: %w", err)
	}

	claims := make([]domain.ClaimDetails, 0, len(rows))
	for _, row := range rows {
		claims = append(claims, domain.ClaimDetails{
			Claim: domain.Claim{
				ID:        row.ID,
				UserID:    row.UserID,
				DealID:    row.DealID,
				Status:    domain.ClaimStatus(row.Status),
				ClaimCode: row.ClaimCode,
				CreatedAt: row.CreatedAt.Time,
			},
			Deal: domain.DealSummary{
				ID:          row.DealID,
				Title:       row.DealTitle,
				PartnerName: row.DealPartnerName,
				LogoURL:     row.DealLogoUrl,
				Category:    domain.Category(row.DealCategory),
			},
			User: &domain.UserSummary{
				ID:    row.UserID,
				Name:  row.UserName,
				Email: row.UserEmail,
			},
		})
	}
	return claims, nil
}

func toClaim(row db.Claim) domain.Claim {
	return domain.Claim{
		ID:        row.ID,
		UserID:    row.UserID,
		DealID:    row.DealID,
		Status:    domain.ClaimStatus(row.Status),
		ClaimCode: row.ClaimCode,
		CreatedAt: row.CreatedAt.Time,
	}
}
