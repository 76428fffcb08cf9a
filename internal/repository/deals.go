package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	db "github.com/azizikri/startup-deals/db/gen"
	"github.com/azizikri/startup-deals/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

func (s *store) CreateDeal(ctx context.Context, deal domain.NewDeal) (domain.Deal, error) {
	row, err := s.queries.CreateDeal(ctx, CreateDealParams(deal))
	if err != nil {
		return domain.Deal{}, fmt.Errorf("create deal: %w", err)
	}
	return toDeal(row), nil
}

func (s *store) GetDealByID(ctx context.Context, id uuid.UUID) (domain.Deal, error) {
	row, err := s.queries.GetDealByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Deal{}, domain.ErrDealNotFound
		}
		return domain.Deal{}, fmt.Errorf("get deal: %w", err)
	}
	return toDeal(row), nil
}

func (s *store) ListDeals(ctx context.Context, filter domain.DealFilter) ([]domain.Deal, error) {
	rows, err := s.queries.ListDeals(ctx, listDealsParams(filter))
	if err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}

	deals := make([]domain.Deal, 0, len(rows))
	for _, row := range rows {
		deals = append(deals, toDeal(row))
	}
	return deals, nil
}

func (s *store) CountDeals(ctx context.Context) (int64, error) {
	return s.queries.CountDeals(ctx)
}

// CreateDealParams maps a validated deal onto the generated insert params.
func CreateDealParams(deal domain.NewDeal) db.CreateDealParams {
	conditions := deal.EligibilityConditions
	if conditions == nil {
		conditions = []string{}
	}
	return db.CreateDealParams{
		Title:                 deal.Title,
		Description:           deal.Description,
		PartnerName:           deal.PartnerName,
		Category:              string(deal.Category),
		DiscountValue:         deal.DiscountValue,
		IsLocked:              deal.IsLocked,
		EligibilityConditions: conditions,
		LogoUrl:               deal.LogoURL,
	}
}

func listDealsParams(filter domain.DealFilter) db.ListDealsParams {
	var params db.ListDealsParams

	if filter.Category != "" {
		params.Category = pgtype.Text{String: string(filter.Category), Valid: true}
	}

	switch filter.AccessLevel {
	case domain.AccessLocked:
		params.IsLocked = pgtype.Bool{Bool: true, Valid: true}
	case domain.AccessUnlocked:
		params.IsLocked = pgtype.Bool{Bool: false, Valid: true}
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		params.Search = pgtype.Text{String: escapeLike(search), Valid: true}
	}
	return params
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func toDeal(row db.Deal) domain.Deal {
	conditions := row.EligibilityConditions
	if conditions == nil {
		conditions = []string{}
	}
	return domain.Deal{
		ID:                    row.ID,
		Title:                 row.Title,
		Description:           row.Description,
		PartnerName:           row.PartnerName,
		Category:              domain.Category(row.Category),
		DiscountValue:         row.DiscountValue,
		IsLocked:              row.IsLocked,
		EligibilityConditions: conditions,
		LogoURL:               row.LogoUrl,
		CreatedAt:             row.CreatedAt.Time,
	}
}
