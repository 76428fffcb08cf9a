package usecase

import (
	"context"

	"github.com/azizikri/startup-deals/internal/auth"
	"github.com/azizikri/startup-deals/internal/domain"
	"github.com/google/uuid"
)

type mockStore struct {
	getUserByIDFn       func(ctx context.Context, id uuid.UUID) (domain.User, error)
	getUserByEmailFn    func(ctx context.Context, email string) (domain.User, error)
	createUserFn        func(ctx context.Context, user domain.User) (domain.User, error)
	getDealByIDFn       func(ctx context.Context, id uuid.UUID) (domain.Deal, error)
	listDealsFn         func(ctx context.Context, filter domain.DealFilter) ([]domain.Deal, error)
	createDealFn        func(ctx context.Context, deal domain.NewDeal) (domain.Deal, error)
	insertClaimFn       func(ctx context.Context, userID, dealID uuid.UUID, code string) (domain.Claim, error)
	findClaimFn         func(ctx context.Context, userID, dealID uuid.UUID) (domain.Claim, error)
	listClaimsForUserFn func(ctx context.Context, userID uuid.UUID) ([]domain.ClaimDetails, error)
	listAllClaimsFn     func(ctx context.Context) ([]domain.ClaimDetails, error)
}

func (m *mockStore) GetUserByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(ctx, id)
	}
	return domain.User{ID: id, Role: domain.RoleUser}, nil
}

func (m *mockStore) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	if m.getUserByEmailFn != nil {
		return m.getUserByEmailFn(ctx, email)
	}
	return domain.User{}, domain.ErrUserNotFound
}

func (m *mockStore) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	user.ID = uuid.New()
	return user, nil
}

func (m *mockStore) GetDealByID(ctx context.Context, id uuid.UUID) (domain.Deal, error) {
	if m.getDealByIDFn != nil {
		return m.getDealByIDFn(ctx, id)
	}
	return domain.Deal{ID: id}, nil
}

func (m *mockStore) ListDeals(ctx context.Context, filter domain.DealFilter) ([]domain.Deal, error) {
	if m.listDealsFn != nil {
		return m.listDealsFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockStore) CreateDeal(ctx context.Context, deal domain.NewDeal) (domain.Deal, error) {
	if m.createDealFn != nil {
		return m.createDealFn(ctx, deal)
	}
	return domain.Deal{ID: uuid.New(), Title: deal.Title}, nil
}

func (m *mockStore) InsertClaim(ctx context.Context, userID, dealID uuid.UUID, code string) (domain.Claim, error) {
	if m.insertClaimFn != nil {
		return m.insertClaimFn(ctx, userID, dealID, code)
	}
	return domain.Claim{ID: uuid.New(), UserID: userID, DealID: dealID, Status: domain.ClaimPending, ClaimCode: code}, nil
}

func (m *mockStore) FindClaim(ctx context.Context, userID, dealID uuid.UUID) (domain.Claim, error) {
	if m.findClaimFn != nil {
		return m.findClaimFn(ctx, userID, dealID)
	}
	return domain.Claim{}, domain.ErrClaimNotFound
}

func (m *mockStore) ListClaimsForUser(ctx context.Context, userID uuid.UUID) ([]domain.ClaimDetails, error) {
	if m.listClaimsForUserFn != nil {
		return m.listClaimsForUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockStore) ListAllClaims(ctx context.Context) ([]domain.ClaimDetails, error) {
	if m.listAllClaimsFn != nil {
		return m.listAllClaimsFn(ctx)
	}
	return nil, nil
}

type mockIssuer struct {
	issueFn func(user domain.User) (auth.AccessToken, error)
}

func (m *mockIssuer) Issue(user domain.User) (auth.AccessToken, error) {
	if m.issueFn != nil {
		return m.issueFn(user)
	}
	return auth.AccessToken{Token: "token-" + user.ID.String()}, nil
}
