package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/azizikri/startup-deals/internal/domain"
	"github.com/google/uuid"
)

func newClaimService(store *mockStore) *ClaimService {
	return NewClaimService(store, store, store)
}

func TestClaimDeal_Success(t *testing.T) {
	userID, dealID := uuid.New(), uuid.New()
	store := &mockStore{}

	svc := newClaimService(store)
	claim, err := svc.ClaimDeal(context.Background(), userID.String(), dealID.String())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if claim.UserID != userID || claim.DealID != dealID {
		t.Fatalf("unexpected claim refs: %+v", claim)
	}
	if claim.Status != domain.ClaimPending {
		t.Fatalf("expected pending, got %s", claim.Status)
	}
	if len(claim.ClaimCode) != claimCodeLength {
		t.Fatalf("expected %d char code, got %q", claimCodeLength, claim.ClaimCode)
	}
}

func TestClaimDeal_InvalidDealID(t *testing.T) {
	lookups := 0
	store := &mockStore{
		getDealByIDFn: func(ctx context.Context, id uuid.UUID) (domain.Deal, error) {
			lookups++
			return domain.Deal{}, nil
		},
	}

	svc := newClaimService(store)
	for _, dealID := range []string{"", "   ", "not-a-uuid"} {
		_, err := svc.ClaimDeal(context.Background(), uuid.NewString(), dealID)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("dealID %q: expected ErrInvalidInput, got %v", dealID, err)
		}
	}
	if lookups != 0 {
		t.Fatalf("expected no lookups, got %d", lookups)
	}
}

func TestClaimDeal_UnauthenticatedBeforeAnyLookup(t *testing.T) {
	store := &mockStore{
		getDealByIDFn: func(ctx context.Context, id uuid.UUID) (domain.Deal, error) {
			t.Fatal("deal lookup must not happen for an unauthenticated caller")
			return domain.Deal{}, nil
		},
		getUserByIDFn: func(ctx context.Context, id uuid.UUID) (domain.User, error) {
			t.Fatal("user lookup must not happen for an unauthenticated caller")
			return domain.User{}, nil
		},
	}

	svc := newClaimService(store)
	for _, userID := range []string{"", "garbage", uuid.Nil.String()} {
		_, err := svc.ClaimDeal(context.Background(), userID, uuid.NewString())
		if !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("userID %q: expected ErrUnauthenticated, got %v", userID, err)
		}
	}
}

func TestClaimDeal_DealNotFoundIsNeverForbidden(t *testing.T) {
	store := &mockStore{
		getDealByIDFn: func(ctx context.Context, id uuid.UUID) (domain.Deal, error) {
			return domain.Deal{}, domain.ErrDealNotFound
		},
		getUserByIDFn: func(ctx context.Context, id uuid.UUID) (domain.User, error) {
			return domain.User{ID: id, IsVerified: false}, nil
		},
	}

	svc := newClaimService(store)
	_, err := svc.ClaimDeal(context.Background(), uuid.NewString(), uuid.NewString())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("missing deal reported as forbidden")
	}
}

func TestClaimDeal_UserNotFound(t *testing.T) {
	store := &mockStore{
		getUserByIDFn: func(ctx context.Context, id uuid.UUID) (domain.User, error) {
			return domain.User{}, domain.ErrUserNotFound
		},
	}

	svc := newClaimService(store)
	_, err := svc.ClaimDeal(context.Background(), uuid.NewString(), uuid.NewString())
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestClaimDeal_Eligibility(t *testing.T) {
	tests := []struct {
		name     string
		locked   bool
		verified bool
		wantErr  error
	}{
		{name: "locked deal, unverified user", locked: true, verified: false, wantErr: domain.ErrForbidden},
		{name: "locked deal, verified user", locked: true, verified: true},
		{name: "public deal, unverified user", locked: false, verified: false},
		{name: "public deal, verified user", locked: false, verified: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inserted := false
			store := &mockStore{
				getDealByIDFn: func(ctx context.Context, id uuid.UUID) (domain.Deal, error) {
					return domain.Deal{ID: id, IsLocked: tt.locked}, nil
				},
				getUserByIDFn: func(ctx context.Context, id uuid.UUID) (domain.User, error) {
					return domain.User{ID: id, IsVerified: tt.verified}, nil
				},
				insertClaimFn: func(ctx context.Context, userID, dealID uuid.UUID, code string) (domain.Claim, error) {
					inserted = true
					return domain.Claim{ID: uuid.New(), UserID: userID, DealID: dealID, Status: domain.ClaimPending, ClaimCode: code}, nil
				},
			}

			_, err := newClaimService(store).ClaimDeal(context.Background(), uuid.NewString(), uuid.NewString())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if inserted {
					t.Fatal("ineligible claim reached the ledger")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !inserted {
				t.Fatal("expected ledger insert")
			}
		})
	}
}

func TestClaimDeal_AlreadyClaimedByPreCheck(t *testing.T) {
	store := &mockStore{
		findClaimFn: func(ctx context.Context, userID, dealID uuid.UUID) (domain.Claim, error) {
			return domain.Claim{ID: uuid.New()}, nil
		},
		insertClaimFn: func(ctx context.Context, userID, dealID uuid.UUID, code string) (domain.Claim, error) {
			t.Fatal("insert must not run when the pre-check finds a claim")
			return domain.Claim{}, nil
		},
	}

	_, err := newClaimService(store).ClaimDeal(context.Background(), uuid.NewString(), uuid.NewString())
	if !errors.Is(err, domain.ErrAlreadyClaimed) {
		t.Fatalf("expected ErrAlreadyClaimed, got %v", err)
	}
}

func TestClaimDeal_AlreadyClaimedByConstraint(t *testing.T) {
	store := &mockStore{
		insertClaimFn: func(ctx context.Context, userID, dealID uuid.UUID, code string) (domain.Claim, error) {
			return domain.Claim{}, domain.ErrAlreadyClaimed
		},
	}

	_, err := newClaimService(store).ClaimDeal(context.Background(), uuid.NewString(), uuid.NewString())
	if !errors.Is(err, domain.ErrAlreadyClaimed) {
		t.Fatalf("expected ErrAlreadyClaimed, got %v", err)
	}
}

func TestClaimDeal_PreCheckFailurePropagates(t *testing.T) {
	boom := errors.New("connection reset")
	store := &mockStore{
		findClaimFn: func(ctx context.Context, userID, dealID uuid.UUID) (domain.Claim, error) {
			return domain.Claim{}, boom
		},
	}

	_, err := newClaimService(store).ClaimDeal(context.Background(), uuid.NewString(), uuid.NewString())
	if !errors.Is(err, boom) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

// ledger enforces the (user, deal) uniqueness the way the database does and
// never lets the pre-check see a claim, so every racer reaches the insert.
type ledger struct {
	mockStore
	mu     sync.Mutex
	claims map[[2]uuid.UUID]domain.Claim
}

func newLedger() *ledger {
	l := &ledger{claims: make(map[[2]uuid.UUID]domain.Claim)}
	l.insertClaimFn = func(ctx context.Context, userID, dealID uuid.UUID, code string) (domain.Claim, error) {
		l.mu.Lock()
		defer l.mu.Unlock()
		key := [2]uuid.UUID{userID, dealID}
		if _, ok := l.claims[key]; ok {
			return domain.Claim{}, domain.ErrAlreadyClaimed
		}
		c := domain.Claim{ID: uuid.New(), UserID: userID, DealID: dealID, Status: domain.ClaimPending, ClaimCode: code}
		l.claims[key] = c
		return c, nil
	}
	return l
}

func TestClaimDeal_ConcurrentClaimsForOnePair(t *testing.T) {
	l := newLedger()
	svc := NewClaimService(l, l, l)
	userID, dealID := uuid.NewString(), uuid.NewString()

	var wg sync.WaitGroup
	var successCount, duplicateCount int32
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ClaimDeal(context.Background(), userID, dealID)
			switch {
			case err == nil:
				atomic.AddInt32(&successCount, 1)
			case errors.Is(err, domain.ErrAlreadyClaimed):
				atomic.AddInt32(&duplicateCount, 1)
			}
		}()
	}
	wg.Wait()

	if successCount != 1 {
		t.Errorf("expected 1 success, got %d", successCount)
	}
	if duplicateCount != 49 {
		t.Errorf("expected 49 duplicates, got %d", duplicateCount)
	}
	if len(l.claims) != 1 {
		t.Errorf("expected 1 stored claim, got %d", len(l.claims))
	}
}

func TestClaimDeal_RepeatLeavesFirstClaimUntouched(t *testing.T) {
	l := newLedger()
	svc := NewClaimService(l, l, l)
	userID, dealID := uuid.New(), uuid.New()

	first, err := svc.ClaimDeal(context.Background(), userID.String(), dealID.String())
	if err != nil {
		t.Fatalf("first claim: %v", err)
	}

	_, err = svc.ClaimDeal(context.Background(), userID.String(), dealID.String())
	if !errors.Is(err, domain.ErrAlreadyClaimed) {
		t.Fatalf("expected ErrAlreadyClaimed, got %v", err)
	}

	stored := l.claims[[2]uuid.UUID{userID, dealID}]
	if stored != *first {
		t.Fatalf("first claim changed: before %+v, after %+v", *first, stored)
	}
}

func TestClaimDeal_FreshCodePerClaim(t *testing.T) {
	l := newLedger()
	svc := NewClaimService(l, l, l)
	svc.newCode = func() func() string {
		codes := []string{"AAAAAAAA", "BBBBBBBB"}
		i := 0
		return func() string {
			c := codes[i]
			i++
			return c
		}
	}()

	userID := uuid.NewString()
	a, err := svc.ClaimDeal(context.Background(), userID, uuid.NewString())
	if err != nil {
		t.Fatalf("claim a: %v", err)
	}
	b, err := svc.ClaimDeal(context.Background(), userID, uuid.NewString())
	if err != nil {
		t.Fatalf("claim b: %v", err)
	}
	if a.ClaimCode != "AAAAAAAA" || b.ClaimCode != "BBBBBBBB" {
		t.Fatalf("unexpected codes %s, %s", a.ClaimCode, b.ClaimCode)
	}
}

func TestListMyClaims(t *testing.T) {
	userID := uuid.New()
	store := &mockStore{
		listClaimsForUserFn: func(ctx context.Context, id uuid.UUID) ([]domain.ClaimDetails, error) {
			if id != userID {
				t.Fatalf("unexpected user %s", id)
			}
			return []domain.ClaimDetails{{Claim: domain.Claim{UserID: id}}}, nil
		},
	}

	svc := newClaimService(store)
	claims, err := svc.ListMyClaims(context.Background(), userID.String())
	if err != nil || len(claims) != 1 {
		t.Fatalf("expected 1 claim, got %d (%v)", len(claims), err)
	}

	if _, err := svc.ListMyClaims(context.Background(), ""); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
