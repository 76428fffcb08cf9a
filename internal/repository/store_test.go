package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/azizikri/startup-deals/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"aws":      "aws",
		"50%":      `50\%`,
		"a_b":      `a\_b`,
		`back\up`:  `back\\up`,
		`%_\`:      `\%\_\\`,
	}
	for in, want := range cases {
		if got := escapeLike(in); got != want {
			t.Errorf("escapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestListDealsParams(t *testing.T) {
	params := listDealsParams(domain.DealFilter{})
	if params.Category.Valid || params.IsLocked.Valid || params.Search.Valid {
		t.Fatalf("expected empty filter to produce null params, got %+v", params)
	}

	params = listDealsParams(domain.DealFilter{
		Category:    domain.CategoryCloud,
		Search:      "  aws ",
		AccessLevel: domain.AccessUnlocked,
	})
	if !params.Category.Valid || params.Category.String != "Cloud" {
		t.Errorf("unexpected category param: %+v", params.Category)
	}
	if !params.IsLocked.Valid || params.IsLocked.Bool {
		t.Errorf("unexpected is_locked param: %+v", params.IsLocked)
	}
	if !params.Search.Valid || params.Search.String != "aws" {
		t.Errorf("unexpected search param: %+v", params.Search)
	}

	params = listDealsParams(domain.DealFilter{AccessLevel: domain.AccessLocked, Search: "   "})
	if !params.IsLocked.Valid || !params.IsLocked.Bool {
		t.Errorf("expected locked filter, got %+v", params.IsLocked)
	}
	if params.Search.Valid {
		t.Errorf("expected blank search to be ignored, got %+v", params.Search)
	}
}

func TestPgCodeDetection(t *testing.T) {
	unique := fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: pgUniqueViolation})
	if !isUniqueViolation(unique) {
		t.Error("expected unique violation to be detected through wrapping")
	}
	if isForeignKeyViolation(unique) {
		t.Error("unique violation misread as foreign key violation")
	}
	if !isForeignKeyViolation(&pgconn.PgError{Code: pgForeignKeyViolation}) {
		t.Error("expected foreign key violation to be detected")
	}
	if isUniqueViolation(errors.New("duplicate key value violates unique constraint")) {
		t.Error("plain errors must not be classified by text")
	}
}

func TestCreateDealParams_NilConditions(t *testing.T) {
	params := CreateDealParams(domain.NewDeal{Title: "x", Category: domain.CategoryOther})
	if params.EligibilityConditions == nil {
		t.Fatal("expected empty, non-nil conditions for a NOT NULL array column")
	}
	if params.Category != "Other" {
		t.Fatalf("expected category Other, got %s", params.Category)
	}
}
