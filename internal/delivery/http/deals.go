package http

import (
	"context"
	"net/http"

	"github.com/azizikri/startup-deals/internal/domain"
	"github.com/go-chi/chi/v5"
)

type CreateDealRequest struct {
	Title                 string   `json:"title"`
	Description           string   `json:"description"`
	PartnerName           string   `json:"partnerName"`
	Category              string   `json:"category"`
	DiscountValue         string   `json:"discountValue"`
	IsLocked              bool     `json:"isLocked"`
	EligibilityConditions []string `json:"eligibilityConditions"`
	LogoURL               string   `json:"logoUrl"`
}

func (req CreateDealRequest) toNewDeal() domain.NewDeal {
	return domain.NewDeal{
		Title:                 req.Title,
		Description:           req.Description,
		PartnerName:           req.PartnerName,
		Category:              domain.Category(req.Category),
		DiscountValue:         req.DiscountValue,
		IsLocked:              req.IsLocked,
		EligibilityConditions: req.EligibilityConditions,
		LogoURL:               req.LogoURL,
	}
}

func (h *Handler) ListDeals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.DealFilter{
		Category:    domain.Category(q.Get("category")),
		Search:      q.Get("search"),
		AccessLevel: domain.AccessLevel(q.Get("accessLevel")),
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	deals, err := h.gateway.ListDeals(ctx, filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(deals))
}

func (h *Handler) GetDeal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	deal, err := h.gateway.GetDeal(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deal)
}

func (h *Handler) CreateDeal(w http.ResponseWriter, r *http.Request) {
	var req CreateDealRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	deal, err := h.gateway.CreateDeal(ctx, req.toNewDeal())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, deal)
}
