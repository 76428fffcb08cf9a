package http

import (
	"context"
	"net/http"

	"github.com/azizikri/startup-deals/internal/auth"
	"github.com/azizikri/startup-deals/internal/domain"
)

type ClaimRequest struct {
	DealID string `json:"dealId"`
}

func (h *Handler) ClaimDeal(w http.ResponseWriter, r *http.Request) {
	var req ClaimRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	claim, err := h.gateway.ClaimDeal(ctx, callerID(r), req.DealID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, claim)
}

func (h *Handler) ListMyClaims(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	claims, err := h.gateway.ListMyClaims(ctx, callerID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(claims))
}

func (h *Handler) ListAllClaims(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	claims, err := h.gateway.ListAllClaims(ctx)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(claims))
}

// callerID is empty when no identity is attached, which the claim workflow
// reports as unauthenticated.
func callerID(r *http.Request) string {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		return ""
	}
	return identity.UserID.String()
}

func nonNil[T domain.Deal | domain.ClaimDetails](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
