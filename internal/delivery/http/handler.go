package http

import (
	"context"
	"time"

	"github.com/azizikri/startup-deals/internal/delivery/http/middleware"
	"github.com/azizikri/startup-deals/internal/domain"
	"github.com/azizikri/startup-deals/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const requestTimeout = 5 * time.Second

// Accounts is the account service as seen by the auth handlers.
type Accounts interface {
	Register(ctx context.Context, name, email, password string) (*usecase.Session, error)
	Login(ctx context.Context, email, password string) (*usecase.Session, error)
	Me(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

type Handler struct {
	gateway  usecase.MarketplaceGateway
	accounts Accounts
	tokens   middleware.TokenParser
	cache    *middleware.Cache
	limiter  *middleware.RateLimiter
}

// NewHandler wires the API. cache and limiter may be nil.
func NewHandler(
	gateway usecase.MarketplaceGateway,
	accounts Accounts,
	tokens middleware.TokenParser,
	cache *middleware.Cache,
	limiter *middleware.RateLimiter,
) *Handler {
	return &Handler{
		gateway:  gateway,
		accounts: accounts,
		tokens:   tokens,
		cache:    cache,
		limiter:  limiter,
	}
}

func (h *Handler) Routes(r chi.Router) {
	requireAuth := middleware.RequireAuth(h.tokens)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.With(requireAuth).Get("/me", h.Me)
		})

		r.Route("/deals", func(r chi.Router) {
			r.With(h.cache.Handler).Get("/", h.ListDeals)
			r.With(h.cache.Handler).Get("/{id}", h.GetDeal)
			r.With(requireAuth, middleware.RequireAdmin, h.cache.InvalidateOnSuccess).Post("/", h.CreateDeal)
		})

		r.Route("/claims", func(r chi.Router) {
			r.Use(requireAuth)
			r.With(h.limiter.Handler).Post("/", h.ClaimDeal)
			r.Get("/my", h.ListMyClaims)
			r.With(middleware.RequireAdmin).Get("/all", h.ListAllClaims)
		})
	})
}
