package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	db "github.com/azizikri/startup-deals/db/gen"
	"github.com/azizikri/startup-deals/internal/auth"
	"github.com/azizikri/startup-deals/internal/config"
	"github.com/azizikri/startup-deals/internal/domain"
	"github.com/azizikri/startup-deals/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

var seedDeals = []domain.NewDeal{
	{
		Title:                 "AWS Cloud Credits",
		Description:           "Get $5,000 in AWS activate credits for 2 years. Scale your infrastructure with the world's most comprehensive and broadly adopted cloud platform.",
		PartnerName:           "Amazon Web Services",
		Category:              domain.CategoryCloud,
		DiscountValue:         "$5,000 Credits",
		IsLocked:              true,
		EligibilityConditions: []string{"Early-stage startup", "Less than $1M in funding", "New AWS customer"},
		LogoURL:               "https://upload.wikimedia.org/wikipedia/commons/9/93/Amazon_Web_Services_Logo.svg",
	},
	{
		Title:                 "Stripe Payment Processing",
		Description:           "Fee-free processing on your first $20,000 in sales. The best software platform for running an internet business.",
		PartnerName:           "Stripe",
		Category:              domain.CategoryOther,
		DiscountValue:         "$20k Fee-free",
		EligibilityConditions: []string{"New Stripe user"},
		LogoURL:               "https://upload.wikimedia.org/wikipedia/commons/b/ba/Stripe_Logo%2C_revised_2016.svg",
	},
	{
		Title:                 "HubSpot for Startups",
		Description:           "Up to 90% off HubSpot's growth suite. CRM, marketing, sales, and customer service software.",
		PartnerName:           "HubSpot",
		Category:              domain.CategoryMarketing,
		DiscountValue:         "90% Off",
		IsLocked:              true,
		EligibilityConditions: []string{"Member of an approved accelerator", "Seed or Series A"},
		LogoURL:               "https://upload.wikimedia.org/wikipedia/commons/3/3f/HubSpot_Logo.svg",
	},
	{
		Title:                 "Notion Plus Plan",
		Description:           "6 months free of Notion Plus, including unlimited AI. Your connected workspace for wiki, docs & projects.",
		PartnerName:           "Notion",
		Category:              domain.CategoryProductivity,
		DiscountValue:         "6 Months Free",
		EligibilityConditions: []string{"New Plus plan customer"},
		LogoURL:               "https://upload.wikimedia.org/wikipedia/commons/4/45/Notion_app_logo.png",
	},
	{
		Title:                 "Mixpanel Analytics",
		Description:           "Get $50,000 in credits to track your product metrics. Understand every user's journey.",
		PartnerName:           "Mixpanel",
		Category:              domain.CategoryAnalytics,
		DiscountValue:         "$50,000 Credits",
		IsLocked:              true,
		EligibilityConditions: []string{"Less than $5M in funding", "Startup founder"},
		LogoURL:               "https://upload.wikimedia.org/wikipedia/commons/b/b3/Mixpanel_Logo.svg",
	},
}

func main() {
	reset := flag.Bool("reset", false, "delete unclaimed deals before seeding")
	flag.Parse()

	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("Failed to create pool: %v", err)
	}
	defer pool.Close()

	if err := repository.RunMigrations(ctx, pool, cfg.Migrations); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	store := repository.New(pool)

	if err := seedCatalog(ctx, store, *reset); err != nil {
		log.Fatalf("Failed to seed deals: %v", err)
	}
	if err := seedAdmin(ctx, store, cfg.BcryptCost()); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}
	log.Println("Database seeded successfully")
}

func seedCatalog(ctx context.Context, store repository.Store, reset bool) error {
	return store.ExecTx(ctx, func(q repository.Querier) error {
		if reset {
			n, err := q.DeleteUnclaimedDeals(ctx)
			if err != nil {
				return err
			}
			log.Printf("Removed %d unclaimed deals", n)
		} else if count, err := store.CountDeals(ctx); err != nil {
			return err
		} else if count > 0 {
			log.Printf("Catalog already has %d deals, skipping (use -reset to reseed)", count)
			return nil
		}

		for _, deal := range seedDeals {
			if err := deal.Validate(); err != nil {
				return err
			}
			if _, err := q.CreateDeal(ctx, repository.CreateDealParams(deal)); err != nil {
				return err
			}
		}
		log.Printf("Inserted %d deals", len(seedDeals))
		return nil
	})
}

// seedAdmin creates a verified admin from SEED_ADMIN_EMAIL and
// SEED_ADMIN_PASSWORD when both are set and the email is free.
func seedAdmin(ctx context.Context, store repository.Store, bcryptCost int) error {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("SEED_ADMIN_EMAIL")))
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	if _, err := store.GetUserByEmail(ctx, email); err == nil {
		log.Printf("Admin %s already exists", email)
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password, bcryptCost)
	if err != nil {
		return err
	}
	name := os.Getenv("SEED_ADMIN_NAME")
	if name == "" {
		name = "Admin"
	}

	return store.ExecTx(ctx, func(q repository.Querier) error {
		_, err := q.CreateUser(ctx, db.CreateUserParams{
			Name:         name,
			Email:        email,
			PasswordHash: hash,
			Role:         string(domain.RoleAdmin),
			IsVerified:   true,
		})
		if err == nil {
			log.Printf("Created admin %s", email)
		}
		return err
	})
}
