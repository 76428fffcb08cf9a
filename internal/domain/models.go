package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type Category string

const (
	CategoryCloud        Category = "Cloud"
	CategoryMarketing    Category = "Marketing"
	CategoryAnalytics    Category = "Analytics"
	CategoryProductivity Category = "Productivity"
	CategoryOther        Category = "Other"
)

// Categories is the closed set a deal may belong to.
var Categories = []Category{
	CategoryCloud,
	CategoryMarketing,
	CategoryAnalytics,
	CategoryProductivity,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type ClaimStatus string

const (
	ClaimPending  ClaimStatus = "pending"
	ClaimApproved ClaimStatus = "approved"
	ClaimRejected ClaimStatus = "rejected"
)

type AccessLevel string

const (
	AccessAll      AccessLevel = ""
	AccessLocked   AccessLevel = "locked"
	AccessUnlocked AccessLevel = "unlocked"
)

// ParseAccessLevel treats anything other than locked/unlocked as no filter.
func ParseAccessLevel(s string) AccessLevel {
	switch AccessLevel(s) {
	case AccessLocked, AccessUnlocked:
		return AccessLevel(s)
	default:
		return AccessAll
	}
}

type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsVerified   bool      `json:"isVerified"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type Deal struct {
	ID                    uuid.UUID `json:"id"`
	Title                 string    `json:"title"`
	Description           string    `json:"description"`
	PartnerName           string    `json:"partnerName"`
	Category              Category  `json:"category"`
	DiscountValue         string    `json:"discountValue"`
	IsLocked              bool      `json:"isLocked"`
	EligibilityConditions []string  `json:"eligibilityConditions"`
	LogoURL               string    `json:"logoUrl"`
	CreatedAt             time.Time `json:"createdAt"`
}

type NewDeal struct {
	Title                 string   `json:"title"`
	Description           string   `json:"description"`
	PartnerName           string   `json:"partnerName"`
	Category              Category `json:"category"`
	DiscountValue         string   `json:"discountValue"`
	IsLocked              bool     `json:"isLocked"`
	EligibilityConditions []string `json:"eligibilityConditions"`
	LogoURL               string   `json:"logoUrl"`
}

type DealFilter struct {
	Category    Category    `json:"category,omitempty"`
	Search      string      `json:"search,omitempty"`
	AccessLevel AccessLevel `json:"accessLevel,omitempty"`
}

type Claim struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"userId"`
	DealID    uuid.UUID   `json:"dealId"`
	Status    ClaimStatus `json:"status"`
	ClaimCode string      `json:"claimCode"`
	CreatedAt time.Time   `json:"createdAt"`
}

type DealSummary struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	PartnerName string    `json:"partnerName"`
	LogoURL     string    `json:"logoUrl"`
	Category    Category  `json:"category"`
}

type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// ClaimDetails is a claim expanded with the display fields of its deal and,
// for administrative listings, its user.
type ClaimDetails struct {
	Claim
	Deal DealSummary  `json:"deal"`
	User *UserSummary `json:"user,omitempty"`
}
