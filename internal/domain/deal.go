package domain

import "strings"

// Normalize trims the text fields and fills the optional ones with their
// defaults.
func (d NewDeal) Normalize() NewDeal {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.PartnerName = strings.TrimSpace(d.PartnerName)
	d.DiscountValue = strings.TrimSpace(d.DiscountValue)
	d.LogoURL = strings.TrimSpace(d.LogoURL)

	conditions := make([]string, 0, len(d.EligibilityConditions))
	for _, c := range d.EligibilityConditions {
		if c = strings.TrimSpace(c); c != "" {
			conditions = append(conditions, c)
		}
	}
	d.EligibilityConditions = conditions
	return d
}

func (d NewDeal) Validate() error {
	if d.Title == "" || d.Description == "" || d.PartnerName == "" || d.Category == "" || d.DiscountValue == "" {
		return InvalidInput("please provide all required fields")
	}
	if !d.Category.Valid() {
		return InvalidInput("invalid category")
	}
	return nil
}
