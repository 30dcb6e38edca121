// File: internal/domain/challenge.go
package domain

// Challenge is a pending OTP verification. The e-mail is the key: there is
// at most one challenge per e-mail regardless of category.
type Challenge struct {
	Email     string   `json:"email"`
	Code      string   `json:"code"`
	ListingID string   `json:"listingId"`
	Category  Category `json:"category"`
}

// Matches reports whether the supplied verification parameters target this challenge.
func (c *Challenge) Matches(category Category, listingID, code string) bool {
	return c.Code == code && c.ListingID == listingID && c.Category == category
}
