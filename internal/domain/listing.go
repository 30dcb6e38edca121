// File: internal/domain/listing.go
package domain

import "time"

// MaxListingImages caps how many images a single listing may carry.
const MaxListingImages = 5

// Listing is one item offered for sale or lease.
// A listing starts as a draft and becomes publicly visible once published.
type Listing struct {
	ID              string    `json:"id"`
	Category        Category  `json:"category,omitempty"`
	SellerName      string    `json:"sellerName"`
	Email           string    `json:"email"`
	ContactNumber   string    `json:"contactNumber"`
	WhatsappNumber  string    `json:"whatsappNumber"`
	ItemName        string    `json:"itemName"`
	ItemDescription string    `json:"itemDescription"`
	Price           float64   `json:"price"`
	PricePeriod     string    `json:"pricePeriod"`
	Images          []string  `json:"images"`
	IsPublished     bool      `json:"isPublished"`
	OTPVerified     bool      `json:"otpVerified"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Publish moves a draft to the published state. Both flags always move together.
func (l *Listing) Publish() {
	l.IsPublished = true
	l.OTPVerified = true
}

// FindByID returns a pointer into listings so callers can mutate in place.
func FindByID(listings []Listing, id string) *Listing {
	for i := range listings {
		if listings[i].ID == id {
			return &listings[i]
		}
	}
	return nil
}

// FilterPublished keeps stored order and never returns nil.
func FilterPublished(listings []Listing) []Listing {
	published := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if l.IsPublished {
			published = append(published, l)
		}
	}
	return published
}
