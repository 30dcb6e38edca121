// File: internal/dtos/listing.go
package dtos

import (
    "fmt"
    "math"
    "strconv"
    "strings"

    "github.com/iyunix/campus-market/internal/domain"
)

// ListingSubmissionRequestDTO is the sell/lease form. Only email, itemName and price are required.
type ListingSubmissionRequestDTO struct {
    SellerName      string `json:"sellerName"`
    Email           string `json:"email"`
    ContactNumber   string `json:"contactNumber"`
    WhatsappNumber  string `json:"whatsappNumber"`
    ItemName        string `json:"itemName"`
    ItemDescription string `json:"itemDescription"`
    Price           string `json:"price"`
    PricePeriod     string `json:"pricePeriod"`
    ImageCount      int    `json:"-"`
}

// ValidatedSubmission is a submission that passed validation, with the price parsed.
type ValidatedSubmission struct {
    SellerName      string
    Email           string
    ContactNumber   string
    WhatsappNumber  string
    ItemName        string
    ItemDescription string
    Price           float64
    PricePeriod     string
}

// ValidationError names the first failing field and a message fit for the submitter.
type ValidationError struct {
    Field  string
    Reason string
}

func (e *ValidationError) Error() string {
    return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validate checks email domain, item name, price and image count, in that order.
// The first failure wins. emailDomain includes the leading '@'.
func (r ListingSubmissionRequestDTO) Validate(emailDomain string) (*ValidatedSubmission, error) {
    email := strings.TrimSpace(r.Email)
    if email == "" || !strings.HasSuffix(strings.ToLower(email), strings.ToLower(emailDomain)) || len(email) == len(emailDomain) {
        return nil, &ValidationError{Field: "email", Reason: fmt.Sprintf("Email must be %s domain", emailDomain)}
    }

    itemName := strings.TrimSpace(r.ItemName)
    if itemName == "" {
        return nil, &ValidationError{Field: "itemName", Reason: "Item name is required"}
    }

    rawPrice := strings.TrimSpace(r.Price)
    if rawPrice == "" {
        return nil, &ValidationError{Field: "price", Reason: "Price is required"}
    }
    price, err := strconv.ParseFloat(rawPrice, 64)
    if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
        return nil, &ValidationError{Field: "price", Reason: "Price must be a non-negative number"}
    }

    if r.ImageCount > domain.MaxListingImages {
        return nil, &ValidationError{Field: "images", Reason: fmt.Sprintf("At most %d images are allowed", domain.MaxListingImages)}
    }

    return &ValidatedSubmission{
        SellerName:      strings.TrimSpace(r.SellerName),
        Email:           email,
        ContactNumber:   strings.TrimSpace(r.ContactNumber),
        WhatsappNumber:  strings.TrimSpace(r.WhatsappNumber),
        ItemName:        itemName,
        ItemDescription: strings.TrimSpace(r.ItemDescription),
        Price:           price,
        PricePeriod:     strings.TrimSpace(r.PricePeriod),
    }, nil
}

// OTPVerificationRequestDTO is posted by the OTP entry form.
type OTPVerificationRequestDTO struct {
    ID    string `json:"id"`
    Email string `json:"email"`
    OTP   string `json:"otp"`
}

// Validate only checks presence; whether the values match is the verifier's call.
func (r OTPVerificationRequestDTO) Validate() error {
    switch {
    case strings.TrimSpace(r.ID) == "":
        return &ValidationError{Field: "id", Reason: "Listing id is required"}
    case strings.TrimSpace(r.Email) == "":
        return &ValidationError{Field: "email", Reason: "Email is required"}
    case strings.TrimSpace(r.OTP) == "":
        return &ValidationError{Field: "otp", Reason: "OTP is required"}
    }
    return nil
}

// ContactViewRequestDTO is sent when a visitor reveals a listing's contact details.
type ContactViewRequestDTO struct {
    ID   string `json:"id"`
    Type string `json:"type"`
}

// Validate parses the category and requires an id.
func (r ContactViewRequestDTO) Validate() (domain.Category, error) {
    category, err := domain.ParseCategory(r.Type)
    if err != nil {
        return "", &ValidationError{Field: "type", Reason: "Type must be sell or lease"}
    }
    if strings.TrimSpace(r.ID) == "" {
        return "", &ValidationError{Field: "id", Reason: "Listing id is required"}
    }
    return category, nil
}
