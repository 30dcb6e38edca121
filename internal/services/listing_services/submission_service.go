// File: internal/services/listing_services/submission_service.go
package listing_services

import (
    "context"
    "errors"
    "fmt"
    "net/url"
    "time"

    "github.com/google/uuid"

    "github.com/iyunix/campus-market/internal/domain"
    "github.com/iyunix/campus-market/internal/dtos"
    "github.com/iyunix/campus-market/internal/repository/listing"
    "github.com/iyunix/campus-market/internal/services"
    "github.com/iyunix/campus-market/internal/services/otp"
)

// VerificationReference is returned to the submitter so they can reach the OTP form.
type VerificationReference struct {
    ID       string
    Email    string
    Category domain.Category
    URL      string
}

// SubmissionService records draft listings and issues their OTP challenges
type SubmissionService struct {
    collections listing.Collections
    challenges  *otp.Store
    notifier    VerificationNotifier
    emailDomain string
    baseURL     string
    logger      Logger

    newID   func() string
    newCode func() (string, error)
    now     func() time.Time
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(collections listing.Collections, challenges *otp.Store, notifier VerificationNotifier, emailDomain, baseURL string, logger Logger) *SubmissionService {
    return &SubmissionService{
        collections: collections,
        challenges:  challenges,
        notifier:    notifier,
        emailDomain: emailDomain,
        baseURL:     baseURL,
        logger:      logger,
        newID:       uuid.NewString,
        newCode:     otp.GenerateCode,
        now:         time.Now,
    }
}

// EmailDomain is the suffix every submitter e-mail must carry.
func (s *SubmissionService) EmailDomain() string {
    return s.emailDomain
}

// Submit validates the form, stores a draft, replaces any pending challenge
// for the e-mail and queues the OTP mail. Nothing is stored if validation fails.
func (s *SubmissionService) Submit(ctx context.Context, category domain.Category, req dtos.ListingSubmissionRequestDTO, imageRefs []string) (*VerificationReference, error) {
    const op = "submit"

    coll, err := s.collections.For(category)
    if err != nil {
        return nil, newValidationError(op, "category", "Unknown listing category")
    }

    req.ImageCount = len(imageRefs)
    valid, err := req.Validate(s.emailDomain)
    if err != nil {
        var vErr *dtos.ValidationError
        if errors.As(err, &vErr) {
            s.logger.Info("listing submission rejected", "category", category, "field", vErr.Field)
            return nil, newValidationError(op, vErr.Field, vErr.Reason)
        }
        return nil, err
    }

    code, err := s.newCode()
    if err != nil {
        return nil, &ListingError{Type: ErrTypePersistence, Operation: op, Message: "Could not issue a verification code", Cause: err}
    }

    images := make([]string, len(imageRefs))
    copy(images, imageRefs)
    draft := domain.Listing{
        ID:              s.newID(),
        Category:        category,
        SellerName:      valid.SellerName,
        Email:           valid.Email,
        ContactNumber:   valid.ContactNumber,
        WhatsappNumber:  valid.WhatsappNumber,
        ItemName:        valid.ItemName,
        ItemDescription: valid.ItemDescription,
        Price:           valid.Price,
        PricePeriod:     valid.PricePeriod,
        Images:          images,
        CreatedAt:       s.now().UTC(),
    }

    if err := coll.Append(ctx, draft); err != nil {
        s.logger.Error("failed to store draft listing", "error", err, "category", category, "listing_id", draft.ID)
        return nil, newPersistenceError(op, err)
    }

    challenge := domain.Challenge{Email: draft.Email, Code: code, ListingID: draft.ID, Category: category}
    if err := s.challenges.Put(ctx, draft.Email, challenge); err != nil {
        // The draft stays unpublished and unreachable; a new submission gets a fresh challenge.
        s.logger.Error("failed to store verification challenge", "error", err, "category", category, "listing_id", draft.ID)
        return nil, newPersistenceError(op, err)
    }

    ref := &VerificationReference{
        ID:       draft.ID,
        Email:    draft.Email,
        Category: category,
        URL:      s.verifyURL(category, draft.ID, draft.Email),
    }

    s.notifier.SendVerificationCodeAsync(services.VerificationCodeNotice{
        Email:     draft.Email,
        Code:      code,
        VerifyURL: ref.URL,
        Category:  category,
        ListingID: draft.ID,
    })

    s.logger.Info("draft listing submitted",
        "category", category,
        "listing_id", draft.ID,
        "email", services.MaskEmail(draft.Email),
        "images", len(images))
    return ref, nil
}

func (s *SubmissionService) verifyURL(category domain.Category, id, email string) string {
    return fmt.Sprintf("%s/verify-otp/%s?id=%s&email=%s", s.baseURL, category, url.QueryEscape(id), url.QueryEscape(email))
}
